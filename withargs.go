package genco

// argumentsItem wraps a base Item together with a comma-joined argument
// list, rendered as base<arg, arg, ...> for generic-style instantiations
// such as HashMap<u32, u32>.
type argumentsItem struct {
	base Item
	args []Item
}

// ItemString renders a debug-only fallback; real rendering goes through
// formatCompound, which recurses into the active Formatter so nested
// LangItems still go through the backend.
func (a argumentsItem) ItemString() string {
	s := a.base.String()
	if len(a.args) == 0 {
		return s
	}
	s += "<"
	for i, arg := range a.args {
		if i > 0 {
			s += ", "
		}
		s += arg.String()
	}
	return s + ">"
}

// formatCompound implements compoundItem: it renders base followed by a
// comma-joined, angle-bracketed argument list, recursing through the
// Formatter for every nested Item so language items inside the argument
// list still go through the active Lang.
func (a argumentsItem) formatCompound(f *Formatter) error {
	if err := f.writeItem(a.base); err != nil {
		return err
	}
	if len(a.args) == 0 {
		return nil
	}
	if err := f.WriteString("<"); err != nil {
		return err
	}
	for i, arg := range a.args {
		if i > 0 {
			if err := f.WriteString(", "); err != nil {
				return err
			}
		}
		if err := f.writeItem(arg); err != nil {
			return err
		}
	}
	return f.WriteString(">")
}

// WithArguments attaches a generic-style argument list to item, producing
// a new Item suitable for appending to a Stream. base is typically a
// LangItem produced by a backend's Imported/Local helper.
func WithArguments(base Item, args ...Item) Item {
	return langItem(argumentsItem{base: base, args: args})
}
