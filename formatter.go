package genco

import (
	"sort"
	"strings"
)

// defaultIndentStep is the column width of one indentation level when a
// Lang does not implement IndentStepper.
const defaultIndentStep = 4

// IndentStepper lets a Lang override the default 4-column indentation
// step. Most backends don't need this; genco/lang/golang and
// genco/lang/js both use the default.
type IndentStepper interface {
	IndentStep() int
}

type pending int

const (
	pendingNone pending = iota
	pendingSpace
	pendingPush
	pendingLine
)

// upgrade returns the stronger of p and other, per the ordering
// Space < Push < Line; pending whitespace is only ever upgraded, never
// downgraded.
func (p pending) upgrade(other pending) pending {
	if other > p {
		return other
	}
	return p
}

// Formatter converts a Stream to text using a Lang backend, hoisting
// imports and resolving indentation. Formatter owns the column and
// pending-whitespace bookkeeping; a backend's FormatItem/WriteFile write
// through Formatter's WriteString/WriteChar/Write helpers so that nested
// language items participate in the same column tracking as plain
// literals.
type Formatter struct {
	lang  Lang
	step  int
	level int

	out     strings.Builder
	column  int
	pending pending
}

// NewFormatter returns a Formatter for lang, starting at the given
// indentation level.
func NewFormatter(lang Lang, level int) *Formatter {
	step := defaultIndentStep
	if s, ok := lang.(IndentStepper); ok {
		step = s.IndentStep()
	}
	return &Formatter{lang: lang, step: step, level: level}
}

// Lang returns the backend this Formatter renders with.
func (f *Formatter) Lang() Lang { return f.lang }

// Format renders s to text by delegating to lang.WriteFile.
func (f *Formatter) Format(s *Stream) (string, error) {
	if err := f.lang.WriteFile(s, f, f.level); err != nil {
		return "", err
	}
	return f.out.String(), nil
}

// Write implements io.Writer, so a backend's QuoteString/FormatItem can
// use fmt.Fprintf(out, ...) or similar against a Formatter.
func (f *Formatter) Write(p []byte) (int, error) {
	f.writeRaw(string(p))
	return len(p), nil
}

// WriteString writes raw text directly, bypassing whitespace resolution.
// Backends call this from FormatItem/QuoteString to emit a language item's
// rendered form; RenderStream calls resolvePending before every literal
// and language item, so by the time FormatItem runs the column is already
// correct.
func (f *Formatter) WriteString(s string) error {
	f.writeRaw(s)
	return nil
}

// WriteChar writes a single rune directly, bypassing whitespace
// resolution — the same contract as WriteString.
func (f *Formatter) WriteChar(r rune) error {
	f.writeRaw(string(r))
	return nil
}

func (f *Formatter) writeRaw(s string) {
	if s == "" {
		return
	}
	f.out.WriteString(s)
	if idx := strings.LastIndexByte(s, '\n'); idx >= 0 {
		f.column = len(s) - idx - 1
	} else {
		f.column += len(s)
	}
}

func (f *Formatter) indentString() string {
	if f.level <= 0 {
		return ""
	}
	return strings.Repeat(" ", f.step*f.level)
}

// resolvePending emits whatever the accumulated pending whitespace intent
// calls for, then clears it. Must be called immediately before writing any
// non-empty Literal or LangItem content.
func (f *Formatter) resolvePending() {
	switch f.pending {
	case pendingLine:
		if f.column > 0 {
			f.writeRaw("\n\n" + f.indentString())
		}
	case pendingPush:
		if f.column > 0 {
			f.writeRaw("\n" + f.indentString())
		}
	case pendingSpace:
		if f.column > 0 {
			f.writeRaw(" ")
		}
	}
	f.pending = pendingNone
}

// RenderStream runs the per-item emission rules over s. It does not
// touch imports, so callers that need an import preamble
// (virtually every Lang.WriteFile) build a combined Stream first (see
// RenderFile) or call RenderStream on the preamble and body separately.
func (f *Formatter) RenderStream(s *Stream) error {
	for _, it := range s.Items() {
		switch it.Kind {
		case LiteralKind:
			if it.Literal == "" {
				continue
			}
			f.resolvePending()
			f.writeRaw(it.Literal)
		case LangKind:
			if it.Lang == nil {
				continue
			}
			f.resolvePending()
			if cr, ok := it.Lang.(compoundItem); ok {
				if err := cr.formatCompound(f); err != nil {
					return err
				}
				continue
			}
			if err := f.lang.FormatItem(it.Lang, f, f.level); err != nil {
				return err
			}
		case SpaceKind:
			f.pending = f.pending.upgrade(pendingSpace)
		case PushKind:
			f.pending = f.pending.upgrade(pendingPush)
		case LineKind:
			f.pending = f.pending.upgrade(pendingLine)
		case IndentKind:
			f.level += it.IndentDelta
			if f.level < 0 {
				return Error{Message: "indent underflow: more Indent(-1) than Indent(+1)"}
			}
		}
	}
	// Trailing whitespace is never emitted; pending is simply discarded.
	f.pending = pendingNone
	return nil
}

// writeItem writes a single Item's content directly, with no whitespace
// resolution — used by compoundItem implementations (WithArguments) that
// need to recurse into a nested Item while already mid-render.
func (f *Formatter) writeItem(it Item) error {
	switch it.Kind {
	case LiteralKind:
		f.writeRaw(it.Literal)
		return nil
	case LangKind:
		if it.Lang == nil {
			return nil
		}
		if cr, ok := it.Lang.(compoundItem); ok {
			return cr.formatCompound(f)
		}
		return f.lang.FormatItem(it.Lang, f, f.level)
	default:
		return nil
	}
}

// compoundItem is implemented by LangItems (such as the WithArguments
// wrapper) that render themselves by recursing into the Formatter
// directly, without needing the active Lang to know their concrete type.
type compoundItem interface {
	formatCompound(f *Formatter) error
}

// dedupeSortImports collapses duplicate imports (by Key) and returns them
// sorted by Key, so the rendered preamble is a pure function of the
// import set.
func dedupeSortImports(imports []Import) []Import {
	seen := make(map[string]Import, len(imports))
	keys := make([]string, 0, len(imports))
	for _, imp := range imports {
		k := imp.Key()
		if _, ok := seen[k]; !ok {
			seen[k] = imp
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := make([]Import, len(keys))
	for i, k := range keys {
		out[i] = seen[k]
	}
	return out
}

// RenderFile is the default Lang.WriteFile behavior: deduplicate and
// sort s's imports, render each with renderImport
// into its own preamble line, separate the preamble from the body with
// one blank line, and fall back to plain body rendering when there are no
// imports at all.
func (f *Formatter) RenderFile(s *Stream, renderImport func(Import) string) error {
	imports := dedupeSortImports(s.WalkImports(f.lang))
	if len(imports) == 0 {
		return f.RenderStream(s)
	}

	pre := NewStream()
	for _, imp := range imports {
		pre.Append(renderImport(imp))
		pre.Push()
	}
	pre.Line()
	pre.Include(s)
	return f.RenderStream(pre)
}
