package genco

// Import is the capability a backend's import-descriptor type must
// provide so the Formatter can deduplicate and deterministically order
// the import preamble. Key must be total: two imports that should be
// treated as the same entry return equal keys, and comparison is by plain
// string ordering.
type Import interface {
	Key() string
}

// Lang is the small, polymorphic surface a target-language backend plugs
// into. A concrete backend package (genco/lang/js, genco/lang/golang, ...)
// implements Lang once and exposes its own LangItem-producing helpers
// (Imported, Local, ...) to callers and to genco/quote templates.
type Lang interface {
	// QuoteString writes a target-language string literal for input,
	// applying that language's escaping rules, to out.
	QuoteString(out *Formatter, input string) error

	// FormatItem renders one LangItem to out at the given indentation
	// level.
	FormatItem(v LangItem, out *Formatter, level int) error

	// AsImport classifies v as an import descriptor, or returns nil if v
	// does not contribute to the import preamble.
	AsImport(v LangItem) Import

	// WriteFile orchestrates import hoisting and body emission for a
	// whole file: walk s's imports, render a preamble, then format s
	// itself. The default two-pass behavior lives in
	// Formatter.RenderFile; backends with non-default preamble grouping
	// (e.g. lang/js's named-vs-wildcard split) implement their own.
	WriteFile(s *Stream, out *Formatter, level int) error
}
