// Package golang is the Go target backend: import descriptors, string
// quoting via strconv, and an import preamble sorted by path (a single
// import line, or a parenthesized block when there is more than one).
package golang

import (
	"sort"
	"strconv"
	"strings"

	"github.com/genco-go/genco"
)

// Type is an imported Go item: a name qualified by the package it comes
// from (empty for local names), with an optional package alias.
type Type struct {
	pkg   string
	name  string
	alias string
}

// Imported returns a name imported from the package at path pkg.
func Imported(pkg, name string) Type {
	return Type{pkg: pkg, name: name}
}

// Local returns a name with no import behind it.
func Local(name string) Type {
	return Type{name: name}
}

// Alias returns a copy of t whose package is imported under alias.
func (t Type) Alias(alias string) Type {
	t.alias = alias
	return t
}

func baseName(pkg string) string {
	if idx := strings.LastIndexByte(pkg, '/'); idx >= 0 {
		return pkg[idx+1:]
	}
	return pkg
}

// ItemString implements genco.LangItem: the qualified form of the name as
// it appears in a Go source body.
func (t Type) ItemString() string {
	switch {
	case t.alias != "":
		return t.alias + "." + t.name
	case t.pkg != "":
		return baseName(t.pkg) + "." + t.name
	default:
		return t.name
	}
}

// Key implements genco.Import. Two imports of the same package under the
// same alias share one import line, whatever names they refer to.
func (t Type) Key() string {
	return t.pkg + "\x00" + t.alias
}

// Go is the genco.Lang producing Go output.
type Go struct{}

// New returns the Go backend.
func New() *Go {
	return &Go{}
}

// QuoteString implements genco.Lang using the standard library's own Go
// string-literal escaping.
func (l *Go) QuoteString(out *genco.Formatter, input string) error {
	return out.WriteString(strconv.Quote(input))
}

// FormatItem implements genco.Lang.
func (l *Go) FormatItem(v genco.LangItem, out *genco.Formatter, level int) error {
	return out.WriteString(v.ItemString())
}

// AsImport implements genco.Lang: a Type with a package path contributes
// to the preamble.
func (l *Go) AsImport(v genco.LangItem) genco.Import {
	if t, ok := v.(Type); ok && t.pkg != "" {
		return t
	}
	return nil
}

func importLine(t Type) string {
	if t.alias != "" {
		return t.alias + " " + strconv.Quote(t.pkg)
	}
	return strconv.Quote(t.pkg)
}

// imports builds the preamble stream for s, or nil when s carries no
// imports: a single import statement, or a parenthesized block sorted by
// package path when there is more than one.
func (l *Go) imports(s *genco.Stream) *genco.Stream {
	var imports []Type
	seen := make(map[string]bool)
	for _, imp := range s.WalkImports(l) {
		t := imp.(Type)
		if !seen[t.Key()] {
			seen[t.Key()] = true
			imports = append(imports, t)
		}
	}
	if len(imports) == 0 {
		return nil
	}
	sort.Slice(imports, func(i, j int) bool {
		if imports[i].pkg != imports[j].pkg {
			return imports[i].pkg < imports[j].pkg
		}
		return imports[i].alias < imports[j].alias
	})

	out := genco.NewStream()
	if len(imports) == 1 {
		out.Append("import " + importLine(imports[0]))
		out.Push()
		return out
	}
	out.Append("import (")
	out.Indent()
	for _, t := range imports {
		out.Push()
		out.Append(importLine(t))
	}
	out.Unindent()
	out.Push()
	out.Append(")")
	out.Push()
	return out
}

// WriteFile implements genco.Lang: import preamble, one blank line, body.
func (l *Go) WriteFile(s *genco.Stream, out *genco.Formatter, level int) error {
	pre := l.imports(s)
	if pre == nil {
		return out.RenderStream(s)
	}
	pre.Line()
	pre.Include(s)
	return out.RenderStream(pre)
}
