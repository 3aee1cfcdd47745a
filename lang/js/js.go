// Package js is the JavaScript target backend: import descriptors, string
// quoting, and an import preamble grouping named imports per module and
// aliased module imports separately.
package js

import (
	"sort"
	"strings"

	"github.com/genco-go/genco"
)

const (
	sep     = "."
	pathSep = "/"
)

// Type is an imported JavaScript item: a name, the module it comes from
// (empty for local names), and an optional module alias. An aliased type
// renders as alias.name and imports its whole module under the alias
// (import * as alias from "module").
type Type struct {
	module string
	name   string
	alias  string
}

// Imported returns a name imported from module. Dots in module are path
// separators: "collections.vec" resolves to "collections/vec.js".
func Imported(module, name string) Type {
	return Type{module: module, name: name}
}

// Local returns a name with no import behind it.
func Local(name string) Type {
	return Type{name: name}
}

// Alias returns a copy of t whose module is imported under alias.
func (t Type) Alias(alias string) Type {
	t.alias = alias
	return t
}

// ItemString implements genco.LangItem.
func (t Type) ItemString() string {
	if t.alias != "" {
		return t.alias + sep + t.name
	}
	return t.name
}

// Key implements genco.Import. Ordering is module first, then name, then
// alias, so the rendered preamble is a pure function of the import set.
func (t Type) Key() string {
	return t.module + "\x00" + t.name + "\x00" + t.alias
}

// JavaScript is the genco.Lang producing JavaScript output.
type JavaScript struct{}

// New returns the JavaScript backend.
func New() *JavaScript {
	return &JavaScript{}
}

// Quoted returns input as a double-quoted JavaScript string literal.
func Quoted(input string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, c := range input {
		switch c {
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\f':
			sb.WriteString(`\f`)
		case '\'':
			sb.WriteString(`\'`)
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		default:
			sb.WriteRune(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// QuoteString implements genco.Lang.
func (l *JavaScript) QuoteString(out *genco.Formatter, input string) error {
	return out.WriteString(Quoted(input))
}

// FormatItem implements genco.Lang.
func (l *JavaScript) FormatItem(v genco.LangItem, out *genco.Formatter, level int) error {
	return out.WriteString(v.ItemString())
}

// AsImport implements genco.Lang: a Type with a module contributes to the
// preamble, everything else does not.
func (l *JavaScript) AsImport(v genco.LangItem) genco.Import {
	if t, ok := v.(Type); ok && t.module != "" {
		return t
	}
	return nil
}

func moduleToPath(module string) string {
	return strings.Join(strings.Split(module, sep), pathSep) + ".js"
}

// imports builds the preamble stream for s, or nil when s carries no
// imports. Named imports are grouped per module; aliased imports become
// wildcard module imports. Both groups are deduplicated and sorted, and
// the preamble is emitted whenever either group is non-empty.
func (l *JavaScript) imports(s *genco.Stream) *genco.Stream {
	named := make(map[string][]string)
	seenNamed := make(map[[2]string]bool)
	var wildcard [][2]string
	seenWildcard := make(map[[2]string]bool)

	for _, imp := range s.WalkImports(l) {
		t := imp.(Type)
		if t.alias != "" {
			pair := [2]string{t.module, t.alias}
			if !seenWildcard[pair] {
				seenWildcard[pair] = true
				wildcard = append(wildcard, pair)
			}
			continue
		}
		pair := [2]string{t.module, t.name}
		if !seenNamed[pair] {
			seenNamed[pair] = true
			named[t.module] = append(named[t.module], t.name)
		}
	}

	if len(named) == 0 && len(wildcard) == 0 {
		return nil
	}

	modules := make([]string, 0, len(named))
	for m := range named {
		modules = append(modules, m)
	}
	sort.Strings(modules)
	sort.Slice(wildcard, func(i, j int) bool {
		if wildcard[i][0] != wildcard[j][0] {
			return wildcard[i][0] < wildcard[j][0]
		}
		return wildcard[i][1] < wildcard[j][1]
	})

	out := genco.NewStream()
	for _, m := range modules {
		names := named[m]
		sort.Strings(names)
		out.Append("import {" + strings.Join(names, ", ") + "} from " + Quoted(moduleToPath(m)) + ";")
		out.Push()
	}
	for _, w := range wildcard {
		out.Append("import * as " + w[1] + " from " + Quoted(moduleToPath(w[0])) + ";")
		out.Push()
	}
	return out
}

// WriteFile implements genco.Lang: import preamble, one blank line, body.
func (l *JavaScript) WriteFile(s *genco.Stream, out *genco.Formatter, level int) error {
	pre := l.imports(s)
	if pre == nil {
		return out.RenderStream(s)
	}
	pre.Line()
	pre.Include(s)
	return out.RenderStream(pre)
}
