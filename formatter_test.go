package genco

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useItem is an import-carrying LangItem for exercising RenderFile's
// default hoisting behavior.
type useItem struct {
	Module string
	Name   string
}

func (u useItem) ItemString() string { return u.Name }

func (u useItem) Key() string { return u.Module + "." + u.Name }

// useLang renders useItem imports as "use module.name;" preamble lines,
// via the default RenderFile hoisting.
type useLang struct{}

func (useLang) QuoteString(out *Formatter, input string) error {
	return out.WriteString("\"" + input + "\"")
}

func (useLang) FormatItem(v LangItem, out *Formatter, level int) error {
	return out.WriteString(v.ItemString())
}

func (useLang) AsImport(v LangItem) Import {
	if u, ok := v.(useItem); ok && u.Module != "" {
		return u
	}
	return nil
}

func (useLang) WriteFile(s *Stream, out *Formatter, level int) error {
	return out.RenderFile(s, func(imp Import) string {
		u := imp.(useItem)
		return "use " + u.Module + "." + u.Name + ";"
	})
}

func TestRenderFileHoistsImports(t *testing.T) {
	s := NewStream()
	s.AppendItem(useItem{Module: "collections", Name: "Vec"})
	s.Space()
	s.AppendItem(useItem{Module: "alloc", Name: "Box"})

	text, err := s.String(useLang{}, 0)
	require.NoError(t, err)
	assert.Equal(t, "use alloc.Box;\nuse collections.Vec;\n\nVec Box", text)
}

func TestRenderFileDeduplicatesImports(t *testing.T) {
	s := NewStream()
	s.AppendItem(useItem{Module: "collections", Name: "Vec"})
	s.Space()
	s.AppendItem(useItem{Module: "collections", Name: "Vec"})

	text, err := s.String(useLang{}, 0)
	require.NoError(t, err)
	assert.Equal(t, "use collections.Vec;\n\nVec Vec", text)
}

func TestRenderFileNoImportsNoPreamble(t *testing.T) {
	s := NewStream()
	s.AppendItem(useItem{Name: "Local"})
	s.Space()
	s.Append("x")

	text, err := s.String(useLang{}, 0)
	require.NoError(t, err)
	assert.Equal(t, "Local x", text)
}

func TestIndentUnderflowIsAnError(t *testing.T) {
	s := NewStream()
	s.Append("a")
	s.Unindent()
	s.Push()
	s.Append("b")

	_, err := s.String(nullLang{}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "indent underflow")
}

func TestStartingLevelIndentsContinuationLines(t *testing.T) {
	s := NewStream()
	s.Append("a")
	s.Push()
	s.Append("b")

	text, err := s.String(nullLang{}, 1)
	require.NoError(t, err)
	assert.Equal(t, "a\n    b", text)
}

type narrowLang struct{ nullLang }

func (narrowLang) IndentStep() int { return 2 }

func TestIndentStepOverride(t *testing.T) {
	s := NewStream()
	s.Append("a")
	s.Indent()
	s.Push()
	s.Append("b")

	text, err := s.String(narrowLang{}, 0)
	require.NoError(t, err)
	assert.Equal(t, "a\n  b", text)
}

func TestQuoteStringThroughFormatter(t *testing.T) {
	f := NewFormatter(nullLang{}, 0)
	require.NoError(t, nullLang{}.QuoteString(f, "hi"))

	text, err := f.Format(NewStream())
	require.NoError(t, err)
	assert.Equal(t, "\"hi\"", text)
}
