package js

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genco-go/genco"
	"github.com/genco-go/genco/quote"
)

func TestImportPreamble(t *testing.T) {
	s := genco.NewStream()
	s.AppendItem(Imported("collections", "vec"))
	s.Push()
	s.AppendItem(Imported("collections", "vec").Alias("list"))
	s.Push()
	s.AppendItem(Imported("collections", "vec").Alias("list"))

	lines, err := s.FileLines(New(), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{
		`import {vec} from "collections.js";`,
		`import * as list from "collections.js";`,
		"",
		"vec",
		"list.vec",
		"list.vec",
	}, lines)
}

func TestNamedImportsAloneStillEmitPreamble(t *testing.T) {
	s := genco.NewStream()
	s.AppendItem(Imported("collections", "vec"))

	text, err := s.String(New(), 0)
	require.NoError(t, err)
	assert.Equal(t, "import {vec} from \"collections.js\";\n\nvec", text)
}

func TestImportsDeterministic(t *testing.T) {
	s := genco.NewStream()
	s.AppendItem(Imported("b", "y"))
	s.Space()
	s.AppendItem(Imported("a", "z"))
	s.Space()
	s.AppendItem(Imported("a", "x"))
	s.Space()
	s.AppendItem(Imported("a", "x"))

	lines, err := s.FileLines(New(), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{
		`import {x, z} from "a.js";`,
		`import {y} from "b.js";`,
		"",
		"y z x x",
	}, lines)
}

func TestLocalHasNoImport(t *testing.T) {
	s := genco.NewStream()
	s.AppendItem(Local("MyType"))

	lines, err := s.FileLines(New(), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"MyType"}, lines)
}

func TestModuleDotsBecomePathSeparators(t *testing.T) {
	s := genco.NewStream()
	s.AppendItem(Imported("collections.vec", "Vec"))

	text, err := s.String(New(), 0)
	require.NoError(t, err)
	assert.Equal(t, "import {Vec} from \"collections/vec.js\";\n\nVec", text)
}

func TestQuoted(t *testing.T) {
	assert.Equal(t, `"hello \n world"`, Quoted("hello \n world"))
	assert.Equal(t, `"a\tb"`, Quoted("a\tb"))
	assert.Equal(t, `"she said \"hi\""`, Quoted(`she said "hi"`))
	assert.Equal(t, `"it\'s"`, Quoted("it's"))
	assert.Equal(t, `"back\\slash"`, Quoted(`back\slash`))
}

func TestQuoteString(t *testing.T) {
	f := genco.NewFormatter(New(), 0)
	require.NoError(t, New().QuoteString(f, "hi"))

	text, err := f.Format(genco.NewStream())
	require.NoError(t, err)
	assert.Equal(t, `"hi"`, text)
}

func TestFunctionTemplate(t *testing.T) {
	template := "function foo(v) {\n" +
		"    return v + \", World\";\n" +
		"}\n" +
		"\n" +
		"foo(\"Hello\");"
	s, err := quote.Quote("test.js.tpl", template, nil)
	require.NoError(t, err)

	lines, err := s.FileLines(New(), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"function foo(v) {",
		"    return v + \", World\";",
		"}",
		"",
		"foo(\"Hello\");",
	}, lines)
}

func TestTemplateWithImportItems(t *testing.T) {
	s, err := quote.Quote("test.js.tpl", "const v = #(vec)();", map[string]any{
		"vec": Imported("collections", "vec"),
	})
	require.NoError(t, err)

	text, err := s.String(New(), 0)
	require.NoError(t, err)
	assert.Equal(t, "import {vec} from \"collections.js\";\n\nconst v = vec();", text)
}
