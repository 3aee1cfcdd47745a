package golang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genco-go/genco"
	"github.com/genco-go/genco/quote"
)

func TestSingleImport(t *testing.T) {
	s := genco.NewStream()
	s.AppendItem(Imported("fmt", "Println"))
	s.Append("(\"hi\")")

	text, err := s.String(New(), 0)
	require.NoError(t, err)
	assert.Equal(t, "import \"fmt\"\n\nfmt.Println(\"hi\")", text)
}

func TestImportBlockSortedByPath(t *testing.T) {
	s := genco.NewStream()
	s.AppendItem(Imported("strings", "Join"))
	s.Push()
	s.AppendItem(Imported("fmt", "Sprintf"))
	s.Push()
	s.AppendItem(Imported("strings", "Split"))

	lines, err := s.FileLines(New(), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"import (",
		"    \"fmt\"",
		"    \"strings\"",
		")",
		"",
		"strings.Join",
		"fmt.Sprintf",
		"strings.Split",
	}, lines)
}

func TestAliasedImport(t *testing.T) {
	s := genco.NewStream()
	s.AppendItem(Imported("gopkg.in/yaml.v3", "Marshal").Alias("yaml"))

	text, err := s.String(New(), 0)
	require.NoError(t, err)
	assert.Equal(t, "import yaml \"gopkg.in/yaml.v3\"\n\nyaml.Marshal", text)
}

func TestQualifierUsesLastPathSegment(t *testing.T) {
	s := genco.NewStream()
	s.AppendItem(Imported("net/http", "Get"))

	text, err := s.String(New(), 0)
	require.NoError(t, err)
	assert.Equal(t, "import \"net/http\"\n\nhttp.Get", text)
}

func TestLocalHasNoImport(t *testing.T) {
	s := genco.NewStream()
	s.AppendItem(Local("Config"))

	text, err := s.String(New(), 0)
	require.NoError(t, err)
	assert.Equal(t, "Config", text)
}

func TestQuoteString(t *testing.T) {
	f := genco.NewFormatter(New(), 0)
	require.NoError(t, New().QuoteString(f, "a\nb\"c"))

	text, err := f.Format(genco.NewStream())
	require.NoError(t, err)
	assert.Equal(t, `"a\nb\"c"`, text)
}

func TestGeneratedFunction(t *testing.T) {
	template := "func Greet(name string) string {\n" +
		"    return #(sprintf)(\"Hello, %s!\", name)\n" +
		"}"
	s, err := quote.Quote("greet.go.tpl", template, map[string]any{
		"sprintf": Imported("fmt", "Sprintf"),
	})
	require.NoError(t, err)

	lines, err := s.FileLines(New(), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"import \"fmt\"",
		"",
		"func Greet(name string) string {",
		"    return fmt.Sprintf(\"Hello, %s!\", name)",
		"}",
	}, lines)
}
