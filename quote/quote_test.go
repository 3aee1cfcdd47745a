package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genco-go/genco"
)

// plainLang renders language items through their fallback ItemString and
// has no imports; the backend-specific paths are covered in the lang
// packages.
type plainLang struct{}

func (plainLang) QuoteString(out *genco.Formatter, input string) error {
	return out.WriteString("\"" + input + "\"")
}

func (plainLang) FormatItem(v genco.LangItem, out *genco.Formatter, level int) error {
	return out.WriteString(v.ItemString())
}

func (plainLang) AsImport(v genco.LangItem) genco.Import { return nil }

func (plainLang) WriteFile(s *genco.Stream, out *genco.Formatter, level int) error {
	return out.RenderStream(s)
}

func renderTemplate(t *testing.T, template string, values map[string]any) string {
	t.Helper()
	s, err := Quote("test.tpl", template, values)
	require.NoError(t, err)
	text, err := s.String(plainLang{}, 0)
	require.NoError(t, err)
	return text
}

func TestEscapeRoundTrip(t *testing.T) {
	got := renderTemplate(t, "foo#<push>bar#<line>baz#<space>biz", nil)
	assert.Equal(t, "foo\nbar\n\nbaz biz", got)
}

func TestHashEscape(t *testing.T) {
	assert.Equal(t, "a # b", renderTemplate(t, "a ## b", nil))
}

func TestUnknownEscape(t *testing.T) {
	_, err := Quote("test.tpl", "#<foo>", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown escape sequence '#<foo>'")
}

func TestInterpolateIdent(t *testing.T) {
	got := renderTemplate(t, "Hello #name!", map[string]any{"name": "John"})
	assert.Equal(t, "Hello John!", got)
}

func TestInterpolateExpressions(t *testing.T) {
	type user struct {
		Name string
	}
	values := map[string]any{
		"user":  user{Name: "Jane"},
		"items": []string{"a", "b", "c"},
		"a":     2,
		"b":     3,
		"greet": func(name string) string { return "hi " + name },
	}

	assert.Equal(t, "Jane", renderTemplate(t, "#(user.Name)", values))
	assert.Equal(t, "b", renderTemplate(t, "#(items[1])", values))
	assert.Equal(t, "5", renderTemplate(t, "#(a + b)", values))
	assert.Equal(t, "hi Jane", renderTemplate(t, "#(greet(user.Name))", values))
}

func TestForLoopWithJoin(t *testing.T) {
	got := renderTemplate(t,
		"Your numbers are: #(for n in numbers join (, ) => #n).",
		map[string]any{"numbers": []int{3, 4, 5}})
	assert.Equal(t, "Your numbers are: 3, 4, 5.", got)
}

func TestForLoopBraceBody(t *testing.T) {
	got := renderTemplate(t,
		"#(for n in numbers { item #n })",
		map[string]any{"numbers": []int{1, 2}})
	assert.Equal(t, "item 1item 2", got)
}

func TestForLoopJoinPush(t *testing.T) {
	got := renderTemplate(t,
		"#(for n in numbers join (#<push>) => #n)",
		map[string]any{"numbers": []int{1, 2, 3}})
	assert.Equal(t, "1\n2\n3", got)
}

func TestForLoopOverMap(t *testing.T) {
	got := renderTemplate(t,
		"#(for k, v in opts join (#<push>) => #k=#v)",
		map[string]any{"opts": map[string]any{"b": 2, "a": 1}})
	assert.Equal(t, "a=1\nb=2", got)
}

func TestIfElse(t *testing.T) {
	template := "Custom Greeting: #(if formal { Hello #name } else { Goodbye #name })"

	got := renderTemplate(t, template, map[string]any{"formal": true, "name": "John"})
	assert.Equal(t, "Custom Greeting: Hello John", got)

	got = renderTemplate(t, template, map[string]any{"formal": false, "name": "John"})
	assert.Equal(t, "Custom Greeting: Goodbye John", got)
}

func TestIfLiteralCondition(t *testing.T) {
	got := renderTemplate(t, "#(if true { Hello #name })", map[string]any{"name": "John"})
	assert.Equal(t, "Hello John", got)
}

func TestIfArrowForm(t *testing.T) {
	template := "a #(if cond => b)"

	assert.Equal(t, "a b", renderTemplate(t, template, map[string]any{"cond": true}))
	assert.Equal(t, "a", renderTemplate(t, template, map[string]any{"cond": false}))
}

func TestMatch(t *testing.T) {
	template := "#(match n { 1 => one, 2 => two, _ => many })"

	assert.Equal(t, "one", renderTemplate(t, template, map[string]any{"n": 1}))
	assert.Equal(t, "two", renderTemplate(t, template, map[string]any{"n": 2}))
	assert.Equal(t, "many", renderTemplate(t, template, map[string]any{"n": 7}))
}

func TestMatchBindingArm(t *testing.T) {
	got := renderTemplate(t,
		"#(match word { \"a\" => first, other => got #other })",
		map[string]any{"word": "zzz"})
	assert.Equal(t, "got zzz", got)
}

func TestScopeEscape(t *testing.T) {
	got := renderTemplate(t, "a #(out => { #(out.Append(\"hi\")) }) b", nil)
	assert.Equal(t, "a hi b", got)
}

func TestScopeEscapeReborrow(t *testing.T) {
	got := renderTemplate(t, "#(*out => #(out.Append(\"hi\")))", nil)
	assert.Equal(t, "hi", got)
}

func TestWhitespaceIdempotence(t *testing.T) {
	values := map[string]any{"name": "x"}
	want := renderTemplate(t, "fn #name() {}", values)
	assert.Equal(t, want, renderTemplate(t, "fn   #name()    {}", values))
}

func TestBlankLineThreshold(t *testing.T) {
	want := renderTemplate(t, "a\n\nb", nil)
	assert.Equal(t, "a\n\nb", want)
	assert.Equal(t, want, renderTemplate(t, "a\n\n\n\n\nb", nil))
}

func TestIndentationReconstruction(t *testing.T) {
	template := "    fn test() {\n" +
		"        println!(\"A\");\n" +
		"\n" +
		"        println!(\"B\");\n" +
		"    }"
	got := renderTemplate(t, template, nil)
	assert.Equal(t, "fn test() {\n    println!(\"A\");\n\n    println!(\"B\");\n}", got)
}

func TestNestedIndentation(t *testing.T) {
	template := "a {\n" +
		"    b {\n" +
		"        c\n" +
		"    }\n" +
		"}"
	got := renderTemplate(t, template, nil)
	assert.Equal(t, "a {\n    b {\n        c\n    }\n}", got)
}

func TestIndentationMismatch(t *testing.T) {
	_, err := Quote("test.tpl", "foo\n        bar\n    baz", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 4 less spaces of indentation")
	assert.Contains(t, err.Error(), "test.tpl:3:5")
}

func TestIndentationAutoClosedAtEnd(t *testing.T) {
	got := renderTemplate(t, "a\n    b\n        c", nil)
	assert.Equal(t, "a\n    b\n        c", got)
}

func TestQuoteIn(t *testing.T) {
	dest := genco.NewStream()
	dest.Append("before")
	dest.Space()

	require.NoError(t, QuoteIn(dest, "test.tpl", "after #n", map[string]any{"n": 1}))

	text, err := dest.String(plainLang{}, 0)
	require.NoError(t, err)
	assert.Equal(t, "before after 1", text)
}

func TestPlanIsReusable(t *testing.T) {
	plan := MustParse("test.tpl", "value: #n")

	for _, n := range []int{1, 2} {
		s := genco.NewStream()
		require.NoError(t, plan.Execute(s, Values(map[string]any{"n": n})))
		text, err := s.String(plainLang{}, 0)
		require.NoError(t, err)
		assert.Equal(t, "value: "+string(rune('0'+n)), text)
	}
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("test.tpl", "#<nope>") })
}

func TestStringLiteralsPassThrough(t *testing.T) {
	got := renderTemplate(t, "console.log(\"hello # world\");", nil)
	assert.Equal(t, "console.log(\"hello # world\");", got)
}

func TestBracesInLiteralBody(t *testing.T) {
	got := renderTemplate(t,
		"#(if cond { fn f() { body } })",
		map[string]any{"cond": true})
	assert.Equal(t, "fn f() { body }", got)
}

func TestParseErrors(t *testing.T) {
	for _, template := range []string{
		"#(if cond { x",
		"#",
		"#(for n numbers => #n)",
		"#(for n in numbers join , => #n)",
		"#()",
	} {
		_, err := Parse("test.tpl", template)
		assert.Error(t, err, "template %q", template)
	}
}

func TestUndefinedNameFailsAtExecution(t *testing.T) {
	plan, err := Parse("test.tpl", "#missing")
	require.NoError(t, err)

	err = plan.Execute(genco.NewStream(), NewEnv())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}
