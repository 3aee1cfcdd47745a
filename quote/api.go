package quote

import (
	"github.com/genco-go/genco"
	"github.com/genco-go/genco/cursor"
	"github.com/genco-go/genco/encoder"
)

// Plan is the compiled form of a template: a straight-line instruction
// list that appends items to a destination stream each time it is
// executed. Parse a template once (typically into a package-level
// variable via MustParse) and Execute the Plan per render.
type Plan = encoder.Plan

// Env is the binding environment a Plan executes against: it resolves
// the names a template interpolates (#ident, #(expr), loop iterables,
// match scrutinees).
type Env = encoder.Env

// NewEnv returns an empty root environment.
func NewEnv() Env { return encoder.NewEnv() }

// Values returns a root environment pre-populated from plain Go values,
// typically the template's call arguments or a YAML-decoded bindings map.
func Values(values map[string]any) Env { return encoder.NewEnvFromValues(values) }

// Parse compiles template into a Plan. name identifies the template in
// error positions (a file name, or any label useful to the caller).
func Parse(name, template string) (*Plan, error) {
	cp := &compiler{c: cursor.New(template), name: name}
	plan, _, err := cp.parseTemplate("")
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// MustParse is Parse, panicking on error. Intended for templates that are
// program constants, where a parse failure is a programming error.
func MustParse(name, template string) *Plan {
	plan, err := Parse(name, template)
	if err != nil {
		panic(err)
	}
	return plan
}

// Quote parses template and runs it against a fresh Stream, which it
// returns.
func Quote(name, template string, values map[string]any) (*genco.Stream, error) {
	plan, err := Parse(name, template)
	if err != nil {
		return nil, err
	}
	s := genco.NewStream()
	if err := plan.Execute(s, Values(values)); err != nil {
		return nil, err
	}
	return s, nil
}

// QuoteIn parses template and appends its output into dest instead of
// creating a new stream.
func QuoteIn(dest *genco.Stream, name, template string, values map[string]any) error {
	plan, err := Parse(name, template)
	if err != nil {
		return err
	}
	return plan.Execute(dest, Values(values))
}
