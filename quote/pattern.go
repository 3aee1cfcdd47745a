package quote

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/genco-go/genco/encoder"
	"github.com/smasher164/xid"
)

// wildcardPattern ("_") always matches and binds nothing.
type wildcardPattern struct{}

func (wildcardPattern) Match(encoder.Env, reflect.Value) (bool, error) { return true, nil }
func (wildcardPattern) Source() string                                { return "_" }

// bindPattern (a bare identifier) always matches, binding the whole
// scrutinee under name — the Go reading of Rust's irrefutable identifier
// pattern.
type bindPattern struct{ name string }

func (p bindPattern) Match(env encoder.Env, v reflect.Value) (bool, error) {
	env.Set(p.name, v)
	return true, nil
}

func (p bindPattern) Source() string { return p.name }

// tuplePattern ("k, v") destructures an encoder.MapEntry, the value shape
// produced when a for-loop ranges over a map.
type tuplePattern struct{ keyName, valName string }

func (p tuplePattern) Match(env encoder.Env, v reflect.Value) (bool, error) {
	d := v
	for d.Kind() == reflect.Interface {
		d = d.Elem()
	}
	entry, ok := d.Interface().(encoder.MapEntry)
	if !ok {
		return false, fmt.Errorf("pattern %q expects a map entry, got %s", p.Source(), d.Type())
	}
	if p.keyName != "_" {
		env.Set(p.keyName, entry.Key)
	}
	if p.valName != "_" {
		env.Set(p.valName, entry.Value)
	}
	return true, nil
}

func (p tuplePattern) Source() string { return p.keyName + ", " + p.valName }

// literalPattern evaluates its expression and compares the result against
// the scrutinee for equality — the match-arm analogue of a Rust literal or
// constant pattern.
type literalPattern struct{ expr encoder.Expr }

func (p literalPattern) Match(env encoder.Env, v reflect.Value) (bool, error) {
	want, err := p.expr.Eval(env)
	if err != nil {
		return false, err
	}
	return valuesEqual(want, v), nil
}

func (p literalPattern) Source() string { return p.expr.Source() }

func looksLikeBareIdent(s string) bool {
	if s == "" {
		return false
	}
	rs := []rune(s)
	if !(xid.Start(rs[0]) || rs[0] == '_') {
		return false
	}
	for _, r := range rs[1:] {
		if !(xid.Continue(r) || r == '_') {
			return false
		}
	}
	return s != "true" && s != "false" && s != "nil" && s != "_"
}

// parsePattern parses a for-loop binding pattern: "_", "name", or
// "keyName, valName" for ranging over a map.
func parsePattern(text string) (encoder.Pattern, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty for-loop pattern")
	}
	if text == "_" {
		return wildcardPattern{}, nil
	}
	if idx := strings.IndexByte(text, ','); idx >= 0 {
		k := strings.TrimSpace(text[:idx])
		v := strings.TrimSpace(text[idx+1:])
		if k == "" || v == "" {
			return nil, fmt.Errorf("malformed tuple pattern %q", text)
		}
		return tuplePattern{keyName: k, valName: v}, nil
	}
	if !looksLikeBareIdent(text) && text != "_" {
		return nil, fmt.Errorf("invalid for-loop pattern %q", text)
	}
	return bindPattern{name: text}, nil
}

// parseMatchPattern parses a match-arm pattern: "_", a bare identifier
// (irrefutable bind), or any other expression (evaluated and compared for
// equality against the scrutinee).
func parseMatchPattern(text string) (encoder.Pattern, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty match pattern")
	}
	if text == "_" {
		return wildcardPattern{}, nil
	}
	if looksLikeBareIdent(text) {
		return bindPattern{name: text}, nil
	}
	expr, err := newGoExpr(text)
	if err != nil {
		return nil, err
	}
	return literalPattern{expr: expr}, nil
}
