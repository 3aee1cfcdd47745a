package quote

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"strconv"
	"strings"

	"github.com/genco-go/genco/encoder"
)

// goExpr is an encoder.Expr backed by a real Go expression, parsed once
// with go/parser and evaluated against an encoder.Env with reflect.
// go/parser.ParseExpr is the authoritative Go expression grammar, so the
// interpolation sub-language needs no grammar of its own.
type goExpr struct {
	src  string
	node ast.Expr
}

// newGoExpr parses src (the text of a `#(...)` or `#ident` site) as a Go
// expression.
func newGoExpr(src string) (encoder.Expr, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, fmt.Errorf("empty expression")
	}
	node, err := parser.ParseExpr(src)
	if err != nil {
		return nil, fmt.Errorf("parsing expression %q: %w", src, err)
	}
	return &goExpr{src: src, node: node}, nil
}

func (e *goExpr) Source() string { return e.src }

func (e *goExpr) Eval(env encoder.Env) (reflect.Value, error) {
	return evalNode(e.node, env)
}

func evalNode(n ast.Expr, env encoder.Env) (reflect.Value, error) {
	switch t := n.(type) {
	case *ast.ParenExpr:
		return evalNode(t.X, env)
	case *ast.Ident:
		return evalIdent(t, env)
	case *ast.BasicLit:
		return evalBasicLit(t)
	case *ast.UnaryExpr:
		return evalUnary(t, env)
	case *ast.BinaryExpr:
		return evalBinary(t, env)
	case *ast.SelectorExpr:
		x, err := evalNode(t.X, env)
		if err != nil {
			return reflect.Value{}, err
		}
		return evalSelector(x, t.Sel.Name)
	case *ast.CallExpr:
		return evalCall(t, env)
	case *ast.IndexExpr:
		return evalIndex(t, env)
	default:
		return reflect.Value{}, fmt.Errorf("unsupported expression form %T", n)
	}
}

func evalIdent(t *ast.Ident, env encoder.Env) (reflect.Value, error) {
	switch t.Name {
	case "true":
		return reflect.ValueOf(true), nil
	case "false":
		return reflect.ValueOf(false), nil
	case "nil":
		return reflect.Value{}, nil
	}
	v, ok := env.Get(t.Name)
	if !ok {
		return reflect.Value{}, fmt.Errorf("undefined name %q", t.Name)
	}
	return v, nil
}

func evalBasicLit(t *ast.BasicLit) (reflect.Value, error) {
	switch t.Kind {
	case token.INT:
		n, err := strconv.ParseInt(t.Value, 0, 64)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(int(n)), nil
	case token.FLOAT:
		f, err := strconv.ParseFloat(t.Value, 64)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(f), nil
	case token.STRING:
		s, err := strconv.Unquote(t.Value)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(s), nil
	case token.CHAR:
		s, err := strconv.Unquote(t.Value)
		if err != nil {
			return reflect.Value{}, err
		}
		r := []rune(s)[0]
		return reflect.ValueOf(r), nil
	default:
		return reflect.Value{}, fmt.Errorf("unsupported literal kind %s", t.Kind)
	}
}

func evalUnary(t *ast.UnaryExpr, env encoder.Env) (reflect.Value, error) {
	v, err := evalNode(t.X, env)
	if err != nil {
		return reflect.Value{}, err
	}
	switch t.Op {
	case token.NOT:
		return reflect.ValueOf(!encoder.Truthy(v)), nil
	case token.ADD:
		return v, nil
	case token.SUB:
		f, ok := asFloat(v)
		if !ok {
			return reflect.Value{}, fmt.Errorf("unary - requires a numeric operand")
		}
		d := deref(v)
		if isIntKind(d.Kind()) {
			return reflect.ValueOf(-int(f)), nil
		}
		return reflect.ValueOf(-f), nil
	default:
		return reflect.Value{}, fmt.Errorf("unsupported unary operator %s", t.Op)
	}
}

func evalBinary(t *ast.BinaryExpr, env encoder.Env) (reflect.Value, error) {
	switch t.Op {
	case token.LAND:
		l, err := evalNode(t.X, env)
		if err != nil {
			return reflect.Value{}, err
		}
		if !encoder.Truthy(l) {
			return reflect.ValueOf(false), nil
		}
		r, err := evalNode(t.Y, env)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(encoder.Truthy(r)), nil
	case token.LOR:
		l, err := evalNode(t.X, env)
		if err != nil {
			return reflect.Value{}, err
		}
		if encoder.Truthy(l) {
			return reflect.ValueOf(true), nil
		}
		r, err := evalNode(t.Y, env)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(encoder.Truthy(r)), nil
	}

	lv, err := evalNode(t.X, env)
	if err != nil {
		return reflect.Value{}, err
	}
	rv, err := evalNode(t.Y, env)
	if err != nil {
		return reflect.Value{}, err
	}

	switch t.Op {
	case token.ADD:
		return addValues(lv, rv)
	case token.SUB, token.MUL, token.QUO, token.REM:
		return arithValues(t.Op, lv, rv)
	case token.EQL:
		return reflect.ValueOf(valuesEqual(lv, rv)), nil
	case token.NEQ:
		return reflect.ValueOf(!valuesEqual(lv, rv)), nil
	case token.LSS, token.LEQ, token.GTR, token.GEQ:
		return compareValues(t.Op, lv, rv)
	default:
		return reflect.Value{}, fmt.Errorf("unsupported operator %s", t.Op)
	}
}

// evalSelector resolves x.name as a struct field first, then a method
// (bound, ready to Call if the caller is a CallExpr).
func evalSelector(x reflect.Value, name string) (reflect.Value, error) {
	d := deref(x)
	if d.Kind() == reflect.Struct {
		if f := d.FieldByName(name); f.IsValid() {
			return f, nil
		}
	}
	if m := x.MethodByName(name); m.IsValid() {
		return m, nil
	}
	if d.IsValid() {
		if m := d.MethodByName(name); m.IsValid() {
			return m, nil
		}
	}
	return reflect.Value{}, fmt.Errorf("no field or method %q on %s", name, x.Type())
}

func evalCall(t *ast.CallExpr, env encoder.Env) (reflect.Value, error) {
	fn, err := evalNode(t.Fun, env)
	if err != nil {
		return reflect.Value{}, err
	}
	if !fn.IsValid() || fn.Kind() != reflect.Func {
		return reflect.Value{}, fmt.Errorf("value is not callable")
	}
	args := make([]reflect.Value, len(t.Args))
	for i, a := range t.Args {
		v, err := evalNode(a, env)
		if err != nil {
			return reflect.Value{}, err
		}
		args[i] = v
	}
	results, err := safeCall(fn, args)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("calling %q: %w", exprText(t.Fun), err)
	}
	switch len(results) {
	case 0:
		return reflect.Value{}, nil
	case 1:
		return results[0], nil
	default:
		last := results[len(results)-1]
		if last.IsValid() {
			if errVal, ok := last.Interface().(error); ok && errVal != nil {
				return reflect.Value{}, errVal
			}
		}
		return results[0], nil
	}
}

func safeCall(fn reflect.Value, args []reflect.Value) (results []reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	results = fn.Call(args)
	return results, nil
}

func evalIndex(t *ast.IndexExpr, env encoder.Env) (reflect.Value, error) {
	x, err := evalNode(t.X, env)
	if err != nil {
		return reflect.Value{}, err
	}
	idx, err := evalNode(t.Index, env)
	if err != nil {
		return reflect.Value{}, err
	}
	d := deref(x)
	switch d.Kind() {
	case reflect.Slice, reflect.Array:
		i, ok := asFloat(idx)
		if !ok {
			return reflect.Value{}, fmt.Errorf("index must be numeric")
		}
		n := int(i)
		if n < 0 || n >= d.Len() {
			return reflect.Value{}, fmt.Errorf("index %d out of range (len %d)", n, d.Len())
		}
		return d.Index(n), nil
	case reflect.Map:
		key := deref(idx)
		keyType := d.Type().Key()
		if key.IsValid() && key.Type() != keyType && key.Type().ConvertibleTo(keyType) {
			key = key.Convert(keyType)
		}
		v := d.MapIndex(key)
		if !v.IsValid() {
			return reflect.Value{}, fmt.Errorf("no such map key %v", idx.Interface())
		}
		return v, nil
	case reflect.String:
		i, ok := asFloat(idx)
		if !ok {
			return reflect.Value{}, fmt.Errorf("index must be numeric")
		}
		return reflect.ValueOf(d.String()[int(i)]), nil
	default:
		return reflect.Value{}, fmt.Errorf("cannot index value of kind %s", d.Kind())
	}
}

func exprText(n ast.Expr) string {
	switch t := n.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.SelectorExpr:
		return exprText(t.X) + "." + t.Sel.Name
	default:
		return "expression"
	}
}
