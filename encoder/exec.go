package encoder

import (
	"fmt"
	"reflect"

	"github.com/genco-go/genco"
)

// Execute replays p against s, evaluating every EvalXxx instruction against
// env. It is safe to call Execute on the same Plan repeatedly (with fresh
// Streams/Envs) — a Plan never mutates itself during execution.
func (p *Plan) Execute(s *genco.Stream, env Env) error {
	for _, instr := range p.Instrs {
		if err := execInstr(s, env, instr); err != nil {
			return err
		}
	}
	return nil
}

func execInstr(s *genco.Stream, env Env, instr Instr) error {
	switch instr.Kind {
	case EmitLiteralKind:
		s.Append(instr.Literal)
	case EmitSpaceKind:
		s.Space()
	case EmitPushKind:
		s.Push()
	case EmitLineKind:
		s.Line()
	case EmitIndentKind:
		s.Indent()
	case EmitUnindentKind:
		s.Unindent()
	case EvalExprKind:
		v, err := instr.Expr.Eval(env)
		if err != nil {
			return fmt.Errorf("evaluating %q: %w", instr.Expr.Source(), err)
		}
		if err := genco.AppendValue(s, v); err != nil {
			return fmt.Errorf("interpolating %q: %w", instr.Expr.Source(), err)
		}
	case EvalForKind:
		return execFor(s, env, instr)
	case EvalIfKind:
		return execIf(s, env, instr)
	case EvalMatchKind:
		return execMatch(s, env, instr)
	case EvalScopeKind:
		return execScope(s, env, instr)
	default:
		return fmt.Errorf("encoder: unhandled instruction kind %v", instr.Kind)
	}
	return nil
}

func execFor(s *genco.Stream, env Env, instr Instr) error {
	iterVal, err := instr.Expr.Eval(env)
	if err != nil {
		return fmt.Errorf("evaluating for-loop iterable %q: %w", instr.Expr.Source(), err)
	}
	items, err := iterate(iterVal)
	if err != nil {
		return fmt.Errorf("in for-loop over %q: %w", instr.Expr.Source(), err)
	}
	for i, item := range items {
		child := env.Child()
		ok, err := instr.Pattern.Match(child, item)
		if err != nil {
			return fmt.Errorf("binding for-loop pattern %q: %w", instr.Pattern.Source(), err)
		}
		if !ok {
			return fmt.Errorf("for-loop pattern %q did not match element %d", instr.Pattern.Source(), i)
		}
		if i > 0 && instr.Join != nil {
			if err := instr.Join.Execute(s, child); err != nil {
				return err
			}
		}
		if err := instr.Body.Execute(s, child); err != nil {
			return err
		}
	}
	return nil
}

func execIf(s *genco.Stream, env Env, instr Instr) error {
	v, err := instr.Expr.Eval(env)
	if err != nil {
		return fmt.Errorf("evaluating if-condition %q: %w", instr.Expr.Source(), err)
	}
	if Truthy(v) {
		return instr.Body.Execute(s, env.Child())
	}
	if instr.Else != nil {
		return instr.Else.Execute(s, env.Child())
	}
	return nil
}

func execMatch(s *genco.Stream, env Env, instr Instr) error {
	v, err := instr.Expr.Eval(env)
	if err != nil {
		return fmt.Errorf("evaluating match scrutinee %q: %w", instr.Expr.Source(), err)
	}
	for _, arm := range instr.Arms {
		child := env.Child()
		ok, err := arm.Pattern.Match(child, v)
		if err != nil {
			return fmt.Errorf("matching pattern %q: %w", arm.Pattern.Source(), err)
		}
		if ok {
			return arm.Body.Execute(s, child)
		}
	}
	return fmt.Errorf("no arm of match on %q matched value %v", instr.Expr.Source(), v)
}

func execScope(s *genco.Stream, env Env, instr Instr) error {
	child := env.Child()
	child.Set(instr.Binding, reflect.ValueOf(s))
	return instr.Body.Execute(s, child)
}

// Truthy evaluates a reflect.Value in boolean context, used for
// `#(if COND => ...)` and shared with genco/quote's expression evaluator
// so `&&`/`||`/`!` agree with if-condition semantics.
func Truthy(v reflect.Value) bool {
	for v.Kind() == reflect.Interface {
		if v.IsNil() {
			return false
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Invalid:
		return false
	case reflect.Bool:
		return v.Bool()
	case reflect.String:
		return v.Len() > 0
	case reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return v.Len() > 0
	case reflect.Ptr, reflect.Func, reflect.Interface:
		return !v.IsNil()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return v.Float() != 0
	default:
		return true
	}
}
