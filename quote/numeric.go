package quote

import (
	"fmt"
	"go/token"
	"reflect"
)

func deref(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func isFloatKind(k reflect.Kind) bool { return k == reflect.Float32 || k == reflect.Float64 }

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUintKind(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func asFloat(v reflect.Value) (float64, bool) {
	v = deref(v)
	switch {
	case isFloatKind(v.Kind()):
		return v.Float(), true
	case isIntKind(v.Kind()):
		return float64(v.Int()), true
	case isUintKind(v.Kind()):
		return float64(v.Uint()), true
	}
	return 0, false
}

// addValues implements `+`: numeric addition, or string concatenation when
// both operands are strings.
func addValues(l, r reflect.Value) (reflect.Value, error) {
	ld, rd := deref(l), deref(r)
	if ld.Kind() == reflect.String && rd.Kind() == reflect.String {
		return reflect.ValueOf(ld.String() + rd.String()), nil
	}
	return arithValues(token.ADD, l, r)
}

func arithValues(op token.Token, l, r reflect.Value) (reflect.Value, error) {
	lf, lok := asFloat(l)
	rf, rok := asFloat(r)
	if !lok || !rok {
		return reflect.Value{}, fmt.Errorf("operator %s requires numeric operands", op)
	}
	var result float64
	switch op {
	case token.ADD:
		result = lf + rf
	case token.SUB:
		result = lf - rf
	case token.MUL:
		result = lf * rf
	case token.QUO:
		if rf == 0 {
			return reflect.Value{}, fmt.Errorf("division by zero")
		}
		result = lf / rf
	case token.REM:
		li, ri := int64(lf), int64(rf)
		if ri == 0 {
			return reflect.Value{}, fmt.Errorf("division by zero")
		}
		result = float64(li % ri)
	default:
		return reflect.Value{}, fmt.Errorf("unsupported arithmetic operator %s", op)
	}
	ld, rd := deref(l), deref(r)
	if isIntKind(ld.Kind()) && isIntKind(rd.Kind()) {
		return reflect.ValueOf(int(result)), nil
	}
	return reflect.ValueOf(result), nil
}

func compareValues(op token.Token, l, r reflect.Value) (reflect.Value, error) {
	lf, lok := asFloat(l)
	rf, rok := asFloat(r)
	if lok && rok {
		return reflect.ValueOf(compareFloat(op, lf, rf)), nil
	}
	ld, rd := deref(l), deref(r)
	if ld.Kind() == reflect.String && rd.Kind() == reflect.String {
		return reflect.ValueOf(compareString(op, ld.String(), rd.String())), nil
	}
	return reflect.Value{}, fmt.Errorf("operator %s requires comparable operands", op)
}

func compareFloat(op token.Token, l, r float64) bool {
	switch op {
	case token.LSS:
		return l < r
	case token.LEQ:
		return l <= r
	case token.GTR:
		return l > r
	case token.GEQ:
		return l >= r
	}
	return false
}

func compareString(op token.Token, l, r string) bool {
	switch op {
	case token.LSS:
		return l < r
	case token.LEQ:
		return l <= r
	case token.GTR:
		return l > r
	case token.GEQ:
		return l >= r
	}
	return false
}

// valuesEqual implements `==`/`!=` across the value kinds an interpolated
// template expression is likely to compare: numerics (compared by value,
// regardless of exact width), strings, bools, and falling back to
// reflect.DeepEqual otherwise.
func valuesEqual(l, r reflect.Value) bool {
	ld, rd := deref(l), deref(r)
	if !ld.IsValid() || !rd.IsValid() {
		return !ld.IsValid() && !rd.IsValid()
	}
	if lf, lok := asFloat(ld); lok {
		if rf, rok := asFloat(rd); rok {
			return lf == rf
		}
	}
	if ld.Kind() == reflect.String && rd.Kind() == reflect.String {
		return ld.String() == rd.String()
	}
	if ld.Kind() == reflect.Bool && rd.Kind() == reflect.Bool {
		return ld.Bool() == rd.Bool()
	}
	return reflect.DeepEqual(ld.Interface(), rd.Interface())
}
