package genco

import (
	"fmt"
	"reflect"
)

// Tokens is implemented by values that know how to append themselves to a
// Stream when interpolated from a `#(expr)` or `#ident` template site.
// Types produced by a Lang backend typically satisfy this indirectly by
// being a LangItem (appended via Stream.AppendItem); Tokens is for values
// that expand to more than a single Item, such as a helper returning a
// ready-made sub-Stream.
type Tokens interface {
	AppendTokens(s *Stream)
}

// AppendValue interpolates an evaluated value into s, the dispatch used by
// genco/encoder's EvalExpr instruction. It accepts, in order of preference:
// Tokens, LangItem, string, fmt.Stringer, and numeric or bool values
// formatted with fmt.Sprint. An error value is returned as the error, and a
// value of any other kind is rejected with an Error. A nil value, a nil
// pointer, or a value wrapping a nil interface appends nothing.
func AppendValue(s *Stream, v reflect.Value) error {
	if !v.IsValid() {
		return nil
	}
	for v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() == reflect.Ptr && v.IsNil() {
		return nil
	}
	iface := v.Interface()
	switch t := iface.(type) {
	case nil:
		return nil
	case Tokens:
		t.AppendTokens(s)
		return nil
	case LangItem:
		s.AppendItem(t)
		return nil
	case string:
		s.Append(t)
		return nil
	case fmt.Stringer:
		s.Append(t.String())
		return nil
	case error:
		return t
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Bool:
		s.Append(fmt.Sprint(iface))
		return nil
	}
	return Error{Message: fmt.Sprintf("cannot interpolate value of type %T into a stream", iface)}
}
