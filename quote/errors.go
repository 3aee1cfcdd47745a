package quote

import (
	"github.com/genco-go/genco"
	"github.com/genco-go/genco/cursor"
)

// newParseError builds a genco.Error carrying the template position at
// which compilation failed.
func newParseError(name string, pos cursor.Pos, message string) error {
	return genco.Error{
		Pos:     genco.Pos{File: name, Line: pos.Line, Col: pos.Col},
		Message: message,
	}
}
