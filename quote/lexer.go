package quote

import (
	"fmt"
	"strings"

	"github.com/genco-go/genco/cursor"
	"github.com/smasher164/xid"
)

// compiler holds the single mutable cursor shared by every recursive call
// made while compiling one template. It carries no other state: each
// parseTemplate invocation keeps its own indentState and bracket-depth
// counters, matching the "whitespace baseline reset" rule for nested
// control-form bodies.
type compiler struct {
	c    *cursor.Cursor
	name string
}

func isWS(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

func depthZero(depth map[rune]int) bool {
	return depth['{'] == 0 && depth['('] == 0 && depth['['] == 0
}

func (cp *compiler) errf(format string, args ...any) error {
	return newParseError(cp.name, cp.c.Pos(), fmt.Sprintf(format, args...))
}

func (cp *compiler) skipWS() {
	for {
		r, ok := cp.c.Peek()
		if !ok || !isWS(r) {
			return
		}
		cp.c.Advance()
	}
}

// matchKeywordHere reports whether kw (an ASCII identifier-like keyword)
// starts at the cursor's current position and ends at a word boundary —
// so matching "in" never fires inside "inputs".
func (cp *compiler) matchKeywordHere(kw string) bool {
	if !cp.c.HasPrefix(kw) {
		return false
	}
	after, ok := cp.c.PeekAt(len([]rune(kw)))
	return !ok || isWS(after) || strings.ContainsRune("(){}[]<,", after)
}

// tryKeyword consumes kw if it matches at the current position (per
// matchKeywordHere); leading whitespace must already have been skipped by
// the caller.
func (cp *compiler) tryKeyword(kw string) bool {
	if !cp.matchKeywordHere(kw) {
		return false
	}
	cp.c.SkipPrefix(kw)
	return true
}

// readIdentRaw reads one identifier: an xid.Start rune (or underscore)
// followed by xid.Continue runes.
func (cp *compiler) readIdentRaw() (string, error) {
	r, ok := cp.c.Peek()
	if !ok || !(xid.Start(r) || r == '_') {
		return "", nil
	}
	var sb strings.Builder
	for {
		r, ok := cp.c.Peek()
		if !ok || !(xid.Continue(r) || r == '_') {
			break
		}
		cp.c.Advance()
		sb.WriteRune(r)
	}
	return sb.String(), nil
}

// consumeQuoted consumes a quoted run starting at the current position
// (opening delimiter q, one of '"', '\'', '`') and returns its full text,
// delimiters included. Backslash escaping is honored for '"' and '\''; '`'
// strings are raw, matching Go string literal conventions — templates
// emitting Go, JS or most C-family source all share this quoting style.
func (cp *compiler) consumeQuoted(q rune) (string, error) {
	var sb strings.Builder
	cp.c.Advance() // opening delimiter
	sb.WriteRune(q)
	raw := q == '`'
	for {
		r, ok := cp.c.Advance()
		if !ok {
			return "", cp.errf("unterminated quoted literal")
		}
		sb.WriteRune(r)
		if !raw && r == '\\' {
			if r2, ok := cp.c.Advance(); ok {
				sb.WriteRune(r2)
			}
			continue
		}
		if r == q {
			return sb.String(), nil
		}
	}
}

// readRawUntilKeywordOrRunes scans raw template text, tracking bracket
// depth for '{'/'('/'[' and skipping over quoted literals, until it finds
// one of stopWords at a word boundary (checked only when the scan is
// sitting at a word boundary itself) or one of stopRunes at bracket depth
// zero. Neither the matched keyword nor the matched rune is consumed.
func (cp *compiler) readRawUntilKeywordOrRunes(stopWords []string, stopRunes string, depth map[rune]int) (text, stoppedWord string, stoppedRune rune, err error) {
	var sb strings.Builder
	boundary := true
	for {
		if cp.c.Done() {
			return strings.TrimSpace(sb.String()), "", 0, nil
		}
		if boundary {
			for _, kw := range stopWords {
				if cp.matchKeywordHere(kw) {
					return strings.TrimSpace(sb.String()), kw, 0, nil
				}
			}
		}
		r, _ := cp.c.Peek()
		if depthZero(depth) && stopRunes != "" && strings.ContainsRune(stopRunes, r) {
			return strings.TrimSpace(sb.String()), "", r, nil
		}
		if r == '"' || r == '\'' || r == '`' {
			lit, err := cp.consumeQuoted(r)
			if err != nil {
				return "", "", 0, err
			}
			sb.WriteString(lit)
			boundary = false
			continue
		}
		switch r {
		case '{', '(', '[':
			depth[r]++
		case '}':
			if depth['{'] > 0 {
				depth['{']--
			}
		case ')':
			if depth['('] > 0 {
				depth['(']--
			}
		case ']':
			if depth['['] > 0 {
				depth['[']--
			}
		}
		cp.c.Advance()
		sb.WriteRune(r)
		boundary = isWS(r)
	}
}

// readToken reads one maximal run of non-whitespace, non-sigil characters
// for the plain literal-pass. A stop rune ends the token only at bracket
// depth zero, so literal text containing balanced braces, parens or
// brackets (function bodies, call argument lists) passes through a
// delimited control-form body unharmed; depth is shared with the caller's
// parseTemplateOpts loop.
func (cp *compiler) readToken(stops string, depth map[rune]int) (text string, stoppedRune rune, err error) {
	var sb strings.Builder
	for {
		r, ok := cp.c.Peek()
		if !ok {
			return sb.String(), 0, nil
		}
		if isWS(r) || r == '#' {
			return sb.String(), 0, nil
		}
		if stops != "" && strings.ContainsRune(stops, r) && depthZero(depth) {
			return sb.String(), r, nil
		}
		if r == '"' || r == '\'' || r == '`' {
			lit, err := cp.consumeQuoted(r)
			if err != nil {
				return "", 0, err
			}
			sb.WriteString(lit)
			continue
		}
		switch r {
		case '{', '(', '[':
			depth[r]++
		case '}':
			if depth['{'] > 0 {
				depth['{']--
			}
		case ')':
			if depth['('] > 0 {
				depth['(']--
			}
		case ']':
			if depth['['] > 0 {
				depth['[']--
			}
		}
		cp.c.Advance()
		sb.WriteRune(r)
	}
}
