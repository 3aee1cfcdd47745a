// Package cursor tracks (line, column, byte offset) over template text,
// the three values the quote parser's whitespace classification and
// indentation reconstruction depend on.
package cursor

import "unicode/utf8"

// Pos is a single point in a template: a line and column (both 1-based)
// plus the raw byte offset. Column arithmetic treats a tab as a single
// column.
type Pos struct {
	Line int
	Col  int
	Byte int
}

// Cursor walks a template's bytes one rune at a time, tracking Pos at both
// ends of the most recently consumed span.
type Cursor struct {
	src []byte

	curByte int
	curLine int // 0-based internally; Pos.Line is curLine+1
	curCol  int // 0-based internally; Pos.Col is curCol+1

	spanStartByte int
	spanStartLine int
	spanStartCol  int
}

// New returns a Cursor positioned at the start of src.
func New(src string) *Cursor {
	return &Cursor{src: []byte(src)}
}

// Done reports whether the cursor has consumed the entire template.
func (c *Cursor) Done() bool {
	return c.curByte >= len(c.src)
}

// Peek returns the rune at the current position without consuming it, and
// false if the cursor is at end of input.
func (c *Cursor) Peek() (rune, bool) {
	if c.Done() {
		return 0, false
	}
	r, _ := utf8.DecodeRune(c.src[c.curByte:])
	return r, true
}

// PeekAt returns the rune n runes ahead of the current position (PeekAt(0)
// is equivalent to Peek), and false if that position is at or past end of
// input.
func (c *Cursor) PeekAt(n int) (rune, bool) {
	idx := c.curByte
	for ; n > 0; n-- {
		if idx >= len(c.src) {
			return 0, false
		}
		_, size := utf8.DecodeRune(c.src[idx:])
		idx += size
	}
	if idx >= len(c.src) {
		return 0, false
	}
	r, _ := utf8.DecodeRune(c.src[idx:])
	return r, true
}

// HasPrefix reports whether the unconsumed input starts with s.
func (c *Cursor) HasPrefix(s string) bool {
	rest := c.src[c.curByte:]
	if len(s) > len(rest) {
		return false
	}
	return string(rest[:len(s)]) == s
}

// Advance consumes and returns the rune at the current position, updating
// line/column bookkeeping. A newline resets the column and advances the
// line counter.
func (c *Cursor) Advance() (rune, bool) {
	r, ok := c.Peek()
	if !ok {
		return 0, false
	}
	_, size := utf8.DecodeRune(c.src[c.curByte:])
	c.curByte += size
	if r == '\n' {
		c.curLine++
		c.curCol = 0
	} else {
		c.curCol++
	}
	return r, true
}

// SkipPrefix consumes len(s) bytes, assumed to equal s (callers check
// HasPrefix first); it updates line/column the same way Advance does.
func (c *Cursor) SkipPrefix(s string) {
	for range s {
		c.Advance()
	}
}

// Pos returns the current position.
func (c *Cursor) Pos() Pos {
	return Pos{Line: c.curLine + 1, Col: c.curCol + 1, Byte: c.curByte}
}

// StartSpan records the current position as the start of a new span,
// mirroring Scanner.startIndex.
func (c *Cursor) StartSpan() {
	c.spanStartByte = c.curByte
	c.spanStartLine = c.curLine
	c.spanStartCol = c.curCol
}

// SpanStart returns the position recorded by the most recent StartSpan.
func (c *Cursor) SpanStart() Pos {
	return Pos{Line: c.spanStartLine + 1, Col: c.spanStartCol + 1, Byte: c.spanStartByte}
}

// SpanEnd returns the current position, for use as the end of a span that
// began at the most recent StartSpan.
func (c *Cursor) SpanEnd() Pos {
	return c.Pos()
}

// SpanText returns the bytes consumed since the most recent StartSpan.
func (c *Cursor) SpanText() string {
	return string(c.src[c.spanStartByte:c.curByte])
}

// checkpoint is an opaque, restorable snapshot of cursor state, used by
// the Quote parser to backtrack when a `#(` form turns out not to match a
// known control-form head. Mirrors Scanner.Clone's use for lookahead.
type checkpoint struct {
	curByte, curLine, curCol                   int
	spanStartByte, spanStartLine, spanStartCol int
}

// Checkpoint captures the cursor's current state for later Restore.
func (c *Cursor) Checkpoint() any {
	return checkpoint{
		curByte: c.curByte, curLine: c.curLine, curCol: c.curCol,
		spanStartByte: c.spanStartByte, spanStartLine: c.spanStartLine, spanStartCol: c.spanStartCol,
	}
}

// Restore resets the cursor to a state previously returned by Checkpoint.
func (c *Cursor) Restore(cp any) {
	s := cp.(checkpoint)
	c.curByte, c.curLine, c.curCol = s.curByte, s.curLine, s.curCol
	c.spanStartByte, c.spanStartLine, c.spanStartCol = s.spanStartByte, s.spanStartLine, s.spanStartCol
}
