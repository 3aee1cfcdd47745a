package quote

import (
	"strings"

	"github.com/genco-go/genco/cursor"
	"github.com/genco-go/genco/encoder"
)

// indentState is the per-template-body indentation stack: the known
// indentation columns, seeded with the first content column seen in this
// parseTemplate call. Every nested control-form body gets its own stack,
// so its whitespace baseline resets to the body's start column.
type indentState struct {
	stack []int
}

func (is *indentState) establishBaseline(col int) {
	if is.stack == nil {
		is.stack = []int{col}
	}
}

func (is *indentState) transition(col int, plan *encoder.Plan) error {
	if is.stack == nil {
		is.establishBaseline(col)
		return nil
	}
	top := is.stack[len(is.stack)-1]
	switch {
	case col > top:
		is.stack = append(is.stack, col)
		plan.EmitIndent()
	case col == top:
		// no change
	default:
		for len(is.stack) > 0 && is.stack[len(is.stack)-1] > col {
			is.stack = is.stack[:len(is.stack)-1]
			plan.EmitUnindent()
		}
		if len(is.stack) == 0 || is.stack[len(is.stack)-1] != col {
			remain := 0
			if len(is.stack) > 0 {
				remain = is.stack[len(is.stack)-1]
			}
			return &indentMismatchError{wantLess: col - remain}
		}
	}
	return nil
}

// finish unrolls every level pushed above the baseline, so a plan never
// leaves the destination stream with unbalanced indentation.
func (is *indentState) finish(plan *encoder.Plan) {
	for len(is.stack) > 1 {
		is.stack = is.stack[:len(is.stack)-1]
		plan.EmitUnindent()
	}
}

type indentMismatchError struct {
	wantLess int
}

func (e *indentMismatchError) Error() string {
	if e.wantLess == 1 {
		return "expected 1 less space of indentation"
	}
	return "expected " + itoa(e.wantLess) + " less spaces of indentation"
}

func itoa(n int) string {
	if n < 0 {
		return "-" + itoa(-n)
	}
	if n < 10 {
		return string(rune('0' + n))
	}
	return itoa(n/10) + string(rune('0'+n%10))
}

// parseTemplate compiles one template body: a straight-line region of
// literal text, interpolations and control forms, ending either at end of
// input (stops == "") or at the first unmatched occurrence, at bracket
// depth zero, of one of the runes in stops — which is consumed before
// returning.
func (cp *compiler) parseTemplate(stops string) (*encoder.Plan, rune, error) {
	return cp.parseTemplateOpts(stops, false)
}

// parseJoin compiles a for-loop join clause. A join is the one template
// whose leading and trailing whitespace inside the delimiters is
// significant (it separates the surrounding iterations), so edge gaps are
// classified into whitespace instructions instead of being discarded.
func (cp *compiler) parseJoin(stops string) (*encoder.Plan, rune, error) {
	return cp.parseTemplateOpts(stops, true)
}

func (cp *compiler) parseTemplateOpts(stops string, preserveEdges bool) (*encoder.Plan, rune, error) {
	plan := encoder.NewPlan()
	var indent indentState
	var prevEnd cursor.Pos
	first := true
	openPos := cp.c.Pos()
	depth := map[rune]int{'{': 0, '(': 0, '[': 0}

	finishAtStop := func(r rune) (*encoder.Plan, rune, error) {
		stopPos := cp.c.Pos()
		cp.c.Advance()
		if preserveEdges && !first {
			applyEdgeGap(plan, prevEnd, stopPos)
		}
		indent.finish(plan)
		return plan, r, nil
	}

	for {
		cp.skipWS()
		if cp.c.Done() {
			break
		}
		r, _ := cp.c.Peek()
		if stops != "" && strings.ContainsRune(stops, r) && depthZero(depth) {
			return finishAtStop(r)
		}

		curStart := cp.c.Pos()

		if r == '#' {
			if first && preserveEdges {
				applyEdgeGap(plan, openPos, curStart)
			}
			if err := cp.parseSigil(plan, &indent, curStart, prevEnd, first); err != nil {
				return nil, 0, err
			}
			prevEnd = cp.c.Pos()
			first = false
			continue
		}

		tok, stoppedRune, err := cp.readToken(stops, depth)
		if err != nil {
			return nil, 0, err
		}
		if tok == "" {
			if stoppedRune != 0 {
				return finishAtStop(stoppedRune)
			}
			if cp.c.Done() {
				break
			}
			return nil, 0, cp.errf("unexpected character in template")
		}

		if first {
			if preserveEdges {
				applyEdgeGap(plan, openPos, curStart)
			}
			indent.establishBaseline(curStart.Col)
		} else if err := cp.applyGap(plan, &indent, prevEnd, curStart); err != nil {
			return nil, 0, err
		}
		plan.EmitLiteral(tok)
		prevEnd = cp.c.Pos()
		first = false
	}

	if stops != "" {
		return nil, 0, cp.errf("unexpected end of template, expected one of %q", stops)
	}
	indent.finish(plan)
	return plan, 0, nil
}

// applyEdgeGap classifies the whitespace between a join clause's delimiter
// and its nearest content event. Unlike applyGap it never touches the
// indentation stack: a join's edges separate iterations, they do not open
// or close indentation levels.
func applyEdgeGap(plan *encoder.Plan, from, to cursor.Pos) {
	dLine := to.Line - from.Line
	switch {
	case dLine >= 2:
		plan.EmitLine()
	case dLine == 1:
		plan.EmitPush()
	case to.Col-from.Col >= 1:
		plan.EmitSpace()
	}
}

// applyGap classifies the whitespace between the end of the previous
// content event and the start of the next (two or more line breaks give
// a Line, one gives a Push, a same-line column gap gives a Space), and
// runs the indentation-stack transition whenever the pair crosses a line.
func (cp *compiler) applyGap(plan *encoder.Plan, indent *indentState, prevEnd, curStart cursor.Pos) error {
	dLine := curStart.Line - prevEnd.Line
	switch {
	case dLine >= 2:
		plan.EmitLine()
	case dLine == 1:
		plan.EmitPush()
	default:
		if curStart.Col-prevEnd.Col >= 1 {
			plan.EmitSpace()
		}
		return nil
	}
	if err := indent.transition(curStart.Col, plan); err != nil {
		return newParseError(cp.name, curStart, err.Error())
	}
	return nil
}

// parseSigil handles everything introduced by a single '#': the escape
// forms, a bare `#ident` interpolation, and the `#(...)` compound forms
// dispatched to control.go. curStart is the position of the '#' itself,
// used for whitespace classification against the surrounding template.
func (cp *compiler) parseSigil(plan *encoder.Plan, indent *indentState, curStart, prevEnd cursor.Pos, first bool) error {
	cp.c.Advance() // '#'
	r, ok := cp.c.Peek()
	if !ok {
		return cp.errf("unexpected end of template after '#'")
	}

	gap := func() error {
		if first {
			indent.establishBaseline(curStart.Col)
			return nil
		}
		return cp.applyGap(plan, indent, prevEnd, curStart)
	}

	switch {
	case r == '#':
		cp.c.Advance()
		if err := gap(); err != nil {
			return err
		}
		plan.EmitLiteral("#")
		return nil
	case r == '<':
		return cp.parseEscape(plan, gap)
	case r == '(':
		cp.c.Advance()
		if err := gap(); err != nil {
			return err
		}
		return cp.parseCompound(plan)
	default:
		name, err := cp.readIdentRaw()
		if err != nil {
			return err
		}
		if name == "" {
			return cp.errf("expected identifier, '(' or '<' after '#'")
		}
		if err := gap(); err != nil {
			return err
		}
		expr, err := newGoExpr(name)
		if err != nil {
			return err
		}
		plan.EvalExpr(expr)
		return nil
	}
}

func (cp *compiler) parseEscape(plan *encoder.Plan, gap func() error) error {
	cp.c.Advance() // '<'
	name, _ := cp.readIdentRaw()
	if !cp.c.HasPrefix(">") {
		return cp.errf("expected '>' to close '#<%s'", name)
	}
	cp.c.Advance()
	if err := gap(); err != nil {
		return err
	}
	switch name {
	case "space":
		plan.EmitSpace()
	case "push":
		plan.EmitPush()
	case "line":
		plan.EmitLine()
	default:
		return cp.errf("unknown escape sequence '#<%s>'", name)
	}
	return nil
}
