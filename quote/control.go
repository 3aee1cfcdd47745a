package quote

import (
	"github.com/genco-go/genco/encoder"
)

// parseCompound is entered right after the opening '(' of a `#(...)` form
// has been consumed. It dispatches on the recognized keyword heads ("for",
// "if", "match"), the scope-escape shape ("BIND =>" / "*BIND =>"), and
// otherwise falls back to a plain expression interpolation.
func (cp *compiler) parseCompound(plan *encoder.Plan) error {
	cp.skipWS()
	switch {
	case cp.tryKeyword("for"):
		return cp.parseFor(plan)
	case cp.tryKeyword("if"):
		return cp.parseIf(plan)
	case cp.tryKeyword("match"):
		return cp.parseMatch(plan)
	}

	if matched, err := cp.tryParseScope(plan); matched {
		return err
	}

	depth := map[rune]int{'{': 0, '(': 0, '[': 0}
	exprText, _, r, err := cp.readRawUntilKeywordOrRunes(nil, ")", depth)
	if err != nil {
		return err
	}
	if r != ')' {
		return cp.errf("expected ')' to close interpolation")
	}
	cp.c.Advance()
	expr, err := newGoExpr(exprText)
	if err != nil {
		return err
	}
	plan.EvalExpr(expr)
	return nil
}

// parseFor handles `#(for PAT in EXPR [join (Q)] { BODY })` and its arrow
// form `#(for PAT in EXPR [join (Q)] => BODY)`.
func (cp *compiler) parseFor(plan *encoder.Plan) error {
	cp.skipWS()
	patDepth := map[rune]int{'{': 0, '(': 0, '[': 0}
	patText, kw, _, err := cp.readRawUntilKeywordOrRunes([]string{"in"}, "", patDepth)
	if err != nil {
		return err
	}
	if kw != "in" {
		return cp.errf("expected 'in' in for-loop pattern")
	}
	cp.c.SkipPrefix("in")
	cp.skipWS()

	pattern, err := parsePattern(patText)
	if err != nil {
		return err
	}

	exprDepth := map[rune]int{'{': 0, '(': 0, '[': 0}
	exprText, kw2, r2, err := cp.readRawUntilKeywordOrRunes([]string{"join", "=>"}, "{", exprDepth)
	if err != nil {
		return err
	}
	iter, err := newGoExpr(exprText)
	if err != nil {
		return err
	}

	var join *encoder.Plan
	if kw2 == "join" {
		cp.c.SkipPrefix("join")
		cp.skipWS()
		if !cp.c.HasPrefix("(") {
			return cp.errf("expected '(' after 'join'")
		}
		cp.c.Advance()
		jp, _, err := cp.parseJoin(")")
		if err != nil {
			return err
		}
		join = jp
		cp.skipWS()
		switch {
		case cp.c.HasPrefix("=>"):
			kw2, r2 = "=>", 0
		case cp.c.HasPrefix("{"):
			kw2, r2 = "", '{'
		default:
			return cp.errf("expected '=>' or '{' after join clause")
		}
	}

	var body *encoder.Plan
	switch {
	case kw2 == "=>":
		cp.c.SkipPrefix("=>")
		bp, _, err := cp.parseTemplate(")")
		if err != nil {
			return err
		}
		body = bp
	case r2 == '{':
		cp.c.Advance()
		bp, _, err := cp.parseTemplate("}")
		if err != nil {
			return err
		}
		body = bp
		cp.skipWS()
		if !cp.c.HasPrefix(")") {
			return cp.errf("expected ')' to close for-loop")
		}
		cp.c.Advance()
	default:
		return cp.errf("expected 'join', '=>' or '{' in for-loop")
	}

	plan.EvalFor(pattern, iter, body, join)
	return nil
}

// parseIf handles `#(if COND { THEN } [else { ELSE }])` and the
// else-less arrow form `#(if COND => THEN)`.
func (cp *compiler) parseIf(plan *encoder.Plan) error {
	cp.skipWS()
	depth := map[rune]int{'{': 0, '(': 0, '[': 0}
	condText, kw, r, err := cp.readRawUntilKeywordOrRunes([]string{"=>"}, "{", depth)
	if err != nil {
		return err
	}
	cond, err := newGoExpr(condText)
	if err != nil {
		return err
	}

	var then, els *encoder.Plan
	switch {
	case kw == "=>":
		cp.c.SkipPrefix("=>")
		tp, _, err := cp.parseTemplate(")")
		if err != nil {
			return err
		}
		then = tp
	case r == '{':
		cp.c.Advance()
		tp, _, err := cp.parseTemplate("}")
		if err != nil {
			return err
		}
		then = tp
		cp.skipWS()
		if cp.tryKeyword("else") {
			cp.skipWS()
			if !cp.c.HasPrefix("{") {
				return cp.errf("expected '{' after 'else'")
			}
			cp.c.Advance()
			ep, _, err := cp.parseTemplate("}")
			if err != nil {
				return err
			}
			els = ep
			cp.skipWS()
		}
		if !cp.c.HasPrefix(")") {
			return cp.errf("expected ')' to close if")
		}
		cp.c.Advance()
	default:
		return cp.errf("expected '=>' or '{' in if-form")
	}

	plan.EvalIf(cond, then, els)
	return nil
}

// parseMatch handles `#(match SCRUT { PAT => BODY, ... })`. Each arm's
// BODY may be a brace-delimited block (comma optional after it) or a bare
// template running up to the next top-level comma.
func (cp *compiler) parseMatch(plan *encoder.Plan) error {
	cp.skipWS()
	depth := map[rune]int{'{': 0, '(': 0, '[': 0}
	scrutText, _, r, err := cp.readRawUntilKeywordOrRunes(nil, "{", depth)
	if err != nil {
		return err
	}
	if r != '{' {
		return cp.errf("expected '{' to open match body")
	}
	cp.c.Advance()
	scrut, err := newGoExpr(scrutText)
	if err != nil {
		return err
	}

	var arms []encoder.MatchArm
	for {
		cp.skipWS()
		if cp.c.HasPrefix("}") {
			cp.c.Advance()
			break
		}
		armDepth := map[rune]int{'{': 0, '(': 0, '[': 0}
		patText, kw, _, err := cp.readRawUntilKeywordOrRunes([]string{"=>"}, "", armDepth)
		if err != nil {
			return err
		}
		if kw != "=>" {
			return cp.errf("expected '=>' in match arm")
		}
		cp.c.SkipPrefix("=>")
		cp.skipWS()

		pattern, err := parseMatchPattern(patText)
		if err != nil {
			return err
		}

		var body *encoder.Plan
		if cp.c.HasPrefix("{") {
			cp.c.Advance()
			bp, _, err := cp.parseTemplate("}")
			if err != nil {
				return err
			}
			body = bp
			cp.skipWS()
			if cp.c.HasPrefix(",") {
				cp.c.Advance()
			}
		} else {
			bp, stopped, err := cp.parseTemplate(",}")
			if err != nil {
				return err
			}
			if stopped == '}' {
				arms = append(arms, encoder.MatchArm{Pattern: pattern, Body: bp})
				break
			}
			body = bp
		}
		arms = append(arms, encoder.MatchArm{Pattern: pattern, Body: body})
	}

	cp.skipWS()
	if !cp.c.HasPrefix(")") {
		return cp.errf("expected ')' to close match")
	}
	cp.c.Advance()
	plan.EvalMatch(scrut, arms)
	return nil
}

// tryParseScope attempts to read a scope-escape header (`BIND =>` or
// `*BIND =>`) at the current position. If the header doesn't match, the
// cursor is restored and (false, nil) is returned so parseCompound can
// fall back to plain expression parsing.
func (cp *compiler) tryParseScope(plan *encoder.Plan) (bool, error) {
	checkpoint := cp.c.Checkpoint()
	reborrow := cp.c.HasPrefix("*")
	if reborrow {
		cp.c.Advance()
	}
	name, err := cp.readIdentRaw()
	if err != nil || name == "" {
		cp.c.Restore(checkpoint)
		return false, nil
	}
	cp.skipWS()
	if !cp.c.HasPrefix("=>") {
		cp.c.Restore(checkpoint)
		return false, nil
	}
	cp.c.SkipPrefix("=>")
	cp.skipWS()

	var body *encoder.Plan
	if cp.c.HasPrefix("{") {
		cp.c.Advance()
		bp, _, err := cp.parseTemplate("}")
		if err != nil {
			return true, err
		}
		body = bp
		cp.skipWS()
		if !cp.c.HasPrefix(")") {
			return true, cp.errf("expected ')' to close scope")
		}
		cp.c.Advance()
	} else {
		bp, _, err := cp.parseTemplate(")")
		if err != nil {
			return true, err
		}
		body = bp
	}

	plan.EvalScope(name, reborrow, body)
	return true, nil
}
