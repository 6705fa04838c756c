// Copyright 2026 The x816 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

// An expression is an intermediate parse node: the values collected from
// its matched children, in left-to-right syntactic order, each child's
// payload followed by the metadata of the rule that matched it.
type expression struct {
	kind   exprKind
	values []typedValue
	line   int
}

// parseLine produces the statements encoded by one line of tokens. A line
// may hold more than one statement, such as a label definition followed
// by an instruction.
func parseLine(tokens []token) ([]statement, error) {
	var stmts []statement

	for len(tokens) > 0 {
		stmt, n, ok := matchNextStatement(tokens)
		if !ok {
			return nil, &ParserError{Line: tokens[0].line}
		}
		stmts = append(stmts, stmt)
		tokens = tokens[n:]
	}

	return stmts, nil
}

// matchNextStatement matches whatever statement can be found next,
// trying statement kinds and their patterns in grammar order.
func matchNextStatement(tokens []token) (statement, int, bool) {
	for _, rule := range stmtRules {
		stmt, n, ok := matchStatement(tokens, rule)
		if ok {
			return stmt, n, true
		}
	}
	return statement{}, 0, false
}

// matchStatement matches the head of the token list against a single
// statement rule, collecting the values and metadata of each constituent
// expression.
func matchStatement(tokens []token, rule stmtRule) (statement, int, bool) {
	consumed := 0
	line := 0
	var values []typedValue

	for _, goal := range rule.pattern {
		expr, n, ok := matchExpression(tokens[consumed:], goal)
		if !ok {
			return statement{}, 0, false
		}
		values = append(values, expr.values...)
		if line == 0 {
			line = expr.line
		}
		consumed += n
	}

	// Consume a comma-separated list of additional constants, if the rule
	// takes parameters.
	if rule.params {
		for consumed < len(tokens) && tokens[consumed].kind == tkComma {
			expr, n, ok := matchExpression(tokens[consumed+1:], exConstant)
			if !ok {
				return statement{}, 0, false
			}
			values = append(values, expr.values...)
			consumed += 1 + n
		}
	}

	stmt, err := construct(rule.kind, line, values)
	if err != nil {
		return statement{}, 0, false
	}
	return stmt, consumed, true
}

// matchExpression matches the head of the token list against an
// expression nonterminal, trying each rule of that kind in grammar order.
func matchExpression(tokens []token, goal exprKind) (expression, int, bool) {
	for i := range exprRules {
		rule := &exprRules[i]
		if rule.kind != goal {
			continue
		}
		expr, n, ok := matchExpressionRule(tokens, rule)
		if ok {
			return expr, n, true
		}
	}
	return expression{}, 0, false
}

// matchExpressionRule matches the head of the token list against a single
// expression rule. On success the produced expression carries the payload
// of every matched token whose kind contributes a value, and, for each
// recursively matched child expression, the child's values followed by
// the matched child rule's metadata.
func matchExpressionRule(tokens []token, rule *exprRule) (expression, int, bool) {
	consumed := 0
	line := 0
	var values []typedValue

	for _, part := range rule.pattern {
		if !part.isSub {
			if consumed >= len(tokens) || tokens[consumed].kind != part.tok {
				return expression{}, 0, false
			}
			if v, ok := tokens[consumed].valueOf(); ok {
				values = append(values, v)
			}
			if line == 0 {
				line = tokens[consumed].line
			}
			consumed++
			continue
		}

		child, n, ok := matchExpression(tokens[consumed:], part.sub)
		if !ok {
			return expression{}, 0, false
		}
		values = append(values, child.values...)
		if line == 0 {
			line = child.line
		}
		consumed += n
	}

	expr := expression{kind: rule.kind, values: values, line: line}
	expr.values = append(expr.values, rule.meta...)
	return expr, consumed, true
}
