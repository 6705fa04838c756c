// Copyright 2026 The x816 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"fmt"

	"github.com/x816/x816/mos"
)

// A stmtKind identifies a statement variant.
type stmtKind byte

const (
	stComment stmtKind = iota
	stLabelDef
	stNamedConstantDef
	stDirective
	stInstruction
)

// A statement is a top-level parse result. Fields are populated according
// to the statement kind.
type statement struct {
	kind    stmtKind
	line    int          // 1-based source line number
	mn      mos.Mnemonic // instruction mnemonic
	mode    mos.Mode     // instruction addressing mode
	hasMode bool         // addressing mode is known; false means inferred from operand size
	name    string       // label or named-constant name
	dir     directive    // directive kind
	operand *formula     // instruction or named-constant formula
	params  []formula    // directive parameter formulas
}

// construct builds a statement of the requested kind from the flat
// typed-value list collected by the parser. Values are consumed by type
// tag rather than by position, so statement construction is independent
// of incidental ordering in the grammar.
func construct(kind stmtKind, line int, values []typedValue) (statement, error) {
	stmt := statement{kind: kind, line: line}

	switch kind {
	case stComment:
		return stmt, nil

	case stLabelDef:
		name, ok := firstString(values)
		if !ok {
			return stmt, fmt.Errorf("label definition without a name")
		}
		stmt.name = name
		return stmt, nil

	case stNamedConstantDef:
		name, ok := firstString(values)
		if !ok {
			return stmt, fmt.Errorf("constant definition without a name")
		}
		stmt.name = name
		// The first string literal is the constant's name; the formula is
		// built from everything after it.
		rest := values[firstStringIndex(values)+1:]
		formulas := buildFormulas(rest, line)
		if len(formulas) != 1 {
			return stmt, fmt.Errorf("constant definition requires a single formula")
		}
		stmt.operand = &formulas[0]
		return stmt, nil

	case stDirective:
		for _, v := range values {
			if v.kind == valDirective {
				stmt.dir = v.dir
				break
			}
		}
		stmt.params = buildFormulas(values, line)
		return stmt, nil

	case stInstruction:
		for _, v := range values {
			switch v.kind {
			case valMnemonic:
				stmt.mn = v.mn
			case valMode:
				stmt.mode, stmt.hasMode = v.mode, true
			case valImm:
				stmt.mode, stmt.hasMode = mos.IMM, true
			}
		}
		formulas := buildFormulas(values, line)
		switch {
		case len(formulas) == 0:
			// A bare mnemonic encodes with no operand.
			stmt.mode, stmt.hasMode = mos.IMP, true
		case len(formulas) == 1:
			stmt.operand = &formulas[0]
			// Branch targets always encode as a relative offset.
			if !stmt.hasMode && stmt.mn.Class() == mos.Branch {
				stmt.mode, stmt.hasMode = mos.REL, true
			}
		default:
			return stmt, fmt.Errorf("instruction with more than one operand")
		}
		return stmt, nil
	}

	return stmt, fmt.Errorf("unhandled statement kind %d", kind)
}

func firstString(values []typedValue) (string, bool) {
	for _, v := range values {
		if v.kind == valString {
			return v.str, true
		}
	}
	return "", false
}

func firstStringIndex(values []typedValue) int {
	for i, v := range values {
		if v.kind == valString {
			return i
		}
	}
	return -1
}
