// Copyright 2026 The x816 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

// A maskKind selects one byte of a wider value.
type maskKind byte

const (
	maskNone maskKind = iota
	maskLow           // '<': low byte
	maskHigh          // '>': high byte
)

// A formulaOp is an infix operator of a constant formula.
type formulaOp byte

const (
	opAdd formulaOp = iota
	opSub
)

// An operand is a single term of a constant formula: either an integer
// literal with its lexically declared size, or a symbol reference whose
// size is resolved against the symbol table.
type operand struct {
	num   int      // literal value
	sym   string   // symbol name
	isSym bool     // operand references a symbol
	size  int      // declared size in bytes; 0 until resolved for symbols
	mask  maskKind // optional byte mask
}

// A formula is a flattened constant arithmetic expression: n operands
// joined by n-1 left-to-right infix operators.
type formula struct {
	operands  []operand
	operators []formulaOp
	line      int
}

// buildFormulas converts the flat typed-value list collected by the parser
// into constant formulas. A mask applies to the operand that follows it,
// and a size tag refines the preceding operand. An operand that arrives
// with no operator pending starts a new formula, which is how a
// directive's comma-separated parameter list splits apart.
func buildFormulas(values []typedValue, line int) []formula {
	var formulas []formula
	var cur *formula
	pendingMask := maskNone
	pendingOp := false

	push := func(o operand) {
		o.mask = pendingMask
		if o.mask != maskNone {
			o.size = 1
		}
		pendingMask = maskNone

		if cur == nil || !pendingOp {
			formulas = append(formulas, formula{line: line})
			cur = &formulas[len(formulas)-1]
		}
		pendingOp = false
		cur.operands = append(cur.operands, o)
	}

	for _, v := range values {
		switch v.kind {
		case valMask:
			pendingMask = v.mask
		case valNumber:
			push(operand{num: v.num})
		case valString:
			push(operand{sym: v.str, isSym: true})
		case valSize:
			last := &cur.operands[len(cur.operands)-1]
			if last.mask == maskNone {
				last.size = v.num
			}
		case valOperator:
			cur.operators = append(cur.operators, v.op)
			pendingOp = true
		}
	}

	return formulas
}

// literalValue evaluates a formula composed solely of integer literals,
// which is the only shape a syntactic target operand can take. It returns
// false if the formula references any symbol.
func (f *formula) literalValue() (int, bool) {
	result := 0
	for i, o := range f.operands {
		if o.isSym {
			return 0, false
		}
		v := o.num
		switch o.mask {
		case maskLow:
			v &= 0xff
		case maskHigh:
			v >>= 8
		}
		if i == 0 {
			result = v
		} else if f.operators[i-1] == opAdd {
			result += v
		} else {
			result -= v
		}
	}
	return result, true
}

// inferSize computes the operand size of the formula before evaluation:
// the maximum over its operands, where a masked operand counts as one
// byte, a label as two, and a named constant as the size computed for it
// earlier. A reference to an unknown name is an error.
func (f *formula) inferSize(labels map[string]bool, sizes map[string]int) (int, error) {
	max := 0
	for _, o := range f.operands {
		size := o.size
		if o.mask != maskNone {
			size = 1
		} else if o.isSym {
			switch {
			case labels[o.sym]:
				size = 2
			case sizes[o.sym] != 0:
				size = sizes[o.sym]
			default:
				return 0, asmErrorf(f.line, "reference to undefined constant %s", o.sym)
			}
		}
		if size > max {
			max = size
		}
	}
	return max, nil
}

// eval resolves the formula against the symbol table, walking operands
// left to right. It returns the accumulated value together with the
// largest per-operand size seen, and fails if the result does not fit in
// that many bytes unsigned.
func (f *formula) eval(symbols symbolTable) (value, size int, err error) {
	maxSize := 0
	result := 0

	for i, o := range f.operands {
		v := o.num
		sz := o.size
		if o.isSym {
			nc, ok := symbols[o.sym]
			if !ok {
				return 0, 0, asmErrorf(f.line, "reference to undefined constant %s", o.sym)
			}
			v = nc.value
			sz = nc.size
		}

		switch o.mask {
		case maskLow:
			v &= 0xff
			sz = 1
		case maskHigh:
			v >>= 8
			sz = 1
		}

		if i == 0 {
			result = v
		} else if f.operators[i-1] == opAdd {
			result += v
		} else {
			result -= v
		}

		if sz > maxSize {
			maxSize = sz
		}
	}

	if limit := 1<<(8*maxSize) - 1; result > limit {
		return 0, 0, asmErrorf(f.line, "resolved value %d is too large (max value of %d)", result, limit)
	}

	return result, maxSize, nil
}
