// Copyright 2026 The x816 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "github.com/x816/x816/mos"

// A namedConstant is a resolved symbol: a named constant from a
// definition statement, or a label, which is a named constant of
// fixed size 2.
type namedConstant struct {
	name  string
	value int
	size  int
}

// A symbolTable maps symbol names to resolved constants. It is built by
// the resolver before the encoder runs and is immutable thereafter.
type symbolTable map[string]*namedConstant

// resolve performs the four analysis passes over the statement list:
// label discovery, named-constant sizing, label offset assignment, and
// constant evaluation. It returns the completed symbol table.
func resolve(stmts []statement) (symbolTable, error) {
	labels := discoverLabels(stmts)

	sizes, err := sizeConstants(stmts, labels)
	if err != nil {
		return nil, err
	}

	symbols, err := assignLabelOffsets(stmts, labels, sizes)
	if err != nil {
		return nil, err
	}

	err = evaluateConstants(stmts, symbols)
	if err != nil {
		return nil, err
	}

	return symbols, nil
}

// Pass 1: collect the set of all label names. Duplicates are detected
// during offset assignment.
func discoverLabels(stmts []statement) map[string]bool {
	labels := make(map[string]bool)
	for _, stmt := range stmts {
		if stmt.kind == stLabelDef {
			labels[stmt.name] = true
		}
	}
	return labels
}

// Pass 2: compute the size of each named constant, in source order. A
// constant's size is the maximum operand size of its formula, where
// labels count as 2 bytes, previously sized constants as their size, and
// masked operands as 1 byte.
func sizeConstants(stmts []statement, labels map[string]bool) (map[string]int, error) {
	sizes := make(map[string]int)
	for _, stmt := range stmts {
		if stmt.kind != stNamedConstantDef {
			continue
		}
		size, err := stmt.operand.inferSize(labels, sizes)
		if err != nil {
			return nil, err
		}
		sizes[stmt.name] = size
	}
	return sizes, nil
}

// Pass 3: simulate the program counter over the statement list and record
// the offset of every label. Instructions advance the counter by opcode
// plus operand width; the zero-page shrink rule applies to indexed
// absolute modes whose operand fits in one byte.
func assignLabelOffsets(stmts []statement, labels map[string]bool, sizes map[string]int) (symbolTable, error) {
	symbols := make(symbolTable)
	pc := 0

	for i := range stmts {
		stmt := &stmts[i]
		switch stmt.kind {
		case stLabelDef:
			if _, found := symbols[stmt.name]; found {
				return nil, asmErrorf(stmt.line, "label %s defined more than once", stmt.name)
			}
			symbols[stmt.name] = &namedConstant{name: stmt.name, value: pc, size: 2}

		case stInstruction:
			width, err := operandWidth(stmt, labels, sizes)
			if err != nil {
				return nil, err
			}
			pc += 1 + width

		case stDirective:
			switch stmt.dir {
			case dirOrg:
				// Labels keep their file offsets; the origin is applied to
				// absolute jump targets during encoding. The parameter is
				// still validated here so a malformed origin fails before
				// any code is emitted.
				if _, err := orgParam(stmt); err != nil {
					return nil, err
				}
			case dirDB:
				pc += len(stmt.params)
			case dirDW:
				pc += 2 * len(stmt.params)
			}
		}
	}

	return symbols, nil
}

// operandWidth computes the number of operand bytes an instruction
// occupies, before any symbol values are known.
func operandWidth(stmt *statement, labels map[string]bool, sizes map[string]int) (int, error) {
	if stmt.hasMode {
		width := stmt.mode.OperandBytes()
		if shrinksToZeroPage(stmt) {
			width = 1
		}
		return width, nil
	}
	return stmt.operand.inferSize(labels, sizes)
}

// shrinksToZeroPage reports whether an indexed absolute instruction uses
// its zero-page variant instead: the operand value must fit in one byte
// and the mnemonic must have the corresponding zero-page encoding.
// Indexed absolute modes arise only from syntactic targets, so the
// operand is always a literal formula.
func shrinksToZeroPage(stmt *statement) bool {
	if stmt.mode != mos.ABX && stmt.mode != mos.ABY {
		return false
	}
	v, ok := stmt.operand.literalValue()
	return ok && v >= 0 && v <= 0xff &&
		mos.GetInstructionSet().HasMode(stmt.mn, zeroPageIndexed(stmt.mode))
}

// zeroPageIndexed returns the zero-page counterpart of an indexed
// absolute mode.
func zeroPageIndexed(mode mos.Mode) mos.Mode {
	if mode == mos.ABX {
		return mos.ZPX
	}
	return mos.ZPY
}

// orgParam validates and extracts the origin directive's parameter, which
// must be a single bare integer.
func orgParam(stmt *statement) (int, error) {
	if len(stmt.params) != 1 {
		return 0, asmErrorf(stmt.line, "%s directive requires a single parameter", stmt.dir)
	}
	f := &stmt.params[0]
	if len(f.operands) != 1 || f.operands[0].isSym || f.operands[0].mask != maskNone {
		return 0, asmErrorf(stmt.line, "%s directive requires a number parameter", stmt.dir)
	}
	return f.operands[0].num, nil
}

// Pass 4: evaluate each named-constant formula against the labels and the
// constants defined before it, in source order. Labels may be referenced
// ahead of their definition; named constants may not.
func evaluateConstants(stmts []statement, symbols symbolTable) error {
	for i := range stmts {
		stmt := &stmts[i]
		if stmt.kind != stNamedConstantDef {
			continue
		}
		if _, found := symbols[stmt.name]; found {
			return asmErrorf(stmt.line, "constant %s defined more than once", stmt.name)
		}
		value, size, err := stmt.operand.eval(symbols)
		if err != nil {
			return err
		}
		symbols[stmt.name] = &namedConstant{name: stmt.name, value: value, size: size}
	}
	return nil
}
