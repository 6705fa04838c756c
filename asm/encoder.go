// Copyright 2026 The x816 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"bytes"

	"github.com/x816/x816/mos"
)

// An encoder walks the statement list a final time, selecting a concrete
// addressing mode per instruction and writing opcode and operand bytes
// into the output buffer.
type encoder struct {
	symbols   symbolTable
	code      bytes.Buffer
	pc        int // program counter, as a file offset
	orgOffset int // origin added to absolute jump targets
}

// encode produces the binary image for a resolved statement list.
func encode(stmts []statement, symbols symbolTable) ([]byte, error) {
	e := &encoder{symbols: symbols}

	for i := range stmts {
		stmt := &stmts[i]
		var err error
		switch stmt.kind {
		case stInstruction:
			err = e.encodeInstruction(stmt)
		case stDirective:
			err = e.encodeDirective(stmt)
		}
		if err != nil {
			return nil, err
		}
	}

	return e.code.Bytes(), nil
}

// encodeDirective emits the bytes of a data directive, or updates the
// origin offset. The width directives are ignored.
func (e *encoder) encodeDirective(stmt *statement) error {
	switch stmt.dir {
	case dirOrg:
		value, err := orgParam(stmt)
		if err != nil {
			return err
		}
		e.orgOffset = value

	case dirDB:
		for i := range stmt.params {
			value, _, err := stmt.params[i].eval(e.symbols)
			if err != nil {
				return err
			}
			e.code.WriteByte(byte(value))
			e.pc++
		}

	case dirDW:
		for i := range stmt.params {
			value, _, err := stmt.params[i].eval(e.symbols)
			if err != nil {
				return err
			}
			e.code.WriteByte(byte(value))
			e.code.WriteByte(byte(value >> 8))
			e.pc += 2
		}
	}

	return nil
}

// encodeInstruction selects the concrete addressing mode for an
// instruction, resolves its operand, and emits the opcode followed by the
// operand bytes in little-endian order.
func (e *encoder) encodeInstruction(stmt *statement) error {
	operand, size := 0, 0
	if stmt.operand != nil {
		var err error
		operand, size, err = stmt.operand.eval(e.symbols)
		if err != nil {
			return err
		}
	}

	set := mos.GetInstructionSet()

	// Select the addressing mode. An instruction without one takes zero
	// page or absolute depending on the resolved operand size.
	mode := stmt.mode
	if !stmt.hasMode {
		if size == 1 {
			mode = mos.ZRP
		} else {
			mode = mos.ABS
		}
	}

	// Zero-page shrink: an indexed absolute whose operand fits in one
	// byte uses the zero-page indexed variant when the mnemonic has one.
	if shrinksToZeroPage(stmt) {
		mode = zeroPageIndexed(stmt.mode)
		size = 1
	}

	// A relative branch operand is an offset from the address following
	// the instruction.
	if mode == mos.REL {
		offset := operand - (e.pc + 2)
		if offset < -128 || offset > 127 {
			return asmErrorf(stmt.line, "branch target out of range")
		}
		operand = offset
		size = 1
	}

	if mode.OperandBytes() < size {
		return asmErrorf(stmt.line, "operand too large for addressing mode %s", mode)
	}

	inst, ok := set.Lookup(stmt.mn, mode)
	if !ok {
		return asmErrorf(stmt.line, "instruction %s cannot be used with addressing mode %s", stmt.mn, mode)
	}

	// Absolute jump targets are anchored at the origin offset.
	if stmt.mn.Class() == mos.Jump && mode == mos.ABS {
		operand += e.orgOffset
	}

	e.code.WriteByte(inst.Opcode)
	switch mode.OperandBytes() {
	case 1:
		e.code.WriteByte(byte(operand))
	case 2:
		e.code.WriteByte(byte(operand))
		e.code.WriteByte(byte(operand >> 8))
	}

	e.pc += int(inst.Length)
	return nil
}
