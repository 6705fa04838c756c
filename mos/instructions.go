// Copyright 2026 The x816 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mos describes the MOS 6502 instruction set: mnemonics, addressing
// modes, and the opcode table mapping each valid (mnemonic, mode) pair to
// its encoding.
package mos

import (
	"strings"

	"github.com/beevik/prefixtree/v2"
)

// Mode describes a memory addressing mode.
type Mode byte

// All 6502 addressing modes. Accumulator-operand instructions (ASL, LSR,
// ROL, ROR with no operand) are folded into IMP.
const (
	IMP Mode = iota // Implicit (no operand)
	IMM             // Immediate
	ZRP             // Zero Page
	ZPX             // Zero Page,X
	ZPY             // Zero Page,Y
	REL             // Relative
	ABS             // Absolute
	ABX             // Absolute,X
	ABY             // Absolute,Y
	IND             // (Indirect)
	IZX             // (Indexed,X)
	IZY             // (Indirect),Y
)

var modeName = []string{
	"IMP",
	"IMM",
	"ZRP",
	"ZPX",
	"ZPY",
	"REL",
	"ABS",
	"ABX",
	"ABY",
	"IND",
	"IZX",
	"IZY",
}

// Operand bytes following the opcode, per mode.
var modeBytes = []int{0, 1, 1, 1, 1, 1, 2, 2, 2, 2, 1, 1}

func (m Mode) String() string {
	return modeName[m]
}

// OperandBytes returns the number of operand bytes encoded after the
// opcode for the mode.
func (m Mode) OperandBytes() int {
	return modeBytes[m]
}

// A Mnemonic identifies one of the 56 instruction families of the 6502.
type Mnemonic byte

// All 6502 mnemonics, in alphabetical order.
const (
	ADC Mnemonic = iota
	AND
	ASL
	BCC
	BCS
	BEQ
	BIT
	BMI
	BNE
	BPL
	BRK
	BVC
	BVS
	CLC
	CLD
	CLI
	CLV
	CMP
	CPX
	CPY
	DEC
	DEX
	DEY
	EOR
	INC
	INX
	INY
	JMP
	JSR
	LDA
	LDX
	LDY
	LSR
	NOP
	ORA
	PHA
	PHP
	PLA
	PLP
	ROL
	ROR
	RTI
	RTS
	SBC
	SEC
	SED
	SEI
	STA
	STX
	STY
	TAX
	TAY
	TSX
	TXA
	TXS
	TYA
)

var mnemonicName = []string{
	"ADC", "AND", "ASL", "BCC", "BCS", "BEQ", "BIT", "BMI", "BNE", "BPL",
	"BRK", "BVC", "BVS", "CLC", "CLD", "CLI", "CLV", "CMP", "CPX", "CPY",
	"DEC", "DEX", "DEY", "EOR", "INC", "INX", "INY", "JMP", "JSR", "LDA",
	"LDX", "LDY", "LSR", "NOP", "ORA", "PHA", "PHP", "PLA", "PLP", "ROL",
	"ROR", "RTI", "RTS", "SBC", "SEC", "SED", "SEI", "STA", "STX", "STY",
	"TAX", "TAY", "TSX", "TXA", "TXS", "TYA",
}

func (m Mnemonic) String() string {
	return mnemonicName[m]
}

// A Class partitions mnemonics by how the encoder treats their operands.
// Branches always encode a relative offset, and absolute jump targets are
// anchored at the origin offset.
type Class byte

// Mnemonic classes.
const (
	Other Class = iota
	Jump
	Branch
)

// Class returns the encoding class of the mnemonic.
func (m Mnemonic) Class() Class {
	switch m {
	case JMP, JSR:
		return Jump
	case BCC, BCS, BEQ, BMI, BNE, BPL, BVC, BVS:
		return Branch
	default:
		return Other
	}
}

// An Instruction describes one valid encoding of a mnemonic: its addressing
// mode, its opcode value, and the combined length of opcode and operand.
type Instruction struct {
	Mnemonic Mnemonic // instruction family
	Mode     Mode     // addressing mode
	Opcode   byte     // hexadecimal opcode value
	Length   byte     // size of opcode + operand, in bytes
}

// Opcode data for each valid (mnemonic, mode) pair.
type opcodeData struct {
	mn     Mnemonic
	mode   Mode
	opcode byte
}

// All valid NMOS 6502 (mnemonic, mode) pairs.
var data = []opcodeData{
	{LDA, IMM, 0xa9},
	{LDA, ZRP, 0xa5},
	{LDA, ZPX, 0xb5},
	{LDA, ABS, 0xad},
	{LDA, ABX, 0xbd},
	{LDA, ABY, 0xb9},
	{LDA, IZX, 0xa1},
	{LDA, IZY, 0xb1},

	{LDX, IMM, 0xa2},
	{LDX, ZRP, 0xa6},
	{LDX, ZPY, 0xb6},
	{LDX, ABS, 0xae},
	{LDX, ABY, 0xbe},

	{LDY, IMM, 0xa0},
	{LDY, ZRP, 0xa4},
	{LDY, ZPX, 0xb4},
	{LDY, ABS, 0xac},
	{LDY, ABX, 0xbc},

	{STA, ZRP, 0x85},
	{STA, ZPX, 0x95},
	{STA, ABS, 0x8d},
	{STA, ABX, 0x9d},
	{STA, ABY, 0x99},
	{STA, IZX, 0x81},
	{STA, IZY, 0x91},

	{STX, ZRP, 0x86},
	{STX, ZPY, 0x96},
	{STX, ABS, 0x8e},

	{STY, ZRP, 0x84},
	{STY, ZPX, 0x94},
	{STY, ABS, 0x8c},

	{ADC, IMM, 0x69},
	{ADC, ZRP, 0x65},
	{ADC, ZPX, 0x75},
	{ADC, ABS, 0x6d},
	{ADC, ABX, 0x7d},
	{ADC, ABY, 0x79},
	{ADC, IZX, 0x61},
	{ADC, IZY, 0x71},

	{SBC, IMM, 0xe9},
	{SBC, ZRP, 0xe5},
	{SBC, ZPX, 0xf5},
	{SBC, ABS, 0xed},
	{SBC, ABX, 0xfd},
	{SBC, ABY, 0xf9},
	{SBC, IZX, 0xe1},
	{SBC, IZY, 0xf1},

	{CMP, IMM, 0xc9},
	{CMP, ZRP, 0xc5},
	{CMP, ZPX, 0xd5},
	{CMP, ABS, 0xcd},
	{CMP, ABX, 0xdd},
	{CMP, ABY, 0xd9},
	{CMP, IZX, 0xc1},
	{CMP, IZY, 0xd1},

	{CPX, IMM, 0xe0},
	{CPX, ZRP, 0xe4},
	{CPX, ABS, 0xec},

	{CPY, IMM, 0xc0},
	{CPY, ZRP, 0xc4},
	{CPY, ABS, 0xcc},

	{BIT, ZRP, 0x24},
	{BIT, ABS, 0x2c},

	{CLC, IMP, 0x18},
	{SEC, IMP, 0x38},
	{CLI, IMP, 0x58},
	{SEI, IMP, 0x78},
	{CLD, IMP, 0xd8},
	{SED, IMP, 0xf8},
	{CLV, IMP, 0xb8},

	{BCC, REL, 0x90},
	{BCS, REL, 0xb0},
	{BEQ, REL, 0xf0},
	{BNE, REL, 0xd0},
	{BMI, REL, 0x30},
	{BPL, REL, 0x10},
	{BVC, REL, 0x50},
	{BVS, REL, 0x70},

	{BRK, IMP, 0x00},

	{AND, IMM, 0x29},
	{AND, ZRP, 0x25},
	{AND, ZPX, 0x35},
	{AND, ABS, 0x2d},
	{AND, ABX, 0x3d},
	{AND, ABY, 0x39},
	{AND, IZX, 0x21},
	{AND, IZY, 0x31},

	{ORA, IMM, 0x09},
	{ORA, ZRP, 0x05},
	{ORA, ZPX, 0x15},
	{ORA, ABS, 0x0d},
	{ORA, ABX, 0x1d},
	{ORA, ABY, 0x19},
	{ORA, IZX, 0x01},
	{ORA, IZY, 0x11},

	{EOR, IMM, 0x49},
	{EOR, ZRP, 0x45},
	{EOR, ZPX, 0x55},
	{EOR, ABS, 0x4d},
	{EOR, ABX, 0x5d},
	{EOR, ABY, 0x59},
	{EOR, IZX, 0x41},
	{EOR, IZY, 0x51},

	{INC, ZRP, 0xe6},
	{INC, ZPX, 0xf6},
	{INC, ABS, 0xee},
	{INC, ABX, 0xfe},

	{DEC, ZRP, 0xc6},
	{DEC, ZPX, 0xd6},
	{DEC, ABS, 0xce},
	{DEC, ABX, 0xde},

	{INX, IMP, 0xe8},
	{INY, IMP, 0xc8},

	{DEX, IMP, 0xca},
	{DEY, IMP, 0x88},

	{JMP, ABS, 0x4c},
	{JMP, IND, 0x6c},

	{JSR, ABS, 0x20},
	{RTS, IMP, 0x60},

	{RTI, IMP, 0x40},

	{NOP, IMP, 0xea},

	{TAX, IMP, 0xaa},
	{TXA, IMP, 0x8a},
	{TAY, IMP, 0xa8},
	{TYA, IMP, 0x98},
	{TXS, IMP, 0x9a},
	{TSX, IMP, 0xba},

	{PHA, IMP, 0x48},
	{PLA, IMP, 0x68},
	{PHP, IMP, 0x08},
	{PLP, IMP, 0x28},

	{ASL, IMP, 0x0a},
	{ASL, ZRP, 0x06},
	{ASL, ZPX, 0x16},
	{ASL, ABS, 0x0e},
	{ASL, ABX, 0x1e},

	{LSR, IMP, 0x4a},
	{LSR, ZRP, 0x46},
	{LSR, ZPX, 0x56},
	{LSR, ABS, 0x4e},
	{LSR, ABX, 0x5e},

	{ROL, IMP, 0x2a},
	{ROL, ZRP, 0x26},
	{ROL, ZPX, 0x36},
	{ROL, ABS, 0x2e},
	{ROL, ABX, 0x3e},

	{ROR, IMP, 0x6a},
	{ROR, ZRP, 0x66},
	{ROR, ZPX, 0x76},
	{ROR, ABS, 0x6e},
	{ROR, ABX, 0x7e},
}

type instKey struct {
	mn   Mnemonic
	mode Mode
}

// An InstructionSet defines the set of all valid instruction encodings,
// indexed for lookup by (mnemonic, mode) pair and by name.
type InstructionSet struct {
	byKey    map[instKey]*Instruction
	variants map[Mnemonic][]*Instruction
	names    *prefixtree.Tree[Mnemonic]
}

// Build an instruction set from the opcode table.
func newInstructionSet() *InstructionSet {
	set := &InstructionSet{
		byKey:    make(map[instKey]*Instruction, len(data)),
		variants: make(map[Mnemonic][]*Instruction),
		names:    prefixtree.New[Mnemonic](),
	}

	for _, d := range data {
		inst := &Instruction{
			Mnemonic: d.mn,
			Mode:     d.mode,
			Opcode:   d.opcode,
			Length:   byte(1 + d.mode.OperandBytes()),
		}
		set.byKey[instKey{d.mn, d.mode}] = inst
		set.variants[d.mn] = append(set.variants[d.mn], inst)
	}

	for mn := range set.variants {
		set.names.Add(strings.ToLower(mn.String()), mn)
	}

	return set
}

var instructionSet *InstructionSet

// GetInstructionSet returns the 6502 instruction set.
func GetInstructionSet() *InstructionSet {
	if instructionSet == nil {
		// Lazy-create the instruction set.
		instructionSet = newInstructionSet()
	}
	return instructionSet
}

// Lookup retrieves the instruction encoding for a (mnemonic, mode) pair.
// It returns false if the pair is not a valid 6502 encoding.
func (s *InstructionSet) Lookup(mn Mnemonic, mode Mode) (*Instruction, bool) {
	inst, ok := s.byKey[instKey{mn, mode}]
	return inst, ok
}

// HasMode reports whether the mnemonic has an encoding with the
// requested addressing mode.
func (s *InstructionSet) HasMode(mn Mnemonic, mode Mode) bool {
	_, ok := s.byKey[instKey{mn, mode}]
	return ok
}

// Variants returns all valid encodings of a mnemonic.
func (s *InstructionSet) Variants(mn Mnemonic) []*Instruction {
	return s.variants[mn]
}

// ParseMnemonic converts an instruction name to its mnemonic. The match is
// case-insensitive and must be exact.
func (s *InstructionSet) ParseMnemonic(name string) (Mnemonic, bool) {
	if len(name) != 3 {
		return 0, false
	}
	mn, err := s.names.FindValue(strings.ToLower(name))
	if err != nil {
		return 0, false
	}
	return mn, true
}

// Find looks up a mnemonic by shortest unambiguous prefix.
func (s *InstructionSet) Find(name string) (Mnemonic, error) {
	return s.names.FindValue(strings.ToLower(name))
}
