// Copyright 2026 The x816 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mos

import "testing"

func TestLookup(t *testing.T) {
	cases := []struct {
		mn     Mnemonic
		mode   Mode
		opcode byte
		length byte
	}{
		{LDA, IMM, 0xa9, 2},
		{LDA, ZRP, 0xa5, 2},
		{LDA, ABS, 0xad, 3},
		{LDA, ZPX, 0xb5, 2},
		{LDX, ZPY, 0xb6, 2},
		{JMP, ABS, 0x4c, 3},
		{JMP, IND, 0x6c, 3},
		{JSR, ABS, 0x20, 3},
		{BNE, REL, 0xd0, 2},
		{NOP, IMP, 0xea, 1},
		{ASL, IMP, 0x0a, 1},
		{STA, IZX, 0x81, 2},
		{STA, IZY, 0x91, 2},
	}

	set := GetInstructionSet()
	for _, c := range cases {
		inst, ok := set.Lookup(c.mn, c.mode)
		if !ok {
			t.Errorf("Lookup(%s, %s): not found", c.mn, c.mode)
			continue
		}
		if inst.Opcode != c.opcode || inst.Length != c.length {
			t.Errorf("Lookup(%s, %s): got opcode $%02X length %d, expected $%02X %d",
				c.mn, c.mode, inst.Opcode, inst.Length, c.opcode, c.length)
		}
	}
}

func TestLookupInvalid(t *testing.T) {
	set := GetInstructionSet()
	invalid := []struct {
		mn   Mnemonic
		mode Mode
	}{
		{STA, IMM},
		{LDX, ZPX},
		{JMP, ZRP},
		{NOP, ABS},
		{BNE, ABS},
	}
	for _, c := range invalid {
		if _, ok := set.Lookup(c.mn, c.mode); ok {
			t.Errorf("Lookup(%s, %s): expected no encoding", c.mn, c.mode)
		}
	}
}

func TestHasMode(t *testing.T) {
	set := GetInstructionSet()
	if !set.HasMode(LDA, ZPX) {
		t.Error("LDA should have a ZPX variant")
	}
	if set.HasMode(LDX, ZPX) {
		t.Error("LDX should not have a ZPX variant")
	}
	if !set.HasMode(LDX, ZPY) {
		t.Error("LDX should have a ZPY variant")
	}
}

func TestModeOperandBytes(t *testing.T) {
	cases := map[Mode]int{
		IMP: 0,
		IMM: 1,
		ZRP: 1,
		ZPX: 1,
		ZPY: 1,
		REL: 1,
		ABS: 2,
		ABX: 2,
		ABY: 2,
		IND: 2,
		IZX: 1,
		IZY: 1,
	}
	for mode, want := range cases {
		if got := mode.OperandBytes(); got != want {
			t.Errorf("%s.OperandBytes() = %d, expected %d", mode, got, want)
		}
	}
}

func TestClass(t *testing.T) {
	if JMP.Class() != Jump || JSR.Class() != Jump {
		t.Error("JMP and JSR should classify as jumps")
	}
	for _, mn := range []Mnemonic{BCC, BCS, BEQ, BMI, BNE, BPL, BVC, BVS} {
		if mn.Class() != Branch {
			t.Errorf("%s should classify as a branch", mn)
		}
	}
	if LDA.Class() != Other || RTS.Class() != Other {
		t.Error("LDA and RTS should classify as other")
	}
}

func TestParseMnemonic(t *testing.T) {
	set := GetInstructionSet()

	mn, ok := set.ParseMnemonic("lda")
	if !ok || mn != LDA {
		t.Errorf("ParseMnemonic(lda) = %v, %v", mn, ok)
	}
	mn, ok = set.ParseMnemonic("BnE")
	if !ok || mn != BNE {
		t.Errorf("ParseMnemonic(BnE) = %v, %v", mn, ok)
	}
	if _, ok = set.ParseMnemonic("xyz"); ok {
		t.Error("ParseMnemonic(xyz) should fail")
	}
	if _, ok = set.ParseMnemonic("ld"); ok {
		t.Error("ParseMnemonic(ld) should fail")
	}
}

func TestFind(t *testing.T) {
	set := GetInstructionSet()

	mn, err := set.Find("jsr")
	if err != nil || mn != JSR {
		t.Errorf("Find(jsr) = %v, %v", mn, err)
	}

	// "ld" prefixes LDA, LDX and LDY.
	if _, err = set.Find("ld"); err == nil {
		t.Error("Find(ld) should be ambiguous")
	}
}

func TestVariantCoverage(t *testing.T) {
	set := GetInstructionSet()

	total := 0
	seen := make(map[byte]bool)
	for mn := ADC; mn <= TYA; mn++ {
		variants := set.Variants(mn)
		if len(variants) == 0 {
			t.Errorf("mnemonic %s has no variants", mn)
		}
		for _, inst := range variants {
			if seen[inst.Opcode] {
				t.Errorf("opcode $%02X appears more than once", inst.Opcode)
			}
			seen[inst.Opcode] = true
			total++
		}
	}

	// The NMOS 6502 defines 151 documented opcodes.
	if total != 151 {
		t.Errorf("expected 151 opcodes, got %d", total)
	}
}
