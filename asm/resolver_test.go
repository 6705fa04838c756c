// Copyright 2026 The x816 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"bytes"
	"strings"
	"testing"
)

func resolveSource(t *testing.T, src string) (symbolTable, error) {
	t.Helper()

	lines, err := lex(bytes.NewReader([]byte(src)))
	if err != nil {
		t.Fatal(err)
	}
	var stmts []statement
	for _, line := range lines {
		s, err := parseLine(line)
		if err != nil {
			t.Fatal(err)
		}
		stmts = append(stmts, s...)
	}
	return resolve(stmts)
}

func checkSymbol(t *testing.T, symbols symbolTable, name string, value, size int) {
	t.Helper()

	nc, ok := symbols[name]
	if !ok {
		t.Errorf("symbol %s not found", name)
		return
	}
	if nc.value != value || nc.size != size {
		t.Errorf("symbol %s: got value $%X size %d, expected value $%X size %d",
			name, nc.value, nc.size, value, size)
	}
}

func TestResolveLabelOffsets(t *testing.T) {
	src := `
start:
	LDA #$01
	LDA $1234
	LDA $12
mid:
	NOP
	.db $01, $02
	.dw $1234
end:`

	symbols, err := resolveSource(t, src)
	if err != nil {
		t.Fatal(err)
	}
	checkSymbol(t, symbols, "start", 0, 2)
	checkSymbol(t, symbols, "mid", 7, 2)
	checkSymbol(t, symbols, "end", 12, 2)
}

// The program counter accounts for the zero-page shrink of indexed
// absolute operands.
func TestResolveShrunkWidths(t *testing.T) {
	src := `
	LDA $0010,X
a:
	LDX $0010
b:
	LDA $1234,X
c:`

	symbols, err := resolveSource(t, src)
	if err != nil {
		t.Fatal(err)
	}
	checkSymbol(t, symbols, "a", 2, 2)
	checkSymbol(t, symbols, "b", 5, 2)
	checkSymbol(t, symbols, "c", 8, 2)
}

// Branch instructions occupy two bytes regardless of the size of their
// target label.
func TestResolveBranchWidth(t *testing.T) {
	src := `
	BNE skip
skip:`

	symbols, err := resolveSource(t, src)
	if err != nil {
		t.Fatal(err)
	}
	checkSymbol(t, symbols, "skip", 2, 2)
}

// Labels keep their file offsets; the origin applies only to absolute
// jump encoding.
func TestResolveOriginKeepsFileOffsets(t *testing.T) {
	src := `
	.org $8000
start:
	LDA #$01
after:`

	symbols, err := resolveSource(t, src)
	if err != nil {
		t.Fatal(err)
	}
	checkSymbol(t, symbols, "start", 0, 2)
	checkSymbol(t, symbols, "after", 2, 2)
}

func TestResolveConstantSizes(t *testing.T) {
	src := `
start:
	NOP
FOO = $10
BAR = FOO + $0100
BAZ = <BAR
REF = start`

	symbols, err := resolveSource(t, src)
	if err != nil {
		t.Fatal(err)
	}
	checkSymbol(t, symbols, "FOO", 0x10, 1)
	checkSymbol(t, symbols, "BAR", 0x110, 2)
	checkSymbol(t, symbols, "BAZ", 0x10, 1)
	checkSymbol(t, symbols, "REF", 0, 2)
}

func TestResolveSymbolUniqueness(t *testing.T) {
	src := `
FOO = $10
start:
	NOP`

	symbols, err := resolveSource(t, src)
	if err != nil {
		t.Fatal(err)
	}
	if len(symbols) != 2 {
		t.Errorf("expected 2 symbols, got %d", len(symbols))
	}
}

func TestResolveDuplicateLabel(t *testing.T) {
	src := `
start:
start:`

	_, err := resolveSource(t, src)
	if err == nil || !strings.Contains(err.Error(), "defined more than once") {
		t.Errorf("expected duplicate label error, got %v", err)
	}
}

func TestResolveLabelConstantCollision(t *testing.T) {
	src := `
start:
	NOP
start = $10`

	_, err := resolveSource(t, src)
	if err == nil || !strings.Contains(err.Error(), "defined more than once") {
		t.Errorf("expected duplicate error, got %v", err)
	}
}

func TestResolveUndefinedReference(t *testing.T) {
	_, err := resolveSource(t, "FOO = MISSING")
	if err == nil || !strings.Contains(err.Error(), "undefined constant MISSING") {
		t.Errorf("expected undefined constant error, got %v", err)
	}
}

// Labels may be referenced before their definition; named constants may
// not.
func TestResolveForwardReferences(t *testing.T) {
	src := `
early = late
late = $10`

	_, err := resolveSource(t, src)
	if err == nil || !strings.Contains(err.Error(), "undefined constant late") {
		t.Errorf("expected forward reference error, got %v", err)
	}

	src = `
early = lab
	NOP
lab:`

	symbols, err := resolveSource(t, src)
	if err != nil {
		t.Fatal(err)
	}
	checkSymbol(t, symbols, "early", 1, 2)
}

func TestResolveMalformedOrg(t *testing.T) {
	_, err := resolveSource(t, "\t.org $10 + $20")
	if err == nil || !strings.Contains(err.Error(), "number parameter") {
		t.Errorf("expected malformed origin error, got %v", err)
	}
}
