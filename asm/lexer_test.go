// Copyright 2026 The x816 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"bytes"
	"testing"

	"github.com/x816/x816/mos"
)

func lexOne(t *testing.T, text string) []token {
	t.Helper()

	tokens, err := lexLine(text, 1)
	if err != nil {
		t.Fatalf("lexLine(%q): %v", text, err)
	}
	return tokens
}

func checkKinds(t *testing.T, text string, kinds ...tokenKind) []token {
	t.Helper()

	tokens := lexOne(t, text)
	if len(tokens) != len(kinds) {
		t.Fatalf("lexLine(%q): got %d tokens, expected %d", text, len(tokens), len(kinds))
	}
	for i, k := range kinds {
		if tokens[i].kind != k {
			t.Errorf("lexLine(%q): token %d is %s, expected %s", text, i, tokens[i].kind, k)
		}
	}
	return tokens
}

func TestLexInstruction(t *testing.T) {
	tokens := checkKinds(t, "\tLDA #$05", tkMnemonic, tkPound, tkHexWord)
	if tokens[0].mn != mos.LDA {
		t.Errorf("expected mnemonic LDA, got %s", tokens[0].mn)
	}
	if tokens[2].num != 0x05 {
		t.Errorf("expected value $05, got $%X", tokens[2].num)
	}
}

func TestLexLabeledLine(t *testing.T) {
	tokens := checkKinds(t, "start: LDA #$01 ; boot",
		tkIdentifier, tkColon, tkMnemonic, tkPound, tkHexWord, tkComment)
	if tokens[0].str != "start" {
		t.Errorf("expected identifier start, got %s", tokens[0].str)
	}
}

func TestLexNumericWidths(t *testing.T) {
	cases := []struct {
		text string
		kind tokenKind
		num  int
	}{
		{"$12", tkHexWord, 0x12},
		{"$1", tkHexWord, 0x1},
		{"$123", tkHexDWord, 0x123},
		{"$1234", tkHexDWord, 0x1234},
		{"$12345", tkHexQWord, 0x12345},
		{"$12345678", tkHexQWord, 0x12345678},
		{"%00000101", tkBinWord, 5},
		{"%0000000100000000", tkBinDWord, 0x100},
		{"%00000000000000000000000100000000", tkBinQWord, 0x100},
		{"0", tkDecWord, 0},
		{"255", tkDecWord, 255},
	}

	for _, c := range cases {
		tokens := checkKinds(t, c.text, c.kind)
		if tokens[0].num != c.num {
			t.Errorf("lexLine(%q): got value %d, expected %d", c.text, tokens[0].num, c.num)
		}
		if got := c.kind.literalSize(); got == 0 {
			t.Errorf("kind %s has no literal size", c.kind)
		}
	}
}

func TestLexMnemonicBoundary(t *testing.T) {
	// A three-letter word running into identifier characters is an
	// identifier, not a mnemonic.
	checkKinds(t, "ldax", tkIdentifier)
	checkKinds(t, "lda1", tkIdentifier)

	// Unknown three-letter words are identifiers too.
	checkKinds(t, "foo", tkIdentifier)

	// Case does not matter for mnemonics.
	tokens := checkKinds(t, "bNe", tkMnemonic)
	if tokens[0].mn != mos.BNE {
		t.Errorf("expected mnemonic BNE, got %s", tokens[0].mn)
	}
}

func TestLexRegisters(t *testing.T) {
	checkKinds(t, "$1234,X", tkHexDWord, tkComma, tkX)
	checkKinds(t, "($12),Y", tkLeftParen, tkHexWord, tkRightParen, tkComma, tkY)

	// A register letter running into identifier characters is an
	// identifier.
	checkKinds(t, "Xpos", tkIdentifier)
}

func TestLexDirectives(t *testing.T) {
	tokens := checkKinds(t, ".org $8000", tkDirective, tkHexDWord)
	if tokens[0].dir != dirOrg {
		t.Errorf("expected directive .org, got %s", tokens[0].dir)
	}

	tokens = checkKinds(t, ".DB $01", tkDirective, tkHexWord)
	if tokens[0].dir != dirDB {
		t.Errorf("expected directive .db, got %s", tokens[0].dir)
	}
}

func TestLexOperators(t *testing.T) {
	checkKinds(t, "FOO = BAR + 1 - <BAZ",
		tkIdentifier, tkEquals, tkIdentifier, tkPlus, tkDecWord,
		tkMinus, tkLessThan, tkIdentifier)
	checkKinds(t, "#>FOO", tkPound, tkGreaterThan, tkIdentifier)
}

func TestLexEmptyLinesDropped(t *testing.T) {
	src := "\n\nLDA #$01\n\n\nNOP\n"
	lines, err := lex(bytes.NewReader([]byte(src)))
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 token lines, got %d", len(lines))
	}
	if lines[0][0].line != 3 || lines[1][0].line != 6 {
		t.Errorf("unexpected line numbers %d, %d", lines[0][0].line, lines[1][0].line)
	}
}

func TestLexError(t *testing.T) {
	_, err := lexLine("\tLDA @$05", 7)
	if err == nil {
		t.Fatal("expected a lexer error")
	}
	lexErr, ok := err.(*LexerError)
	if !ok {
		t.Fatalf("expected *LexerError, got %T", err)
	}
	if lexErr.Line != 7 {
		t.Errorf("expected line 7, got %d", lexErr.Line)
	}
	if lexErr.Column != 5 {
		t.Errorf("expected column 5, got %d", lexErr.Column)
	}
}

func TestLexUnknownDirective(t *testing.T) {
	_, err := lexLine(".macro", 1)
	if err == nil {
		t.Fatal("expected a lexer error")
	}
}

func TestLexDeterminism(t *testing.T) {
	text := "start: LDA #<FOO ; comment"
	first := lexOne(t, text)
	second := lexOne(t, text)
	if len(first) != len(second) {
		t.Fatal("lexing is not deterministic")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("token %d differs between runs", i)
		}
	}
}
