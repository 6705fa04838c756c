// Copyright 2026 The x816 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/x816/x816/mos"
)

// A tokenPattern associates a token kind with the anchored pattern that
// recognizes it and the adapter converting the matched text to a payload.
// An adapter returning false rejects the match, letting later patterns
// have a try.
type tokenPattern struct {
	kind     tokenKind
	re       *regexp.Regexp
	boundary bool // lexeme must not run into an identifier character
	adapt    func(t *token, lexeme string) bool
}

func identChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

func adaptNothing(t *token, lexeme string) bool {
	return true
}

func adaptIdentifier(t *token, lexeme string) bool {
	t.str = lexeme
	return true
}

func adaptMnemonic(t *token, lexeme string) bool {
	mn, ok := mos.GetInstructionSet().ParseMnemonic(lexeme)
	t.mn = mn
	return ok
}

func adaptDirective(t *token, lexeme string) bool {
	d, ok := directives[strings.ToLower(lexeme)]
	t.dir = d
	return ok
}

func adaptNumber(base int) func(t *token, lexeme string) bool {
	return func(t *token, lexeme string) bool {
		v, err := strconv.ParseInt(lexeme, base, 32)
		t.num = int(v)
		return err == nil
	}
}

func adaptOperator(op formulaOp) func(t *token, lexeme string) bool {
	return func(t *token, lexeme string) bool {
		t.op = op
		return true
	}
}

// The token patterns, in the order the lexer tries them. Mnemonics and the
// X/Y register designators must precede identifiers, and hexadecimal and
// binary literals are matched widest first so that $1234 lexes as a dword
// and $12 as a word.
var tokenPatterns = []tokenPattern{
	{tkComment, regexp.MustCompile(`^;.*`), false, adaptNothing},
	{tkMnemonic, regexp.MustCompile(`^[A-Za-z]{3}`), true, adaptMnemonic},
	{tkX, regexp.MustCompile(`^X`), true, adaptNothing},
	{tkY, regexp.MustCompile(`^Y`), true, adaptNothing},
	{tkIdentifier, regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*`), false, adaptIdentifier},
	{tkDirective, regexp.MustCompile(`^\.([A-Za-z]+)`), false, adaptDirective},
	{tkHexQWord, regexp.MustCompile(`^\$([0-9A-Fa-f]{5,8})`), true, adaptNumber(16)},
	{tkHexDWord, regexp.MustCompile(`^\$([0-9A-Fa-f]{3,4})`), true, adaptNumber(16)},
	{tkHexWord, regexp.MustCompile(`^\$([0-9A-Fa-f]{1,2})`), true, adaptNumber(16)},
	{tkDecWord, regexp.MustCompile(`^[0-9]{1,3}`), true, adaptNumber(10)},
	{tkBinQWord, regexp.MustCompile(`^%([01]{32})`), true, adaptNumber(2)},
	{tkBinDWord, regexp.MustCompile(`^%([01]{16})`), true, adaptNumber(2)},
	{tkBinWord, regexp.MustCompile(`^%([01]{8})`), true, adaptNumber(2)},
	{tkColon, regexp.MustCompile(`^:`), false, adaptNothing},
	{tkComma, regexp.MustCompile(`^,`), false, adaptNothing},
	{tkEquals, regexp.MustCompile(`^=`), false, adaptNothing},
	{tkPound, regexp.MustCompile(`^#`), false, adaptNothing},
	{tkLeftParen, regexp.MustCompile(`^\(`), false, adaptNothing},
	{tkRightParen, regexp.MustCompile(`^\)`), false, adaptNothing},
	{tkPlus, regexp.MustCompile(`^\+`), false, adaptOperator(opAdd)},
	{tkMinus, regexp.MustCompile(`^-`), false, adaptOperator(opSub)},
	{tkLessThan, regexp.MustCompile(`^<`), false, adaptNothing},
	{tkGreaterThan, regexp.MustCompile(`^>`), false, adaptNothing},
}

// lex converts an input stream into a sequence of token lines, dropping
// lines that produce no tokens.
func lex(r io.Reader) ([][]token, error) {
	var lines [][]token

	scanner := bufio.NewScanner(r)
	row := 1
	for scanner.Scan() {
		tokens, err := lexLine(scanner.Text(), row)
		if err != nil {
			return nil, err
		}
		if len(tokens) > 0 {
			lines = append(lines, tokens)
		}
		row++
	}

	return lines, scanner.Err()
}

// lexLine tokenizes a single source line. At each position it skips
// whitespace and then tries each token pattern in declaration order; the
// first accepted match wins.
func lexLine(text string, row int) ([]token, error) {
	var tokens []token

	pos := 0
	for pos < len(text) {
		if text[pos] == ' ' || text[pos] == '\t' {
			pos++
			continue
		}

		t, n := matchToken(text[pos:], row)
		if n == 0 {
			return nil, &LexerError{Line: row, Column: pos, Text: text}
		}

		tokens = append(tokens, t)
		pos += n
	}

	return tokens, nil
}

// matchToken matches a single token at the start of the remaining line
// text. It returns the number of characters consumed, or 0 if no pattern
// accepts the text.
func matchToken(s string, row int) (token, int) {
	for _, p := range tokenPatterns {
		m := p.re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		if p.boundary && len(m[0]) < len(s) && identChar(s[len(m[0])]) {
			continue
		}

		lexeme := m[0]
		if len(m) > 1 {
			lexeme = m[1]
		}

		t := token{kind: p.kind, line: row}
		if !p.adapt(&t, lexeme) {
			continue
		}
		return t, len(m[0])
	}
	return token{}, 0
}
