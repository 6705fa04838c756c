// Copyright 2026 The x816 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"fmt"
	"strings"
)

// A LexerError indicates that no token pattern matched at some position of
// a source line. It carries the offending line and column so the message
// can point at the exact character.
type LexerError struct {
	Line   int    // 1-based source line number
	Column int    // 0-based column of the unmatched character
	Text   string // full text of the offending line
}

func (e *LexerError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "lexer error on line %d, col %d: no token matches\n", e.Line, e.Column+1)
	b.WriteString(e.Text)
	b.WriteByte('\n')
	for i := 0; i < e.Column; i++ {
		b.WriteByte('-')
	}
	b.WriteByte('^')
	return b.String()
}

// A ParserError indicates that no statement pattern matched the remaining
// tokens of a line.
type ParserError struct {
	Line int // 1-based source line number
}

func (e *ParserError) Error() string {
	return fmt.Sprintf("parser error on line %d: no statement matches", e.Line)
}

// An AssemblerError is a semantic error detected after parsing: an
// undefined reference, a duplicate label, an operand that does not fit,
// an unsupported mnemonic/mode combination, or a malformed directive.
type AssemblerError struct {
	Line int    // 1-based source line number
	Msg  string // human explanation
}

func (e *AssemblerError) Error() string {
	return fmt.Sprintf("assembler error on line %d: %s", e.Line, e.Msg)
}

// Create an assembler error for the requested line.
func asmErrorf(line int, format string, args ...any) error {
	return &AssemblerError{Line: line, Msg: fmt.Sprintf(format, args...)}
}
