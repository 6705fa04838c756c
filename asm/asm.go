// Copyright 2026 The x816 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package asm implements an x816-dialect cross-assembler for the MOS 6502.
//
// Assembly is a one-way pipeline: input bytes are lexed into token lines,
// each line is parsed into statements by matching against a declarative
// grammar, a four-pass resolver turns labels and named constants into a
// symbol table, and the encoder walks the statement list once more to
// emit opcode and operand bytes.
package asm

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Option flags used by the Assemble function.
type Option uint

// Options for the Assemble function.
const (
	Verbose Option = 1 << iota // verbose output during assembly
)

// A Symbol is a resolved entry of the symbol table.
type Symbol struct {
	Name  string // label or constant name
	Value int    // resolved value
	Size  int    // size in bytes
}

// An Assembly contains the assembled machine code and the symbols
// resolved while producing it.
type Assembly struct {
	Code    []byte   // assembled machine code
	Symbols []Symbol // resolved symbols, sorted by name
}

// WriteTo saves machine code as binary data into an output writer.
func (a *Assembly) WriteTo(w io.Writer) (n int64, err error) {
	nn, err := w.Write(a.Code)
	return int64(nn), err
}

// The assembler is a state object used during the translation of
// assembly code into machine code.
type assembler struct {
	r          io.Reader   // the reader passed to Assemble
	filename   string      // name of the file being assembled
	lines      [][]token   // token lines produced by the lexer
	statements []statement // statements produced by the parser
	symbols    symbolTable // symbol table produced by the resolver
	code       []byte      // generated machine code
	out        io.Writer   // output used for verbose logging
	verbose    bool        // verbose output
}

// Assemble reads assembly code from the provided stream and translates it
// into 6502 machine code. The first failure in any stage aborts the
// translation.
func Assemble(r io.Reader, filename string, out io.Writer, options Option) (*Assembly, error) {
	if out == nil {
		out = os.Stdout
	}

	a := &assembler{
		r:        r,
		filename: filename,
		out:      out,
		verbose:  (options & Verbose) != 0,
	}

	// Assembly consists of the following steps.
	steps := []func(a *assembler) error{
		(*assembler).lexStep,     // split the input into typed token lines
		(*assembler).parseStep,   // match token lines against the grammar
		(*assembler).resolveStep, // build the symbol table
		(*assembler).encodeStep,  // generate the machine code
	}

	// Execute the assembler steps, stopping at the first error.
	for _, step := range steps {
		if err := step(a); err != nil {
			return nil, fmt.Errorf("%s: %w", a.filename, err)
		}
	}

	return &Assembly{Code: a.code, Symbols: a.exportSymbols()}, nil
}

// AssembleFile reads a file containing 6502 assembly code, assembles it,
// and writes the binary image to outPath. If outPath is empty, the output
// path is the input path with its extension replaced by ".bin".
func AssembleFile(path, outPath string, options Option, out io.Writer) error {
	inFile, err := os.Open(path)
	if err != nil {
		return err
	}
	defer inFile.Close()

	assembly, err := Assemble(inFile, path, out, options)
	if err != nil {
		return err
	}

	if outPath == "" {
		outPath = BinPath(path)
	}

	outFile, err := os.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer outFile.Close()

	_, err = assembly.WriteTo(outFile)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Assembled '%s' to produce '%s'.\n",
		filepath.Base(path), filepath.Base(outPath))
	return nil
}

// BinPath derives an output path from an input path by replacing the
// final extension with ".bin", or appending it when the input has no
// extension.
func BinPath(path string) string {
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)] + ".bin"
}

func (a *assembler) lexStep() error {
	a.logSection("Lexing assembly code")

	lines, err := lex(a.r)
	if err != nil {
		return err
	}
	a.lines = lines

	if a.verbose {
		for _, line := range a.lines {
			var kinds []string
			for _, t := range line {
				kinds = append(kinds, t.kind.String())
			}
			a.log("%-3d | %s", line[0].line, strings.Join(kinds, " "))
		}
	}
	return nil
}

func (a *assembler) parseStep() error {
	a.logSection("Parsing assembly code")

	for _, line := range a.lines {
		stmts, err := parseLine(line)
		if err != nil {
			return err
		}
		a.statements = append(a.statements, stmts...)
	}

	if a.verbose {
		for i := range a.statements {
			a.logStatement(&a.statements[i])
		}
	}
	return nil
}

func (a *assembler) resolveStep() error {
	a.logSection("Resolving symbols")

	symbols, err := resolve(a.statements)
	if err != nil {
		return err
	}
	a.symbols = symbols

	if a.verbose {
		for _, s := range a.exportSymbols() {
			a.log("%-15s Val:$%0*X", s.Name, 2*s.Size, s.Value)
		}
	}
	return nil
}

func (a *assembler) encodeStep() error {
	a.logSection("Generating code")

	code, err := encode(a.statements, a.symbols)
	if err != nil {
		return err
	}
	a.code = code

	a.logBytes(a.code)
	return nil
}

// exportSymbols flattens the symbol table into a name-sorted slice.
func (a *assembler) exportSymbols() []Symbol {
	symbols := make([]Symbol, 0, len(a.symbols))
	for _, nc := range a.symbols {
		symbols = append(symbols, Symbol{Name: nc.name, Value: nc.value, Size: nc.size})
	}
	sort.Slice(symbols, func(i, j int) bool {
		return symbols[i].Name < symbols[j].Name
	})
	return symbols
}

var hex = "0123456789ABCDEF"

// Return a hexadecimal string representation of a byte slice.
func byteString(b []byte) string {
	if len(b) < 1 {
		return ""
	}

	s := make([]byte, len(b)*3-1)
	i, j := 0, 0
	for n := len(b) - 1; i < n; i, j = i+1, j+3 {
		s[j+0] = hex[(b[i] >> 4)]
		s[j+1] = hex[(b[i] & 0x0f)]
		s[j+2] = ' '
	}
	s[j+0] = hex[(b[i] >> 4)]
	s[j+1] = hex[(b[i] & 0x0f)]
	return string(s)
}

// In verbose mode, log a string to the output writer.
func (a *assembler) log(format string, args ...any) {
	if a.verbose {
		fmt.Fprintf(a.out, format, args...)
		fmt.Fprintf(a.out, "\n")
	}
}

// In verbose mode, log a parsed statement.
func (a *assembler) logStatement(stmt *statement) {
	switch stmt.kind {
	case stLabelDef:
		a.log("%-3d | label %s", stmt.line, stmt.name)
	case stNamedConstantDef:
		a.log("%-3d | constant %s", stmt.line, stmt.name)
	case stDirective:
		a.log("%-3d | directive %s", stmt.line, stmt.dir)
	case stInstruction:
		if stmt.hasMode {
			a.log("%-3d | %s mode:%s", stmt.line, stmt.mn, stmt.mode)
		} else {
			a.log("%-3d | %s", stmt.line, stmt.mn)
		}
	}
}

// In verbose mode, log a series of bytes with starting offsets.
func (a *assembler) logBytes(b []byte) {
	if a.verbose {
		for i, n := 0, len(b); i < n; i += 8 {
			j := i + 8
			if j > n {
				j = n
			}
			a.log("%04X-  %s", i, byteString(b[i:j]))
		}
	}
}

// In verbose mode, log a section header to the output writer.
func (a *assembler) logSection(name string) {
	if a.verbose {
		fmt.Fprintln(a.out, strings.Repeat("-", len(name)+6))
		fmt.Fprintf(a.out, "-- %s --\n", name)
		fmt.Fprintln(a.out, strings.Repeat("-", len(name)+6))
	}
}
