// Copyright 2026 The x816 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "github.com/x816/x816/mos"

// A tokenKind identifies the lexical category of a token. Declaration order
// is significant: the lexer tries kinds in this order, so longer and more
// specific patterns appear before shorter ones.
type tokenKind byte

const (
	tkComment tokenKind = iota
	tkMnemonic
	tkX
	tkY
	tkIdentifier
	tkDirective
	tkHexQWord
	tkHexDWord
	tkHexWord
	tkDecWord
	tkBinQWord
	tkBinDWord
	tkBinWord
	tkColon
	tkComma
	tkEquals
	tkPound
	tkLeftParen
	tkRightParen
	tkPlus
	tkMinus
	tkLessThan
	tkGreaterThan
)

var tokenKindName = []string{
	"comment",
	"mnemonic",
	"X",
	"Y",
	"identifier",
	"directive",
	"hex qword",
	"hex dword",
	"hex word",
	"dec word",
	"bin qword",
	"bin dword",
	"bin word",
	"colon",
	"comma",
	"equals",
	"pound",
	"left paren",
	"right paren",
	"plus",
	"minus",
	"less than",
	"greater than",
}

func (k tokenKind) String() string {
	return tokenKindName[k]
}

// literalSize returns the nominal width in bytes of a numeric literal
// token kind, or 0 for non-numeric kinds.
func (k tokenKind) literalSize() int {
	switch k {
	case tkHexQWord, tkBinQWord:
		return 4
	case tkHexDWord, tkBinDWord:
		return 2
	case tkHexWord, tkDecWord, tkBinWord:
		return 1
	default:
		return 0
	}
}

// A directive is an assembler instruction that does not itself encode
// a CPU instruction.
type directive byte

const (
	dirOrg directive = iota
	dirDB
	dirDW
	dirIndex
	dirMem
)

var directiveName = []string{".org", ".db", ".dw", ".index", ".mem"}

func (d directive) String() string {
	return directiveName[d]
}

// Directive names without the leading dot, lower-cased.
var directives = map[string]directive{
	"org":   dirOrg,
	"db":    dirDB,
	"dw":    dirDW,
	"index": dirIndex,
	"mem":   dirMem,
}

// A token is a typed lexeme produced by the lexer. Payload fields are
// populated according to the token kind; kinds without a payload leave
// them zero.
type token struct {
	kind tokenKind
	line int          // 1-based source line number
	num  int          // numeric literal payload
	str  string       // identifier payload
	mn   mos.Mnemonic // mnemonic payload
	dir  directive    // directive payload
	op   formulaOp    // arithmetic operator payload
}

// A valueKind tags a typedValue collected during expression reduction.
// Token payloads and rule metadata share the same tag space so that
// statement construction can consume a single flat list.
type valueKind byte

const (
	valEmpty valueKind = iota
	valMnemonic
	valNumber
	valString
	valDirective
	valMask
	valOperator

	// metadata-only kinds, contributed by grammar rules rather than tokens
	valMode
	valSize
	valImm
)

// A typedValue is a single tagged value yielded by a matched token or by a
// matched rule's metadata.
type typedValue struct {
	kind valueKind
	num  int
	str  string
	mn   mos.Mnemonic
	dir  directive
	mode mos.Mode
	mask maskKind
	op   formulaOp
}

// valueOf returns the typed value a token contributes to expression
// reduction, or false if its kind carries no payload.
func (t *token) valueOf() (typedValue, bool) {
	switch t.kind {
	case tkMnemonic:
		return typedValue{kind: valMnemonic, mn: t.mn}, true
	case tkIdentifier:
		return typedValue{kind: valString, str: t.str}, true
	case tkDirective:
		return typedValue{kind: valDirective, dir: t.dir}, true
	case tkHexQWord, tkHexDWord, tkHexWord, tkDecWord, tkBinQWord, tkBinDWord, tkBinWord:
		return typedValue{kind: valNumber, num: t.num}, true
	case tkPlus, tkMinus:
		return typedValue{kind: valOperator, op: t.op}, true
	default:
		return typedValue{}, false
	}
}
