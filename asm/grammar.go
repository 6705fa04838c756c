// Copyright 2026 The x816 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "github.com/x816/x816/mos"

// An exprKind identifies a nonterminal of the expression grammar.
type exprKind byte

const (
	exComment exprKind = iota
	exMnemonic
	exLabelDef
	exNamedConstantDef
	exDirective
	exQWord
	exDWord
	exWord
	exMask
	exTarget
	exNumber
	exArithOp
	exConstant
	exImmValue
)

// A patternPart is one element of a grammar pattern: either a terminal
// token kind or a recursive reference to another expression kind.
type patternPart struct {
	tok   tokenKind
	sub   exprKind
	isSub bool
}

func tok(k tokenKind) patternPart { return patternPart{tok: k} }
func sub(k exprKind) patternPart  { return patternPart{sub: k, isSub: true} }

// An exprRule maps an expression kind to one alternative right-hand side.
// Rules carry optional metadata values baked in at table-construction
// time, such as the addressing mode a target form denotes or the operand
// size of a literal form. Rules are tried in declaration order, so more
// specific alternatives precede general ones.
type exprRule struct {
	kind    exprKind
	meta    []typedValue
	pattern []patternPart
}

func sizeMeta(n int) typedValue      { return typedValue{kind: valSize, num: n} }
func modeMeta(m mos.Mode) typedValue { return typedValue{kind: valMode, mode: m} }
func maskMeta(m maskKind) typedValue { return typedValue{kind: valMask, mask: m} }

var exprRules = []exprRule{
	{exComment, nil, []patternPart{tok(tkComment)}},

	{exMnemonic, nil, []patternPart{tok(tkMnemonic)}},

	{exLabelDef, nil, []patternPart{tok(tkIdentifier), tok(tkColon)}},

	{exNamedConstantDef, nil, []patternPart{tok(tkIdentifier), tok(tkEquals), sub(exConstant)}},

	{exDirective, nil, []patternPart{tok(tkDirective)}},

	{exQWord, []typedValue{sizeMeta(4)}, []patternPart{tok(tkHexQWord)}},
	{exQWord, []typedValue{sizeMeta(4)}, []patternPart{tok(tkBinQWord)}},

	{exDWord, []typedValue{sizeMeta(2)}, []patternPart{tok(tkHexDWord)}},
	{exDWord, []typedValue{sizeMeta(2)}, []patternPart{tok(tkBinDWord)}},

	{exWord, []typedValue{sizeMeta(1)}, []patternPart{tok(tkHexWord)}},
	{exWord, []typedValue{sizeMeta(1)}, []patternPart{tok(tkDecWord)}},
	{exWord, []typedValue{sizeMeta(1)}, []patternPart{tok(tkBinWord)}},
	{exWord, []typedValue{sizeMeta(1)}, []patternPart{sub(exMask), sub(exDWord)}},

	{exMask, []typedValue{maskMeta(maskHigh)}, []patternPart{tok(tkGreaterThan)}},
	{exMask, []typedValue{maskMeta(maskLow)}, []patternPart{tok(tkLessThan)}},

	{exTarget, []typedValue{modeMeta(mos.ABX)}, []patternPart{sub(exDWord), tok(tkComma), tok(tkX)}},
	{exTarget, []typedValue{modeMeta(mos.ABY)}, []patternPart{sub(exDWord), tok(tkComma), tok(tkY)}},
	{exTarget, []typedValue{modeMeta(mos.ZPX)}, []patternPart{sub(exWord), tok(tkComma), tok(tkX)}},
	{exTarget, []typedValue{modeMeta(mos.ZPY)}, []patternPart{sub(exWord), tok(tkComma), tok(tkY)}},
	{exTarget, []typedValue{modeMeta(mos.ABS)}, []patternPart{sub(exDWord)}},
	{exTarget, []typedValue{modeMeta(mos.ZRP)}, []patternPart{sub(exWord)}},
	{exTarget, []typedValue{modeMeta(mos.IND)}, []patternPart{tok(tkLeftParen), sub(exDWord), tok(tkRightParen)}},
	{exTarget, []typedValue{modeMeta(mos.IZX)}, []patternPart{tok(tkLeftParen), sub(exWord), tok(tkComma), tok(tkX), tok(tkRightParen)}},
	{exTarget, []typedValue{modeMeta(mos.IZY)}, []patternPart{tok(tkLeftParen), sub(exWord), tok(tkRightParen), tok(tkComma), tok(tkY)}},

	{exNumber, nil, []patternPart{sub(exQWord)}},
	{exNumber, nil, []patternPart{sub(exDWord)}},
	{exNumber, nil, []patternPart{sub(exWord)}},

	{exArithOp, nil, []patternPart{tok(tkPlus)}},
	{exArithOp, nil, []patternPart{tok(tkMinus)}},

	{exConstant, nil, []patternPart{tok(tkIdentifier), sub(exArithOp), sub(exConstant)}},
	{exConstant, nil, []patternPart{sub(exNumber), sub(exArithOp), sub(exConstant)}},
	{exConstant, nil, []patternPart{tok(tkIdentifier)}},
	{exConstant, nil, []patternPart{sub(exNumber)}},
	{exConstant, nil, []patternPart{sub(exMask), sub(exConstant)}},

	{exImmValue, []typedValue{{kind: valImm}}, []patternPart{tok(tkPound), sub(exConstant)}},
}

// A stmtRule maps a statement kind to one alternative pattern of
// expression kinds. A rule with params set consumes a comma-separated
// list of additional constants after the base pattern, which is how
// directive parameter lists are matched.
type stmtRule struct {
	kind    stmtKind
	pattern []exprKind
	params  bool
}

// The statement grammar, in priority order. The specific instruction
// forms (immediate, target) must precede the general constant form, and
// the bare-mnemonic form comes last.
var stmtRules = []stmtRule{
	{stComment, []exprKind{exComment}, false},
	{stLabelDef, []exprKind{exLabelDef}, false},
	{stNamedConstantDef, []exprKind{exNamedConstantDef}, false},
	{stDirective, []exprKind{exDirective, exConstant}, true},
	{stDirective, []exprKind{exDirective}, false},
	{stInstruction, []exprKind{exMnemonic, exImmValue}, false},
	{stInstruction, []exprKind{exMnemonic, exTarget}, false},
	{stInstruction, []exprKind{exMnemonic, exConstant}, false},
	{stInstruction, []exprKind{exMnemonic}, false},
}
