// Package ast defines the Sass source AST: the expression tree (SassScript)
// and the statement tree produced by internal/parser, consumed by
// internal/eval. Every node keeps its source range so diagnostics and source
// maps can point back into the original file.
//
// The variant types follow the teacher's closed-interface pattern (an
// unexported marker method encodes a sum type in Go's type system) rather
// than open inheritance, per the design notes on deep inheritance.
package ast

import "github.com/nsass/sass/internal/logger"

// Expr is never called directly; its purpose is to encode a closed variant
// type, mirroring css_ast.R/SS in the teacher package.
type Expr interface {
	isExpr()
	Range() logger.Range
}

type ExprBase struct {
	Loc logger.Range
}

func (e ExprBase) Range() logger.Range { return e.Loc }

// ENull / EBool / ENumber / EString are the literal leaves of the tree.
type ENull struct{ ExprBase }

type EBool struct {
	ExprBase
	Value bool
}

// ENumber carries the raw literal text in Numerators/Denominators form the
// way it was written, e.g. "10px" -> Numerators: ["px"].
type ENumber struct {
	ExprBase
	Value        float64
	Numerators   []string
	Denominators []string
}

// EString is a possibly-interpolated string literal. Plain (no
// interpolation) strings have a single Parts entry that is a string.
type EString struct {
	ExprBase
	Quoted bool
	Parts  []StringPart
}

// StringPart is either literal text or an interpolated expression; exactly
// one of Text/Expr is set.
type StringPart struct {
	Text string
	Expr Expr
}

// EColor is a literal color written as a hex literal or a named color; it is
// resolved to a concrete Color value during evaluation.
type EColor struct {
	ExprBase
	Text string
}

// EVariable is a reference to a Sass variable (`$foo`), optionally
// module-namespaced (`ns.$foo`). FrameDepth/SlotIndex are filled in by the
// parser when the binding is statically visible (spec §4.4); both are -1
// when resolution must fall back to dynamic name lookup.
type EVariable struct {
	ExprBase
	Namespace  string
	Name       string
	FrameDepth int
	SlotIndex  int
}

// EListLiteral is a literal list/bracketed-list expression as written in
// source, e.g. `1px 2px`, `(1, 2, 3)`, `[a, b]`.
type EListLiteral struct {
	ExprBase
	Items       []Expr
	Separator   ListSeparator
	HasBrackets bool
}

type ListSeparator uint8

const (
	SepUndecided ListSeparator = iota
	SepSpace
	SepComma
	SepSlash
)

// EMapLiteral is a literal map expression `(k1: v1, k2: v2)`.
type EMapLiteral struct {
	ExprBase
	Keys   []Expr
	Values []Expr
}

// EUnary is `-x`, `+x`, or `not x`.
type EUnary struct {
	ExprBase
	Op      string
	Operand Expr
}

// EBinary is any of the arithmetic, comparison, or logical infix operators:
// + - * / % == != < <= > >= and or.
type EBinary struct {
	ExprBase
	Op          string
	Left, Right Expr
}

// ETernarySlash represents an `a / b` expression written where a literal
// slash separator is ambiguous with division; it evaluates to a Number
// carrying an as-slash pair (spec §3) until consumed by arithmetic.
type ETernarySlash struct {
	ExprBase
	Left, Right Expr
}

// EParen is an explicit parenthesization, kept as a distinct node so the
// printer/inspector can tell `(a, b)` (a one-item list with a trailing
// comma) apart from a bare parenthesized expression.
type EParen struct {
	ExprBase
	Inner Expr
}

// ECall is a function call `name(args)` or a special CSS-function-like call
// that the evaluator may reinterpret as a plain CSS function if no Sass
// function of that name is in scope.
type ECall struct {
	ExprBase
	Namespace string
	Name      string
	Args      *ArgInvocation
}

// ArgInvocation holds the arguments written at a call site.
type ArgInvocation struct {
	Positional []Expr
	// Keyword arguments in call-site order; Names[i] pairs with Values[i].
	Names  []string
	Values []Expr
	// Spread is `...` appended to the last positional argument, e.g. `f($list...)`.
	Spread Expr
	// KeywordSpread is `...` appended after a trailing map argument.
	KeywordSpread Expr
}

// ESupportsCondition captures the operand shapes legal inside `@supports`
// that also parse as expressions, e.g. `(display: flex)`.
type ESupportsCondition struct {
	ExprBase
	Text string // re-serialized verbatim; supports conditions are not evaluated as SassScript
}

func (*ENull) isExpr()               {}
func (*EBool) isExpr()               {}
func (*ENumber) isExpr()             {}
func (*EString) isExpr()             {}
func (*EColor) isExpr()              {}
func (*EVariable) isExpr()           {}
func (*EListLiteral) isExpr()        {}
func (*EMapLiteral) isExpr()         {}
func (*EUnary) isExpr()              {}
func (*EBinary) isExpr()             {}
func (*ETernarySlash) isExpr()       {}
func (*EParen) isExpr()              {}
func (*ECall) isExpr()               {}
func (*ESupportsCondition) isExpr()  {}
