// Package ast defines the Micro-ML abstract syntax tree. These are plain
// Go values with no participle struct tags of their own — package parser
// parses source into its own concrete grammar types and lowers them into
// this tree, since the CST needed to avoid left recursion (operator
// precedence chains, greedy curried application) does not match the
// clean node set this spec names.
package ast

import (
	"fmt"

	"github.com/gavinvogt/type-inference-survey/scope"
)

// Expression is satisfied by every Micro-ML expression node. Every
// variant except Id owns a fresh type symbol, filled in by the
// type-equation generator (package typeeqs); Id instead borrows its
// symbol from the enclosing scope.
type Expression interface {
	String() string
	sealedExpression()
}

// Program is the root node: a sequence of top-level function definitions.
type Program struct {
	Defs []*FunctionDefinition
}

func (p *Program) String() string {
	s := ""
	for _, def := range p.Defs {
		s += def.String() + ";\n"
	}
	return s
}

// FunctionDefinition is `fun name p1 p2 ... = body`. Params is curried
// and may be empty (a zero-argument definition takes `unit`).
type FunctionDefinition struct {
	Name   string
	Params []string
	Body   Expression
}

func (f *FunctionDefinition) String() string {
	return fmt.Sprintf("fun %s = %s", f.Name, f.Body)
}

// exprBase carries the type symbol shared by every non-Id expression.
type exprBase struct {
	Symbol *scope.TypeSymbol
}

func newExprBase() exprBase { return exprBase{Symbol: scope.NewTypeSymbol()} }

func (e *exprBase) sealedExpression() {}

// If is `if cond then thenExpr else elseExpr`.
type If struct {
	exprBase
	Cond, Then, Else Expression
}

// NewIf builds an If node with a fresh type symbol.
func NewIf(cond, then, els Expression) *If {
	return &If{exprBase: newExprBase(), Cond: cond, Then: then, Else: els}
}

func (i *If) String() string {
	return fmt.Sprintf("if %s then %s else %s", i.Cond, i.Then, i.Else)
}

// Let is `let var = val in body`, binding var monomorphically within body.
type Let struct {
	exprBase
	Var      string
	VarSym   *scope.TypeSymbol
	Val      Expression
	Body     Expression
}

// NewLet builds a Let node with a fresh type symbol for both the result
// and the bound variable.
func NewLet(v string, val, body Expression) *Let {
	return &Let{exprBase: newExprBase(), Var: v, VarSym: scope.NewTypeSymbol(), Val: val, Body: body}
}

func (l *Let) String() string {
	return fmt.Sprintf("let %s = %s in %s", l.Var, l.Val, l.Body)
}

// Fn is `fn p1 p2 ... => body`, a (possibly zero-parameter) curried
// anonymous function.
type Fn struct {
	exprBase
	Params    []string
	ParamSyms []*scope.TypeSymbol
	Body      Expression
}

// NewFn builds an Fn node, minting a fresh type symbol per parameter.
func NewFn(params []string, body Expression) *Fn {
	syms := make([]*scope.TypeSymbol, len(params))
	for i := range params {
		syms[i] = scope.NewTypeSymbol()
	}
	return &Fn{exprBase: newExprBase(), Params: params, ParamSyms: syms, Body: body}
}

func (f *Fn) String() string {
	s := "fn"
	for _, p := range f.Params {
		s += " " + p
	}
	return s + fmt.Sprintf(" => %s", f.Body)
}

// Call is `funcExpr arg` — single-argument application. Multi-argument
// calls are represented as left-nested Calls: `f a b` is Call(Call(f,a),b).
type Call struct {
	exprBase
	Func, Arg Expression
}

// NewCall builds a Call node with a fresh type symbol.
func NewCall(fn, arg Expression) *Call {
	return &Call{exprBase: newExprBase(), Func: fn, Arg: arg}
}

func (c *Call) String() string {
	return fmt.Sprintf("(%s %s)", c.Func, c.Arg)
}

// Binary is a binary operator application: `left op right`.
type Binary struct {
	exprBase
	Op          string
	Left, Right Expression
}

// NewBinary builds a Binary node with a fresh type symbol.
func NewBinary(op string, left, right Expression) *Binary {
	return &Binary{exprBase: newExprBase(), Op: op, Left: left, Right: right}
}

func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

// Unary is a unary prefix operator application: `-e` or `not e`.
type Unary struct {
	exprBase
	Op   string
	Expr Expression
}

// NewUnary builds a Unary node with a fresh type symbol.
func NewUnary(op string, expr Expression) *Unary {
	return &Unary{exprBase: newExprBase(), Op: op, Expr: expr}
}

func (u *Unary) String() string { return fmt.Sprintf("(%s %s)", u.Op, u.Expr) }

// Id is an identifier reference. Unlike every other Expression it has no
// type symbol of its own: its type comes from looking Name up in the
// enclosing scope.
type Id struct {
	Name string
}

func (i *Id) String() string     { return i.Name }
func (i *Id) sealedExpression()  {}

// Unit is the `()` literal.
type Unit struct{ exprBase }

// NewUnit builds a Unit node with a fresh type symbol.
func NewUnit() *Unit { return &Unit{exprBase: newExprBase()} }

func (u *Unit) String() string { return "()" }

// IntLit is an integer literal.
type IntLit struct {
	exprBase
	Value int
}

// NewIntLit builds an IntLit node with a fresh type symbol.
func NewIntLit(v int) *IntLit { return &IntLit{exprBase: newExprBase(), Value: v} }

func (l *IntLit) String() string { return fmt.Sprintf("%d", l.Value) }

// RealLit is a floating-point literal.
type RealLit struct {
	exprBase
	Value float64
}

// NewRealLit builds a RealLit node with a fresh type symbol.
func NewRealLit(v float64) *RealLit { return &RealLit{exprBase: newExprBase(), Value: v} }

func (l *RealLit) String() string { return fmt.Sprintf("%g", l.Value) }

// BoolLit is a boolean literal.
type BoolLit struct {
	exprBase
	Value bool
}

// NewBoolLit builds a BoolLit node with a fresh type symbol.
func NewBoolLit(v bool) *BoolLit { return &BoolLit{exprBase: newExprBase(), Value: v} }

func (l *BoolLit) String() string { return fmt.Sprintf("%t", l.Value) }
