// Package parser implements the lexer and recursive-descent grammar for
// Micro-ML source, built on the same participle/v2 library the term
// parser (package termparser) uses. Grammar, grounded on
// original_source/type-inference/microml/{scanner,parser}.py:
//
//	program   ::= { func_def ";" }
//	func_def  ::= "fun" ID { ID } "=" expr
//	expr      ::= if_expr | let_expr | fn_expr | expr0
//	if_expr   ::= "if" expr "then" expr "else" expr
//	let_expr  ::= "let" ID "=" expr "in" expr
//	fn_expr   ::= "fn" { ID } "=>" expr
//	expr0     ::= expr1 { "or" expr1 }
//	expr1     ::= expr2 { "and" expr2 }
//	expr2     ::= expr3 [ cmp_op expr3 ]          ; non-associative
//	expr3     ::= expr4 { ("+"|"-") expr4 }
//	expr4     ::= expr5 { ("*"|"/") expr5 }
//	expr5     ::= { "-" | "not" } expr6
//	expr6     ::= atom { atom }                   ; juxtaposition = curried application
//	atom      ::= INT | REAL | "true" | "false" | ID | "(" [ expr ] ")"
//
// Since this grammar needs a CST shape (left-recursion-avoiding operator
// chains, a greedy atom sequence for curried application) that does not
// match the clean node set package ast names, parsing happens in two
// steps: participle builds the CST below, then lower() turns it into an
// *ast.Program.
package parser

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/gavinvogt/type-inference-survey/ast"
)

// MicroMLLexer defines the lexical rules for Micro-ML. REAL is tried
// before INT so that "12.5" lexes as one real literal rather than
// INT(12) . ??? . INT(5); keywords are tried before Ident with a
// trailing word boundary so "function" does not lex as FunKw+"ction".
var MicroMLLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Real", Pattern: `[0-9]+\.[0-9]+`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "FunKw", Pattern: `fun\b`},
	{Name: "FnKw", Pattern: `fn\b`},
	{Name: "IfKw", Pattern: `if\b`},
	{Name: "ThenKw", Pattern: `then\b`},
	{Name: "ElseKw", Pattern: `else\b`},
	{Name: "LetKw", Pattern: `let\b`},
	{Name: "InKw", Pattern: `in\b`},
	{Name: "TrueKw", Pattern: `true\b`},
	{Name: "FalseKw", Pattern: `false\b`},
	{Name: "AndKw", Pattern: `and\b`},
	{Name: "OrKw", Pattern: `or\b`},
	{Name: "NotKw", Pattern: `not\b`},
	{Name: "Ident", Pattern: `[A-Za-z]\w*`},
	{Name: "Arrow", Pattern: `=>`},
	{Name: "Le", Pattern: `<=`},
	{Name: "Ge", Pattern: `>=`},
	{Name: "Eq", Pattern: `==`},
	{Name: "Ne", Pattern: `!=`},
	{Name: "Assign", Pattern: `=`},
	{Name: "Lt", Pattern: `<`},
	{Name: "Gt", Pattern: `>`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Plus", Pattern: `\+`},
	{Name: "Minus", Pattern: `-`},
	{Name: "Star", Pattern: `\*`},
	{Name: "Slash", Pattern: `/`},
	{Name: "End", Pattern: `;`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})

// --- CST (concrete syntax tree produced directly by participle) ---

type programCST struct {
	Defs []*funcDefCST `( @@ ";" )*`
}

type funcDefCST struct {
	Name   string   `"fun" @Ident`
	Params []string `@Ident*`
	Body   *exprCST `"=" @@`
}

type exprCST struct {
	If  *ifExprCST `  @@`
	Let *letExprCST `| @@`
	Fn  *fnExprCST `| @@`
	Or  *orExprCST `| @@`
}

type ifExprCST struct {
	Cond *exprCST `"if" @@`
	Then *exprCST `"then" @@`
	Else *exprCST `"else" @@`
}

type letExprCST struct {
	Var  string   `"let" @Ident`
	Val  *exprCST `"=" @@`
	Body *exprCST `"in" @@`
}

type fnExprCST struct {
	Params []string `"fn" @Ident*`
	Body   *exprCST `"=>" @@`
}

type orExprCST struct {
	Left   *andExprCST   `@@`
	Rights []*andExprCST `( "or" @@ )*`
}

type andExprCST struct {
	Left   *cmpExprCST   `@@`
	Rights []*cmpExprCST `( "and" @@ )*`
}

// cmpExprCST is non-associative: at most one comparison operator.
type cmpExprCST struct {
	Left  *addExprCST `@@`
	Op    *string     `( @("!=" | "<=" | "==" | ">=" | "<" | ">")`
	Right *addExprCST `  @@ )?`
}

type addExprCST struct {
	Left   *mulExprCST    `@@`
	Rights []*opMulExprCST `@@*`
}

type opMulExprCST struct {
	Op    string      `@("+" | "-")`
	Right *mulExprCST `@@`
}

type mulExprCST struct {
	Left   *unaryExprCST    `@@`
	Rights []*opUnaryExprCST `@@*`
}

type opUnaryExprCST struct {
	Op    string        `@("*" | "/")`
	Right *unaryExprCST `@@`
}

// unaryExprCST collects a run of prefix "-"/"not" operators, applied
// right-to-left (innermost operator first) once lowered.
type unaryExprCST struct {
	Ops  []string    `( @("-" | "not") )*`
	Call *callExprCST `@@`
}

// callExprCST is a greedy left-associative application chain: the first
// atom is the callee (or a bare value if no further atoms follow), and
// every following atom is applied as a curried argument.
type callExprCST struct {
	Head *atomCST   `@@`
	Args []*atomCST `@@*`
}

type atomCST struct {
	Int    *string  `  @Int`
	Real   *string  `| @Real`
	True   *string  `| @TrueKw`
	False  *string  `| @FalseKw`
	Ident  *string  `| @Ident`
	LParen *string  `| @"("`
	Inner  *exprCST `  @@?`
	RParen *string  `  @")"`
}

var microMLParser *participle.Parser[programCST]

func init() {
	var err error
	microMLParser, err = participle.Build[programCST](
		participle.Lexer(MicroMLLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(2),
	)
	if err != nil {
		panic("parser: failed to build Micro-ML parser: " + err.Error())
	}
}

// Parse parses Micro-ML source into an *ast.Program.
func Parse(source string) (*ast.Program, error) {
	cst, err := microMLParser.ParseString("", source)
	if err != nil {
		return nil, fmt.Errorf("parser: %w", err)
	}
	return lowerProgram(cst)
}

// --- lowering: CST -> ast ---

func lowerProgram(p *programCST) (*ast.Program, error) {
	defs := make([]*ast.FunctionDefinition, 0, len(p.Defs))
	for _, d := range p.Defs {
		body, err := lowerExpr(d.Body)
		if err != nil {
			return nil, err
		}
		defs = append(defs, &ast.FunctionDefinition{Name: d.Name, Params: d.Params, Body: body})
	}
	return &ast.Program{Defs: defs}, nil
}

func lowerExpr(e *exprCST) (ast.Expression, error) {
	switch {
	case e.If != nil:
		cond, err := lowerExpr(e.If.Cond)
		if err != nil {
			return nil, err
		}
		then, err := lowerExpr(e.If.Then)
		if err != nil {
			return nil, err
		}
		els, err := lowerExpr(e.If.Else)
		if err != nil {
			return nil, err
		}
		return ast.NewIf(cond, then, els), nil

	case e.Let != nil:
		val, err := lowerExpr(e.Let.Val)
		if err != nil {
			return nil, err
		}
		body, err := lowerExpr(e.Let.Body)
		if err != nil {
			return nil, err
		}
		return ast.NewLet(e.Let.Var, val, body), nil

	case e.Fn != nil:
		body, err := lowerExpr(e.Fn.Body)
		if err != nil {
			return nil, err
		}
		return ast.NewFn(e.Fn.Params, body), nil

	case e.Or != nil:
		return lowerOr(e.Or)

	default:
		return nil, fmt.Errorf("parser: empty expression node")
	}
}

func lowerOr(o *orExprCST) (ast.Expression, error) {
	left, err := lowerAnd(o.Left)
	if err != nil {
		return nil, err
	}
	for _, r := range o.Rights {
		right, err := lowerAnd(r)
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary("or", left, right)
	}
	return left, nil
}

func lowerAnd(a *andExprCST) (ast.Expression, error) {
	left, err := lowerCmp(a.Left)
	if err != nil {
		return nil, err
	}
	for _, r := range a.Rights {
		right, err := lowerCmp(r)
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary("and", left, right)
	}
	return left, nil
}

func lowerCmp(c *cmpExprCST) (ast.Expression, error) {
	left, err := lowerAdd(c.Left)
	if err != nil {
		return nil, err
	}
	if c.Op == nil {
		return left, nil
	}
	right, err := lowerAdd(c.Right)
	if err != nil {
		return nil, err
	}
	return ast.NewBinary(*c.Op, left, right), nil
}

func lowerAdd(a *addExprCST) (ast.Expression, error) {
	left, err := lowerMul(a.Left)
	if err != nil {
		return nil, err
	}
	for _, r := range a.Rights {
		right, err := lowerMul(r.Right)
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(r.Op, left, right)
	}
	return left, nil
}

func lowerMul(m *mulExprCST) (ast.Expression, error) {
	left, err := lowerUnary(m.Left)
	if err != nil {
		return nil, err
	}
	for _, r := range m.Rights {
		right, err := lowerUnary(r.Right)
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(r.Op, left, right)
	}
	return left, nil
}

func lowerUnary(u *unaryExprCST) (ast.Expression, error) {
	expr, err := lowerCall(u.Call)
	if err != nil {
		return nil, err
	}
	for i := len(u.Ops) - 1; i >= 0; i-- {
		expr = ast.NewUnary(u.Ops[i], expr)
	}
	return expr, nil
}

func lowerCall(c *callExprCST) (ast.Expression, error) {
	expr, err := lowerAtom(c.Head)
	if err != nil {
		return nil, err
	}
	for _, a := range c.Args {
		arg, err := lowerAtom(a)
		if err != nil {
			return nil, err
		}
		expr = ast.NewCall(expr, arg)
	}
	return expr, nil
}

func lowerAtom(a *atomCST) (ast.Expression, error) {
	switch {
	case a.Int != nil:
		v, err := strconv.Atoi(*a.Int)
		if err != nil {
			return nil, fmt.Errorf("parser: invalid integer literal %q: %w", *a.Int, err)
		}
		return ast.NewIntLit(v), nil
	case a.Real != nil:
		v, err := strconv.ParseFloat(*a.Real, 64)
		if err != nil {
			return nil, fmt.Errorf("parser: invalid real literal %q: %w", *a.Real, err)
		}
		return ast.NewRealLit(v), nil
	case a.True != nil:
		return ast.NewBoolLit(true), nil
	case a.False != nil:
		return ast.NewBoolLit(false), nil
	case a.Ident != nil:
		return &ast.Id{Name: *a.Ident}, nil
	case a.LParen != nil:
		if a.Inner == nil {
			return ast.NewUnit(), nil
		}
		return lowerExpr(a.Inner)
	default:
		return nil, fmt.Errorf("parser: empty atom")
	}
}
