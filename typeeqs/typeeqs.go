// Package typeeqs walks a Micro-ML AST and produces the type equations
// (§4.H) that package unification then solves. Every non-Id expression
// node is assigned a fresh type variable the moment it is visited;
// Generate never revisits a node, so each symbol is set exactly once.
package typeeqs

import (
	"fmt"

	"github.com/gavinvogt/type-inference-survey/ast"
	"github.com/gavinvogt/type-inference-survey/scope"
	"github.com/gavinvogt/type-inference-survey/types"
	"github.com/gavinvogt/type-inference-survey/unification"
)

func bindFresh(sym *scope.TypeSymbol) types.Type {
	t := types.NewTypeVar()
	sym.Set(t)
	return t
}

func eq(left, right types.Type) unification.Equation {
	return unification.Equation{Left: left, Right: right}
}

// Generate produces the type of expr along with every equation implied
// by it and its subexpressions.
func Generate(expr ast.Expression, sc *scope.Scope) (types.Type, []unification.Equation, error) {
	switch e := expr.(type) {
	case *ast.IntLit:
		t := bindFresh(e.Symbol)
		return t, []unification.Equation{eq(t, types.Int)}, nil

	case *ast.RealLit:
		t := bindFresh(e.Symbol)
		return t, []unification.Equation{eq(t, types.Real)}, nil

	case *ast.BoolLit:
		t := bindFresh(e.Symbol)
		return t, []unification.Equation{eq(t, types.Bool)}, nil

	case *ast.Unit:
		t := bindFresh(e.Symbol)
		return t, []unification.Equation{eq(t, types.Unit)}, nil

	case *ast.Id:
		sym, err := sc.Lookup(e.Name)
		if err != nil {
			return nil, nil, fmt.Errorf("typeeqs: %w", err)
		}
		return sym.Type(), nil, nil

	case *ast.If:
		condT, eqs, err := Generate(e.Cond, sc)
		if err != nil {
			return nil, nil, err
		}
		thenT, thenEqs, err := Generate(e.Then, sc)
		if err != nil {
			return nil, nil, err
		}
		elseT, elseEqs, err := Generate(e.Else, sc)
		if err != nil {
			return nil, nil, err
		}
		t := bindFresh(e.Symbol)
		eqs = append(eqs, thenEqs...)
		eqs = append(eqs, elseEqs...)
		eqs = append(eqs, eq(condT, types.Bool), eq(thenT, elseT), eq(t, thenT))
		return t, eqs, nil

	case *ast.Let:
		// Monomorphic let (§9): Val is typed in the OUTER scope, and the
		// bound variable's type is fixed, never generalized over.
		valT, eqs, err := Generate(e.Val, sc)
		if err != nil {
			return nil, nil, err
		}
		varT := bindFresh(e.VarSym)
		inner := sc.NewChild()
		if err := inner.Bind(e.Var, e.VarSym); err != nil {
			return nil, nil, fmt.Errorf("typeeqs: %w", err)
		}
		bodyT, bodyEqs, err := Generate(e.Body, inner)
		if err != nil {
			return nil, nil, err
		}
		t := bindFresh(e.Symbol)
		eqs = append(eqs, eq(varT, valT))
		eqs = append(eqs, bodyEqs...)
		eqs = append(eqs, eq(t, bodyT))
		return t, eqs, nil

	case *ast.Fn:
		inner := sc.NewChild()
		paramTypes := make([]types.Type, len(e.Params))
		for i, p := range e.Params {
			paramTypes[i] = bindFresh(e.ParamSyms[i])
			if err := inner.Bind(p, e.ParamSyms[i]); err != nil {
				return nil, nil, fmt.Errorf("typeeqs: %w", err)
			}
		}
		bodyT, eqs, err := Generate(e.Body, inner)
		if err != nil {
			return nil, nil, err
		}
		fnType := curriedFuncType(paramTypes, bodyT)
		t := bindFresh(e.Symbol)
		eqs = append(eqs, eq(t, fnType))
		return t, eqs, nil

	case *ast.Call:
		fnT, eqs, err := Generate(e.Func, sc)
		if err != nil {
			return nil, nil, err
		}
		argT, argEqs, err := Generate(e.Arg, sc)
		if err != nil {
			return nil, nil, err
		}
		t := bindFresh(e.Symbol)
		eqs = append(eqs, argEqs...)
		eqs = append(eqs, eq(fnT, types.TFunc{ArgType: argT, ReturnType: t}))
		return t, eqs, nil

	case *ast.Binary:
		leftT, eqs, err := Generate(e.Left, sc)
		if err != nil {
			return nil, nil, err
		}
		rightT, rightEqs, err := Generate(e.Right, sc)
		if err != nil {
			return nil, nil, err
		}
		t := bindFresh(e.Symbol)
		eqs = append(eqs, rightEqs...)
		opEqs, err := binaryOpEquations(e.Op, leftT, rightT, t)
		if err != nil {
			return nil, nil, err
		}
		eqs = append(eqs, opEqs...)
		return t, eqs, nil

	case *ast.Unary:
		exprT, eqs, err := Generate(e.Expr, sc)
		if err != nil {
			return nil, nil, err
		}
		t := bindFresh(e.Symbol)
		opEqs, err := unaryOpEquations(e.Op, exprT, t)
		if err != nil {
			return nil, nil, err
		}
		eqs = append(eqs, opEqs...)
		return t, eqs, nil

	default:
		return nil, nil, fmt.Errorf("typeeqs: unhandled expression type %T", expr)
	}
}

// curriedFuncType builds the right-associative curried function type for
// a parameter list: [a, b, c] and body t become a -> (b -> (c -> t)). A
// zero-parameter function takes unit.
func curriedFuncType(params []types.Type, body types.Type) types.Type {
	if len(params) == 0 {
		return types.TFunc{ArgType: types.Unit, ReturnType: body}
	}
	result := body
	for i := len(params) - 1; i >= 0; i-- {
		result = types.TFunc{ArgType: params[i], ReturnType: result}
	}
	return result
}

// binaryOpEquations implements the §4.H operator table: comparisons
// require equal operand types and produce bool; +,-,* require int
// operands and produce int; / requires real operands and produces real;
// and/or require bool operands and produce bool.
func binaryOpEquations(op string, left, right, result types.Type) ([]unification.Equation, error) {
	switch op {
	case "==", "!=", "<", "<=", ">", ">=":
		return []unification.Equation{eq(left, right), eq(result, types.Bool)}, nil
	case "+", "-", "*":
		return []unification.Equation{eq(left, types.Int), eq(right, types.Int), eq(result, types.Int)}, nil
	case "/":
		return []unification.Equation{eq(left, types.Real), eq(right, types.Real), eq(result, types.Real)}, nil
	case "and", "or":
		return []unification.Equation{eq(left, types.Bool), eq(right, types.Bool), eq(result, types.Bool)}, nil
	default:
		return nil, fmt.Errorf("typeeqs: unknown binary operator %q", op)
	}
}

// unaryOpEquations implements the §4.H unary operator table: "-" is
// int -> int, "not" is bool -> bool.
func unaryOpEquations(op string, operand, result types.Type) ([]unification.Equation, error) {
	switch op {
	case "-":
		return []unification.Equation{eq(operand, types.Int), eq(result, types.Int)}, nil
	case "not":
		return []unification.Equation{eq(operand, types.Bool), eq(result, types.Bool)}, nil
	default:
		return nil, fmt.Errorf("typeeqs: unknown unary operator %q", op)
	}
}

// GenerateDef produces the equations for a top-level function
// definition, including the equation tying fSym (the definition's own
// entry in the global scope) to its curried parameter/body type.
func GenerateDef(def *ast.FunctionDefinition, fSym *scope.TypeSymbol, global *scope.Scope) ([]unification.Equation, error) {
	inner := global.NewChild()
	paramTypes := make([]types.Type, len(def.Params))
	for i, p := range def.Params {
		sym, err := inner.Create(p)
		if err != nil {
			return nil, fmt.Errorf("typeeqs: %w", err)
		}
		paramTypes[i] = bindFresh(sym)
	}

	bodyT, eqs, err := Generate(def.Body, inner)
	if err != nil {
		return nil, err
	}

	fnType := curriedFuncType(paramTypes, bodyT)
	eqs = append(eqs, eq(fSym.Type(), fnType))
	return eqs, nil
}
