// Package inference drives Hindley-Milner-style type inference for a
// Micro-ML program: for each top-level definition it generates equations
// (package typeeqs) and solves them (package unification), resolving the
// definition's own type variable against the resulting substitution.
//
// Per §9 of the design notes, this is deliberately NOT let-polymorphic:
// the prelude and every let-bound variable get one fixed type, never a
// generalized scheme refreshed per use site. A definition that calls a
// prelude function at two incompatible element types is a clash, not an
// error in this port to fix — that is the documented behavior.
package inference

import (
	"fmt"

	"github.com/gavinvogt/type-inference-survey/ast"
	"github.com/gavinvogt/type-inference-survey/scope"
	"github.com/gavinvogt/type-inference-survey/types"
	"github.com/gavinvogt/type-inference-survey/typeeqs"
	"github.com/gavinvogt/type-inference-survey/unification"
)

// BaseTypeEnv builds the global scope pre-populated with the Micro-ML
// list prelude: nil, hd, tl, null, cons. Each binding is monomorphic on
// its own (one fixed type, never refreshed per call site, per §9), but
// the five bindings do not share a single element-type variable with
// each other — that would force, say, hd and null to agree on element
// type within one definition. Each gets its own fresh TVar, the way
// type_inference.py's builtins table does (A, B, C, D, E).
func BaseTypeEnv() (*scope.Scope, error) {
	global := scope.New()

	bindings := []struct {
		name string
		typ  func(elem types.Type) types.Type
	}{
		{"nil", func(elem types.Type) types.Type { return types.TList{ElType: elem} }},
		{"hd", func(elem types.Type) types.Type {
			return types.TFunc{ArgType: types.TList{ElType: elem}, ReturnType: elem}
		}},
		{"tl", func(elem types.Type) types.Type {
			return types.TFunc{ArgType: types.TList{ElType: elem}, ReturnType: types.TList{ElType: elem}}
		}},
		{"null", func(elem types.Type) types.Type {
			return types.TFunc{ArgType: types.TList{ElType: elem}, ReturnType: types.Bool}
		}},
		{"cons", func(elem types.Type) types.Type {
			listOfElem := types.TList{ElType: elem}
			return types.TFunc{ArgType: elem, ReturnType: types.TFunc{ArgType: listOfElem, ReturnType: listOfElem}}
		}},
	}
	for _, b := range bindings {
		sym, err := global.Create(b.name)
		if err != nil {
			return nil, fmt.Errorf("inference: prelude: %w", err)
		}
		sym.Set(b.typ(types.NewTypeVar()))
	}
	return global, nil
}

// Result is one definition's inferred principal type.
type Result struct {
	Name string
	Type types.Type
}

// InferProgram infers the type of every top-level definition in prog, in
// source order. Each definition is solved independently against the
// shared global scope, so earlier definitions are visible (monomorphically)
// to later ones, mirroring a single top-to-bottom pass over the file.
func InferProgram(prog *ast.Program) ([]Result, error) {
	global, err := BaseTypeEnv()
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(prog.Defs))
	for _, def := range prog.Defs {
		fSym, err := global.Create(def.Name)
		if err != nil {
			return nil, fmt.Errorf("inference: %w", err)
		}
		fSym.Set(types.NewTypeVar())

		eqs, err := typeeqs.GenerateDef(def, fSym, global)
		if err != nil {
			return nil, fmt.Errorf("inference: %s: %w", def.Name, err)
		}

		sub, err := unification.Solve(eqs)
		if err != nil {
			return nil, fmt.Errorf("inference: %s: %w", def.Name, err)
		}

		solved := unification.Apply(sub, fSym.Type())
		solvedSym := scope.NewTypeSymbol()
		solvedSym.Set(solved)
		global.Rebind(def.Name, solvedSym)

		results = append(results, Result{Name: def.Name, Type: solved})
	}
	return results, nil
}

// PrettyPrint renders t per §6.3: type variables are renamed, in the
// order they first appear in a left-to-right walk of the type, to
// 'a, 'b, 'c, ... (and 'a1, 'b1, ... once the alphabet is exhausted).
func PrettyPrint(t types.Type) string {
	names := make(map[string]string)
	next := 0

	var rename func(t types.Type) types.Type
	rename = func(t types.Type) types.Type {
		switch tt := t.(type) {
		case types.TVar:
			name, ok := names[tt.Name]
			if !ok {
				name = polymorphicVarName(next)
				next++
				names[tt.Name] = name
			}
			return types.TVar{Name: name}
		case types.TCon:
			return tt
		case types.TFunc:
			return types.TFunc{ArgType: rename(tt.ArgType), ReturnType: rename(tt.ReturnType)}
		case types.TList:
			return types.TList{ElType: rename(tt.ElType)}
		default:
			return tt
		}
	}

	return rename(t).String()
}

// polymorphicVarName maps 0,1,2,...,25,26,27,... to 'a,'b,...,'z,'a1,'b1,...
func polymorphicVarName(n int) string {
	letter := rune('a' + n%26)
	round := n / 26
	if round == 0 {
		return "'" + string(letter)
	}
	return fmt.Sprintf("'%c%d", letter, round)
}
