// Package unification implements the equation-list unification algorithm
// (Delete / Clash / Decompose / Swap / Eliminate / Occurs / Stuck) used by
// the Micro-ML type-inference driver to solve the equations produced by
// package typeeqs.
package unification

import (
	"fmt"

	"github.com/gavinvogt/type-inference-survey/types"
)

// Substitution は型変数から型への代入を表します。
// キーは型変数の名前 (例: "t0", "a") です。
type Substitution map[string]types.Type

// EmptySubstitution は空の代入を返します。
func EmptySubstitution() Substitution {
	return make(Substitution)
}

// Apply は代入を型に適用します。循環参照を防ぐために内部で applyRecursive を呼び出します。
func Apply(sub Substitution, t types.Type) types.Type {
	return applyRecursive(sub, t, make(map[string]struct{}))
}

// applyRecursive は代入を型に適用する内部関数です。
// resolving は現在解決中の型変数名を追跡し、循環参照による無限ループを防ぎます。
func applyRecursive(sub Substitution, t types.Type, resolving map[string]struct{}) types.Type {
	switch tt := t.(type) {
	case types.TCon:
		return tt
	case types.TVar:
		if _, already := resolving[tt.Name]; already {
			return tt
		}
		if replacement, ok := sub[tt.Name]; ok {
			resolving[tt.Name] = struct{}{}
			resolved := applyRecursive(sub, replacement, resolving)
			delete(resolving, tt.Name)
			return resolved
		}
		return tt
	case types.TFunc:
		return types.TFunc{
			ArgType:    applyRecursive(sub, tt.ArgType, resolving),
			ReturnType: applyRecursive(sub, tt.ReturnType, resolving),
		}
	case types.TList:
		return types.TList{ElType: applyRecursive(sub, tt.ElType, resolving)}
	default:
		panic(fmt.Sprintf("unification: applyRecursive: unhandled type %T", t))
	}
}

// OccursCheck は型変数 v が型 t の自由変数に含まれているかを判定します。
func OccursCheck(v types.TVar, t types.Type) bool {
	return t.FreeTypeVars().Contains(v)
}

// Equation は2つの型を等しいとみなす無向の等式 (t1 = t2) を表します。
type Equation struct {
	Left  types.Type
	Right types.Type
}

// typesEqual はτ(a) == τ(b) であるか (木として同型か) を判定します。
func typesEqual(a, b types.Type) bool {
	switch av := a.(type) {
	case types.TCon:
		bv, ok := b.(types.TCon)
		return ok && av.Name == bv.Name
	case types.TVar:
		bv, ok := b.(types.TVar)
		return ok && av.Name == bv.Name
	case types.TFunc:
		bv, ok := b.(types.TFunc)
		return ok && typesEqual(av.ArgType, bv.ArgType) && typesEqual(av.ReturnType, bv.ReturnType)
	case types.TList:
		bv, ok := b.(types.TList)
		return ok && typesEqual(av.ElType, bv.ElType)
	default:
		return false
	}
}

// substituteOne は型 t の中に現れる型変数 x の出現をすべて r に置き換えます。
// 既存の代入 σ の値、および残りのキュー内の等式の両方に適用されます (Eliminate 規則)。
func substituteOne(t types.Type, x types.TVar, r types.Type) types.Type {
	switch tt := t.(type) {
	case types.TVar:
		if tt.Name == x.Name {
			return r
		}
		return tt
	case types.TFunc:
		return types.TFunc{
			ArgType:    substituteOne(tt.ArgType, x, r),
			ReturnType: substituteOne(tt.ReturnType, x, r),
		}
	case types.TList:
		return types.TList{ElType: substituteOne(tt.ElType, x, r)}
	default:
		return tt
	}
}

// Solve は等式キューに対して §4.E の規則表 (Delete/Clash/Decompose/Swap/
// Eliminate/Occurs/Stuck) を適用し、冪等な最汎代入 (MGU) を返します。
//
// キューは先頭からpopし、Decompose と Swap で生じる新しい等式は先頭に積む
// (深さ優先で直後に処理される)。この順序は
// original_source/type-inference/type_unification.py の unify() が
// equations.pop(0) / equations.insert(0, ...) で実装している挙動と一致する。
func Solve(equations []Equation) (Substitution, error) {
	queue := append([]Equation(nil), equations...)
	sub := EmptySubstitution()

	for len(queue) > 0 {
		eq := queue[0]
		queue = queue[1:]
		t1, t2 := eq.Left, eq.Right

		switch {
		case typesEqual(t1, t2):
			// Delete: x = x のような自明な等式は捨てる

		case isTCon(t1) && isTCon(t2):
			// 両方とも定数型で、かつ上のDeleteに引っかからなかった = 名前が違う
			return nil, fmt.Errorf("unification: clash between %s and %s", t1, t2)

		case isTFunc(t1) && isTFunc(t2):
			f1, f2 := t1.(types.TFunc), t2.(types.TFunc)
			decomposed := []Equation{
				{Left: f1.ArgType, Right: f2.ArgType},
				{Left: f1.ReturnType, Right: f2.ReturnType},
			}
			queue = append(decomposed, queue...)

		case isTList(t1) && isTList(t2):
			l1, l2 := t1.(types.TList), t2.(types.TList)
			queue = append([]Equation{{Left: l1.ElType, Right: l2.ElType}}, queue...)

		case isTVar(t2) && !isTVar(t1):
			// Swap: 型変数を左側に寄せる (Orient)
			queue = append([]Equation{{Left: t2, Right: t1}}, queue...)

		case isTVar(t1):
			v := t1.(types.TVar)
			if OccursCheck(v, t2) {
				return nil, fmt.Errorf("unification: occurs check failed: %s occurs in %s", v, t2)
			}
			for i, q := range queue {
				queue[i] = Equation{
					Left:  substituteOne(q.Left, v, t2),
					Right: substituteOne(q.Right, v, t2),
				}
			}
			for name, val := range sub {
				sub[name] = substituteOne(val, v, t2)
			}
			sub[v.Name] = t2

		default:
			return nil, fmt.Errorf("unification: stuck on equation %s = %s", t1, t2)
		}
	}

	return sub, nil
}

func isTCon(t types.Type) bool  { _, ok := t.(types.TCon); return ok }
func isTVar(t types.Type) bool  { _, ok := t.(types.TVar); return ok }
func isTFunc(t types.Type) bool { _, ok := t.(types.TFunc); return ok }
func isTList(t types.Type) bool { _, ok := t.(types.TList); return ok }
