// Package robinson implements the disagreement-set unification algorithm
// given by Robinson in the 1965 paper "A Machine-Oriented Logic Based on
// the Resolution Principle", over the first-order term algebra in
// package term.
package robinson

import (
	"fmt"
	"sort"

	"github.com/gavinvogt/type-inference-survey/term"
)

// substitutionAll は集合内のすべての項に代入を適用します。
// 適用後に構造的に等しくなった項は1つにまとめられる (集合の意味論)。
func substitutionAll(terms []term.Term, sub map[string]term.Term) []term.Term {
	result := make([]term.Term, 0, len(terms))
	for _, t := range terms {
		applied := term.ApplySubstitution(t, sub)
		if !containsEqual(result, applied) {
			result = append(result, applied)
		}
	}
	return result
}

func containsEqual(terms []term.Term, t term.Term) bool {
	for _, other := range terms {
		if other.Equal(t) {
			return true
		}
	}
	return false
}

// DisagreementSet は与えられた項集合の不一致集合を計算します。
// 共有している先頭から深さ優先で比較し、最初に食い違う位置の部分項の集合を返す。
func DisagreementSet(terms []term.Term) []term.Term {
	if len(terms) <= 1 {
		return nil
	}

	for _, t := range terms {
		if _, ok := t.(term.Variable); ok {
			// 変数 x = t1 = t2 = ... での不一致 (少なくとも2つは不等)
			return terms
		}
	}

	// すべて Application
	first := terms[0].(term.Application)
	funcName := first.Name()
	arity := first.Arity()
	for _, t := range terms {
		app := t.(term.Application)
		if app.Name() != funcName || app.Arity() != arity {
			// 名前またはアリティが異なる = ここが不一致位置
			return terms
		}
	}

	for i := 0; i < arity; i++ {
		ithArgs := make([]term.Term, len(terms))
		for j, t := range terms {
			ithArgs[j] = t.(term.Application).Args()[i]
		}
		disagreement := DisagreementSet(dedupe(ithArgs))
		if len(disagreement) != 0 {
			return disagreement
		}
	}
	return nil
}

func dedupe(terms []term.Term) []term.Term {
	result := make([]term.Term, 0, len(terms))
	for _, t := range terms {
		if !containsEqual(result, t) {
			result = append(result, t)
		}
	}
	return result
}

// LexicalOrder は不一致集合を語彙順 (変数が先、その後に適用) に並べ替えます。
func LexicalOrder(terms []term.Term) []term.Term {
	result := append([]term.Term(nil), terms...)
	sort.SliceStable(result, func(i, j int) bool {
		_, iVar := result[i].(term.Variable)
		_, jVar := result[j].(term.Variable)
		return iVar && !jVar
	})
	return result
}

// Unify は項集合 S に対してロビンソンのアルゴリズムを実行し、
// 成功すれば代入 σ を、失敗すればクラッシュまたは出現検査エラーを返します。
//
// 状態: 代入 σ (初期値は空)。σ を S の各項に適用した結果が単集合になるまで、
// 不一致集合の先頭2つ s, t を取り出し、s が変数で occurs(s, t) が偽なら
// σ に {s ↦ t} を合成する。
func Unify(terms []term.Term) (map[string]term.Term, error) {
	sub := make(map[string]term.Term)

	for {
		applied := substitutionAll(terms, sub)
		if len(applied) == 1 {
			return sub, nil
		}

		disagreement := LexicalOrder(DisagreementSet(applied))
		if len(disagreement) < 2 {
			return nil, fmt.Errorf("robinson: could not find disagreement in non-singleton set")
		}
		s, t := disagreement[0], disagreement[1]

		sVar, ok := s.(term.Variable)
		if !ok || term.Occurs(sVar, t) {
			return nil, fmt.Errorf("robinson: not unifiable: %s and %s", s, t)
		}

		for name, existing := range sub {
			sub[name] = term.Substitute(existing, sVar, t)
		}
		sub[sVar.Name()] = t
	}
}
