// Package multieq implements the Martelli-Montanari (1982) "An Efficient
// Unification Algorithm" Algorithm 2 and Algorithm 3: multiequation-based
// unification over the term algebra in package term.
package multieq

import (
	"fmt"

	"github.com/gavinvogt/type-inference-survey/term"
	"github.com/gavinvogt/type-inference-survey/unionfind"
)

// Multiset は項の多重集合 (重複を許すコレクション) を表します。
type Multiset struct {
	Terms []term.Term
}

// NewMultiset は与えられた項から多重集合を作成します。
func NewMultiset(terms ...term.Term) *Multiset {
	return &Multiset{Terms: append([]term.Term(nil), terms...)}
}

// Add は多重集合に項を追加します。
func (m *Multiset) Add(t term.Term) { m.Terms = append(m.Terms, t) }

// Len は多重集合の要素数を返します。
func (m *Multiset) Len() int { return len(m.Terms) }

// Union は2つの多重集合の和を新しい多重集合として返します。
func (m *Multiset) Union(other *Multiset) *Multiset {
	return NewMultiset(append(append([]term.Term(nil), m.Terms...), other.Terms...)...)
}

// Update は他の多重集合の要素をこの多重集合に追加します (破壊的)。
func (m *Multiset) Update(other *Multiset) {
	m.Terms = append(m.Terms, other.Terms...)
}

func (m *Multiset) String() string {
	s := ""
	for i, t := range m.Terms {
		if i > 0 {
			s += ", "
		}
		s += t.String()
	}
	return "(" + s + ")"
}

// Multiequation は変数の空でない集合 S と、非変数項 (Application) の多重集合 M
// からなる等式 S = M を表します。意味論: S のすべての変数と M のすべての項が同じ
// 値を表す。
type Multiequation struct {
	Vars  map[string]term.Variable
	Terms *Multiset
}

// NewMultiequation は与えられた変数集合と項の多重集合から多等式を作成します。
func NewMultiequation(vars map[string]term.Variable, terms *Multiset) *Multiequation {
	if terms == nil {
		terms = NewMultiset()
	}
	return &Multiequation{Vars: vars, Terms: terms}
}

// VarNames は多等式の左辺変数名の集合をスライスとして返します。
func (m *Multiequation) VarNames() []string {
	names := make([]string, 0, len(m.Vars))
	for name := range m.Vars {
		names = append(names, name)
	}
	return names
}

func (m *Multiequation) String() string {
	vars := ""
	i := 0
	for name := range m.Vars {
		if i > 0 {
			vars += ", "
		}
		vars += name
		i++
	}
	return "{" + vars + "} = " + m.Terms.String()
}

func varsDisjoint(a, b map[string]term.Variable) bool {
	for name := range a {
		if _, ok := b[name]; ok {
			return false
		}
	}
	return true
}

// MakeMultiequation は統一すべき項の多重集合 M を、変数部分と非変数(項)部分に
// 分けた多等式へと変換します。
func MakeMultiequation(m *Multiset) *Multiequation {
	vars := make(map[string]term.Variable)
	terms := NewMultiset()
	for _, t := range m.Terms {
		switch tt := t.(type) {
		case term.Variable:
			vars[tt.Name()] = tt
		case term.Application:
			terms.Add(tt)
		}
	}
	return NewMultiequation(vars, terms)
}

// Seed は統一したい項のリストから初期の多等式システムを組み立てます。
// martelli_algorithm_2.py / martelli_algorithm_3.py の unify() と同じやり方:
// 名前の衝突しないダミー変数1つに全項をまとめた多等式と、項中に現れる変数
// それぞれに対する右辺が空の単独多等式を1つずつ追加する。こうすることで
// Application だけの入力でも、生成される全ての多等式が変数集合 S を持つ
// (S が空になることはない)。
func Seed(terms []term.Term) []*Multiequation {
	uniqueVar := term.NewVariable("$unify")
	system := []*Multiequation{
		NewMultiequation(map[string]term.Variable{uniqueVar.Name(): uniqueVar}, NewMultiset(terms...)),
	}

	allVars := make(map[string]term.Variable)
	for _, t := range terms {
		for name, v := range term.Vars(t) {
			allVars[name] = v
		}
	}
	for name, v := range allVars {
		system = append(system, NewMultiequation(map[string]term.Variable{name: v}, NewMultiset()))
	}
	return system
}

// DEC は項の多重集合の共通部分とフロンティアを同時に求めます。
//
//   - M の中に変数があれば、共通部分はその変数、フロンティアは M 自体を
//     多等式にまとめたもの1つだけ。
//   - そうでなければ全て Application であり、name/arity が一致しなければ
//     クラッシュ。引数位置ごとに多重集合を作って再帰する。
func DEC(m *Multiset) (term.Term, []*Multiequation, error) {
	if m.Len() == 0 {
		return nil, nil, fmt.Errorf("multieq: DEC: empty multiset")
	}

	for _, t := range m.Terms {
		if v, ok := t.(term.Variable); ok {
			return v, []*Multiequation{MakeMultiequation(m)}, nil
		}
	}

	first := m.Terms[0].(term.Application)
	funcName, arity := first.Name(), first.Arity()
	for _, t := range m.Terms {
		app := t.(term.Application)
		if app.Name() != funcName || app.Arity() != arity {
			return nil, nil, fmt.Errorf("multieq: clash: %s vs %s", first, app)
		}
	}

	commonArgs := make([]term.Term, arity)
	var frontier []*Multiequation
	for i := 0; i < arity; i++ {
		leaves := NewMultiset()
		for _, t := range m.Terms {
			leaves.Add(t.(term.Application).Args()[i])
		}
		commonArg, argFrontier, err := DEC(leaves)
		if err != nil {
			return nil, nil, err
		}
		commonArgs[i] = commonArg
		frontier = append(frontier, argFrontier...)
	}
	return term.NewApplication(funcName, commonArgs), frontier, nil
}

// Compactify は和集合データ構造 (unionfind) を使って、直接または推移的に
// 変数集合が重なる多等式を1つにまとめます。
//
//	{x1, x2} = (A)
//	{x2, x3} = (B)
//	{x4}     = (C)
//
// は次のようになる:
//
//	{x1, x2, x3} = (A, B)
//	{x4}         = (C)
func Compactify(meqs []*Multiequation) []*Multiequation {
	var allNames []string
	for _, meq := range meqs {
		allNames = append(allNames, meq.VarNames()...)
	}
	uf := unionfind.New(allNames)
	for _, meq := range meqs {
		if len(meq.Vars) >= 2 {
			uf.UnionAll(meq.VarNames())
		}
	}
	varSets := uf.Sets()

	compactified := make([]*Multiequation, 0, len(varSets))
	varToMeq := make(map[string]*Multiequation)
	for _, varSet := range varSets {
		vars := make(map[string]term.Variable, len(varSet))
		for _, name := range varSet {
			vars[name] = term.NewVariable(name)
		}
		meq := NewMultiequation(vars, NewMultiset())
		compactified = append(compactified, meq)
		for _, name := range varSet {
			varToMeq[name] = meq
		}
	}

	for _, meq := range meqs {
		for name := range meq.Vars {
			varToMeq[name].Terms.Update(meq.Terms)
			break
		}
	}
	return compactified
}

func applySubstitutionToTerm(t term.Term, sub map[string]term.Term) term.Term {
	return term.ApplySubstitution(t, sub)
}

// SolveAlgorithm2 は Martelli-Montanari の Algorithm 2 に従って多等式システム
// を解きます。選択規則は「項を持つ多等式」で、サイクル検出は生成された
// フロンティアに選択済み多等式の変数が混ざっていないかを事後的にチェックする。
func SolveAlgorithm2(system []*Multiequation) ([]*Multiequation, error) {
	U := append([]*Multiequation(nil), system...)
	var T []*Multiequation

	for len(U) > 0 {
		idx := -1
		for i, meq := range U {
			if meq.Terms.Len() > 0 {
				idx = i
				break
			}
		}
		if idx == -1 {
			break
		}

		selected := U[idx]
		common, frontier, err := DEC(selected.Terms)
		if err != nil {
			return nil, err
		}
		for _, f := range frontier {
			if !varsDisjoint(f.Vars, selected.Vars) {
				return nil, fmt.Errorf("multieq: cycle detected at %s", selected)
			}
		}

		selected.Terms = NewMultiset(common)
		U = append(U, frontier...)
		U = Compactify(U)

		sub := make(map[string]term.Term, len(selected.Vars))
		for name := range selected.Vars {
			sub[name] = common
		}
		for _, meq := range U {
			newTerms := NewMultiset()
			for _, t := range meq.Terms.Terms {
				newTerms.Add(applySubstitutionToTerm(t, sub))
			}
			meq.Terms = newTerms
		}

		relocated := relocate(U, selected.Vars)
		U = removeMultieq(U, relocated)
		T = append(T, relocated)
	}

	T = append(T, U...)
	return T, nil
}

// SolveAlgorithm3 は Algorithm 2 と同じ DEC/compactify 機構を使うが、
// サイクル検出を選択述語自身に組み込む (selectWithUniqueVars):
// 多等式の変数が U 中の他の左辺にも右辺の項にも出現しないものだけを選べる。
func SolveAlgorithm3(system []*Multiequation) ([]*Multiequation, error) {
	U := append([]*Multiequation(nil), system...)
	var T []*Multiequation

	for len(U) > 0 {
		selected := selectWithUniqueVars(U)
		if selected == nil {
			return nil, fmt.Errorf("multieq: cycle: no selectable multiequation remains")
		}

		if selected.Terms.Len() == 0 {
			U = removeMultieq(U, selected)
			T = append(T, selected)
			continue
		}

		common, frontier, err := DEC(selected.Terms)
		if err != nil {
			return nil, err
		}
		selected.Terms = NewMultiset(common)
		U = append(U, frontier...)
		U = Compactify(U)

		relocated := relocate(U, selected.Vars)
		U = removeMultieq(U, relocated)
		T = append(T, relocated)
	}

	return T, nil
}

// selectWithUniqueVars は U の中から、その変数が他のどの左辺・右辺にも現れない
// 多等式を探します。見つからなければ nil (サイクル) を返す。
func selectWithUniqueVars(U []*Multiequation) *Multiequation {
	for _, candidate := range U {
		unique := true
		for _, other := range U {
			if candidate == other {
				continue
			}
			if !varsDisjoint(candidate.Vars, other.Vars) {
				unique = false
				break
			}
			for _, t := range other.Terms.Terms {
				if !varsDisjoint(candidate.Vars, term.Vars(t)) {
					unique = false
					break
				}
			}
			if !unique {
				break
			}
		}
		if unique {
			return candidate
		}
	}
	return nil
}

// relocate は selectedVars と変数集合が重なる多等式を U の中から探して返します。
// compactify の後で selected オブジェクト自体が別の多等式に統合されている
// 可能性があるため、変数集合を手がかりに再発見する。
func relocate(U []*Multiequation, selectedVars map[string]term.Variable) *Multiequation {
	for _, meq := range U {
		if !varsDisjoint(selectedVars, meq.Vars) {
			return meq
		}
	}
	// compactify後も単独のまま残っていた場合のフォールバック
	vars := make(map[string]term.Variable, len(selectedVars))
	for name, v := range selectedVars {
		vars[name] = v
	}
	return NewMultiequation(vars, NewMultiset())
}

func removeMultieq(U []*Multiequation, target *Multiequation) []*Multiequation {
	result := make([]*Multiequation, 0, len(U))
	removed := false
	for _, meq := range U {
		if !removed && meq == target {
			removed = true
			continue
		}
		result = append(result, meq)
	}
	return result
}
