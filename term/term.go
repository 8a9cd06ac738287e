// Package term implements the first-order term algebra shared by the
// Robinson, equation-list, and multiequation unification engines:
// Variable, Application, and Constant (a nullary Application).
package term

import "strings"

// Term はすべての一階項 (Variable / Application / Constant) を表すインターフェースです。
// 項はハッシュ関数を持たず、Application はスライスを含むため map のキーにも
// 使えない。集合として扱う場合の重複判定は Equal による比較で行うこと。
type Term interface {
	Name() string
	String() string
	Equal(other Term) bool
	sealedTerm()
}

// Variable は項中の未知数 (例: x, y, x1) を表します。
type Variable struct {
	name string
}

// NewVariable は指定した名前の変数を作成します。
func NewVariable(name string) Variable {
	return Variable{name: name}
}

func (v Variable) Name() string   { return v.name }
func (v Variable) String() string { return v.name }
func (v Variable) sealedTerm()    {}

// Equal は他の項が同名の変数であるかどうかを判定します。
func (v Variable) Equal(other Term) bool {
	ov, ok := other.(Variable)
	return ok && v.name == ov.name
}

// Application は名前付き関数適用 (例: f(a, b)) を表します。
// アリティは len(Args)。
type Application struct {
	name string
	args []Term
}

// NewApplication は指定した名前と引数列を持つ関数適用を作成します。
func NewApplication(name string, args []Term) Application {
	return Application{name: name, args: append([]Term(nil), args...)}
}

// NewConstant は0項の Application (定数記号) を作成します。
func NewConstant(name string) Application {
	return NewApplication(name, nil)
}

func (a Application) Name() string { return a.name }
func (a Application) Args() []Term { return append([]Term(nil), a.args...) }
func (a Application) Arity() int   { return len(a.args) }
func (a Application) sealedTerm()  {}

func (a Application) String() string {
	if len(a.args) == 0 {
		return a.name
	}
	parts := make([]string, len(a.args))
	for i, arg := range a.args {
		parts[i] = arg.String()
	}
	return a.name + "(" + strings.Join(parts, ", ") + ")"
}

// Equal は他の項が同名・同アリティで、かつ各引数が点ごとに等しい適用であるかを判定します。
func (a Application) Equal(other Term) bool {
	oa, ok := other.(Application)
	if !ok || a.name != oa.name || len(a.args) != len(oa.args) {
		return false
	}
	for i := range a.args {
		if !a.args[i].Equal(oa.args[i]) {
			return false
		}
	}
	return true
}

// IsConstant は0項の Application かどうかを返します。
func (a Application) IsConstant() bool { return len(a.args) == 0 }

// Clone は項の深いコピーを返します。
func Clone(t Term) Term {
	switch tt := t.(type) {
	case Variable:
		return NewVariable(tt.name)
	case Application:
		args := make([]Term, len(tt.args))
		for i, arg := range tt.args {
			args[i] = Clone(arg)
		}
		return NewApplication(tt.name, args)
	default:
		panic("term: Clone: unknown term type")
	}
}
