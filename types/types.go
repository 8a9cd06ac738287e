package types

import "strconv"

// Type はML方言の型システムにおけるすべての型を表すインターフェースです。
// バリアントは TVar / TCon / TFunc / TList の4種類のみです。
type Type interface {
	String() string        // 型を文字列表現で返す
	sealedType()           // このインターフェースが外部のパッケージで実装されるのを防ぐ
	FreeTypeVars() TVarSet // 型に含まれる自由な型変数のセットを返す
}

// TCon は0項の定数型 (int, real, bool, unit など) を表します。
type TCon struct {
	Name string
}

func (t TCon) String() string        { return t.Name }
func (t TCon) sealedType()           {}
func (t TCon) FreeTypeVars() TVarSet { return NewTVarSet() } // 定数型に自由変数はなし

// よく使う定数型のショートハンド。
var (
	Int  = TCon{Name: "int"}
	Real = TCon{Name: "real"}
	Bool = TCon{Name: "bool"}
	Unit = TCon{Name: "unit"}
)

var nextTypeVarID = 0

// NewTypeVar は新しい一意な型変数を生成します。
func NewTypeVar() TVar {
	id := nextTypeVarID
	nextTypeVarID++
	return TVar{Name: "t" + strconv.Itoa(id)}
}

// ResetTypeVarCounter はテスト用に型変数IDカウンターをリセットします。
func ResetTypeVarCounter() {
	nextTypeVarID = 0
}

// TVar は型変数 (例: 'a, 'b, t0, t1) を表します。
type TVar struct {
	Name string
}

func (t TVar) String() string { return t.Name }
func (t TVar) sealedType()    {}
func (t TVar) FreeTypeVars() TVarSet {
	set := NewTVarSet()
	set.Add(t)
	return set
}

// TFunc は二項のカリー化された関数型 (a -> b) を表します。
// 多引数関数は右結合のネストで表現します: a -> b -> c は TFunc{a, TFunc{b, c}}。
type TFunc struct {
	ArgType    Type
	ReturnType Type
}

func (t TFunc) String() string {
	argStr := t.ArgType.String()
	if _, ok := t.ArgType.(TFunc); ok {
		// 引数型自体が関数型のときだけ括弧を付ける。戻り値側は決して括弧で囲まない
		// (TFunc は右結合なので "a -> b -> c" がそのまま曖昧さなく読める)。
		argStr = "(" + argStr + ")"
	}
	return argStr + " -> " + t.ReturnType.String()
}
func (t TFunc) sealedType() {}
func (t TFunc) FreeTypeVars() TVarSet {
	return t.ArgType.FreeTypeVars().Union(t.ReturnType.FreeTypeVars())
}

// TList は同種リスト型 (例: int[], ('a -> 'b)[]) を表します。
type TList struct {
	ElType Type
}

func (t TList) String() string {
	elStr := t.ElType.String()
	if _, ok := t.ElType.(TFunc); ok {
		elStr = "(" + elStr + ")"
	}
	return elStr + "[]"
}
func (t TList) sealedType()           {}
func (t TList) FreeTypeVars() TVarSet { return t.ElType.FreeTypeVars() }

// TVarSet は型変数の集合を表す型です。
type TVarSet map[string]struct{} // 型変数名をキーとするマップ

// NewTVarSet は新しい空の型変数集合を作成します。
func NewTVarSet() TVarSet {
	return make(TVarSet)
}

// Add は集合に型変数を追加します。
func (s TVarSet) Add(tv TVar) {
	s[tv.Name] = struct{}{}
}

// Contains は集合が指定された型変数を含むか確認します。
func (s TVarSet) Contains(tv TVar) bool {
	_, exists := s[tv.Name]
	return exists
}

// Union は2つの型変数集合の和集合を返します。
func (s TVarSet) Union(other TVarSet) TVarSet {
	result := NewTVarSet()
	for name := range s {
		result.Add(TVar{Name: name})
	}
	for name := range other {
		result.Add(TVar{Name: name})
	}
	return result
}

// Values は集合内の型変数をスライスとして返します。順序は保証されません。
func (s TVarSet) Values() []TVar {
	vars := make([]TVar, 0, len(s))
	for name := range s {
		vars = append(vars, TVar{Name: name})
	}
	return vars
}
