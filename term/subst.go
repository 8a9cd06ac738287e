package term

// Occurs は変数 v が項 t のどこかに現れるかどうかを判定します。
// 定数では false、変数では v との等価性、適用では引数への再帰で判定する。
// 計算量 O(size(t))。
func Occurs(v Variable, t Term) bool {
	switch tt := t.(type) {
	case Variable:
		return v.Equal(tt)
	case Application:
		for _, arg := range tt.args {
			if Occurs(v, arg) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Substitute は項 t の中の変数 x の出現をすべて r に置き換えた新しい項を返します。
// 純粋関数 (入力 t は変更しない); 新しい Application を生成する。
func Substitute(t Term, x Variable, r Term) Term {
	switch tt := t.(type) {
	case Variable:
		if tt.Equal(x) {
			return r
		}
		return tt
	case Application:
		args := make([]Term, len(tt.args))
		for i, arg := range tt.args {
			args[i] = Substitute(arg, x, r)
		}
		return NewApplication(tt.name, args)
	default:
		return t
	}
}

// ApplySubstitution は名前 -> 項 の写像 σ を使って変数を一括で置き換えます。
// σ に含まれない変数はそのまま通過する。
func ApplySubstitution(t Term, sub map[string]Term) Term {
	switch tt := t.(type) {
	case Variable:
		if replacement, ok := sub[tt.name]; ok {
			return replacement
		}
		return tt
	case Application:
		args := make([]Term, len(tt.args))
		for i, arg := range tt.args {
			args[i] = ApplySubstitution(arg, sub)
		}
		return NewApplication(tt.name, args)
	default:
		return t
	}
}

// Vars は項 t の中に出現する変数の集合を返します (名前をキーとする)。
func Vars(t Term) map[string]Variable {
	result := make(map[string]Variable)
	collectVars(t, result)
	return result
}

func collectVars(t Term, out map[string]Variable) {
	switch tt := t.(type) {
	case Variable:
		out[tt.name] = tt
	case Application:
		for _, arg := range tt.args {
			collectVars(arg, out)
		}
	}
}
