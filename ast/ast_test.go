package ast

import "testing"

func TestExpressionString(t *testing.T) {
	x := &Id{Name: "x"}
	y := &Id{Name: "y"}

	tests := []struct {
		name     string
		expr     Expression
		expected string
	}{
		{"Id", x, "x"},
		{"Unit", NewUnit(), "()"},
		{"IntLit", NewIntLit(42), "42"},
		{"RealLit", NewRealLit(1.5), "1.5"},
		{"BoolLit true", NewBoolLit(true), "true"},
		{"If", NewIf(x, y, x), "if x then y else x"},
		{"Let", NewLet("x", NewIntLit(1), x), "let x = 1 in x"},
		{"Fn zero params", NewFn(nil, x), "fn => x"},
		{"Fn multi params", NewFn([]string{"x", "y"}, x), "fn x y => x"},
		{"Call", NewCall(x, y), "(x y)"},
		{"Binary", NewBinary("+", x, y), "(x + y)"},
		{"Unary", NewUnary("not", x), "(not x)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.expr.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestEveryConstructorMintsAnUnsetSymbol(t *testing.T) {
	// Reading a freshly-minted symbol's type before it is set must panic;
	// this is the contract typeeqs.Generate relies on (it is the one
	// that calls Set, exactly once, while walking the tree).
	assertPanics := func(name string, fn func()) {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic reading an unset type symbol")
				}
			}()
			fn()
		})
	}

	assertPanics("If", func() { NewIf(&Id{}, &Id{}, &Id{}).Symbol.Type() })
	assertPanics("Let", func() { NewLet("x", &Id{}, &Id{}).Symbol.Type() })
	assertPanics("Fn", func() { NewFn([]string{"x"}, &Id{}).Symbol.Type() })
	assertPanics("Fn param", func() { NewFn([]string{"x"}, &Id{}).ParamSyms[0].Type() })
	assertPanics("Call", func() { NewCall(&Id{}, &Id{}).Symbol.Type() })
	assertPanics("Binary", func() { NewBinary("+", &Id{}, &Id{}).Symbol.Type() })
	assertPanics("Unary", func() { NewUnary("-", &Id{}).Symbol.Type() })
	assertPanics("Unit", func() { NewUnit().Symbol.Type() })
	assertPanics("IntLit", func() { NewIntLit(0).Symbol.Type() })
	assertPanics("RealLit", func() { NewRealLit(0).Symbol.Type() })
	assertPanics("BoolLit", func() { NewBoolLit(false).Symbol.Type() })
}

func TestProgramString(t *testing.T) {
	prog := &Program{Defs: []*FunctionDefinition{
		{Name: "id", Params: []string{"x"}, Body: &Id{Name: "x"}},
	}}
	want := "fun id = x;\n"
	if got := prog.String(); got != want {
		t.Errorf("Program.String() = %q, want %q", got, want)
	}
}
