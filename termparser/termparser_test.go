package termparser

import (
	"testing"

	"github.com/gavinvogt/type-inference-survey/term"
)

func TestParseBareConstant(t *testing.T) {
	got, err := Parse("A")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := term.NewConstant("A")
	if !got.Equal(want) {
		t.Errorf("Parse(%q) = %s, want %s", "A", got, want)
	}
}

func TestParseBareVariable(t *testing.T) {
	got, err := Parse("x")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := term.NewVariable("x")
	if !got.Equal(want) {
		t.Errorf("Parse(%q) = %s, want %s", "x", got, want)
	}
}

func TestParseNestedApplication(t *testing.T) {
	got, err := Parse("f(x, g(y), A)")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := term.NewApplication("f", []term.Term{
		term.NewVariable("x"),
		term.NewApplication("g", []term.Term{term.NewVariable("y")}),
		term.NewConstant("A"),
	})
	if !got.Equal(want) {
		t.Errorf("Parse() = %s, want %s", got, want)
	}
}

func TestParseZeroArityApplication(t *testing.T) {
	got, err := Parse("f()")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := term.NewApplication("f", nil)
	if !got.Equal(want) {
		t.Errorf("Parse(%q) = %s, want %s", "f()", got, want)
	}
	if app, ok := got.(term.Application); !ok || app.Arity() != 0 {
		t.Errorf("expected f() to be a zero-arity application")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse("f(x,"); err == nil {
		t.Errorf("expected error for unterminated argument list")
	}
	if _, err := Parse("(x)"); err == nil {
		t.Errorf("expected error for a name-less term")
	}
}

func TestToTermUppercaseIsConstantLowercaseIsVariable(t *testing.T) {
	cases := []struct {
		name     string
		wantVar  bool
	}{
		{"A", false},
		{"Abc", false},
		{"x", true},
		{"xyz", true},
	}
	for _, c := range cases {
		node := &Node{Name: c.name}
		got := ToTerm(node)
		_, isVar := got.(term.Variable)
		if isVar != c.wantVar {
			t.Errorf("ToTerm(%q): isVariable = %v, want %v", c.name, isVar, c.wantVar)
		}
	}
}

func TestIsUpper(t *testing.T) {
	cases := map[string]bool{
		"A":   true,
		"Abc": true,
		"x":   false,
		"xyz": false,
		"":    false,
	}
	for name, want := range cases {
		if got := isUpper(name); got != want {
			t.Errorf("isUpper(%q) = %v, want %v", name, got, want)
		}
	}
}
