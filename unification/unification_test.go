package unification

import (
	"reflect"
	"testing"

	"github.com/gavinvogt/type-inference-survey/types"
)

var (
	t0    = types.TVar{Name: "t0"}
	t1    = types.TVar{Name: "t1"}
	t2    = types.TVar{Name: "t2"}
	tint  = types.Int
	tbool = types.Bool
)

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		sub      Substitution
		ty       types.Type
		expected types.Type
	}{
		{"Apply to TCon", Substitution{"t0": tint}, tint, tint},
		{"Apply to TVar (hit)", Substitution{"t0": tint}, t0, tint},
		{"Apply to TVar (miss)", Substitution{"t0": tint}, t1, t1},
		{"Apply to TVar (chain)", Substitution{"t0": t1, "t1": tint}, t0, tint},
		{"Apply to TVar (cycle resolved without infinite loop)", Substitution{"t0": t1, "t1": t0}, t0, t0},
		{
			"Apply to TFunc",
			Substitution{"t0": tint, "t1": tbool},
			types.TFunc{ArgType: t0, ReturnType: t1},
			types.TFunc{ArgType: tint, ReturnType: tbool},
		},
		{
			"Apply to TList",
			Substitution{"t0": tint},
			types.TList{ElType: t0},
			types.TList{ElType: tint},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(tt.sub, tt.ty)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Apply(%v, %s) = %s, want %s", tt.sub, tt.ty.String(), got.String(), tt.expected.String())
			}
		})
	}
}

func TestOccursCheck(t *testing.T) {
	if !OccursCheck(t0, types.TFunc{ArgType: t0, ReturnType: tint}) {
		t.Errorf("expected t0 to occur in t0 -> int")
	}
	if OccursCheck(t0, types.TFunc{ArgType: t1, ReturnType: tint}) {
		t.Errorf("expected t0 not to occur in t1 -> int")
	}
}

func TestSolve(t *testing.T) {
	tests := []struct {
		name    string
		eqs     []Equation
		lookup  string
		want    types.Type
		wantErr bool
	}{
		{
			name:   "simple variable binding",
			eqs:    []Equation{{Left: t0, Right: tint}},
			lookup: "t0",
			want:   tint,
		},
		{
			name:   "swap orients variable to the left",
			eqs:    []Equation{{Left: tint, Right: t0}},
			lookup: "t0",
			want:   tint,
		},
		{
			name: "decompose function types",
			eqs: []Equation{
				{Left: types.TFunc{ArgType: t0, ReturnType: t1}, Right: types.TFunc{ArgType: tint, ReturnType: tbool}},
			},
			lookup: "t0",
			want:   tint,
		},
		{
			name: "decompose list types",
			eqs: []Equation{
				{Left: types.TList{ElType: t0}, Right: types.TList{ElType: tint}},
			},
			lookup: "t0",
			want:   tint,
		},
		{
			name: "eliminate propagates through the rest of the queue",
			eqs: []Equation{
				{Left: t0, Right: tint},
				{Left: t1, Right: types.TFunc{ArgType: t0, ReturnType: tbool}},
			},
			lookup: "t1",
			want:   types.TFunc{ArgType: tint, ReturnType: tbool},
		},
		{
			name:    "clash between distinct constants",
			eqs:     []Equation{{Left: tint, Right: tbool}},
			wantErr: true,
		},
		{
			name:    "occurs check rejects infinite type",
			eqs:     []Equation{{Left: t0, Right: types.TFunc{ArgType: t0, ReturnType: tint}}},
			wantErr: true,
		},
		{
			name:    "stuck on a function type against a list type",
			eqs:     []Equation{{Left: types.TFunc{ArgType: tint, ReturnType: tint}, Right: types.TList{ElType: tint}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := Solve(tt.eqs)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Solve() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Solve() unexpected error: %v", err)
			}
			got := Apply(sub, types.TVar{Name: tt.lookup})
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Solve()[%s] = %s, want %s", tt.lookup, got, tt.want)
			}
		})
	}
}
