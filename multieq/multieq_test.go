package multieq

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gavinvogt/type-inference-survey/term"
	"github.com/gavinvogt/type-inference-survey/termparser"
)

func mustParse(t *testing.T, src string) term.Term {
	t.Helper()
	tm, err := termparser.Parse(src)
	require.NoError(t, err, "parse %q", src)
	return tm
}

// resolveFully chases a solved substitution to a fixpoint, the way
// unification.Apply does for the equation-list engine, so that a chain
// like x2 -> h(A, x5), x5 -> B renders as h(A, B).
func resolveFully(tm term.Term, sub map[string]term.Term, seen map[string]bool) term.Term {
	switch tt := tm.(type) {
	case term.Variable:
		if seen[tt.Name()] {
			return tt
		}
		replacement, ok := sub[tt.Name()]
		if !ok {
			return tt
		}
		seen[tt.Name()] = true
		resolved := resolveFully(replacement, sub, seen)
		delete(seen, tt.Name())
		return resolved
	case term.Application:
		args := make([]term.Term, len(tt.Args()))
		for i, a := range tt.Args() {
			args[i] = resolveFully(a, sub, seen)
		}
		return term.NewApplication(tt.Name(), args)
	default:
		return tm
	}
}

// bindingFromSolved turns a solved multiequation system into a flat
// variable -> term substitution, as cmd/miniml does for display.
func bindingFromSolved(system []*Multiequation) map[string]term.Term {
	binding := make(map[string]term.Term)
	for _, meq := range system {
		if meq.Terms.Len() == 0 {
			continue
		}
		val := meq.Terms.Terms[0]
		for name := range meq.Vars {
			binding[name] = val
		}
	}
	return binding
}

func runWorkedExample(t *testing.T, rawTerms []string, expected string, solve func([]*Multiequation) ([]*Multiequation, error)) {
	t.Helper()
	terms := make([]term.Term, len(rawTerms))
	for i, raw := range rawTerms {
		terms[i] = mustParse(t, raw)
	}

	system := Seed(terms)
	solved, err := solve(system)
	require.NoError(t, err)

	binding := bindingFromSolved(solved)
	got := resolveFully(terms[0], binding, map[string]bool{})
	require.Equal(t, mustParse(t, expected), got)
}

func TestSolveAlgorithm2WorkedExamples(t *testing.T) {
	t.Run("three-term system", func(t *testing.T) {
		runWorkedExample(t,
			[]string{
				"f(x1, g(A, f(x5, B)))",
				"f(h(C), g(x2, f(B, x5)))",
				"f(h(x4), g(x6, x3))",
			},
			"f(h(C), g(A, f(B, B)))",
			SolveAlgorithm2,
		)
	})

	t.Run("four-way shared variables", func(t *testing.T) {
		runWorkedExample(t,
			[]string{
				"f(x1, g(x2, x3), x2, B)",
				"f(g(h(A, x5), x2), x1, h(A, x4), x4)",
			},
			"f(g(h(A, B), h(A, B)), g(h(A, B), h(A, B)), h(A, B), B)",
			SolveAlgorithm2,
		)
	})
}

func TestSolveAlgorithm3WorkedExamples(t *testing.T) {
	t.Run("three-term system", func(t *testing.T) {
		runWorkedExample(t,
			[]string{
				"f(x1, g(A, f(x5, B)))",
				"f(h(C), g(x2, f(B, x5)))",
				"f(h(x4), g(x6, x3))",
			},
			"f(h(C), g(A, f(B, B)))",
			SolveAlgorithm3,
		)
	})

	t.Run("four-way shared variables", func(t *testing.T) {
		runWorkedExample(t,
			[]string{
				"f(x1, g(x2, x3), x2, B)",
				"f(g(h(A, x5), x2), x1, h(A, x4), x4)",
			},
			"f(g(h(A, B), h(A, B)), g(h(A, B), h(A, B)), h(A, B), B)",
			SolveAlgorithm3,
		)
	})
}

func TestSolveDetectsCycle(t *testing.T) {
	// x = f(y), y = f(x): no compactified multiequation can ever have
	// variables disjoint from the rest, so both algorithms must fail.
	x, y := term.NewVariable("x"), term.NewVariable("y")
	fy := term.NewApplication("f", []term.Term{y})
	fx := term.NewApplication("f", []term.Term{x})

	system := []*Multiequation{
		NewMultiequation(map[string]term.Variable{"x": x}, NewMultiset(fy)),
		NewMultiequation(map[string]term.Variable{"y": y}, NewMultiset(fx)),
	}

	_, err := SolveAlgorithm2(append([]*Multiequation{}, system...))
	require.Error(t, err)

	_, err = SolveAlgorithm3(append([]*Multiequation{}, system...))
	require.Error(t, err)
}

func TestDECDecomposesMatchingApplications(t *testing.T) {
	// Position 0 disagrees (x vs C) and is deferred to the frontier as its
	// own multiequation; position 1 agrees outright (A vs A) and resolves
	// on the spot, so the variable survives unsubstituted in the common part.
	a := mustParse(t, "f(x, A)")
	b := mustParse(t, "f(C, A)")

	common, frontier, err := DEC(NewMultiset(a, b))
	require.NoError(t, err)
	require.Equal(t, mustParse(t, "f(x, A)"), common)
	require.Len(t, frontier, 1)
	require.Contains(t, frontier[0].Vars, "x")
	require.Equal(t, mustParse(t, "C"), frontier[0].Terms.Terms[0])
}

func TestDECReturnsClashOnNameMismatch(t *testing.T) {
	a := mustParse(t, "f(A)")
	b := mustParse(t, "g(A)")
	_, _, err := DEC(NewMultiset(a, b))
	require.Error(t, err)
}

func TestCompactifyMergesOverlappingVariableSets(t *testing.T) {
	x1, x2, x3 := term.NewVariable("x1"), term.NewVariable("x2"), term.NewVariable("x3")
	meqs := []*Multiequation{
		NewMultiequation(map[string]term.Variable{"x1": x1, "x2": x2}, NewMultiset(mustParse(t, "A"))),
		NewMultiequation(map[string]term.Variable{"x2": x2, "x3": x3}, NewMultiset(mustParse(t, "B"))),
	}

	compactified := Compactify(meqs)
	require.Len(t, compactified, 1)
	require.Len(t, compactified[0].Vars, 3)
	require.Equal(t, 2, compactified[0].Terms.Len())
}
