package inference

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gavinvogt/type-inference-survey/parser"
)

func inferSource(t *testing.T, src string) ([]Result, error) {
	t.Helper()
	program, err := parser.Parse(src)
	require.NoError(t, err, "parser.Parse(%q)", src)
	return InferProgram(program)
}

func TestInferEndToEndPrograms(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		fn       string
		expected string
	}{
		{"identity", "fun id x = x;", "id", "'a -> 'a"},
		{"const", "fun const x y = x;", "const", "'a -> 'b -> 'a"},
		{
			"factorial",
			"fun fact x = if x == 0 then 1 else x * fact(x - 1);",
			"fact",
			"int -> int",
		},
		{
			"higher-order apply",
			"fun apply1 f x = f x;",
			"apply1",
			"('a -> 'b) -> 'a -> 'b",
		},
		{
			"list length via prelude",
			"fun len xs = if null xs then 0 else 1 + len (tl xs);",
			"len",
			"'a[] -> int",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := inferSource(t, tt.src)
			require.NoError(t, err)

			var got string
			for _, r := range results {
				if r.Name == tt.fn {
					got = PrettyPrint(r.Type)
				}
			}
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestInferClashIsReported(t *testing.T) {
	_, err := inferSource(t, "fun bad x = x + true;")
	require.Error(t, err)
	require.Contains(t, err.Error(), "clash")
}

func TestInferOccursCheckIsReported(t *testing.T) {
	// `x x` applies x to itself, forcing x = x -> 'b: an infinite type.
	_, err := inferSource(t, "fun selfApply x = x x;")
	require.Error(t, err)
	require.Contains(t, err.Error(), "occurs check")
}

func TestInferMultipleDefinitionsShareTheGlobalScope(t *testing.T) {
	results, err := inferSource(t, "fun id x = x; fun useId y = id y;")
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "'a -> 'a", PrettyPrint(results[1].Type))
}

func TestBaseTypeEnvPreludeIsBound(t *testing.T) {
	global, err := BaseTypeEnv()
	require.NoError(t, err)

	for _, name := range []string{"nil", "hd", "tl", "null", "cons"} {
		sym, err := global.Lookup(name)
		require.NoErrorf(t, err, "Lookup(%s)", name)
		require.NotEmpty(t, PrettyPrint(sym.Type()))
	}
}
