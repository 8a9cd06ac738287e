package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gavinvogt/type-inference-survey/multieq"
	"github.com/gavinvogt/type-inference-survey/robinson"
	"github.com/gavinvogt/type-inference-survey/term"
	"github.com/gavinvogt/type-inference-survey/termparser"
)

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Work with first-order terms",
}

var unifyCmd = &cobra.Command{
	Use:   "unify <engine> <term> [term...]",
	Short: "Unify a list of terms, e.g. \"miniml term unify robinson f(x,A) f(B,y)\"",
	Long: `engine selects the unification algorithm:

  robinson  Robinson's 1965 disagreement-set algorithm
  alg2      Martelli-Montanari Algorithm 2 (select-any-with-terms)
  alg3      Martelli-Montanari Algorithm 3 (select-with-unique-vars)`,
	Args: cobra.MinimumNArgs(2),
	RunE: runUnify,
}

func init() {
	termCmd.AddCommand(unifyCmd)
}

func runUnify(cmd *cobra.Command, args []string) error {
	engine, rawTerms := args[0], args[1:]

	terms := make([]term.Term, 0, len(rawTerms))
	for _, raw := range rawTerms {
		t, err := termparser.Parse(raw)
		if err != nil {
			return fmt.Errorf("term unify: %w", err)
		}
		terms = append(terms, t)
	}
	slog.Debug("parsed terms for unification", "count", len(terms), "engine", engine)

	var binding map[string]string
	switch engine {
	case "robinson":
		sub, err := robinson.Unify(terms)
		if err != nil {
			return fmt.Errorf("term unify: %w", err)
		}
		binding = make(map[string]string, len(sub))
		for name, t := range sub {
			binding[name] = t.String()
		}

	case "alg2", "alg3":
		system := multieq.Seed(terms)
		var solved []*multieq.Multiequation
		var err error
		if engine == "alg2" {
			solved, err = multieq.SolveAlgorithm2(system)
		} else {
			solved, err = multieq.SolveAlgorithm3(system)
		}
		if err != nil {
			return fmt.Errorf("term unify: %w", err)
		}
		binding = multiequationsToBinding(solved)

	default:
		return fmt.Errorf("term unify: unknown engine %q (want robinson, alg2, or alg3)", engine)
	}

	return printBinding(binding)
}

// multiequationsToBinding flattens a solved multiequation system into
// one variable->term-string entry per bound variable. A multiequation
// with more than one variable means those variables are all equal to
// the same term (and to each other).
func multiequationsToBinding(system []*multieq.Multiequation) map[string]string {
	binding := make(map[string]string)
	for _, meq := range system {
		val := "_"
		if meq.Terms.Len() > 0 {
			val = meq.Terms.Terms[0].String()
		}
		for name := range meq.Vars {
			binding[name] = val
		}
	}
	return binding
}

func printBinding(binding map[string]string) error {
	if outputMode == "json" {
		enc := json.NewEncoder(cmdOut())
		enc.SetIndent("", "  ")
		return enc.Encode(binding)
	}

	names := make([]string, 0, len(binding))
	for name := range binding {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(cmdOut(), "%s = %s\n", name, binding[name])
	}
	return nil
}
