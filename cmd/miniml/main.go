// Command miniml is the CLI front end for term unification and Micro-ML
// type inference. It replaces the teacher's net/http + html/template
// playground (the templates it rendered were never part of the
// retrieved tree) with a cobra-based command set, per SPEC_FULL.md §1.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gavinvogt/type-inference-survey/internal/clierr"
)

var (
	verbose    bool
	outputMode string
)

var rootCmd = &cobra.Command{
	Use:   "miniml",
	Short: "Term unification and Micro-ML type inference",
	Long: `miniml drives the term-unification engines (Robinson's algorithm and
Martelli-Montanari's multiequation algorithms 2 and 3) and the Micro-ML
Hindley-Milner type-inference pipeline from the command line.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
	},
}

// Execute runs the root command, handling the full CLI lifecycle's
// top-level error reporting and exit code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, clierr.Describe(err))
		os.Exit(clierr.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&outputMode, "format", "text", "output format: text|json")

	rootCmd.AddCommand(termCmd)
	rootCmd.AddCommand(inferCmd)
}

// cmdOut is where subcommands write their results: standard output.
func cmdOut() *os.File {
	return os.Stdout
}

func main() {
	Execute()
}
