package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gavinvogt/type-inference-survey/inference"
	"github.com/gavinvogt/type-inference-survey/parser"
)

var inferCmd = &cobra.Command{
	Use:   "infer <file>",
	Short: "Infer the principal type of every function definition in a Micro-ML source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfer,
}

func runInfer(cmd *cobra.Command, args []string) error {
	path := args[0]
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("infer: %w", err)
	}

	program, err := parser.Parse(string(source))
	if err != nil {
		return fmt.Errorf("infer: %w", err)
	}
	slog.Debug("parsed program", "path", path, "defs", len(program.Defs))

	results, err := inference.InferProgram(program)
	if err != nil {
		return fmt.Errorf("infer: %w", err)
	}

	if outputMode == "json" {
		type entry struct {
			Name string `json:"name"`
			Type string `json:"type"`
		}
		entries := make([]entry, 0, len(results))
		for _, r := range results {
			entries = append(entries, entry{Name: r.Name, Type: inference.PrettyPrint(r.Type)})
		}
		enc := json.NewEncoder(cmdOut())
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	for _, r := range results {
		fmt.Fprintf(cmdOut(), "%s : %s\n", r.Name, inference.PrettyPrint(r.Type))
	}
	return nil
}
