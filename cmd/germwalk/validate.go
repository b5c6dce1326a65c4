package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/germwalk/internal/validator"
	"github.com/aretw0/germwalk/pkg/graph"
)

var validateCmd = &cobra.Command{
	Use:   "validate [graph]",
	Short: "Check a graph for degenerate topology",
	Long:  `Loads the graph and reports its size, connected components, isolated nodes and sinks.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		path, err := graphArg(args, cfg)
		if err != nil {
			return err
		}
		strict, _ := cmd.Flags().GetBool("strict")

		g, err := graph.LoadFile(path)
		if err != nil {
			return err
		}

		report, err := validator.ValidateGraph(g, strict)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Graph %q: %d nodes, %d edges, %d component(s)\n", report.Name, report.Nodes, report.Edges, report.Components)
		for _, w := range report.Warnings {
			fmt.Fprintf(out, "  warning: %s\n", w)
		}
		fmt.Fprintln(out, "Graph is valid!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("strict", false, "Treat warnings as errors")
}
