package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/germwalk/internal/cli"
	"github.com/aretw0/germwalk/internal/config"
	"github.com/aretw0/germwalk/internal/presentation/tui"
)

var runCmd = &cobra.Command{
	Use:   "run [graph]",
	Short: "Run a simulation and export the trajectories",
	Long: `Loads a graph, places the agents, runs every tick and writes the trajectory of
each agent as JSON (default) or CSV to --out or stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.Graph, err = graphArg(args, cfg); err != nil {
			return err
		}
		applyRunFlags(cmd, &cfg)

		format, _ := cmd.Flags().GetString("format")
		quiet, _ := cmd.Flags().GetBool("quiet")
		noProgress, _ := cmd.Flags().GetBool("no-progress")
		summary, _ := cmd.Flags().GetBool("summary")

		if !quiet && tui.IsTerminal(os.Stderr) {
			tui.PrintBanner(os.Stderr)
		}

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		_, err = cli.Execute(ctx, cli.RunOptions{
			Config:   cfg,
			Format:   format,
			Progress: !noProgress && tui.IsTerminal(os.Stderr),
			Summary:  summary,
			Quiet:    quiet,
			Out:      os.Stdout,
			Err:      os.Stderr,
		})
		if errors.Is(err, context.Canceled) && ctx.Signal() != nil {
			// Interrupted by the user; the partial run stays in the store.
			return nil
		}
		return err
	},
}

// applyRunFlags overrides config values with flags set on the command line.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("steps") {
		cfg.Steps, _ = flags.GetInt("steps")
	}
	if flags.Changed("agents") {
		cfg.Agents, _ = flags.GetInt("agents")
	}
	if flags.Changed("seed") {
		seed, _ := flags.GetInt64("seed")
		cfg.Seed = &seed
	}
	if random, _ := flags.GetBool("random-seed"); random {
		cfg.Seed = nil
	}
	if flags.Changed("largest-component") {
		cfg.LargestComponent, _ = flags.GetBool("largest-component")
	}
	if flags.Changed("out") {
		cfg.Output, _ = flags.GetString("out")
	}
	if flags.Changed("store") {
		cfg.Store.Kind, _ = flags.GetString("store")
	}
	if flags.Changed("redis-addr") {
		cfg.Store.Addr, _ = flags.GetString("redis-addr")
	}
	if flags.Changed("db") {
		cfg.Store.Path, _ = flags.GetString("db")
	}
	if flags.Changed("metrics-addr") {
		cfg.Metrics.Addr, _ = flags.GetString("metrics-addr")
	}
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntP("steps", "s", 150, "Number of ticks")
	runCmd.Flags().IntP("agents", "n", 30, "Number of agents")
	runCmd.Flags().Int64("seed", 42, "Random seed")
	runCmd.Flags().Bool("random-seed", false, "Seed from entropy (the chosen seed is logged)")
	runCmd.Flags().Bool("largest-component", false, "Keep only the largest connected component")
	runCmd.Flags().StringP("out", "o", "", "Write trajectories to this file instead of stdout")
	runCmd.Flags().StringP("format", "f", "", "Output format: json or csv (default from --out extension)")
	runCmd.Flags().String("store", config.StoreNone, "Persist the run: none, memory, redis or sqlite")
	runCmd.Flags().String("redis-addr", "localhost:6379", "Redis address for --store redis")
	runCmd.Flags().String("db", "germwalk.db", "SQLite file for --store sqlite")
	runCmd.Flags().String("metrics-addr", "", "Expose Prometheus metrics on this address during the run")
	runCmd.Flags().BoolP("quiet", "q", false, "No banner, progress or summary")
	runCmd.Flags().Bool("no-progress", false, "Disable the progress bar")
	runCmd.Flags().Bool("summary", true, "Print a run summary when done")
}
