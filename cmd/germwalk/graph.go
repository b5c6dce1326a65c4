package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/germwalk/internal/cli"
	"github.com/aretw0/germwalk/internal/config"
	pgraph "github.com/aretw0/germwalk/internal/presentation/graph"
	"github.com/aretw0/germwalk/pkg/graph"
)

var graphCmd = &cobra.Command{
	Use:   "graph [graph]",
	Short: "Export the graph as a Mermaid diagram",
	Long: `Prints a Mermaid flowchart of the graph. With --run, nodes are styled with the
final agent occupancy of a stored run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		path, err := graphArg(args, cfg)
		if err != nil {
			return err
		}
		runID, _ := cmd.Flags().GetString("run")
		if cmd.Flags().Changed("store") || cfg.Store.Kind == config.StoreNone {
			cfg.Store.Kind, _ = cmd.Flags().GetString("store")
		}
		if cmd.Flags().Changed("db") || cfg.Store.Kind == config.StoreSQLite && cfg.Store.Path == "" {
			cfg.Store.Path, _ = cmd.Flags().GetString("db")
		}

		g, err := graph.LoadFile(path)
		if err != nil {
			return err
		}

		var overlay *pgraph.Overlay
		if runID != "" {
			store, closeStore, err := cli.OpenStore(cfg.Store)
			if err != nil {
				return err
			}
			defer closeStore()
			if store == nil {
				return fmt.Errorf("--run needs a store (--store redis or sqlite)")
			}
			obs, err := store.LoadObservations(context.Background(), runID)
			if err != nil {
				return fmt.Errorf("failed to load run %s: %w", runID, err)
			}
			overlay = pgraph.OverlayFromObservations(obs)
		}

		fmt.Fprint(cmd.OutOrStdout(), pgraph.GenerateMermaid(g, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("run", "", "Overlay the occupancy of this stored run")
	graphCmd.Flags().String("store", "sqlite", "Store holding --run: redis or sqlite")
	graphCmd.Flags().String("db", "germwalk.db", "SQLite file for --store sqlite")
}
