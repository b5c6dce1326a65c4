package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aretw0/germwalk/internal/cli"
	"github.com/aretw0/germwalk/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve [graph]",
	Short: "Start the read-only HTTP API",
	Long:  `Serves stored runs, their trajectories, the loaded graph and Prometheus metrics over HTTP.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if len(args) > 0 {
			cfg.Graph = args[0]
		}
		port, _ := cmd.Flags().GetString("port")
		if cmd.Flags().Changed("store") || cfg.Store.Kind == config.StoreNone {
			cfg.Store.Kind, _ = cmd.Flags().GetString("store")
		}
		if cmd.Flags().Changed("redis-addr") {
			cfg.Store.Addr, _ = cmd.Flags().GetString("redis-addr")
		}
		if cmd.Flags().Changed("db") || cfg.Store.Kind == config.StoreSQLite && cfg.Store.Path == "" {
			cfg.Store.Path, _ = cmd.Flags().GetString("db")
		}

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		return cli.Serve(ctx, cli.ServeOptions{
			Addr:   ":" + port,
			Config: cfg,
			Out:    cmd.ErrOrStderr(),
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("store", "sqlite", "Store to read runs from: memory, redis or sqlite")
	serveCmd.Flags().String("redis-addr", "localhost:6379", "Redis address for --store redis")
	serveCmd.Flags().String("db", "germwalk.db", "SQLite file for --store sqlite")
}
