package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/germwalk/pkg/graph"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Convert external network data into graph documents",
}

var importMetroCmd = &cobra.Command{
	Use:   "metro <stations.csv>",
	Short: "Build a metro graph from a station CSV",
	Long: `Reads a ';'-separated ISO-8859-1 CSV with line, station, latitude and longitude
columns and links the stations of every line in file order.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		redesign, _ := cmd.Flags().GetBool("redesign")
		largest, _ := cmd.Flags().GetBool("largest-component")
		out, _ := cmd.Flags().GetString("out")
		name, _ := cmd.Flags().GetString("name")

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		if name == "" {
			name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		}
		layout := graph.MetroStations
		if redesign {
			layout = graph.MetroRedesign
		}

		g, err := graph.ReadMetroCSV(f, name, layout)
		if err != nil {
			return err
		}
		if largest {
			g = graph.LargestComponent(g)
		}

		if out == "" {
			data, err := graph.Encode(g, false)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := graph.WriteFile(out, g); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s: %d stations, %d links\n", out, g.Len(), g.EdgeCount())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.AddCommand(importMetroCmd)

	importMetroCmd.Flags().Bool("redesign", false, "Use the redesign layout (nodes named <Line>_<i>)")
	importMetroCmd.Flags().Bool("largest-component", false, "Keep only the largest connected component")
	importMetroCmd.Flags().StringP("out", "o", "", "Write the graph to this .json/.yaml file instead of stdout")
	importMetroCmd.Flags().String("name", "", "Graph name (default: file name)")
}
