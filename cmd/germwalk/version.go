package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/germwalk"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of germwalk",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "germwalk version %s\n", strings.TrimSpace(germwalk.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
