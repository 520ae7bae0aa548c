package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/showcase"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of showcase",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "showcase version %s\n", strings.TrimSpace(showcase.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
