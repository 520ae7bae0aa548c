package main

import (
	"fmt"

	"github.com/aretw0/showcase/pkg/content"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of deck files",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := content.SchemaJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(raw))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
