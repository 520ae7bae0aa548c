package main

import (
	"fmt"
	"os"

	"github.com/aretw0/showcase"
	"github.com/aretw0/showcase/pkg/content"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [FILE]",
	Short: "Check a deck for consistency",
	Long: `Validates a deck against the schema, builds every slide and lints the diagrams
for dangling edges, unreachable nodes and chains that leave the diagram.
Without FILE the configured (or embedded) deck is checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.Deck.Path
		if len(args) > 0 {
			path = args[0]
		}
		if err := runValidate(path); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Deck is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string) error {
	raw := content.Raw()
	if path != "" {
		var err error
		if raw, err = os.ReadFile(path); err != nil {
			return err
		}
	}

	d, err := content.Parse(raw)
	if err != nil {
		return err
	}
	p, err := showcase.New(d)
	if err != nil {
		return err
	}
	return content.Report(p.Issues)
}
