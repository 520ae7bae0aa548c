package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/showcase/internal/presentation/tui"
	"github.com/aretw0/showcase/pkg/adapters/loam"
	"github.com/aretw0/showcase/pkg/deck"
	"github.com/aretw0/showcase/pkg/export"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var presentCmd = &cobra.Command{
	Use:   "present",
	Short: "Present the deck in the terminal",
	Long: `Opens the full screen presenter. When stdout is not a terminal the slides are
printed as plain text instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadPresentation()
		if err != nil {
			return err
		}

		if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			return tui.Dump(cmd.OutOrStdout(), p.Entries, export.DefaultCols, export.DefaultRows)
		}

		start, _ := cmd.Flags().GetInt("slide")
		if start < 1 || start > len(p.Entries) {
			return fmt.Errorf("--slide must be between 1 and %d", len(p.Entries))
		}
		opts := []tui.Option{
			tui.WithLogger(logger),
			tui.WithDeckOptions(
				deck.WithStartIndex(start-1),
				deck.WithSettleDelay(cfg.Timing.SettleDelay),
			),
		}
		if cfg.Deck.NotesDir != "" {
			notes, err := loam.Open(cfg.Deck.NotesDir)
			if err != nil {
				return err
			}
			opts = append(opts, tui.WithNotes(notes))
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return tui.Run(ctx, p.Entries, opts...)
	},
}

func init() {
	rootCmd.AddCommand(presentCmd)

	presentCmd.Flags().Int("slide", 1, "Slide to open first (1-based)")
	presentCmd.Flags().String("notes", "", "Directory of speaker notes, one markdown file per slide id")
	presentCmd.Flags().Duration("settle", 0, "Transition settle delay (default 450ms)")
}
