package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/showcase"
	"github.com/aretw0/showcase/internal/config"
	"github.com/aretw0/showcase/internal/logging"
	"github.com/aretw0/showcase/pkg/slides"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfg    = config.Default()
	logger = logging.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "showcase",
	Short: "Showcase presents the agentic AI deck",
	Long: `Showcase presents an interactive deck about agentic AI: animated architecture
walkthroughs, collaboration patterns and a live production workflow. It runs as a terminal
presenter, exports diagrams, serves a REST API and exposes the diagrams over MCP.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/showcase/config.yaml)")
	rootCmd.PersistentFlags().String("deck", "", "Deck YAML file (default: the embedded deck)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
}

// loadConfig merges defaults, the config file, SHOWCASE_* variables and flags.
func loadConfig(cmd *cobra.Command, _ []string) error {
	file, _ := cmd.Flags().GetString("config")
	v, err := config.New(file)
	if err != nil {
		return err
	}
	if err := bindFlags(v, cmd, map[string]string{
		"deck.path":           "deck",
		"logging.level":       "log-level",
		"deck.notes_dir":      "notes",
		"server.addr":         "addr",
		"server.redis_url":    "redis",
		"server.store":        "store",
		"timing.settle_delay": "settle",
	}); err != nil {
		return err
	}

	loaded, err := config.Load(v)
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(loaded.Logging.Level)
	if err != nil {
		return err
	}
	cfg = loaded
	logger = logging.New(level)
	slog.SetDefault(logger)
	return nil
}

// bindFlags binds the flags the command defines; the others keep their config value.
func bindFlags(v *viper.Viper, cmd *cobra.Command, keys map[string]string) error {
	for key, name := range keys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return nil
}

// loadPresentation builds the configured deck with the configured timings.
func loadPresentation() (*showcase.Presentation, error) {
	p, err := showcase.Load(cfg.Deck.Path,
		slides.WithTiming(cfg.Timing.SlideTiming()),
		slides.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	p.LogIssues(logger)
	return p, nil
}
