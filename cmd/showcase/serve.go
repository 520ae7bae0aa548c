package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/showcase/internal/config"
	"github.com/aretw0/showcase/internal/presentation/tui"
	"github.com/aretw0/showcase/pkg/adapters/file"
	httpAdapter "github.com/aretw0/showcase/pkg/adapters/http"
	"github.com/aretw0/showcase/pkg/adapters/loam"
	"github.com/aretw0/showcase/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/showcase/pkg/adapters/redis"
	"github.com/aretw0/showcase/pkg/domain"
	"github.com/aretw0/showcase/pkg/observability"
	"github.com/aretw0/showcase/pkg/ports"
	"github.com/aretw0/showcase/pkg/session"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves the deck, its diagrams and remote presenter sessions as a JSON API.
Sessions live in memory unless --store or --redis choose a persistent backend.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadPresentation()
		if err != nil {
			return err
		}

		metrics := observability.NewMetrics()
		store, locker, err := sessionBackend(cfg.Server)
		if err != nil {
			return err
		}
		mgrOpts := []session.Option{
			session.WithLogger(logger),
			session.WithLockTTL(cfg.Server.LockTTL),
			session.WithLifecycleHooks(metrics.Hooks(domain.LifecycleHooks{})),
		}
		if locker != nil {
			mgrOpts = append(mgrOpts, session.WithLocker(locker))
		}

		opts := []httpAdapter.Option{
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetrics(metrics),
			httpAdapter.WithSessions(session.NewManager(store, p.Entries, mgrOpts...)),
		}
		if cfg.Deck.NotesDir != "" {
			notes, err := loam.Open(cfg.Deck.NotesDir)
			if err != nil {
				return err
			}
			opts = append(opts, httpAdapter.WithNotes(notes))
		}
		if _, err := httpAdapter.Spec(); err != nil {
			return fmt.Errorf("invalid embedded API contract: %w", err)
		}

		srv := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           httpAdapter.NewServer(p.Deck, p.Entries, opts...).Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		if isatty.IsTerminal(os.Stderr.Fd()) {
			tui.PrintBanner(os.Stderr)
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("showcase server listening", "addr", srv.Addr, "store", cfg.Server.StoreKind())
			serverErrors <- srv.ListenAndServe()
		}()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)
		case <-ctx.Done():
			logger.Info("shutdown signal received")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
				if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			logger.Info("showcase server stopped gracefully")
			return nil
		}
	},
}

// sessionBackend opens the configured snapshot store. Only redis provides a distributed lock.
func sessionBackend(c config.ServerConfig) (ports.SnapshotStore, ports.DistributedLocker, error) {
	switch c.StoreKind() {
	case config.StoreRedis:
		store, err := redisAdapter.New(c.RedisURL, redisAdapter.WithTTL(c.SessionTTL))
		if err != nil {
			return nil, nil, err
		}
		return store, redisAdapter.NewLocker(store.Client(), redisAdapter.DefaultPrefix), nil
	case config.StoreFile:
		return file.New(c.StoreDir), nil, nil
	default:
		return memory.NewStore(), nil, nil
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Address to listen on (default :8080)")
	serveCmd.Flags().String("store", "", "Session store: memory, file or redis")
	serveCmd.Flags().String("redis", "", "Redis URL for sessions and locks, e.g. redis://localhost:6379/0")
	serveCmd.Flags().String("notes", "", "Directory of speaker notes")
}
