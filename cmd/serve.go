package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/querysim/querysim/internal/auth"
	"github.com/querysim/querysim/internal/config"
	"github.com/querysim/querysim/internal/logging"
	"github.com/querysim/querysim/internal/server"
	"github.com/querysim/querysim/internal/storage"
)

func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:        "serve",
		Usage:       "Run the HTTP query API",
		Description: `Start the HTTP server exposing /token, /api/query, /api/explain, /api/validate, and /health. The mock warehouse is created and seeded on startup.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (overrides configuration)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runServe(ctx, cmd)
		},
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if addr := cmd.String("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	logger := logging.GetLogger()

	svc, err := buildService(cfg)
	if err != nil {
		return err
	}

	warehouse, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to open warehouse: %w", err)
	}
	defer warehouse.Close()

	if err := warehouse.Initialize(ctx, svc.Registry(), svc.Executor(), cfg.Storage.SeedRows); err != nil {
		return fmt.Errorf("failed to seed warehouse: %w", err)
	}

	authn := auth.New(cfg.Auth.Username, cfg.Auth.Password, cfg.TokenTTL())
	srv := server.New(svc, authn, warehouse, logger, cfg.Server.MaxBodyBytes)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.Handler(),
		ReadTimeout:  mustDuration(cfg.Server.ReadTimeout),
		WriteTimeout: mustDuration(cfg.Server.WriteTimeout),
	}

	errCh := make(chan error, 1)

	go func() {
		logger.WithField("addr", cfg.Server.Addr).Info("HTTP server listening")

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		logger.WithField("signal", sig.String()).Info("shutting down")
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), mustDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	return httpServer.Shutdown(shutdownCtx)
}

// mustDuration parses a duration already validated by the config layer.
func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 10 * time.Second
	}

	return d
}

// Ensure config package is used
var _ *config.Config
