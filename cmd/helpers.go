package cmd

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/querysim/querysim/internal/analytics"
	"github.com/querysim/querysim/internal/config"
	"github.com/querysim/querysim/internal/logging"
	"github.com/querysim/querysim/internal/schema"
)

// loadConfig resolves the effective configuration for a command: config
// file, environment, then global flag overrides. It also initializes the
// global logger.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	overrides := map[string]interface{}{
		"log-level": cmd.String("log-level"),
		"db-path":   cmd.String("db-path"),
	}

	if raw := cmd.String("seed"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --seed value %q: %w", raw, err)
		}

		overrides["seed"] = seed
	}

	cfg, err := config.LoadConfigWithOverrides(overrides)
	if err != nil {
		logging.SetupFallbackLogger()
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	cfg.ExpandAllPaths()

	if err := logging.InitializeLogger(cfg.Logging); err != nil {
		logging.SetupFallbackLogger()
		logging.GetLogger().WithError(err).Warn("falling back to basic logging")
	}

	return cfg, nil
}

// buildService constructs the analytics core over the stock catalog. This is
// where the registry self-check runs; a mismatch aborts the command.
func buildService(cfg *config.Config) (*analytics.Service, error) {
	svc, err := analytics.NewService(schema.Default(), cfg.Synth.Seed, logging.GetLogger())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize analytics service: %w", err)
	}

	return svc, nil
}
