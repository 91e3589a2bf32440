package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"
)

func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:        "config",
		Usage:       "Display the active configuration",
		Description: `Show the current active configuration including all settings from file, environment variables, and command-line flags.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runConfig(cmd)
		},
	}
}

func runConfig(cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Println("Active Configuration")
	fmt.Println("====================")

	fmt.Println("\nServer:")
	fmt.Printf("  Addr: %s\n", cfg.Server.Addr)
	fmt.Printf("  Read Timeout: %s\n", cfg.Server.ReadTimeout)
	fmt.Printf("  Write Timeout: %s\n", cfg.Server.WriteTimeout)
	fmt.Printf("  Max Body Bytes: %d\n", cfg.Server.MaxBodyBytes)

	fmt.Println("\nAuth:")
	fmt.Printf("  Username: %s\n", cfg.Auth.Username)
	fmt.Printf("  Token TTL: %d minutes\n", cfg.Auth.TokenTTLMinutes)

	fmt.Println("\nStorage:")

	if cfg.Storage.Path == "" {
		fmt.Println("  Path: (in-memory)")
	} else {
		fmt.Printf("  Path: %s\n", cfg.Storage.Path)
	}

	fmt.Printf("  Seed Rows: %d\n", cfg.Storage.SeedRows)

	fmt.Println("\nSynth:")

	if cfg.Synth.Seed == 0 {
		fmt.Println("  Seed: (time-based)")
	} else {
		fmt.Printf("  Seed: %d\n", cfg.Synth.Seed)
	}

	fmt.Println("\nLogging:")
	fmt.Printf("  Level: %s\n", cfg.Logging.Level)
	fmt.Printf("  Format: %s\n", cfg.Logging.Format)
	fmt.Printf("  Output: %s\n", cfg.Logging.Output)

	if cfg.Logging.Output == "file" {
		fmt.Printf("  File: %s\n", cfg.Logging.File)
	}

	if cmd.String("log-level") == "debug" {
		fmt.Println("\nRaw Configuration (JSON):")

		jsonData, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config to JSON: %w", err)
		}

		fmt.Println(string(jsonData))
	}

	return nil
}
