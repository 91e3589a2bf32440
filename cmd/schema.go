package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/querysim/querysim/internal/storage"
)

func SchemaCommand() *cli.Command {
	return &cli.Command{
		Name:        "schema",
		Usage:       "Display the mock catalog and seeded row counts",
		Description: `Show every table in the catalog with its columns and semantic classes, plus the row counts of the seeded warehouse.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runSchema(ctx, cmd)
		},
	}
}

func runSchema(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	svc, err := buildService(cfg)
	if err != nil {
		return err
	}

	registry := svc.Registry()

	warehouse, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to open warehouse: %w", err)
	}
	defer warehouse.Close()

	if err := warehouse.Initialize(ctx, registry, svc.Executor(), cfg.Storage.SeedRows); err != nil {
		return fmt.Errorf("failed to seed warehouse: %w", err)
	}

	stats, err := warehouse.Stats(ctx, registry)
	if err != nil {
		return fmt.Errorf("failed to read warehouse stats: %w", err)
	}

	fmt.Printf("Catalog\n")
	fmt.Printf("=======\n\n")

	for _, name := range registry.TableNames() {
		table, _ := registry.Table(name)

		fmt.Printf("%s (%d rows)\n", name, stats.Tables[name])

		for _, col := range table.Columns {
			generated := ""
			if col.Generate != nil {
				generated = "  [generated]"
			}

			fmt.Printf("  %-12s %s%s\n", col.Name, col.Class, generated)
		}

		fmt.Println()
	}

	fmt.Printf("Total rows: %d\n", stats.TotalRows)

	return nil
}
