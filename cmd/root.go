package cmd

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"
)

var version = "dev"

// Root assembles the CLI. Global flags override file and environment
// configuration for every subcommand.
func Root() *cli.Command {
	return &cli.Command{
		Name:    "querysim",
		Usage:   "Simulated natural-language analytics query service",
		Version: version,
		Description: `querysim accepts free-text analytics questions, classifies them against a
fixed set of query shapes, rewrites them into structured queries, and returns
synthetic result rows shaped like a real analytics database. Run it as an HTTP
service with 'serve' or translate one-off queries from the command line.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error",
			},
			&cli.StringFlag{
				Name:  "db-path",
				Usage: "Warehouse database path (empty for in-memory)",
			},
			&cli.StringFlag{
				Name:  "seed",
				Usage: "Random seed for record synthesis (0 for time-based)",
			},
		},
		Commands: []*cli.Command{
			ServeCommand(),
			QueryCommand(),
			ExplainCommand(),
			ValidateCommand(),
			SchemaCommand(),
			ConfigCommand(),
		},
	}
}

// Execute runs the CLI.
func Execute() error {
	return Root().Run(context.Background(), os.Args)
}
