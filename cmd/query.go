package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/urfave/cli/v3"

	"github.com/querysim/querysim/internal/analytics"
)

func QueryCommand() *cli.Command {
	return &cli.Command{
		Name:      "query",
		Usage:     "Translate and execute a natural-language query",
		ArgsUsage: " <question>",
		Description: `Translate a free-text analytics question into a structured query and print synthetic result rows.

Examples:
  querysim query "show me the top 5 customers by revenue"
  querysim query "what were the sales last quarter"
  querysim query --json "list products with inventory below 100 units"`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Emit the full result as JSON",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args()
			if args.Len() != 1 {
				return fmt.Errorf("expected exactly 1 argument, got %d", args.Len())
			}

			return runQuery(cmd, args.First(), cmd.Bool("json"))
		},
	}
}

func runQuery(cmd *cli.Command, question string, asJSON bool) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	svc, err := buildService(cfg)
	if err != nil {
		return err
	}

	spin := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	spin.Suffix = " Translating query..."
	spin.Start()

	result, err := svc.Process(question)

	spin.Stop()

	if err != nil {
		return fmt.Errorf("failed to process query: %w", err)
	}

	if asJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}

		fmt.Println(string(data))

		return nil
	}

	printResult(result)

	return nil
}

func printResult(result *analytics.QueryResult) {
	fmt.Printf("Query:      %s\n", result.OriginalQuery)
	fmt.Printf("Translated: %s\n", result.TranslatedQuery)
	fmt.Printf("Rows:       %d (%.4fs)\n\n", len(result.Result), result.ExecutionTime)

	for i, row := range result.Result {
		fmt.Printf("[%d]", i+1)

		for _, col := range row.Columns() {
			value, _ := row.Get(col)
			fmt.Printf(" %s=%v", col, value)
		}

		fmt.Println()
	}
}
