package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func ExplainCommand() *cli.Command {
	return &cli.Command{
		Name:        "explain",
		Usage:       "Explain how a query would be processed",
		ArgsUsage:   " <question>",
		Description: `Show the processing narrative for a question: the classification steps and the structured query it translates to, without executing anything.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args()
			if args.Len() != 1 {
				return fmt.Errorf("expected exactly 1 argument, got %d", args.Len())
			}

			return runExplain(cmd, args.First())
		},
	}
}

func runExplain(cmd *cli.Command, question string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	svc, err := buildService(cfg)
	if err != nil {
		return err
	}

	explanation := svc.Explain(question)

	fmt.Println("Steps:")

	for i, step := range explanation.Steps {
		fmt.Printf("  %d. %s\n", i+1, step)
	}

	fmt.Printf("\n%s\n", explanation.Summary)

	return nil
}
