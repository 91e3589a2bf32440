package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func ValidateCommand() *cli.Command {
	return &cli.Command{
		Name:        "validate",
		Usage:       "Check whether a question can be processed",
		ArgsUsage:   " <question>",
		Description: `Run the pre-flight feasibility checks on a question: pattern match, known entities, and measurable attributes.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args()
			if args.Len() != 1 {
				return fmt.Errorf("expected exactly 1 argument, got %d", args.Len())
			}

			return runValidate(cmd, args.First())
		},
	}
}

func runValidate(cmd *cli.Command, question string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	svc, err := buildService(cfg)
	if err != nil {
		return err
	}

	result := svc.Validate(question)

	if result.IsValid {
		fmt.Println("Query is valid.")
		return nil
	}

	fmt.Println("Query is not valid.")

	fmt.Println("\nReasons:")

	for _, reason := range result.Reasons {
		fmt.Printf("  - %s\n", reason)
	}

	fmt.Println("\nSuggestions:")

	for _, suggestion := range result.Suggestions {
		fmt.Printf("  - %s\n", suggestion)
	}

	return nil
}
