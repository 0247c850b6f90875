package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"ai-forms/internal/domain/entity"

	"github.com/spf13/cobra"
)

// errOutcome makes the process exit non-zero without printing the outcome
// twice.
var errOutcome = errors.New("service did not succeed")

func newRunCmd(opts *rootOptions) *cobra.Command {
	var (
		sets    []string
		files   []string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "run <service-id>",
		Short: "Execute one service with the given field values",
		Example: `  aiforms run social-post --set keyword=golang
  aiforms run meeting-scheduler --set title=Sync --set date=2024-05-01 --set time=14:30
  aiforms run image-caption --file image=./photo.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := buildInput(sets, files, os.ReadFile)
			if err != nil {
				return err
			}

			c, err := opts.container()
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			res, err := c.Executor.Execute(ctx, entity.ServiceID(args[0]), in)
			if err != nil {
				return err
			}

			if err := c.Text.Render(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			if res.Outcome.Kind() != entity.OutcomeSuccess {
				return errOutcome
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "field value as name=value (repeatable)")
	cmd.Flags().StringArrayVar(&files, "file", nil, "file field as name=path (repeatable)")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "maximum time for the call")
	return cmd
}

// parseAssignment splits name=value. The value may itself contain '='.
func parseAssignment(s string) (string, string, error) {
	name, value, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", fmt.Errorf("invalid assignment %q, expected name=value", s)
	}
	return name, value, nil
}

func buildInput(sets, files []string, readFile func(string) ([]byte, error)) (entity.Input, error) {
	in := entity.NewInput(nil)
	for _, s := range sets {
		name, value, err := parseAssignment(s)
		if err != nil {
			return in, err
		}
		in.Values[name] = value
	}
	for _, f := range files {
		name, path, err := parseAssignment(f)
		if err != nil {
			return in, err
		}
		data, err := readFile(path)
		if err != nil {
			return in, fmt.Errorf("read %s: %w", name, err)
		}
		in.Files[name] = data
	}
	return in, nil
}
