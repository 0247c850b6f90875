package main

import (
	"fmt"

	"ai-forms/internal/di"
	"ai-forms/internal/infrastructure/config"
	"ai-forms/internal/infrastructure/env"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	envDir string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "aiforms",
		Short:         "Run AI form services from the terminal or over HTTP",
		Long:          "aiforms hosts a set of AI and automation panels (text generation, image captioning, sentiment analysis and webhook triggers) behind one validated execution path.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.envDir, "env-dir", "", "directory holding .env files (default: current directory)")

	cmd.AddCommand(
		newServicesCmd(opts),
		newRunCmd(opts),
		newServeCmd(opts),
	)
	return cmd
}

func (o *rootOptions) container(extra ...di.Option) (*di.Container, error) {
	env.Load(o.envDir)

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	c, err := di.NewContainer(cfg, extra...)
	if err != nil {
		return nil, fmt.Errorf("initialize: %w", err)
	}
	return c, nil
}
