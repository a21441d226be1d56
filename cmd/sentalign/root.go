package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/carolinebinley/ml-learning-alignment/internal/scoring"
)

const (
	exitFailure       = 1
	exitConfiguration = 2
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var logLevelFlag string

	ctx := newCommandContext(&configFlag, &logLevelFlag)

	rootCmd := &cobra.Command{
		Use:           "sentalign",
		Short:         "Align two sequences of text units",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Override the configured log level (debug, info, warn, error)")

	rootCmd.AddCommand(newAlignCommand(ctx))
	rootCmd.AddCommand(newDemoCommand(ctx))
	rootCmd.AddCommand(newRunsCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

func exitCode(err error) int {
	var classifier interface{ ErrorKind() string }
	if errors.As(err, &classifier) && classifier.ErrorKind() == "configuration" {
		return exitConfiguration
	}
	if errors.Is(err, scoring.ErrConfiguration) {
		return exitConfiguration
	}
	return exitFailure
}
