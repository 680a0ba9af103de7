package main

import (
	"fmt"
	"os"

	"hotel/config"
	"hotel/helper"
	"hotel/shared/logger"

	"github.com/spf13/cobra"
)

func migrationCmd(use, short string, run func(*config.Config) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(config.Get())
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the default administrator and the sample rooms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helper.Seed(cmd.Context(), config.Get())
		},
	}
}

func main() {
	logger.InitLogger()

	rootCmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the hotel database schema",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logger.SetLogLevel(config.Get())
		},
	}

	rootCmd.AddCommand(
		migrationCmd(helper.ActionUp, "Apply all pending migrations", helper.Up),
		migrationCmd(helper.ActionDown, "Roll back the latest migration", helper.Down),
		migrationCmd(helper.ActionStepUp, "Apply the next pending migration", helper.StepUp),
		migrationCmd(helper.ActionDrop, "Roll back every migration", helper.Drop),
		seedCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
