package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var referenceDirFlag string
	var logLevelFlag string

	ctx := newCommandContext(&configFlag, &referenceDirFlag, &logLevelFlag)

	rootCmd := &cobra.Command{
		Use:           "mriseq",
		Short:         "Classify and rename MRI sequence labels",
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
	rootCmd.PersistentFlags().StringVar(&referenceDirFlag, "reference-dir", "", "Directory holding the reference table (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(newClassifyCommand(ctx))
	rootCmd.AddCommand(newLookupCommand(ctx))
	rootCmd.AddCommand(newNameCommand(ctx))
	rootCmd.AddCommand(newTableCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
