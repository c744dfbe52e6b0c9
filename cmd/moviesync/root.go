package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "moviesync",
		Short:         "Reconcile a movie watch list against review catalogs",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newSearchCommand(ctx))
	rootCmd.AddCommand(newCSVCommand(ctx))
	rootCmd.AddCommand(newNirvanaCommand(ctx))
	rootCmd.AddCommand(newNotionCommand(ctx))
	rootCmd.AddCommand(newTMDBCommand(ctx))

	return rootCmd
}
