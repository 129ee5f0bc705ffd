package cmd

import (
	"github.com/bnema/balanceline/internal/logger"
	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var plain bool

	rootCmd := &cobra.Command{
		Use:   "balanceline",
		Short: "Account balance segment for the Claude Code statusline",
		Long: "balanceline prints the remaining balance of the API gateway configured for Claude Code. " +
			"Without a subcommand it runs as a statusline command: it reads the session JSON from stdin, " +
			"prints one styled segment and always exits 0.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.Flags().BoolVar(&plain, "plain", false, "Print the segment without ANSI styling")

	app, err := wireApp()
	if err != nil {
		// The prompt must keep drawing; the subcommands report why.
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return nil
		}
		rootCmd.AddCommand(
			newVersionCmd(),
			newUnwiredCmd("show", "Show the resolved balance and how it was obtained", err),
			newUnwiredCmd("setup", "Configure the dashboard account used for quota lookups", err),
			newUnwiredCmd("cache", "Inspect or clear the durable balance cache", err),
		)
		return rootCmd
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		cmd.SetContext(logger.ContextWithLogger(cmd.Context(), app.logger))
	}
	rootCmd.PersistentPostRun = func(_ *cobra.Command, _ []string) {
		app.flush()
	}
	rootCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return runStatusline(cmd, app, plain)
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newShowCmd(app),
		newSetupCmd(app),
		newCacheCmd(app),
	)

	return rootCmd
}

// newUnwiredCmd stands in for a subcommand whose dependencies failed to wire.
func newUnwiredCmd(use, short string, err error) *cobra.Command {
	return &cobra.Command{
		Use:                use,
		Short:              short,
		DisableFlagParsing: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return err
		},
	}
}
