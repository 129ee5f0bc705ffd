package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCacheCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the last-known balance cache",
	}

	cmd.AddCommand(newCachePathCmd(app))

	return cmd
}

func newCachePathCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache file of the configured account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			identity, err := app.resolver.Identity()
			if err != nil {
				return err
			}

			path, err := app.cache.Path(identity.Key())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
}
