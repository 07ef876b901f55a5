package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handiism/pls/internal/app"
)

func init() {
	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Create the config directory and main config file",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withApp(func(a *app.App) error {
					created, err := a.Init()
					if err != nil {
						return err
					}
					path := a.Settings.MainConfigPath()
					if created {
						fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
					} else {
						fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", path)
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "where",
			Short: "Print where pls keeps its files",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withApp(func(a *app.App) error {
					out := cmd.OutOrStdout()
					fmt.Fprintf(out, "config:   %s\n", a.Settings.MainConfigPath())
					fmt.Fprintf(out, "log:      %s\n", a.Settings.LogFile)
					fmt.Fprintf(out, "hostname: %s\n", a.Hostname)
					return nil
				})
			},
		},
	)
}
