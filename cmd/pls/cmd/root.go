// Package cmd implements the pls command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/handiism/pls/internal/app"
	"github.com/handiism/pls/internal/config"
	"github.com/handiism/pls/internal/library"
)

var v = viper.New()

var rootCmd = &cobra.Command{
	Use:   "pls",
	Short: "Keep your place in every show",
	Long: `pls remembers the next episode of each of your shows and plays it.

Each show is described by a TOML file in the config directory. Run
"pls init" to create the directory, then add one file per show.

Without a command, pls starts the terminal interface when run in a
terminal and lists the shows otherwise.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return runTUI(cmd, args)
		}
		return runList(cmd, args)
	},
}

func init() {
	config.SetDefaults(v)

	f := rootCmd.PersistentFlags()
	f.String("config-dir", "", "directory holding pls.toml and the show files (env PLS_CONFIG_DIR)")
	f.String("hostname", "", "host name for directory_<hostname> keys (env PLS_HOSTNAME)")
	f.String("log-level", "", "debug, info, warn or error (env PLS_LOG_LEVEL)")
	f.String("player", "", "application that plays episodes instead of the default one (env PLS_PLAYER)")

	for key, flag := range map[string]string{
		"config_dir": "config-dir",
		"hostname":   "hostname",
		"log_level":  "log-level",
		"player":     "player",
	} {
		_ = v.BindPFlag(key, f.Lookup(flag))
	}
}

// Execute runs the command line and exits with status 1 on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// withApp runs fn with an App logging to stderr as well as the log file.
func withApp(fn func(a *app.App) error) error {
	a, err := app.New(v, os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

// withState runs fn with the loaded library. A show key in args selects
// that show.
func withState(args []string, fn func(a *app.App, state *library.State) error) error {
	return withApp(func(a *app.App) error {
		state, err := a.LoadState()
		if err != nil {
			return err
		}
		if len(args) > 0 && !state.Select(args[0]) {
			return fmt.Errorf("unknown show %q", args[0])
		}
		return fn(a, state)
	})
}

func runTUI(_ *cobra.Command, _ []string) error {
	// The interface owns the terminal, so log to the file only.
	a, err := app.New(v, nil)
	if err != nil {
		return err
	}
	defer a.Close()
	return a.RunTUI()
}
