package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/handiism/pls/internal/app"
	"github.com/handiism/pls/internal/audio"
	"github.com/handiism/pls/internal/library"
)

func init() {
	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List shows and their next episodes",
			Args:  cobra.NoArgs,
			RunE:  runList,
		},
		&cobra.Command{
			Use:   "next [show]",
			Short: "Print the path of a show's next episode",
			Args:  cobra.MaximumNArgs(1),
			RunE:  runNext,
		},
		&cobra.Command{
			Use:   "last [show]",
			Short: "Print the path of the episode played last",
			Args:  cobra.MaximumNArgs(1),
			RunE:  runLast,
		},
		&cobra.Command{
			Use:   "play [show]",
			Short: "Play the next episode and move on to the one after it",
			Args:  cobra.MaximumNArgs(1),
			RunE:  runPlay,
		},
		&cobra.Command{
			Use:   "replay [show]",
			Short: "Play the episode played last again",
			Args:  cobra.MaximumNArgs(1),
			RunE:  runReplay,
		},
		&cobra.Command{
			Use:   "tui",
			Short: "Start the terminal interface",
			Args:  cobra.NoArgs,
			RunE:  runTUI,
		},
	)
}

func runList(cmd *cobra.Command, _ []string) error {
	return withState(nil, func(a *app.App, state *library.State) error {
		titles, err := audio.NewTitleReader(a.Fs, audio.DefaultTitleCacheSize)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, key := range state.OrderedKeys {
			show, ok := state.Shows[key]
			if !ok {
				fmt.Fprintf(w, "%s\t-\tnot loaded\n", key)
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", key, show.Name, titles.Describe(show.CurrentEpisode()).Label())
		}
		return w.Flush()
	})
}

func runNext(cmd *cobra.Command, args []string) error {
	return withState(args, func(_ *app.App, state *library.State) error {
		show, ok := state.SelectedShow()
		if !ok {
			return fmt.Errorf("show %q is not loaded", state.SelectedKey)
		}
		fmt.Fprintln(cmd.OutOrStdout(), show.CurrentEpisode())
		return nil
	})
}

func runLast(cmd *cobra.Command, args []string) error {
	return withState(args, func(_ *app.App, state *library.State) error {
		show, ok := state.SelectedShow()
		if !ok {
			return fmt.Errorf("show %q is not loaded", state.SelectedKey)
		}
		previous, ok, err := show.PreviousEpisode()
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("nothing of %s has been played yet", show.Name)
		}
		fmt.Fprintln(cmd.OutOrStdout(), previous)
		return nil
	})
}

func runPlay(cmd *cobra.Command, args []string) error {
	return withState(args, func(_ *app.App, state *library.State) error {
		show, ok := state.SelectedShow()
		if ok {
			fmt.Fprintf(cmd.ErrOrStderr(), "Playing %s\n", show.CurrentEpisode())
		}
		if err := state.AdvanceSelected(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Next up: %s\n", show.CurrentEpisode())
		return nil
	})
}

func runReplay(_ *cobra.Command, args []string) error {
	return withState(args, func(_ *app.App, state *library.State) error {
		return state.ReplayPreviousEpisode()
	})
}
