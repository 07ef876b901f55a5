package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handiism/pls/internal/app"
	"github.com/handiism/pls/internal/audio"
	ioutils "github.com/handiism/pls/internal/io"
	"github.com/handiism/pls/internal/library"
	"github.com/handiism/pls/internal/model"
)

func init() {
	playlistCmd := &cobra.Command{
		Use:   "playlist [show]",
		Short: "Write the remaining episodes of a show as a playlist",
		Long: `Write the next episode of a show and every episode after it as a
playlist, so that a media player can work through them in order.

The playlist goes to standard output unless --output or --save is given.
--save names the file after the show, in the current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runPlaylist,
	}
	playlistCmd.Flags().StringP("output", "o", "", "playlist file to write")
	playlistCmd.Flags().Bool("save", false, "write <show name>.<format> to the current directory")
	playlistCmd.Flags().StringP("format", "f", "", "m3u, pls, wpl or zpl (default from settings, env PLS_PLAYLIST_FORMAT)")
	_ = v.BindPFlag("playlist_format", playlistCmd.Flags().Lookup("format"))

	rootCmd.AddCommand(playlistCmd)
}

func runPlaylist(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	save, _ := cmd.Flags().GetBool("save")

	return withState(args, func(a *app.App, state *library.State) error {
		show, ok := state.SelectedShow()
		if !ok {
			return fmt.Errorf("show %q is not loaded", state.SelectedKey)
		}

		format, err := audio.ParsePlaylistFormat(a.Settings.PlaylistFormat)
		if err != nil {
			return err
		}

		paths, err := show.RemainingEpisodes()
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("%s is not in %s", show.CurrentEpisode(), show.Dir)
		}

		titles, err := audio.NewTitleReader(a.Fs, len(paths))
		if err != nil {
			return err
		}
		episodes := make([]model.Episode, len(paths))
		for i, p := range paths {
			episodes[i] = titles.Describe(p)
		}

		content := audio.NewPlaylistCreator(format, a.Settings.M3UExtended).
			CreatePlaylist(&audio.Playlist{Title: show.Name, Episodes: episodes})

		if output == "" && save {
			output = ioutils.SanitizeFileName(show.Name) + format.Extension()
		}
		if output == "" {
			_, err := fmt.Fprint(cmd.OutOrStdout(), content)
			return err
		}
		if err := ioutils.WriteFileAtomic(a.Fs, output, []byte(content)); err != nil {
			return err
		}
		a.Logger.Info("wrote playlist", "show", state.SelectedKey, "path", output, "episodes", len(episodes))
		return nil
	})
}
