// Package audio provides episode metadata and playlist services.
//
// # Episode Titles
//
// Use the TitleReader to describe episodes, reading ID3 titles from MP3
// files:
//
//	reader, err := audio.NewTitleReader(fs, audio.DefaultTitleCacheSize)
//	ep := reader.Describe("/podcasts/show-56.mp3")
//	fmt.Println(ep.Label())
//
// # Playlist Generation
//
// Export the episodes still ahead of a show's pointer:
//
//	creator := audio.NewPlaylistCreator(audio.FormatM3U, true) // extended M3U
//	content := creator.CreatePlaylist(&audio.Playlist{Title: show.Name, Episodes: eps})
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
//   - WPL (Windows Media Player)
//   - ZPL (Zune Media Player)
package audio
