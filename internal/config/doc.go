// Package config provides configuration management for pls.
//
// This package handles:
//   - The comment-preserving TOML Document used for pls.toml and the show fragments
//   - Schema versions of the main config
//   - Application settings (config location, hostname, logging) via viper
//
// # Documents
//
// A Document is parsed once and patched in place:
//
//	doc, err := config.LoadDocument(fs, "/home/me/.config/pls/bleach.toml")
//	if err != nil {
//	    // *config.ParseError for malformed TOML
//	}
//	name, _ := doc.GetString("name")
//	_ = doc.Set("next", "Season 1/ep 03.mkv")
//	err = doc.Save(fs, "/home/me/.config/pls/bleach.toml")
//
// Only the value text of "next" changes on disk; comments, spacing and the
// order of all other entries are kept.
//
// # Versions
//
//	v, ok := config.ParseVersion("1.0.0") // config.Version1, true
//	v, ok = config.ParseVersion("9.9")    // config.DefaultVersion, false
//
// # Settings
//
//	v := viper.New()
//	config.SetDefaults(v)
//	settings, err := config.Load(v)
//	fmt.Println(settings.MainConfigPath())
package config
