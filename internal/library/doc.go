// Package library ties the config files to the shows on disk.
//
// The config directory holds a main config, pls.toml, and one fragment per
// show:
//
//	~/.config/pls/
//	├── pls.toml        version and display ordering
//	├── bleach.toml     show "bleach"
//	└── frasier.toml    show "frasier"
//
// A Loader turns fragments into model.Show values. A State holds the loaded
// shows for a renderer and performs everything a renderer can ask for:
//
//	state, err := library.New(settings.MainConfigPath(),
//	    library.WithHostname(host),
//	    library.WithLogger(logger))
//	if err != nil {
//	    return err // main config missing or malformed
//	}
//	state.Select("bleach")
//	if err := state.AdvanceSelected(); err != nil {
//	    fmt.Println(state.Error)
//	}
//
// Advancing a show writes its new next episode straight back to the
// fragment, changing nothing else in the file.
package library
