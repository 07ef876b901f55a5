package config

// Version identifies a schema version of the main config file.
type Version string

const (
	// Version1 is the first, and currently only, config schema.
	Version1 Version = "1.0.0"
)

// DefaultVersion is used when the config has no version or one this
// build does not recognize.
const DefaultVersion = Version1

// KnownVersions lists every recognized schema version, oldest first.
var KnownVersions = []Version{Version1}

// ParseVersion maps a version string onto a known Version.
//
// It never fails: an empty or unrecognized string yields DefaultVersion and
// ok == false so the caller can record a warning.
func ParseVersion(s string) (v Version, ok bool) {
	for _, known := range KnownVersions {
		if string(known) == s {
			return known, true
		}
	}
	return DefaultVersion, false
}

func (v Version) String() string {
	return string(v)
}
