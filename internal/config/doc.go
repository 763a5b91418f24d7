// Package config provides the runtime settings for flac2mp3.
//
// Settings are assembled from command-line flags only. There is
// deliberately no config file and nothing is persisted between runs.
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// In-place conversion, cover art embedded and resized to 1000px,
//	// external binaries resolved as "flac" and "lame"
//
// The conversion mode has no default: exactly one of ModeVBR or ModeCBR
// must be chosen explicitly, and Validate rejects settings that leave it
// unset.
//
// # Validation
//
//	settings.Mode = model.ModeVBR
//	if err := settings.Validate(); err != nil {
//	    // reject before touching the filesystem
//	}
package config
