package config

import (
	"errors"
	"fmt"

	"flac2mp3/internal/model"
)

// Settings holds all configuration options for a conversion run.
type Settings struct {
	// Conversion settings
	Mode         model.Mode
	Placement    model.Placement
	TargetParent string // optional parent for the new target directory
	Force        bool   // overwrite existing output MP3s
	DryRun       bool
	Verbose      bool

	// Cover art settings
	SaveCoverArtInTags    bool
	CoverArtInTagsResize  bool
	CoverArtInTagsMaxSize int
	ConvertCoverArtToJPG  bool

	// Playlist settings
	CreatePlaylist bool
	M3UExtended    bool

	// Tag settings
	ModifyTags bool

	// External tools
	FlacBinary string
	LameBinary string
}

// DefaultSettings returns settings with default values.
//
// The Mode is left unset on purpose: it must be chosen explicitly.
func DefaultSettings() *Settings {
	return &Settings{
		Placement: model.PlacementInPlace,

		SaveCoverArtInTags:    true,
		CoverArtInTagsResize:  true,
		CoverArtInTagsMaxSize: 1000,
		ConvertCoverArtToJPG:  true,

		CreatePlaylist: false,
		M3UExtended:    true,

		ModifyTags: true,

		FlacBinary: "flac",
		LameBinary: "lame",
	}
}

// Validate checks the settings for contradictions before any filesystem
// work begins.
func (s *Settings) Validate() error {
	if s.Mode == model.ModeUnset {
		return errors.New("no conversion mode chosen: pick VBR V0 or CBR 320")
	}
	if s.Mode != model.ModeVBR && s.Mode != model.ModeCBR {
		return fmt.Errorf("unknown conversion mode %d", int(s.Mode))
	}
	if s.TargetParent != "" && s.Placement != model.PlacementNewDir {
		return errors.New("a target parent requires new-directory placement")
	}
	if s.CoverArtInTagsMaxSize <= 0 {
		return fmt.Errorf("cover art max size must be positive, got %d", s.CoverArtInTagsMaxSize)
	}
	if s.FlacBinary == "" || s.LameBinary == "" {
		return errors.New("external binary names must not be empty")
	}
	return nil
}
