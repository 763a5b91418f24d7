package model

import (
	"fmt"
	"path/filepath"
)

// Release represents one source directory of audio files scheduled for
// conversion.
//
// Release ties together:
//   - SourceDir and the resolved TargetDir for converted output
//   - The FLAC tracks found in the directory, in deterministic order
//   - Release-level facts derived from the tracks (multidisc detection)
//   - The cover art that will be embedded into every converted MP3
//
// A Release is assembled by the convert package when planning a run and is
// never mutated by the conversion itself: source files stay untouched.
type Release struct {
	// SourceDir is the directory containing the original files.
	SourceDir string

	// TargetDir is the directory converted files are written to. Equal to
	// SourceDir for in-place conversions.
	TargetDir string

	// Tracks contains the FLAC files to convert, ordered by file name.
	Tracks []*Track

	// Multidisc is true when the highest DISCNUMBER across all tracks is
	// greater than one. Single-disc releases drop disc frames entirely.
	Multidisc bool

	// ArtworkSource is the file the cover art comes from: a folder image
	// (folder.jpg or cover.jpg) or, failing that, a FLAC with an embedded
	// picture. Empty when no artwork was found.
	ArtworkSource string

	// ArtworkEmbedded is true when ArtworkSource names a FLAC file whose
	// embedded picture is used rather than a standalone image file.
	ArtworkEmbedded bool
}

// HasArtwork returns true if cover art was located for the release.
func (r *Release) HasArtwork() bool {
	return r.ArtworkSource != ""
}

// PlaylistPath returns the path of the playlist file for the release:
// the target directory's base name with an .m3u extension, inside the
// target directory.
func (r *Release) PlaylistPath() string {
	base := filepath.Base(filepath.Clean(r.TargetDir))
	return filepath.Join(r.TargetDir, base+".m3u")
}

// TargetDirName derives the name of the directory converted output goes
// into: the source directory's base name plus the mode's quality suffix.
//
// Example:
//
//	TargetDirName("/music/Album", ModeVBR) // "Album [V0]"
//	TargetDirName("/music/Album", ModeCBR) // "Album [320]"
func TargetDirName(sourceDir string, mode Mode) string {
	base := filepath.Base(filepath.Clean(sourceDir))
	return fmt.Sprintf("%s [%s]", base, mode.Suffix())
}

// ResolveTargetDir computes the directory converted files are written to.
//
// For PlacementInPlace the target is the source directory itself. For
// PlacementNewDir the target is a directory named by TargetDirName, placed
// next to the source directory, or under targetParent when it is non-empty.
//
// Example:
//
//	ResolveTargetDir("/music/Album", ModeVBR, PlacementNewDir, "")
//	// "/music/Album [V0]"
//	ResolveTargetDir("/music/Album", ModeCBR, PlacementNewDir, "/out")
//	// "/out/Album [320]"
func ResolveTargetDir(sourceDir string, mode Mode, placement Placement, targetParent string) string {
	sourceDir = filepath.Clean(sourceDir)
	if placement != PlacementNewDir {
		return sourceDir
	}

	parent := filepath.Dir(sourceDir)
	if targetParent != "" {
		parent = filepath.Clean(targetParent)
	}

	return filepath.Join(parent, TargetDirName(sourceDir, mode))
}
