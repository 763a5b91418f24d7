package model

import (
	"path/filepath"
	"strings"
	"time"
)

// Track represents a single FLAC file scheduled for conversion.
//
// Track contains everything the per-track pipeline needs:
//   - Source and Output paths
//   - The position within the release (1-indexed, plan order)
//   - The Vorbis comments read from the source file
//   - Duration, filled in after decoding, for playlist generation
//
// The output path is computed when creating a track via NewTrack: the
// source file name with its extension replaced by .mp3, inside the
// release's target directory.
//
// Example:
//
//	track := NewTrack("/music/Album/01 Intro.flac", "/music/Album [V0]", 1, tags)
//	// track.Output = "/music/Album [V0]/01 Intro.mp3"
type Track struct {
	// Source is the path of the original FLAC file. Never written to.
	Source string

	// Output is the path the encoded MP3 is written to.
	Output string

	// Number is the track's position within the release (1-indexed,
	// ordered by file name). Used as a fallback only; the TRCK frame is
	// written from the TRACKNUMBER tag.
	Number int

	// Tags holds the Vorbis comments of the source file.
	Tags TagSet

	// Duration is the decoded track length, probed from the intermediate
	// WAV. Zero until the track has been converted.
	Duration time.Duration
}

// NewTrack creates a Track with its output path computed.
//
// Parameters:
//   - source: Path of the FLAC file
//   - targetDir: Directory the MP3 is written to
//   - number: Position within the release (1-indexed)
//   - tags: Vorbis comments read from the source file
func NewTrack(source, targetDir string, number int, tags TagSet) *Track {
	return &Track{
		Source: source,
		Output: OutputPath(targetDir, source),
		Number: number,
		Tags:   tags,
	}
}

// DisplayTitle returns a human-readable name for the track: "Artist - Title"
// when both tags are present, the title alone when only it is, and the
// source file's stem otherwise.
func (t *Track) DisplayTitle() string {
	artist := t.Tags.Get("ARTIST")
	title := t.Tags.Get("TITLE")
	switch {
	case artist != "" && title != "":
		return artist + " - " + title
	case title != "":
		return title
	default:
		base := filepath.Base(t.Source)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
}

// OutputPath computes the MP3 path for a source file inside targetDir:
// the source base name with its extension replaced by .mp3.
func OutputPath(targetDir, source string) string {
	base := filepath.Base(source)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(targetDir, stem+".mp3")
}
