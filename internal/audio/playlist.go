package audio

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"flac2mp3/internal/model"
)

// PlaylistCreator generates M3U playlists for converted releases.
//
// PlaylistCreator takes a release and generates a playlist containing
// every converted track, in conversion order. The output is a string
// that can be written to a file next to the tracks.
//
// Example:
//
//	// Create M3U playlist with extended info
//	creator := NewPlaylistCreator(true)
//	content := creator.CreatePlaylist(release)
//	os.WriteFile(release.PlaylistPath(), []byte(content), 0644)
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:180,Artist - Song Title
//	// 01 Artist - Song Title.mp3
type PlaylistCreator struct {
	extended bool // include EXTINF lines with duration/title
}

// NewPlaylistCreator creates a new PlaylistCreator.
//
// When extended is true the playlist carries #EXTINF lines with track
// durations and display titles in addition to the filenames.
func NewPlaylistCreator(extended bool) *PlaylistCreator {
	return &PlaylistCreator{extended: extended}
}

// CreatePlaylist generates M3U playlist content for a release.
//
// Returns the playlist as a string, ready to be written to a file.
// Track paths in the playlist are relative (just the filename), since
// the playlist file lives in the same directory as the tracks.
//
// Standard M3U format:
//
//	filename1.mp3
//	filename2.mp3
//
// Extended M3U format (when extended=true):
//
//	#EXTM3U
//	#EXTINF:180,Artist - Title
//	filename1.mp3
func (p *PlaylistCreator) CreatePlaylist(release *model.Release) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, track := range release.Tracks {
		if p.extended {
			seconds := int(track.Duration.Round(time.Second).Seconds())
			sb.WriteString(fmt.Sprintf("#EXTINF:%d,%s\n", seconds, track.DisplayTitle()))
		}
		sb.WriteString(filepath.Base(track.Output) + "\n")
	}

	return sb.String()
}
