package flac

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"

	"flac2mp3/internal/model"
)

// Reader loads metadata from FLAC files.
//
// Example:
//
//	reader := flac.NewReader()
//	tags, err := reader.ReadTags(path)
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadTags reads the Vorbis comments of the FLAC file at path into a
// normalized TagSet.
//
// Returns an error if the file cannot be opened, carries no parseable
// metadata, or is not a FLAC file at all (a renamed MP3, for example).
func (r *Reader) ReadTags(path string) (model.TagSet, error) {
	meta, err := readMetadata(path)
	if err != nil {
		return nil, err
	}

	raw := make(map[string]string, len(meta.Raw()))
	for key, value := range meta.Raw() {
		// Raw values other than strings (embedded pictures) are not comments.
		if s, ok := value.(string); ok {
			raw[key] = s
		}
	}

	return model.NewTagSet(raw), nil
}

// ReadPicture returns the embedded picture of the FLAC file at path.
//
// Returns nil bytes and no error when the file carries no picture block.
func (r *Reader) ReadPicture(path string) ([]byte, error) {
	meta, err := readMetadata(path)
	if err != nil {
		return nil, err
	}

	pic := meta.Picture()
	if pic == nil {
		return nil, nil
	}
	return pic.Data, nil
}

// readMetadata opens the file and parses its metadata, rejecting
// non-FLAC input.
func readMetadata(path string) (tag.Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("read metadata of %s: %w", filepath.Base(path), err)
	}
	if meta.FileType() != tag.FLAC {
		return nil, fmt.Errorf("%s: not a FLAC file (detected %s)", filepath.Base(path), meta.FileType())
	}

	return meta, nil
}

// IsFLAC reports whether the file name carries a FLAC extension.
// Matching is case-insensitive, so "Track.FLAC" counts.
func IsFLAC(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".flac")
}
