package audio

import (
	"sort"
	"strconv"

	"github.com/bogem/id3v2"

	"flac2mp3/internal/model"
)

// TagContext carries release-level facts the tagger needs when writing
// frames for a single track.
type TagContext struct {
	// FlacCount is the number of FLAC files in the release. It is used
	// as the track total when the source tags carry neither TRACKTOTAL
	// nor TOTALTRACKS. Zero disables the fallback, so a single
	// converted file keeps its bare track number.
	FlacCount int

	// Multidisc is true when any track in the release declares a disc
	// number above one. Single-disc releases get no TPOS frame and
	// their disc bookkeeping fields are dropped instead of spilling
	// into TXXX frames.
	Multidisc bool
}

// textFrameFor maps Vorbis comment fields to dedicated ID3v2 text
// frames. Fields not listed here (and not consumed by the numbering
// logic) end up in TXXX frames keyed by the Vorbis field name.
var textFrameFor = map[string]string{
	"ALBUMARTIST":  "TPE2",
	"COMPOSER":     "TCOM",
	"CONDUCTOR":    "TPE3",
	"LYRICIST":     "TEXT",
	"PUBLISHER":    "TPUB",
	"LABEL":        "TPUB",
	"ORGANIZATION": "TPUB",
	"COPYRIGHT":    "TCOP",
	"ISRC":         "TSRC",
	"BPM":          "TBPM",
}

// Tagger writes ID3v2.4 tags to MP3 files.
//
// Tagger translates the Vorbis comments read from a FLAC source into
// the closest ID3 equivalents:
//   - Artist, Title, Album, Genre
//   - Recording date (TDRC) plus a plain year (TYER) for older players
//   - Track number with total (TRCK "n/total")
//   - Disc number with total (TPOS, multidisc releases only)
//   - Comments (COMM), Lyrics (USLT)
//   - Cover Art (attached picture)
//   - Any remaining fields as user-defined TXXX frames
//
// Example:
//
//	tagger := NewTagger()
//
//	// After encoding track
//	err := tagger.Apply(track.Output, track.Tags, tagCtx, artworkBytes, "image/jpeg")
//	if err != nil {
//	    log.Printf("Failed to tag %s: %v", track.Output, err)
//	}
type Tagger struct{}

// NewTagger creates a new Tagger.
func NewTagger() *Tagger {
	return &Tagger{}
}

// Apply writes ID3 tags to the MP3 file at path.
//
// This method:
//  1. Opens the MP3 file and parses any tag the encoder left behind
//  2. Writes dedicated frames for the fields ID3 has names for
//  3. Writes TXXX frames for every remaining Vorbis field
//  4. Embeds cover art if artwork bytes are provided
//  5. Saves the modified tags to the file
//
// Parameters:
//   - path: The MP3 file to tag (must exist)
//   - tags: Vorbis comments read from the FLAC source
//   - ctx: Release-level facts (FLAC count, multidisc flag)
//   - artwork: Image bytes for cover art (nil to skip artwork)
//   - artworkMime: MIME type of the artwork ("image/jpeg" when empty)
//
// Returns an error if the file cannot be opened or saved.
func (t *Tagger) Apply(path string, tags model.TagSet, ctx TagContext, artwork []byte, artworkMime string) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	remaining := make(map[string]string, len(tags))
	for key, value := range tags {
		remaining[key] = value
	}
	consume := func(key string) string {
		value := remaining[key]
		delete(remaining, key)
		return value
	}

	// Artist (TPE1)
	if artist := consume("ARTIST"); artist != "" {
		tag.SetArtist(artist)
	}

	// Track Title (TIT2)
	if title := consume("TITLE"); title != "" {
		tag.SetTitle(title)
	}

	// Album (TALB)
	if album := consume("ALBUM"); album != "" {
		tag.SetAlbum(album)
	}

	// Genre (TCON)
	if genre := consume("GENRE"); genre != "" {
		tag.SetGenre(genre)
	}

	// Date (TDRC) - ID3v2.4, plus Year (TYER) for ID3v2.3 players
	if date := consume("DATE"); date != "" {
		tag.AddTextFrame("TDRC", id3v2.EncodingUTF8, date)
		if year := yearFrom(date); year != "" {
			tag.AddTextFrame("TYER", id3v2.EncodingUTF8, year)
		}
	}

	// Track Number (TRCK), combined with the total when one is known.
	// The totals are consumed either way so they never leak into TXXX.
	number := consume("TRACKNUMBER")
	total := consume("TRACKTOTAL")
	if alt := consume("TOTALTRACKS"); total == "" {
		total = alt
	}
	if total == "" && ctx.FlacCount > 0 {
		total = strconv.Itoa(ctx.FlacCount)
	}
	if number != "" {
		trck := number
		if total != "" {
			trck = number + "/" + total
		}
		tag.AddTextFrame("TRCK", id3v2.EncodingUTF8, trck)
	}

	// Disc Number (TPOS), written only for multidisc releases.
	disc := consume("DISCNUMBER")
	discTotal := consume("DISCTOTAL")
	if alt := consume("TOTALDISCS"); discTotal == "" {
		discTotal = alt
	}
	if ctx.Multidisc && disc != "" {
		tpos := disc
		if discTotal != "" {
			tpos = disc + "/" + discTotal
		}
		tag.AddTextFrame("TPOS", id3v2.EncodingUTF8, tpos)
	}

	// Comments (COMM)
	if comment := consume("COMMENT"); comment != "" {
		tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding:    id3v2.EncodingUTF8,
			Language:    "eng",
			Description: "",
			Text:        comment,
		})
	}

	// Lyrics (USLT)
	if lyrics := consume("LYRICS"); lyrics != "" {
		tag.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
			Encoding:          id3v2.EncodingUTF8,
			Language:          "eng",
			ContentDescriptor: "",
			Lyrics:            lyrics,
		})
	}

	// Everything left over: dedicated text frames where ID3 has a
	// name for the field, TXXX frames for the rest.
	keys := make([]string, 0, len(remaining))
	for key := range remaining {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		value := remaining[key]
		if frameID, ok := textFrameFor[key]; ok {
			tag.AddTextFrame(frameID, id3v2.EncodingUTF8, value)
			continue
		}
		tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
			Encoding:    id3v2.EncodingUTF8,
			Description: key,
			Value:       value,
		})
	}

	if artwork != nil {
		t.updateArtwork(tag, artwork, artworkMime)
	}

	return tag.Save()
}

// Verify reopens the MP3 file at path and reports which of the
// essential fields are still missing after tagging: artist, album,
// title, genre, and date.
//
// A non-empty result is a hint that the FLAC source was sparsely
// tagged, not an error.
func (t *Tagger) Verify(path string) ([]string, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	defer tag.Close()

	var missing []string
	if tag.Artist() == "" {
		missing = append(missing, "artist")
	}
	if tag.Album() == "" {
		missing = append(missing, "album")
	}
	if tag.Title() == "" {
		missing = append(missing, "title")
	}
	if tag.Genre() == "" {
		missing = append(missing, "genre")
	}
	if tag.GetTextFrame("TDRC").Text == "" && tag.GetTextFrame("TYER").Text == "" {
		missing = append(missing, "date")
	}
	return missing, nil
}

// updateArtwork embeds cover art as an attached picture frame.
func (t *Tagger) updateArtwork(tag *id3v2.Tag, artwork []byte, mimeType string) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	// Remove any existing cover pictures
	tag.DeleteFrames(tag.CommonID("Attached picture"))

	// Add new artwork as front cover (APIC frame)
	pic := id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    mimeType,
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     artwork,
	}
	tag.AddAttachedPicture(pic)
}

// yearFrom extracts the four-digit year prefix from a Vorbis DATE
// value such as "1997-03-01". Returns "" when the value does not start
// with four digits.
func yearFrom(date string) string {
	if len(date) < 4 {
		return ""
	}
	year := date[:4]
	for _, r := range year {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return year
}
