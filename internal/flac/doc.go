// Package flac reads metadata from FLAC files.
//
// The converter never decodes FLAC audio in-process (the external flac
// binary does that); this package only parses the metadata blocks that
// the retagging step needs.
//
// # Reading Tags
//
//	reader := flac.NewReader()
//	tags, err := reader.ReadTags("/music/Album/01 Intro.flac")
//	if err != nil {
//	    // unreadable or not a FLAC file
//	}
//	tags.Get("ARTIST")
//
// Keys come back normalized to upper case (see model.NewTagSet).
//
// # Embedded Pictures
//
// FLAC files often carry their cover art in a PICTURE metadata block.
// ReadPicture returns the raw image bytes, or nil when the file has none:
//
//	data, err := reader.ReadPicture("/music/Album/01 Intro.flac")
package flac
