package model

import (
	"sort"
	"strings"
)

// TagSet holds the Vorbis comments of a FLAC file, keyed by upper-case
// field name.
//
// Vorbis comment keys are case-insensitive, so NewTagSet normalizes them
// to upper case. Values are kept verbatim apart from whitespace trimming;
// fields with empty values are dropped.
//
// Example:
//
//	tags := model.NewTagSet(map[string]string{
//	    "artist": "Nightfall",
//	    "album":  "Oblivion",
//	    "date":   "1997-03-01",
//	})
//	tags.Get("ARTIST") // "Nightfall"
type TagSet map[string]string

// NewTagSet normalizes raw Vorbis comments into a TagSet.
//
// Normalization applied:
//   - Keys are upper-cased and trimmed.
//   - Values are trimmed; fields with empty values are dropped.
//   - "ALBUM ARTIST" is folded into "ALBUMARTIST" when the latter is
//     absent or agrees. A disagreeing "ALBUM ARTIST" is kept as is.
func NewTagSet(raw map[string]string) TagSet {
	tags := make(TagSet, len(raw))
	for key, value := range raw {
		key = strings.ToUpper(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		tags[key] = value
	}

	// Some rippers write "ALBUM ARTIST" instead of ALBUMARTIST.
	if spaced, ok := tags["ALBUM ARTIST"]; ok {
		canonical, exists := tags["ALBUMARTIST"]
		if !exists {
			tags["ALBUMARTIST"] = spaced
			delete(tags, "ALBUM ARTIST")
		} else if canonical == spaced {
			delete(tags, "ALBUM ARTIST")
		}
		// A disagreeing spaced variant stays put and later surfaces
		// as a user-defined frame rather than being discarded.
	}

	return tags
}

// Get returns the value for the upper-case key, or "" when absent.
func (t TagSet) Get(key string) string {
	return t[key]
}

// Has reports whether the upper-case key is present.
func (t TagSet) Has(key string) bool {
	_, ok := t[key]
	return ok
}

// Keys returns all field names in sorted order.
func (t TagSet) Keys() []string {
	keys := make([]string, 0, len(t))
	for key := range t {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// TrackNumber returns the raw TRACKNUMBER value, or "".
func (t TagSet) TrackNumber() string {
	return t["TRACKNUMBER"]
}

// TrackTotal returns the total number of tracks as recorded in the tags,
// from TRACKTOTAL or TOTALTRACKS, or "" when neither is present.
func (t TagSet) TrackTotal() string {
	if total := t["TRACKTOTAL"]; total != "" {
		return total
	}
	return t["TOTALTRACKS"]
}

// DiscNumber returns the DISCNUMBER field as an integer.
//
// Values like "2" and "2/3" both yield 2. Returns 0 when the field is
// absent or does not start with a digit.
func (t TagSet) DiscNumber() int {
	return leadingInt(t["DISCNUMBER"])
}

// DiscTotal returns the total number of discs as recorded in the tags,
// from DISCTOTAL or TOTALDISCS, or "" when neither is present.
func (t TagSet) DiscTotal() string {
	if total := t["DISCTOTAL"]; total != "" {
		return total
	}
	return t["TOTALDISCS"]
}

// leadingInt parses the leading decimal digits of s.
func leadingInt(s string) int {
	n := 0
	seen := false
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		seen = true
	}
	if !seen {
		return 0
	}
	return n
}
