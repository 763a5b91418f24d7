package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"

	"flac2mp3/internal/model"
)

func TestTagger_ApplyEssentials(t *testing.T) {
	path := newTestMP3(t)
	tags := model.TagSet{
		"ARTIST": "Test Artist",
		"TITLE":  "Test Title",
		"ALBUM":  "Test Album",
		"GENRE":  "Jazz",
		"DATE":   "1997-03-01",
	}

	if err := NewTagger().Apply(path, tags, TagContext{}, nil, ""); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	tag := openTestTag(t, path)
	if got := tag.Artist(); got != "Test Artist" {
		t.Errorf("artist = %q, want %q", got, "Test Artist")
	}
	if got := tag.Title(); got != "Test Title" {
		t.Errorf("title = %q, want %q", got, "Test Title")
	}
	if got := tag.Album(); got != "Test Album" {
		t.Errorf("album = %q, want %q", got, "Test Album")
	}
	if got := tag.Genre(); got != "Jazz" {
		t.Errorf("genre = %q, want %q", got, "Jazz")
	}
	if got := tag.GetTextFrame("TDRC").Text; got != "1997-03-01" {
		t.Errorf("TDRC = %q, want %q", got, "1997-03-01")
	}
	if got := tag.GetTextFrame("TYER").Text; got != "1997" {
		t.Errorf("TYER = %q, want %q", got, "1997")
	}
}

func TestTagger_ApplyTrackNumbers(t *testing.T) {
	tests := []struct {
		name string
		tags model.TagSet
		ctx  TagContext
		want string
	}{
		{
			name: "with track total",
			tags: model.TagSet{"TRACKNUMBER": "4", "TRACKTOTAL": "11"},
			want: "4/11",
		},
		{
			name: "with legacy total field",
			tags: model.TagSet{"TRACKNUMBER": "4", "TOTALTRACKS": "11"},
			want: "4/11",
		},
		{
			name: "total from flac count",
			tags: model.TagSet{"TRACKNUMBER": "4"},
			ctx:  TagContext{FlacCount: 9},
			want: "4/9",
		},
		{
			name: "bare number when no total is known",
			tags: model.TagSet{"TRACKNUMBER": "4"},
			want: "4",
		},
		{
			name: "no track number",
			tags: model.TagSet{"ALBUM": "X"},
			ctx:  TagContext{FlacCount: 9},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := newTestMP3(t)
			if err := NewTagger().Apply(path, tt.tags, tt.ctx, nil, ""); err != nil {
				t.Fatalf("Apply failed: %v", err)
			}

			tag := openTestTag(t, path)
			if got := tag.GetTextFrame("TRCK").Text; got != tt.want {
				t.Errorf("TRCK = %q, want %q", got, tt.want)
			}
			if custom := userDefinedFrames(tag); len(custom) != 0 {
				t.Errorf("numbering fields leaked into TXXX: %v", custom)
			}
		})
	}
}

func TestTagger_ApplyDiscNumbers(t *testing.T) {
	tests := []struct {
		name string
		tags model.TagSet
		ctx  TagContext
		want string
	}{
		{
			name: "multidisc with total",
			tags: model.TagSet{"DISCNUMBER": "2", "DISCTOTAL": "3"},
			ctx:  TagContext{Multidisc: true},
			want: "2/3",
		},
		{
			name: "multidisc without total",
			tags: model.TagSet{"DISCNUMBER": "2"},
			ctx:  TagContext{Multidisc: true},
			want: "2",
		},
		{
			name: "single disc drops frame",
			tags: model.TagSet{"DISCNUMBER": "1", "DISCTOTAL": "1"},
			ctx:  TagContext{Multidisc: false},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := newTestMP3(t)
			if err := NewTagger().Apply(path, tt.tags, tt.ctx, nil, ""); err != nil {
				t.Fatalf("Apply failed: %v", err)
			}

			tag := openTestTag(t, path)
			if got := tag.GetTextFrame("TPOS").Text; got != tt.want {
				t.Errorf("TPOS = %q, want %q", got, tt.want)
			}
			if custom := userDefinedFrames(tag); len(custom) != 0 {
				t.Errorf("disc fields leaked into TXXX: %v", custom)
			}
		})
	}
}

func TestTagger_ApplyCustomFields(t *testing.T) {
	path := newTestMP3(t)
	tags := model.TagSet{
		"COMPOSER":  "J. S. Bach",
		"CONDUCTOR": "Someone",
		"PERFORMER": "Glenn Gould",
		"COMMENT":   "remastered",
		"LYRICS":    "la la la",
	}

	if err := NewTagger().Apply(path, tags, TagContext{}, nil, ""); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	tag := openTestTag(t, path)
	if got := tag.GetTextFrame("TCOM").Text; got != "J. S. Bach" {
		t.Errorf("TCOM = %q, want %q", got, "J. S. Bach")
	}
	if got := tag.GetTextFrame("TPE3").Text; got != "Someone" {
		t.Errorf("TPE3 = %q, want %q", got, "Someone")
	}

	custom := userDefinedFrames(tag)
	if got := custom["PERFORMER"]; got != "Glenn Gould" {
		t.Errorf("TXXX PERFORMER = %q, want %q", got, "Glenn Gould")
	}
	if _, ok := custom["COMMENT"]; ok {
		t.Error("COMMENT should use a COMM frame, not TXXX")
	}

	comments := tag.GetFrames(tag.CommonID("Comments"))
	if len(comments) != 1 {
		t.Fatalf("got %d COMM frames, want 1", len(comments))
	}
	if comm, ok := comments[0].(id3v2.CommentFrame); !ok || comm.Text != "remastered" {
		t.Errorf("COMM = %+v, want text %q", comments[0], "remastered")
	}

	lyrics := tag.GetFrames(tag.CommonID("Unsynchronised lyrics/text transcription"))
	if len(lyrics) != 1 {
		t.Fatalf("got %d USLT frames, want 1", len(lyrics))
	}
	if uslt, ok := lyrics[0].(id3v2.UnsynchronisedLyricsFrame); !ok || uslt.Lyrics != "la la la" {
		t.Errorf("USLT = %+v, want lyrics %q", lyrics[0], "la la la")
	}
}

func TestTagger_ApplyArtwork(t *testing.T) {
	path := newTestMP3(t)
	artwork := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02}

	err := NewTagger().Apply(path, model.TagSet{"TITLE": "X"}, TagContext{}, artwork, "image/jpeg")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	tag := openTestTag(t, path)
	pictures := tag.GetFrames(tag.CommonID("Attached picture"))
	if len(pictures) != 1 {
		t.Fatalf("got %d APIC frames, want 1", len(pictures))
	}
	pic, ok := pictures[0].(id3v2.PictureFrame)
	if !ok {
		t.Fatalf("APIC frame has type %T", pictures[0])
	}
	if pic.MimeType != "image/jpeg" {
		t.Errorf("mime type = %q, want %q", pic.MimeType, "image/jpeg")
	}
	if pic.PictureType != id3v2.PTFrontCover {
		t.Errorf("picture type = %d, want front cover", pic.PictureType)
	}
	if string(pic.Picture) != string(artwork) {
		t.Error("picture bytes do not round-trip")
	}
}

func TestTagger_ApplyMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.mp3")

	err := NewTagger().Apply(path, model.TagSet{"TITLE": "X"}, TagContext{}, nil, "")
	if err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestTagger_Verify(t *testing.T) {
	path := newTestMP3(t)
	tags := model.TagSet{"ARTIST": "A", "TITLE": "T", "ALBUM": "L"}

	tagger := NewTagger()
	if err := tagger.Apply(path, tags, TagContext{}, nil, ""); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	missing, err := tagger.Verify(path)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	want := []string{"genre", "date"}
	if len(missing) != len(want) {
		t.Fatalf("missing = %v, want %v", missing, want)
	}
	for i := range want {
		if missing[i] != want[i] {
			t.Errorf("missing[%d] = %q, want %q", i, missing[i], want[i])
		}
	}
}

func TestTagger_VerifyComplete(t *testing.T) {
	path := newTestMP3(t)
	tags := model.TagSet{
		"ARTIST": "A", "TITLE": "T", "ALBUM": "L", "GENRE": "G", "DATE": "2001",
	}

	tagger := NewTagger()
	if err := tagger.Apply(path, tags, TagContext{}, nil, ""); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	missing, err := tagger.Verify(path)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if len(missing) != 0 {
		t.Errorf("missing = %v, want none", missing)
	}
}

func TestYearFrom(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"1997-03-01", "1997"},
		{"1997", "1997"},
		{"97", ""},
		{"March 1997", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := yearFrom(tt.date); got != tt.want {
			t.Errorf("yearFrom(%q) = %q, want %q", tt.date, got, tt.want)
		}
	}
}

// newTestMP3 writes a file with an empty ID3v2.4 header followed by
// placeholder audio bytes, mimicking what lame leaves behind.
func newTestMP3(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "track.mp3")
	content := append([]byte{'I', 'D', '3', 4, 0, 0, 0, 0, 0, 0}, []byte("AUDIO")...)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to write mp3 fixture: %v", err)
	}
	return path
}

func openTestTag(t *testing.T, path string) *id3v2.Tag {
	t.Helper()

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("failed to reopen tag: %v", err)
	}
	t.Cleanup(func() { tag.Close() })
	return tag
}

func userDefinedFrames(tag *id3v2.Tag) map[string]string {
	custom := make(map[string]string)
	for _, frame := range tag.GetFrames(tag.CommonID("User defined text information frame")) {
		if udt, ok := frame.(id3v2.UserDefinedTextFrame); ok {
			custom[udt.Description] = udt.Value
		}
	}
	return custom
}
