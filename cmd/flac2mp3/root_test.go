package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"flac2mp3/internal/config"
	"flac2mp3/internal/convert"
	"flac2mp3/internal/model"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeFLACFixture writes a minimal FLAC file: stream marker, empty
// STREAMINFO, and a Vorbis comment block carrying the given fields.
func writeFLACFixture(t *testing.T, path string, comments map[string]string) {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("fLaC")

	buf.WriteByte(0x00)
	writeBlockLen(&buf, 34)
	buf.Write(make([]byte, 34))

	var vc bytes.Buffer
	vendor := "reference libFLAC 1.4.3"
	writeUint32LE(&vc, uint32(len(vendor)))
	vc.WriteString(vendor)
	writeUint32LE(&vc, uint32(len(comments)))
	for key, value := range comments {
		entry := key + "=" + value
		writeUint32LE(&vc, uint32(len(entry)))
		vc.WriteString(entry)
	}

	buf.WriteByte(0x80 | 4) // VORBIS_COMMENT, last block
	writeBlockLen(&buf, vc.Len())
	buf.Write(vc.Bytes())

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write flac fixture: %v", err)
	}
}

func writeBlockLen(buf *bytes.Buffer, n int) {
	buf.Write([]byte{byte(n >> 16), byte(n >> 8), byte(n)})
}

func writeUint32LE(buf *bytes.Buffer, n uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], n)
	buf.Write(b[:])
}

func TestCLIUsageErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no path", []string{"--vbr"}, "accepts 1 arg"},
		{"no mode", []string{dir}, "vbr"},
		{"both modes", []string{"--vbr", "--cbr", dir}, "vbr"},
		{"unknown flag", []string{"--vbr", "--recurse", dir}, "unknown flag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			if err == nil {
				t.Fatalf("expected usage error for %v", tt.args)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestCLIDryRun(t *testing.T) {
	parent := t.TempDir()
	source := filepath.Join(parent, "Album")
	if err := os.Mkdir(source, 0o755); err != nil {
		t.Fatalf("create source dir: %v", err)
	}
	writeFLACFixture(t, filepath.Join(source, "01 song.flac"), map[string]string{
		"ARTIST":      "Test Artist",
		"TITLE":       "Song",
		"TRACKNUMBER": "1",
	})
	if err := os.WriteFile(filepath.Join(source, "cover.jpg"), []byte("img"), 0o644); err != nil {
		t.Fatalf("write cover: %v", err)
	}

	stdout, _, err := runCLI(t, "--vbr", "--new", "--dry-run", source)
	if err != nil {
		t.Fatalf("dry run failed: %v", err)
	}

	for _, want := range []string{
		"Album [V0]",
		"VBR V0",
		"01 song.mp3",
		"cover.jpg",
		"1 to convert, 1 to copy, 0 skipped",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("dry run output missing %q:\n%s", want, stdout)
		}
	}

	if _, err := os.Stat(filepath.Join(parent, "Album [V0]")); !os.IsNotExist(err) {
		t.Errorf("dry run must not create the target directory, stat err = %v", err)
	}
}

func TestCLIDryRunPlanFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	_, _, err := runCLI(t, "--vbr", "--dry-run", path)
	if err == nil {
		t.Fatal("expected error for a non-FLAC file path")
	}
	if !strings.Contains(err.Error(), "not a FLAC file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRenderPlanSummary(t *testing.T) {
	settings := config.DefaultSettings()
	settings.Mode = model.ModeCBR

	plan := &convert.Plan{
		Source: "/music/Album",
		Release: &model.Release{
			SourceDir: "/music/Album",
			TargetDir: "/music/Album [320]",
		},
		Entries: []convert.Entry{
			{Source: "/music/Album/01.flac", Action: convert.ActionConvert, Output: "/music/Album [320]/01.mp3"},
			{Source: "/music/Album/cover.jpg", Action: convert.ActionCopy, Output: "/music/Album [320]/cover.jpg"},
			{Source: "/music/Album/scans", Action: convert.ActionSkip, Note: "directory"},
		},
	}

	out := renderPlanSummary(plan, settings)

	for _, want := range []string{
		"Source: /music/Album",
		"Target: /music/Album [320]",
		"Mode:   CBR 320",
		"ENTRY",
		"01.mp3",
		"(directory)",
		"1 to convert, 1 to copy, 1 skipped",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable(
		[]string{"#", "NAME"},
		[][]string{{"1", "alpha"}, {"2"}},
		0,
	)

	for _, want := range []string{"#", "NAME", "alpha", "╭", "╰"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}
