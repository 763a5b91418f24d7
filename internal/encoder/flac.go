package encoder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
)

// Decoder drives the flac command line tool to decode FLAC sources
// into WAV files.
//
// Example:
//
//	decoder := encoder.NewDecoder("flac", nil, logger)
//	err := decoder.Decode(ctx, "/music/album/01 song.flac", "/tmp/01 song.wav")
type Decoder struct {
	binary string
	run    Runner
	log    *slog.Logger
}

// NewDecoder creates a Decoder that invokes the given flac binary.
//
// An empty binary falls back to "flac" resolved through PATH. A nil
// run uses CommandRunner. A nil logger discards debug output.
func NewDecoder(binary string, run Runner, logger *slog.Logger) *Decoder {
	if binary == "" {
		binary = "flac"
	}
	if run == nil {
		run = CommandRunner{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Decoder{binary: binary, run: run, log: logger}
}

// Decode decodes the FLAC file at src into a WAV file at dst,
// overwriting dst if it exists. The source file is only read.
//
// When the tool fails, the tail of its output is folded into the
// returned error.
func (d *Decoder) Decode(ctx context.Context, src, dst string) error {
	args := []string{src, "-d", "--silent", "--force", "-o", dst}
	d.log.Debug("decoding", "binary", d.binary, "src", src, "dst", dst)

	tail := newOutputTail(tailLines)
	if err := d.run.Run(ctx, d.binary, args, tail.add); err != nil {
		if tail.empty() {
			return fmt.Errorf("decode %s: %w", filepath.Base(src), err)
		}
		return fmt.Errorf("decode %s: %w\n%s", filepath.Base(src), err, tail)
	}
	return nil
}
