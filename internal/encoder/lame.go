package encoder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"flac2mp3/internal/model"
)

// Encoder drives the lame command line tool to encode WAV files into
// MP3s.
//
// Example:
//
//	enc := encoder.NewEncoder("lame", nil, logger)
//	err := enc.Encode(ctx, "/tmp/01 song.wav", "/music/album [V0]/01 song.mp3", model.ModeVBR)
type Encoder struct {
	binary string
	run    Runner
	log    *slog.Logger
}

// NewEncoder creates an Encoder that invokes the given lame binary.
//
// An empty binary falls back to "lame" resolved through PATH. A nil
// run uses CommandRunner. A nil logger discards debug output.
func NewEncoder(binary string, run Runner, logger *slog.Logger) *Encoder {
	if binary == "" {
		binary = "lame"
	}
	if run == nil {
		run = CommandRunner{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Encoder{binary: binary, run: run, log: logger}
}

// Encode encodes the WAV file at src into an MP3 at dst using the
// quality preset selected by mode.
//
// The --add-id3v2 and --id3v2-only switches make lame write a plain
// ID3v2 shell that the tagger fills in afterwards, instead of the
// ID3v1 tags it would emit by default.
func (e *Encoder) Encode(ctx context.Context, src, dst string, mode model.Mode) error {
	preset := mode.EncoderArgs()
	if len(preset) == 0 {
		return fmt.Errorf("no encoder preset for mode %s", mode)
	}

	args := []string{"--silent", "-q", "0"}
	args = append(args, preset...)
	args = append(args, "--add-id3v2", "--id3v2-only", src, dst)
	e.log.Debug("encoding", "binary", e.binary, "dst", dst, "mode", mode.String())

	tail := newOutputTail(tailLines)
	if err := e.run.Run(ctx, e.binary, args, tail.add); err != nil {
		if tail.empty() {
			return fmt.Errorf("encode %s: %w", filepath.Base(dst), err)
		}
		return fmt.Errorf("encode %s: %w\n%s", filepath.Base(dst), err, tail)
	}
	return nil
}
