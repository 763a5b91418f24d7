package main

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"

	"flac2mp3/internal/convert"
)

// eventPrinter writes conversion events as prefixed lines. While a progress
// bar is active, lines are printed through it so the bar stays intact.
type eventPrinter struct {
	out     io.Writer
	verbose bool
	bar     *progressbar.ProgressBar
}

func (p *eventPrinter) print(event convert.ProgressEvent) {
	if event.Level == convert.LevelVerbose && !p.verbose {
		return
	}

	var prefix string
	switch event.Level {
	case convert.LevelError:
		prefix = "✗ "
	case convert.LevelWarning:
		prefix = "! "
	case convert.LevelSuccess:
		prefix = "✓ "
	case convert.LevelInfo:
		prefix = "› "
	default:
		prefix = "  "
	}

	line := prefix + event.Message
	if p.bar != nil {
		_, _ = progressbar.Bprintln(p.bar, line)
		return
	}
	fmt.Fprintln(p.out, line)
}
