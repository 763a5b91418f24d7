package encoder

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// tailLines bounds how much command output is kept for error messages.
const tailLines = 8

// Runner abstracts command execution for testability.
type Runner interface {
	Run(ctx context.Context, binary string, args []string, onOutput func(string)) error
}

// CommandRunner executes commands through os/exec, streaming stdout
// and stderr line by line to the onOutput callback. The callback is
// invoked from both pipe readers concurrently and must be safe for
// concurrent use.
type CommandRunner struct{}

// Run starts the binary with the given arguments and blocks until it
// exits. The process is killed when ctx is cancelled.
func (CommandRunner) Run(ctx context.Context, binary string, args []string, onOutput func(string)) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}

	forward := func(line string) {
		if onOutput != nil {
			onOutput(line)
		}
	}

	var g errgroup.Group
	g.Go(func() error { return scanLines(stdout, forward) })
	g.Go(func() error { return scanLines(stderr, forward) })

	if err := g.Wait(); err != nil {
		_ = cmd.Process.Kill()
		return fmt.Errorf("scan output: %w", err)
	}

	if err := cmd.Wait(); err != nil {
		// A kill caused by cancellation is reported as such, not as
		// the tool failing.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("wait command: %w", err)
	}
	return nil
}

func scanLines(r io.Reader, forward func(string)) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		forward(scanner.Text())
	}
	return scanner.Err()
}

// outputTail keeps the last few non-empty lines a command printed.
// Safe for concurrent use; Run feeds it from both pipe readers.
type outputTail struct {
	mu    sync.Mutex
	max   int
	lines []string
}

func newOutputTail(max int) *outputTail {
	return &outputTail{max: max}
}

func (t *outputTail) add(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.lines = append(t.lines, line)
	if len(t.lines) > t.max {
		t.lines = t.lines[len(t.lines)-t.max:]
	}
}

func (t *outputTail) empty() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.lines) == 0
}

func (t *outputTail) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return strings.Join(t.lines, "\n")
}
