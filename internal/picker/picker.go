// Package picker lets the user choose a session name in an fzf popup. The
// candidates are streamed to fzf through a named pipe while the popup runs.
package picker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"

	"github.com/atomicstack/stmux/internal/logging/events"
	"github.com/atomicstack/stmux/internal/mux"
)

const (
	DefaultFinder = "fzf --reverse --no-sort"
	openRetry     = 20 * time.Millisecond
)

type Options struct {
	// Finder is the command run inside the popup; it reads candidates on
	// stdin and prints the choice.
	Finder string
	// Dir holds the pipe and the result file. Defaults to os.TempDir().
	Dir    string
	Width  string
	Height string
}

type Picker struct {
	mux  mux.Multiplexer
	opts Options
}

func New(m mux.Multiplexer, opts Options) *Picker {
	if opts.Finder == "" {
		opts.Finder = DefaultFinder
	}
	if opts.Dir == "" {
		opts.Dir = os.TempDir()
	}
	if opts.Width == "" {
		opts.Width = "60%"
	}
	if opts.Height == "" {
		opts.Height = "60%"
	}
	return &Picker{mux: m, opts: opts}
}

// Pick shows names in a popup titled title and returns the chosen one.
// A non-empty query narrows the candidates first; a single remaining
// candidate, or one equal to query, is returned without a popup.
func (p *Picker) Pick(ctx context.Context, title string, names []string, query string) (string, bool, error) {
	if name, ok := Exact(names, query); ok {
		events.Picker.Choose(name)
		return name, true, nil
	}
	candidates := Filter(names, query)
	switch len(candidates) {
	case 0:
		return "", false, nil
	case 1:
		if query != "" {
			events.Picker.Choose(candidates[0])
			return candidates[0], true, nil
		}
	}

	fifo := p.fifoPath()
	if err := EnsureFIFO(fifo); err != nil {
		return "", false, err
	}
	result, err := os.CreateTemp(p.opts.Dir, "stmux-choice-*")
	if err != nil {
		return "", false, err
	}
	resultPath := result.Name()
	_ = result.Close()
	defer os.Remove(resultPath)

	events.Picker.Open(title, len(candidates))
	err = p.run(ctx, title, fifo, resultPath, candidates)
	_ = os.Remove(fifo)
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(resultPath)
	if err != nil {
		return "", false, err
	}
	choice := strings.TrimSpace(string(data))
	events.Picker.Choose(choice)
	return choice, choice != "", nil
}

// run feeds the pipe and blocks on the popup; both sides finish before it
// returns.
func (p *Picker) run(ctx context.Context, title, fifo, resultPath string, names []string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return feed(gctx, fifo, names)
	})
	g.Go(func() error {
		defer cancel()
		return p.mux.DisplayPopup(mux.PopupOptions{
			Title:   title,
			Command: p.command(title, fifo, resultPath),
			Width:   p.opts.Width,
			Height:  p.opts.Height,
		})
	})
	return g.Wait()
}

func (p *Picker) command(title, fifo, resultPath string) string {
	return fmt.Sprintf("%s --prompt %s < %s > %s", p.opts.Finder, ShellQuote(title+"> "), ShellQuote(fifo), ShellQuote(resultPath))
}

func (p *Picker) fifoPath() string {
	return filepath.Join(p.opts.Dir, fmt.Sprintf("stmux-%d.fifo", os.Getuid()))
}

// EnsureFIFO creates a named pipe at path unless one is already there.
func EnsureFIFO(path string) error {
	if info, err := os.Stat(path); err == nil {
		if info.Mode()&os.ModeNamedPipe != 0 {
			return nil
		}
		return fmt.Errorf("%s exists and is not a named pipe", path)
	}
	if err := unix.Mkfifo(path, 0o600); err != nil && !errors.Is(err, unix.EEXIST) {
		return fmt.Errorf("mkfifo %s: %w", path, err)
	}
	return nil
}

// feed writes names to the pipe once a reader has opened it. It gives up
// quietly when ctx ends first, which is what happens when the popup closes
// before the finder starts reading.
func feed(ctx context.Context, fifo string, names []string) error {
	var w *os.File
	for {
		f, err := os.OpenFile(fifo, os.O_WRONLY|unix.O_NONBLOCK, 0)
		if err == nil {
			w = f
			break
		}
		if !errors.Is(err, unix.ENXIO) {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(openRetry):
		}
	}
	defer w.Close()
	for _, name := range names {
		if _, err := w.WriteString(name + "\n"); err != nil {
			if errors.Is(err, unix.EPIPE) {
				return nil
			}
			return err
		}
	}
	return nil
}

// ShellQuote wraps s in single quotes for /bin/sh.
func ShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
