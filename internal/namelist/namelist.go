// Package namelist stores ordered session names one per line. It backs
// both the recent-sessions file and the bookmarks file.
package namelist

import (
	"bufio"
	"bytes"
	"errors"
	"io/fs"
	"os"
	"strings"
	"sync"

	stmuxerrors "github.com/atomicstack/stmux/internal/errors"
	"github.com/atomicstack/stmux/internal/fileutil"
)

type Store interface {
	// Read returns the non-blank, trimmed lines in file order.
	Read() ([]string, error)
	// Write replaces the whole list.
	Write(names []string) error
	// Append adds name at the end.
	Append(name string) error
	// Update applies fn to the current list and writes the result when fn
	// reports a change. Implementations serialise concurrent updates.
	Update(fn func([]string) ([]string, bool)) error
}

type File struct {
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Path() string { return f.path }

func (f *File) Read() ([]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, stmuxerrors.FileIO("read", f.path, err)
	}
	return parse(data), nil
}

func (f *File) Write(names []string) error {
	if err := fileutil.WriteAtomic(f.path, format(names), 0o644); err != nil {
		return stmuxerrors.FileIO("write", f.path, err)
	}
	return nil
}

func (f *File) Append(name string) error {
	return f.Update(func(names []string) ([]string, bool) {
		return append(names, name), true
	})
}

func (f *File) Update(fn func([]string) ([]string, bool)) error {
	return fileutil.WithLock(f.path, func() error {
		names, err := f.Read()
		if err != nil {
			return err
		}
		next, changed := fn(names)
		if !changed {
			return nil
		}
		return f.Write(next)
	})
}

func parse(data []byte) []string {
	var names []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		names = append(names, line)
	}
	return names
}

func format(names []string) []byte {
	var buf bytes.Buffer
	for _, name := range names {
		buf.WriteString(name)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Memory is an in-process Store used by tests.
type Memory struct {
	mu     sync.Mutex
	names  []string
	Writes int
}

func NewMemory(names ...string) *Memory {
	return &Memory{names: append([]string(nil), names...)}
}

func (m *Memory) Read() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.names...), nil
}

func (m *Memory) Write(names []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.names = append([]string(nil), names...)
	m.Writes++
	return nil
}

func (m *Memory) Append(name string) error {
	return m.Update(func(names []string) ([]string, bool) {
		return append(names, name), true
	})
}

func (m *Memory) Update(fn func([]string) ([]string, bool)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	next, changed := fn(append([]string(nil), m.names...))
	if changed {
		m.names = append([]string(nil), next...)
		m.Writes++
	}
	return nil
}
