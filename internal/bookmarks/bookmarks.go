// Package bookmarks manages the numbered session bookmarks.
package bookmarks

import (
	"fmt"
	"slices"

	stmuxerrors "github.com/atomicstack/stmux/internal/errors"
	"github.com/atomicstack/stmux/internal/namelist"
)

type Bookmarks struct {
	list namelist.Store
}

func New(list namelist.Store) *Bookmarks {
	return &Bookmarks{list: list}
}

func (b *Bookmarks) List() ([]string, error) {
	return b.list.Read()
}

// Lines renders the bookmarks as "  1: name" rows.
func (b *Bookmarks) Lines() ([]string, error) {
	names, err := b.list.Read()
	if err != nil {
		return nil, err
	}
	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = fmt.Sprintf("%3d: %s", i+1, name)
	}
	return lines, nil
}

// Set appends name unless it is already bookmarked. It reports whether the
// list changed.
func (b *Bookmarks) Set(name string) (bool, error) {
	if name == "" {
		return false, stmuxerrors.InvalidInput("empty session name")
	}
	added := false
	err := b.list.Update(func(names []string) ([]string, bool) {
		if slices.Contains(names, name) {
			return names, false
		}
		added = true
		return append(names, name), true
	})
	return added, err
}

// Select returns the bookmark at the 1-based index.
func (b *Bookmarks) Select(index int) (string, bool, error) {
	names, err := b.list.Read()
	if err != nil {
		return "", false, err
	}
	if index < 1 || index > len(names) {
		return "", false, nil
	}
	return names[index-1], true, nil
}
