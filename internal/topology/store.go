package topology

import (
	"errors"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	stmuxerrors "github.com/atomicstack/stmux/internal/errors"
	"github.com/atomicstack/stmux/internal/fileutil"
	"github.com/atomicstack/stmux/internal/logging/events"
)

// Store reads and writes the sessions file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load parses the sessions file. A missing file is an empty topology; a
// file that does not parse is a TOPOLOGY_INVALID error.
func (s *Store) Load() (Sessions, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Sessions{}, nil
	}
	if err != nil {
		return nil, stmuxerrors.FileIO("read", s.path, err)
	}
	sessions, err := Decode(data)
	if err != nil {
		return nil, stmuxerrors.TopologyInvalid(s.path, err)
	}
	events.Topology.Load(s.path, len(sessions))
	return sessions, nil
}

// Save replaces the sessions file with the encoded topology.
func (s *Store) Save(sessions Sessions) error {
	data, err := Encode(sessions)
	if err != nil {
		return stmuxerrors.Wrap(err, stmuxerrors.ErrCodeInternal, "failed to encode sessions")
	}
	if err := fileutil.WriteAtomic(s.path, data, 0o644); err != nil {
		return stmuxerrors.FileIO("write", s.path, err)
	}
	events.Topology.Save(s.path, len(sessions))
	return nil
}

// Update loads, mutates and saves the topology while holding the file lock.
// When fn returns false the file is left untouched.
func (s *Store) Update(fn func(Sessions) (bool, error)) error {
	return fileutil.WithLock(s.path, func() error {
		sessions, err := s.Load()
		if err != nil {
			return err
		}
		changed, err := fn(sessions)
		if err != nil || !changed {
			return err
		}
		return s.Save(sessions)
	})
}

// Names lists the stored session names in case-insensitive order.
func (s *Store) Names() ([]string, error) {
	sessions, err := s.Load()
	if err != nil {
		return nil, err
	}
	return SortedNames(sessions), nil
}

// Convert rewrites a file in the older shape, where each session name maps
// straight to its window list, into the session-record shape at output.
func (s *Store) Convert(output string) (int, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return 0, stmuxerrors.FileIO("read", s.path, err)
	}
	var legacy map[string][]Window
	if err := toml.Unmarshal(data, &legacy); err != nil {
		return 0, stmuxerrors.TopologyInvalid(s.path, err)
	}
	converted := make(Sessions, len(legacy))
	for name, windows := range legacy {
		converted[name] = Session{Windows: windows}
	}
	if err := NewStore(output).Save(converted); err != nil {
		return 0, err
	}
	events.Topology.Convert(s.path, output, len(converted))
	return len(converted), nil
}

func Encode(sessions Sessions) ([]byte, error) {
	return toml.Marshal(sessions)
}

func Decode(data []byte) (Sessions, error) {
	sessions := Sessions{}
	if err := toml.Unmarshal(data, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// SortedNames returns the keys of sessions ordered case-insensitively.
func SortedNames(sessions Sessions) []string {
	names := make([]string, 0, len(sessions))
	for name := range sessions {
		names = append(names, name)
	}
	SortNames(names)
	return names
}

// SortNames orders names case-insensitively, ties broken byte-wise.
func SortNames(names []string) {
	sort.Slice(names, func(i, j int) bool {
		a, b := strings.ToLower(names[i]), strings.ToLower(names[j])
		if a == b {
			return names[i] < names[j]
		}
		return a < b
	})
}
