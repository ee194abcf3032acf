package topology

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stmuxerrors "github.com/atomicstack/stmux/internal/errors"
)

func sampleSessions() Sessions {
	return Sessions{
		"work": {
			Background: true,
			Windows: []Window{
				{
					Index:  1,
					Name:   "editor",
					Layout: "5e3b,200x50,0,0{100x50,0,0,1,99x50,101,0,2}",
					Active: true,
					Panes: []Pane{
						{Index: 1, Path: "/src/work", Active: true, StartupCommand: "nvim"},
						{Index: 2, Path: "/src/work", ShellCommand: "git status", Env: map[string]string{"GOFLAGS": "-mod=mod"}},
					},
				},
				{
					Index:  2,
					Name:   "shell",
					Layout: "b25d,200x50,0,0,3",
					Panes:  []Pane{{Index: 1, Path: "/tmp", Active: true}},
				},
			},
			Options: map[string]string{"status-style": "bg=blue"},
		},
		"notes": {
			NoRecentTracking: true,
			Windows: []Window{
				{Index: 1, Name: "notes", Layout: "c0d1,80x24,0,0,4", Panes: []Pane{{Index: 1, Path: "/home/notes", Active: true}}},
			},
		},
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "sessions.toml"))
	want := sampleSessions()

	require.NoError(t, store.Save(want))
	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStoreOmitsAbsentOptionalFields(t *testing.T) {
	data, err := Encode(Sessions{
		"plain": {Windows: []Window{{Index: 1, Name: "w", Layout: "l", Panes: []Pane{{Index: 1, Path: "/"}}}}},
	})
	require.NoError(t, err)

	text := string(data)
	for _, key := range []string{"background", "no_recent_tracking", "startup_command", "shell_command", "env", "options"} {
		assert.NotContains(t, text, key)
	}
}

func TestStoreLoadMissingFileIsEmpty(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "absent.toml"))
	sessions, err := store.Load()
	require.NoError(t, err)
	assert.NotNil(t, sessions)
	assert.Empty(t, sessions)
}

func TestStoreLoadMalformedIsTopologyInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.toml")
	require.NoError(t, os.WriteFile(path, []byte("[work\nwindows = = 3\n"), 0o644))

	_, err := NewStore(path).Load()
	require.Error(t, err)
	assert.True(t, stmuxerrors.Is(err, stmuxerrors.ErrCodeTopologyInvalid))
}

func TestStoreUpdate(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "sessions.toml"))
	require.NoError(t, store.Save(sampleSessions()))

	err := store.Update(func(s Sessions) (bool, error) {
		delete(s, "notes")
		return true, nil
	})
	require.NoError(t, err)

	names, err := store.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"work"}, names)
}

func TestStoreUpdateUnchangedDoesNotWrite(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "sessions.toml"))

	err := store.Update(func(s Sessions) (bool, error) {
		s["ghost"] = Session{}
		return false, nil
	})
	require.NoError(t, err)

	_, err = os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestMergeIsLeftBiased(t *testing.T) {
	stored := Sessions{
		"work": {Windows: []Window{{Index: 1, Name: "curated"}}},
		"docs": {Background: true},
	}
	live := Sessions{
		"work":    {Windows: []Window{{Index: 1, Name: "live"}, {Index: 2, Name: "extra"}}},
		"scratch": {Windows: []Window{{Index: 1, Name: "sh"}}},
	}

	merged := Merge(stored, live)

	require.Len(t, merged, 3)
	assert.Equal(t, stored["work"], merged["work"])
	assert.Equal(t, stored["docs"], merged["docs"])
	assert.Equal(t, live["scratch"], merged["scratch"])
	assert.Len(t, stored, 2, "merge must not mutate its inputs")
}

func TestConvertLegacyShape(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "old.toml")
	legacy := `[[work]]
index = 1
name = "editor"
layout = "abcd,80x24,0,0,1"

[[work.panes]]
index = 1
path = "/src"
active = true

[[work]]
index = 2
name = "logs"
layout = "ef01,80x24,0,0,2"

[[work.panes]]
index = 1
path = "/var/log"
active = true
`
	require.NoError(t, os.WriteFile(src, []byte(legacy), 0o644))

	dst := filepath.Join(dir, "new.toml")
	n, err := NewStore(src).Convert(dst)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	sessions, err := NewStore(dst).Load()
	require.NoError(t, err)
	work := sessions["work"]
	assert.False(t, work.Background)
	assert.False(t, work.NoRecentTracking)
	require.Len(t, work.Windows, 2)
	assert.Equal(t, "logs", work.Windows[1].Name)
	assert.Equal(t, "/var/log", work.Windows[1].Panes[0].Path)
}

func TestIsNumericName(t *testing.T) {
	cases := map[string]bool{
		"0":    true,
		"12":   true,
		"":     false,
		"work": false,
		"1a":   false,
		"-1":   false,
		"1 ":   false,
	}
	for name, want := range cases {
		assert.Equal(t, want, IsNumericName(name), "name %q", name)
	}
}

func TestPaneKeysStartupWins(t *testing.T) {
	_, ok := Pane{StartupCommand: "htop", ShellCommand: "ls"}.Keys()
	assert.False(t, ok)

	keys, ok := Pane{ShellCommand: "ls"}.Keys()
	assert.True(t, ok)
	assert.Equal(t, "ls", keys)

	_, ok = Pane{}.Keys()
	assert.False(t, ok)
}

func TestSortedNamesCaseInsensitive(t *testing.T) {
	names := SortedNames(Sessions{"beta": {}, "Alpha": {}, "alpha": {}, "Gamma": {}})
	assert.Equal(t, []string{"Alpha", "alpha", "beta", "Gamma"}, names)
}
