package namelist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileReadSkipsBlankLinesAndTrims(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recent")
	require.NoError(t, os.WriteFile(path, []byte("work\n\n  docs  \n\t\nscratch"), 0o644))

	names, err := NewFile(path).Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"work", "docs", "scratch"}, names)
}

func TestFileReadMissingIsEmpty(t *testing.T) {
	names, err := NewFile(filepath.Join(t.TempDir(), "absent")).Read()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestFileWriteRewritesWholeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks")
	f := NewFile(path)
	require.NoError(t, f.Write([]string{"a", "b", "c"}))
	require.NoError(t, f.Write([]string{"c"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "c\n", string(data))
}

func TestFileAppend(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "bookmarks"))
	require.NoError(t, f.Append("one"))
	require.NoError(t, f.Append("two"))

	names, err := f.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, names)
}

func TestFileUpdateWithoutChangeLeavesFileAlone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recent")
	err := NewFile(path).Update(func(names []string) ([]string, bool) {
		return []string{"x"}, false
	})
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestMemoryStore(t *testing.T) {
	m := NewMemory("a")
	require.NoError(t, m.Append("b"))
	require.NoError(t, m.Update(func(names []string) ([]string, bool) {
		return names, false
	}))

	names, err := m.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)
	assert.Equal(t, 1, m.Writes)
}
