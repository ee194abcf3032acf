package fileutil

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAtomicReplacesContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.txt")

	require.NoError(t, WriteAtomic(path, []byte("one\n"), 0o644))
	require.NoError(t, WriteAtomic(path, []byte("two\n"), 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestWithLockSerialisesCallers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counter")
	var inside, maxInside, total int32

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := WithLock(path, func() error {
				n := atomic.AddInt32(&inside, 1)
				for {
					m := atomic.LoadInt32(&maxInside)
					if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
						break
					}
				}
				atomic.AddInt32(&total, 1)
				atomic.AddInt32(&inside, -1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(8), atomic.LoadInt32(&total))
	assert.Equal(t, int32(1), atomic.LoadInt32(&maxInside))
	_, err := os.Stat(path + ".lock")
	assert.NoError(t, err)
}

func TestReleaseTwiceIsSafe(t *testing.T) {
	lock, err := Acquire(filepath.Join(t.TempDir(), "f"))
	require.NoError(t, err)
	require.NoError(t, lock.Release())
	require.NoError(t, lock.Release())
}

func TestWriteAtomicFollowsSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "dotfiles", "tmux_recent")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0o755))
	require.NoError(t, os.WriteFile(target, []byte("old\n"), 0o644))
	link := filepath.Join(dir, ".tmux_recent")
	require.NoError(t, os.Symlink(target, link))

	require.NoError(t, WriteAtomic(link, []byte("new\n"), 0o644))

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink, "link must survive the write")
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(data))
}

func TestWriteAtomicCreatesDanglingSymlinkTarget(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, ".tmux_bookmarks")
	require.NoError(t, os.Symlink("bookmarks.real", link))

	require.NoError(t, WriteAtomic(link, []byte("work\n"), 0o644))

	data, err := os.ReadFile(filepath.Join(dir, "bookmarks.real"))
	require.NoError(t, err)
	assert.Equal(t, "work\n", string(data))
}
