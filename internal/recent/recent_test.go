package recent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/stmux/internal/mux/muxtest"
	"github.com/atomicstack/stmux/internal/namelist"
	"github.com/atomicstack/stmux/internal/topology"
)

func newRotation(list []string, live ...string) (*Rotation, *muxtest.Fake, *namelist.Memory) {
	f := muxtest.New()
	for _, name := range live {
		f.AddSession(name, []string{"/"})
	}
	mem := namelist.NewMemory(list...)
	return New(f, mem), f, mem
}

func TestNextSkipsDeadSessions(t *testing.T) {
	r, _, _ := newRotation([]string{"a", "dead", "b", "c"}, "c", "a", "b")

	name, ok, err := r.Next("a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "b", name)
}

func TestNextStopsAtEnd(t *testing.T) {
	r, _, _ := newRotation([]string{"a", "b", "c"}, "a", "b", "c")

	_, ok, err := r.Next("c")
	require.NoError(t, err)
	assert.False(t, ok, "rotation does not wrap around")

	_, ok, err = r.Next("ghost")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPreviousStopsAtStart(t *testing.T) {
	r, _, _ := newRotation([]string{"a", "b", "c"}, "a", "b", "c")

	_, ok, err := r.Previous("a")
	require.NoError(t, err)
	assert.False(t, ok)

	name, ok, err := r.Previous("c")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "b", name)
}

func TestCurrentNotLiveIsAbsent(t *testing.T) {
	r, _, _ := newRotation([]string{"a", "b", "c"}, "a", "c")

	_, ok, err := r.Next("b")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNextAndPreviousAreInverse(t *testing.T) {
	order := []string{"w", "x", "y", "z"}
	for _, a := range order[:len(order)-1] {
		b, ok := Next(order, a)
		require.True(t, ok)
		back, ok := Previous(order, b)
		require.True(t, ok)
		assert.Equal(t, a, back)
	}
}

func TestRotationReadsLiveSetEveryTime(t *testing.T) {
	r, f, _ := newRotation([]string{"a", "b"}, "a")

	_, ok, err := r.Next("a")
	require.NoError(t, err)
	assert.False(t, ok)

	f.AddSession("b", []string{"/"})
	name, ok, err := r.Next("a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "b", name)
	assert.Equal(t, 2, f.Count("list-sessions"))
}

func TestAddMovesToFrontOnce(t *testing.T) {
	r, _, mem := newRotation([]string{"a", "b", "c"})

	for i := 0; i < 2; i++ {
		added, err := r.Add(nil, "c")
		require.NoError(t, err)
		assert.True(t, added)
	}

	names, err := mem.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, names)
}

func TestAddSkipsNumericAndUntracked(t *testing.T) {
	r, _, mem := newRotation([]string{"a"})

	added, err := r.Add(nil, "12")
	require.NoError(t, err)
	assert.False(t, added)

	added, err = r.Add(&topology.Session{NoRecentTracking: true}, "quiet")
	require.NoError(t, err)
	assert.False(t, added)

	assert.Zero(t, mem.Writes)
}

func TestFilterLiveKeepsListOrder(t *testing.T) {
	assert.Equal(t, []string{"b", "a"}, FilterLive([]string{"b", "x", "a"}, []string{"a", "b"}))
	assert.Empty(t, FilterLive(nil, []string{"a"}))
}
