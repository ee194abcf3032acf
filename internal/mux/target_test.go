package mux

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTarget(t *testing.T) {
	cases := []struct {
		raw  string
		want Target
	}{
		{"work", Target{Session: "work"}},
		{"=work", Target{Session: "work"}},
		{"work:2", Target{Session: "work", Window: "2"}},
		{"work:2.3", Target{Session: "work", Window: "2", Pane: 3}},
		{"work:editor", Target{Session: "work", Window: "editor"}},
		{"work:editor.1", Target{Session: "work", Window: "editor", Pane: 1}},
		{"work:v1.2.x", Target{Session: "work", Window: "v1.2.x"}},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseTarget(tc.raw))
		})
	}
}

func TestTargetHelpers(t *testing.T) {
	assert.Equal(t, "work:2", WindowTarget("work", 2))
	assert.Equal(t, "work:2.1", PaneTarget("work", 2, 1))
	assert.Equal(t, "work:editor", NamedWindowTarget("work", "editor"))
	assert.Equal(t, "work:3", Location{Session: "work", Window: 3}.WindowTarget())

	idx, ok := ParseTarget("work:4").WindowIndex()
	assert.True(t, ok)
	assert.Equal(t, 4, idx)
	_, ok = ParseTarget("work:main").WindowIndex()
	assert.False(t, ok)
}

func TestEnvArgsSorted(t *testing.T) {
	assert.Nil(t, EnvArgs(nil))
	assert.Equal(t,
		[]string{"-e", "A=1", "-e", "B=two words"},
		EnvArgs(map[string]string{"B": "two words", "A": "1"}))
}
