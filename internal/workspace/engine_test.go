package workspace

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/stmux/internal/mux/muxtest"
	"github.com/atomicstack/stmux/internal/topology"
)

type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

func newEngine(t *testing.T, f *muxtest.Fake, stored topology.Sessions) (*Engine, *fakeClock) {
	t.Helper()
	store := topology.NewStore(filepath.Join(t.TempDir(), "sessions.toml"))
	if stored != nil {
		require.NoError(t, store.Save(stored))
	}
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	e := New(f, store, Options{
		SettleDelay:   DefaultSettleDelay,
		LayoutTimeout: DefaultLayoutTimeout,
		Sleep:         clock.Sleep,
		Now:           clock.Now,
	})
	return e, clock
}

func workSession() topology.Session {
	return topology.Session{
		Windows: []topology.Window{
			{
				Index:  1,
				Name:   "code",
				Layout: "aaaa,200x50,0,0{100x50,0,0,1,99x50,101,0,2}",
				Panes: []topology.Pane{
					{Index: 1, Path: "/src/work", Active: true},
					{Index: 2, Path: "/src/work/test"},
				},
			},
			{
				Index:  2,
				Name:   "logs",
				Layout: "bbbb,200x50,0,0,3",
				Panes:  []topology.Pane{{Index: 1, Path: "/var/log", Active: true}},
			},
		},
	}
}

func TestRestoreWorkScenario(t *testing.T) {
	f := muxtest.New()
	e, clock := newEngine(t, f, topology.Sessions{"work": workSession()})

	res, err := e.Restore("work")
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.False(t, res.Background)

	assert.Equal(t, 1, f.Count("new-session"))
	assert.Equal(t, 1, f.Count("split-window"))
	assert.Equal(t, 1, f.Count("new-window"))
	layouts := f.CallsOf("select-layout")
	require.Len(t, layouts, 1)
	assert.Equal(t, []string{"work:1", "aaaa,200x50,0,0{100x50,0,0,1,99x50,101,0,2}"}, layouts[0].Args)
	assert.Empty(t, clock.sleeps, "panes are present immediately, nothing to wait for")

	s := f.Session("work")
	require.NotNil(t, s)
	require.Len(t, s.Windows, 2)
	assert.Equal(t, "code", s.Windows[0].Name)
	assert.Equal(t, "/src/work/test", s.Windows[0].Panes[1].Path)
	assert.Equal(t, 2, s.Windows[1].Index)
	assert.True(t, s.Windows[0].Active, "window 1 is selected after replay")
	assert.Equal(t, []string{"work:2", "logs", "/var/log", ""}, f.CallsOf("new-window")[0].Args)
}

func TestRestoreLayoutAfterAllWindows(t *testing.T) {
	f := muxtest.New()
	e, _ := newEngine(t, f, topology.Sessions{"work": workSession()})

	_, err := e.Restore("work")
	require.NoError(t, err)

	lastCreate, layoutAt, selectAt := -1, -1, -1
	for i, c := range f.Calls {
		switch c.Op {
		case "new-session", "new-window", "split-window":
			lastCreate = i
		case "select-layout":
			layoutAt = i
		case "select-window":
			selectAt = i
		}
	}
	assert.Greater(t, selectAt, lastCreate)
	assert.Greater(t, layoutAt, selectAt)
}

func TestRestoreStartupCommandWinsOverShellCommand(t *testing.T) {
	f := muxtest.New()
	session := topology.Session{
		Windows: []topology.Window{{
			Index: 1, Name: "main", Layout: "cccc",
			Panes: []topology.Pane{
				{Index: 1, Path: "/a", StartupCommand: "htop", ShellCommand: "ls"},
				{Index: 2, Path: "/b", ShellCommand: "make watch", Env: map[string]string{"MODE": "dev"}},
				{Index: 3, Path: "/c", StartupCommand: "tail -f log"},
			},
		}},
	}
	e, _ := newEngine(t, f, topology.Sessions{"dev": session})

	_, err := e.Restore("dev")
	require.NoError(t, err)

	keys := f.CallsOf("send-keys")
	require.Len(t, keys, 1)
	assert.Equal(t, []string{"dev:1.2", "make watch"}, keys[0].Args)

	assert.Equal(t, "htop", f.CallsOf("new-session")[0].Args[3])
	splits := f.CallsOf("split-window")
	require.Len(t, splits, 2)
	assert.Equal(t, "", splits[0].Args[2])
	assert.Equal(t, "tail -f log", splits[1].Args[2])
	assert.Equal(t, map[string]string{"MODE": "dev"}, f.Pane("dev:1.2").Env)
}

func TestRestoreFirstPaneShellCommand(t *testing.T) {
	f := muxtest.New()
	session := topology.Session{Windows: []topology.Window{
		{Index: 1, Name: "one", Panes: []topology.Pane{{Index: 1, Path: "/", ShellCommand: "echo hi"}}},
		{Index: 2, Name: "two", Panes: []topology.Pane{{Index: 1, Path: "/", ShellCommand: "echo there"}}},
	}}
	e, _ := newEngine(t, f, topology.Sessions{"s": session})

	_, err := e.Restore("s")
	require.NoError(t, err)

	keys := f.CallsOf("send-keys")
	require.Len(t, keys, 2)
	assert.Equal(t, []string{"s:1.1", "echo hi"}, keys[0].Args)
	assert.Equal(t, []string{"s:2.1", "echo there"}, keys[1].Args)
	assert.Zero(t, f.Count("select-layout"), "single-pane windows need no layout")
}

func TestRestoreAppliesSessionOptionsBeforeSelectingWindow(t *testing.T) {
	f := muxtest.New()
	session := workSession()
	session.Options = map[string]string{"status-style": "bg=red", "base-index": "1"}
	e, _ := newEngine(t, f, topology.Sessions{"work": session})

	_, err := e.Restore("work")
	require.NoError(t, err)

	opts := f.CallsOf("set-option")
	require.Len(t, opts, 2)
	assert.Equal(t, []string{"work", "base-index", "1"}, opts[0].Args)
	assert.Equal(t, "bg=red", f.Session("work").Options["status-style"])

	var lastOption, selectAt int
	for i, c := range f.Calls {
		if c.Op == "set-option" {
			lastOption = i
		}
		if c.Op == "select-window" {
			selectAt = i
		}
	}
	assert.Greater(t, selectAt, lastOption)
}

func TestRestoreNotFound(t *testing.T) {
	f := muxtest.New()
	e, _ := newEngine(t, f, topology.Sessions{"work": workSession()})

	res, err := e.Restore("missing")
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Empty(t, f.Calls)
}

func TestRestoreBackgroundFlag(t *testing.T) {
	f := muxtest.New()
	bg := workSession()
	bg.Background = true
	empty := topology.Session{Background: true}
	e, _ := newEngine(t, f, topology.Sessions{"bg": bg, "empty": empty})

	res, err := e.Restore("bg")
	require.NoError(t, err)
	assert.True(t, res.Background)

	res, err = e.Restore("empty")
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.True(t, res.Empty)
	assert.False(t, res.Background, "no windows means foreground")
	assert.Nil(t, f.Session("empty"))
}

func TestRestoreAllSkipsAndSettlesOnce(t *testing.T) {
	f := muxtest.New()
	f.AddSession("live", []string{"/live"})
	docs := topology.Session{Windows: []topology.Window{{
		Index: 1, Name: "docs", Layout: "dddd",
		Panes: []topology.Pane{{Index: 1, Path: "/d"}, {Index: 2, Path: "/d/x"}},
	}}}
	e, clock := newEngine(t, f, topology.Sessions{
		"work":  workSession(),
		"docs":  docs,
		"42":    workSession(),
		"empty": {},
		"live":  workSession(),
	})
	e.opts.LayoutTimeout = 0

	restored, err := e.RestoreAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"docs", "work"}, restored)

	assert.Equal(t, 2, f.Count("new-session"))
	assert.Nil(t, f.Session("42"))
	assert.Nil(t, f.Session("empty"))
	assert.Len(t, f.Session("live").Windows, 1, "live sessions are left alone")

	assert.Equal(t, []time.Duration{DefaultSettleDelay}, clock.sleeps)

	layouts := f.CallsOf("select-layout")
	require.Len(t, layouts, 2)
	lastCreate := 0
	firstLayout := -1
	for i, c := range f.Calls {
		if c.Op == "new-session" || c.Op == "new-window" || c.Op == "split-window" {
			lastCreate = i
		}
		if c.Op == "select-layout" && firstLayout < 0 {
			firstLayout = i
		}
	}
	assert.Greater(t, firstLayout, lastCreate, "layouts are applied after every session is replayed")
}

func TestLayoutPollFallsBackToSettleDelay(t *testing.T) {
	f := muxtest.New()
	e, clock := newEngine(t, f, topology.Sessions{"work": workSession()})
	f.Errs = map[string]error{"list-panes": errors.New("not yet")}

	_, err := e.Restore("work")
	require.NoError(t, err)

	require.NotEmpty(t, clock.sleeps)
	assert.Equal(t, DefaultSettleDelay, clock.sleeps[len(clock.sleeps)-1])
	settles := 0
	for _, d := range clock.sleeps[:len(clock.sleeps)-1] {
		assert.Equal(t, defaultPollInterval, d)
		if d == DefaultSettleDelay {
			settles++
		}
	}
	assert.Zero(t, settles)
	assert.Equal(t, 1, f.Count("select-layout"), "layouts are applied even after a timeout")
}

func TestSelectLiveSessionSwitches(t *testing.T) {
	f := muxtest.New()
	f.AddSession("work", []string{"/w"})
	e, _ := newEngine(t, f, nil)

	sel, err := e.Select("work")
	require.NoError(t, err)
	assert.True(t, sel.Live)
	assert.Equal(t, []string{"work"}, f.Switched)
	assert.Zero(t, f.Count("new-session"))
}

func TestSelectRestoresThenSwitches(t *testing.T) {
	f := muxtest.New()
	e, _ := newEngine(t, f, topology.Sessions{"work": workSession()})

	sel, err := e.Select("work")
	require.NoError(t, err)
	assert.True(t, sel.Found)
	assert.False(t, sel.Live)
	assert.Equal(t, 1, f.Count("new-session"))
	assert.Equal(t, []string{"work"}, f.Switched)
}

func TestSelectBackgroundDoesNotSwitch(t *testing.T) {
	f := muxtest.New()
	bg := workSession()
	bg.Background = true
	e, _ := newEngine(t, f, topology.Sessions{"bg": bg})

	sel, err := e.Select("bg")
	require.NoError(t, err)
	assert.True(t, sel.Background)
	assert.NotNil(t, f.Session("bg"))
	assert.Empty(t, f.Switched)
}

func TestSelectStoredWithoutWindows(t *testing.T) {
	f := muxtest.New()
	e, _ := newEngine(t, f, topology.Sessions{"empty": {}})

	sel, err := e.Select("empty")
	require.NoError(t, err)
	assert.True(t, sel.Found)
	assert.True(t, sel.Empty)
	assert.Empty(t, f.Switched)
	assert.Zero(t, f.Count("new-session"))
	assert.Nil(t, f.Session("empty"))
}

func TestSelectUnknown(t *testing.T) {
	f := muxtest.New()
	e, _ := newEngine(t, f, nil)

	sel, err := e.Select("nope")
	require.NoError(t, err)
	assert.False(t, sel.Found)
	assert.Empty(t, f.Switched)
}

func TestSaveAllMergesAndFiltersLive(t *testing.T) {
	f := muxtest.New()
	f.AddSession("work", []string{"/live/a", "/live/b"})
	f.AddSession("scratch", []string{"/tmp"})
	f.AddSession("7", []string{"/numeric"})
	f.AddSession("hollow")
	curated := workSession()
	curated.Windows[0].Panes[0].StartupCommand = "nvim"
	e, _ := newEngine(t, f, topology.Sessions{"work": curated})

	total, err := e.SaveAll()
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	stored, err := e.Store().Load()
	require.NoError(t, err)
	assert.Equal(t, curated, stored["work"], "stored entries win over live state")
	require.Contains(t, stored, "scratch")
	assert.Equal(t, "/tmp", stored["scratch"].Windows[0].Panes[0].Path)
	assert.NotContains(t, stored, "7")
	assert.NotContains(t, stored, "hollow")
}

func TestCapturePositions(t *testing.T) {
	f := muxtest.New()
	s := f.AddSession("gap", []string{"/a"}, []string{"/b", "/c"})
	s.Windows[1].Index = 5
	e, _ := newEngine(t, f, nil)

	session, err := e.Capture("gap")
	require.NoError(t, err)
	require.Len(t, session.Windows, 2)
	assert.Equal(t, 2, session.Windows[1].Index)
	assert.Equal(t, []topology.Pane{
		{Index: 1, Path: "/b", Active: true},
		{Index: 2, Path: "/c"},
	}, session.Windows[1].Panes)
}

func TestSaveSessionRespectsForce(t *testing.T) {
	f := muxtest.New()
	f.AddSession("work", []string{"/live"})
	e, _ := newEngine(t, f, topology.Sessions{"work": workSession()})

	saved, err := e.SaveSession("work", false)
	require.NoError(t, err)
	assert.False(t, saved)

	saved, err = e.SaveSession("work", true)
	require.NoError(t, err)
	assert.True(t, saved)
	stored, err := e.Store().Load()
	require.NoError(t, err)
	assert.Equal(t, "/live", stored["work"].Windows[0].Panes[0].Path)
}

func TestDelete(t *testing.T) {
	f := muxtest.New()
	e, _ := newEngine(t, f, topology.Sessions{"work": workSession(), "docs": {}})

	found, err := e.Delete("work")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = e.Delete("work")
	require.NoError(t, err)
	assert.False(t, found)

	names, err := e.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"docs"}, names)
	assert.Empty(t, f.Calls, "list and delete never talk to tmux")
}

func TestUpdateEditsFocusedWindowAndPane(t *testing.T) {
	f := muxtest.New()
	f.AddSession("work", []string{"/a"}, []string{"/b"})
	f.FocusOn("work", 1, 2)
	e, _ := newEngine(t, f, topology.Sessions{"work": workSession()})

	startup := "go test ./..."
	found, err := e.Update("work", UpdateOptions{
		Background:     true,
		WindowActive:   true,
		PaneActive:     true,
		StartupCommand: &startup,
	})
	require.NoError(t, err)
	assert.True(t, found)

	stored, err := e.Store().Load()
	require.NoError(t, err)
	work := stored["work"]
	assert.True(t, work.Background)
	assert.False(t, work.NoRecentTracking)
	assert.True(t, work.Windows[0].Active)
	assert.False(t, work.Windows[1].Active)
	assert.False(t, work.Windows[0].Panes[0].Active)
	assert.True(t, work.Windows[0].Panes[1].Active)
	assert.Equal(t, "go test ./...", work.Windows[0].Panes[1].StartupCommand)
	assert.Empty(t, work.Windows[0].Panes[0].StartupCommand)
}

func TestUpdateMissingSession(t *testing.T) {
	f := muxtest.New()
	e, _ := newEngine(t, f, topology.Sessions{"work": workSession()})

	found, err := e.Update("nope", UpdateOptions{NoRecentTracking: true})
	require.NoError(t, err)
	assert.False(t, found)
}
