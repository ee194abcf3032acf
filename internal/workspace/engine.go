// Package workspace captures live tmux sessions into the topology file and
// replays stored sessions back into tmux.
package workspace

import (
	"sort"
	"time"

	"github.com/atomicstack/stmux/internal/logging/events"
	"github.com/atomicstack/stmux/internal/mux"
	"github.com/atomicstack/stmux/internal/topology"
)

const (
	DefaultSettleDelay   = 300 * time.Millisecond
	DefaultLayoutTimeout = time.Second
	defaultPollInterval  = 50 * time.Millisecond
)

type Options struct {
	// SettleDelay is slept once before layouts are applied when the pane
	// counts never caught up within LayoutTimeout.
	SettleDelay time.Duration
	// LayoutTimeout bounds the wait for split panes to appear. Zero skips
	// the poll and always sleeps SettleDelay.
	LayoutTimeout time.Duration
	PollInterval  time.Duration

	Sleep func(time.Duration)
	Now   func() time.Time
}

type Engine struct {
	mux   mux.Multiplexer
	store *topology.Store
	opts  Options
}

func New(m mux.Multiplexer, store *topology.Store, opts Options) *Engine {
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{mux: m, store: store, opts: opts}
}

func (e *Engine) Store() *topology.Store { return e.store }

// Result describes a single-session restore.
type Result struct {
	Found      bool
	Background bool
	// Empty is set when the stored entry has no windows and nothing was
	// created.
	Empty bool
}

// Restore replays the stored session name. A name with no stored entry
// yields Found=false and touches nothing.
func (e *Engine) Restore(name string) (Result, error) {
	sessions, err := e.store.Load()
	if err != nil {
		return Result{}, err
	}
	session, ok := sessions[name]
	if !ok {
		events.Session.Skip(name, events.SessionReasonNotFound)
		return Result{}, nil
	}
	if len(session.Windows) == 0 {
		events.Session.Skip(name, events.SessionReasonNoWindows)
		return Result{Found: true, Empty: true}, nil
	}
	pending, err := e.replay(name, session)
	if err != nil {
		return Result{}, err
	}
	if err := e.applyLayouts(pending); err != nil {
		return Result{}, err
	}
	return Result{Found: true, Background: session.Background}, nil
}

// RestoreAll replays every stored session that is not numeric, has at least
// one window and is not already running. Layouts for all of them are
// applied together at the end.
func (e *Engine) RestoreAll() ([]string, error) {
	sessions, err := e.store.Load()
	if err != nil {
		return nil, err
	}
	var (
		restored []string
		pending  []pendingLayout
	)
	for _, name := range topology.SortedNames(sessions) {
		session := sessions[name]
		switch {
		case topology.IsNumericName(name):
			events.Session.Skip(name, events.SessionReasonNumeric)
			continue
		case len(session.Windows) == 0:
			events.Session.Skip(name, events.SessionReasonNoWindows)
			continue
		}
		live, err := e.mux.HasSession(name)
		if err != nil {
			return restored, err
		}
		if live {
			events.Session.Skip(name, events.SessionReasonLive)
			continue
		}
		layouts, err := e.replay(name, session)
		if err != nil {
			return restored, err
		}
		pending = append(pending, layouts...)
		restored = append(restored, name)
	}
	if err := e.applyLayouts(pending); err != nil {
		return restored, err
	}
	return restored, nil
}

// Selection reports what Select did.
type Selection struct {
	Found      bool
	Live       bool
	Background bool
	Empty      bool
}

// Select switches to name, restoring it first when it is not running.
// Background sessions are restored without switching.
func (e *Engine) Select(name string) (Selection, error) {
	live, err := e.mux.HasSession(name)
	if err != nil {
		return Selection{}, err
	}
	events.Session.Select(name, live)
	if live {
		if err := e.switchTo(name); err != nil {
			return Selection{}, err
		}
		return Selection{Found: true, Live: true}, nil
	}
	res, err := e.Restore(name)
	if err != nil {
		return Selection{}, err
	}
	if !res.Found {
		return Selection{}, nil
	}
	if res.Empty {
		return Selection{Found: true, Empty: true}, nil
	}
	if res.Background {
		events.Session.Skip(name, events.SessionReasonBackground)
		return Selection{Found: true, Background: true}, nil
	}
	if err := e.switchTo(name); err != nil {
		return Selection{}, err
	}
	return Selection{Found: true}, nil
}

func (e *Engine) switchTo(name string) error {
	events.Session.Switch(name)
	return e.mux.SwitchClient(name)
}

// List returns the stored session names without consulting tmux.
func (e *Engine) List() ([]string, error) {
	return e.store.Names()
}

// Convert rewrites the store's file from the window-list shape into the
// session-record shape at output.
func (e *Engine) Convert(output string) (int, error) {
	return e.store.Convert(output)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
