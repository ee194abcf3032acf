package workspace

import (
	"github.com/atomicstack/stmux/internal/logging/events"
	"github.com/atomicstack/stmux/internal/mux"
	"github.com/atomicstack/stmux/internal/topology"
)

// Capture reads the live topology of one session. Window and pane indices
// are recorded as positions starting at 1.
func (e *Engine) Capture(name string) (topology.Session, error) {
	windows, err := e.mux.ListWindows(name)
	if err != nil {
		return topology.Session{}, err
	}
	session := topology.Session{Windows: make([]topology.Window, 0, len(windows))}
	for i, w := range windows {
		panes, err := e.mux.ListPanes(mux.WindowTarget(name, w.Index))
		if err != nil {
			return topology.Session{}, err
		}
		window := topology.Window{
			Index:  i + 1,
			Name:   w.Name,
			Layout: w.Layout,
			Active: w.Active,
			Panes:  make([]topology.Pane, 0, len(panes)),
		}
		for j, p := range panes {
			window.Panes = append(window.Panes, topology.Pane{
				Index:  j + 1,
				Path:   p.Path,
				Active: p.Active,
			})
		}
		session.Windows = append(session.Windows, window)
	}
	events.Session.Capture(name, len(session.Windows))
	return session, nil
}

// CaptureAll reads every live session worth storing: numeric names and
// sessions without windows are dropped here, before any merge.
func (e *Engine) CaptureAll() (topology.Sessions, error) {
	names, err := e.mux.ListSessions()
	if err != nil {
		return nil, err
	}
	live := make(topology.Sessions, len(names))
	for _, name := range names {
		if topology.IsNumericName(name) {
			events.Session.Skip(name, events.SessionReasonNumeric)
			continue
		}
		session, err := e.Capture(name)
		if err != nil {
			return nil, err
		}
		if len(session.Windows) == 0 {
			events.Session.Skip(name, events.SessionReasonNoWindows)
			continue
		}
		live[name] = session
	}
	return live, nil
}

// SaveAll merges the live sessions into the stored topology, keeping every
// stored entry as is, and returns the number of sessions now stored.
func (e *Engine) SaveAll() (int, error) {
	total := 0
	err := e.store.Update(func(stored topology.Sessions) (bool, error) {
		live, err := e.CaptureAll()
		if err != nil {
			return false, err
		}
		for name, session := range topology.Merge(stored, live) {
			stored[name] = session
		}
		total = len(stored)
		return true, nil
	})
	return total, err
}

// SaveSession captures the live session name and stores it. An existing
// entry is only replaced when force is set.
func (e *Engine) SaveSession(name string, force bool) (bool, error) {
	saved := false
	err := e.store.Update(func(stored topology.Sessions) (bool, error) {
		if _, exists := stored[name]; exists && !force {
			return false, nil
		}
		session, err := e.Capture(name)
		if err != nil {
			return false, err
		}
		stored[name] = session
		saved = true
		return true, nil
	})
	return saved, err
}

// Delete removes name from the stored topology.
func (e *Engine) Delete(name string) (bool, error) {
	found := false
	err := e.store.Update(func(stored topology.Sessions) (bool, error) {
		_, found = stored[name]
		delete(stored, name)
		return found, nil
	})
	events.Session.Delete(name, found)
	return found, err
}

// UpdateOptions lists the edits applied by Update. Nil and false fields
// leave the stored value alone.
type UpdateOptions struct {
	Background       bool
	NoRecentTracking bool
	WindowActive     bool
	PaneActive       bool
	StartupCommand   *string
	ShellCommand     *string
}

func (o UpdateOptions) needsLocation() bool {
	return o.WindowActive || o.PaneActive || o.StartupCommand != nil || o.ShellCommand != nil
}

// Update edits the stored entry for name. Window and pane edits address the
// window and pane the user is currently focused on.
func (e *Engine) Update(name string, opts UpdateOptions) (bool, error) {
	var loc mux.Location
	if opts.needsLocation() {
		var err error
		if loc, err = e.mux.Current(); err != nil {
			return false, err
		}
	}
	found := false
	err := e.store.Update(func(stored topology.Sessions) (bool, error) {
		session, ok := stored[name]
		if !ok {
			return false, nil
		}
		found = true
		stored[name] = applyUpdate(session, opts, loc)
		return true, nil
	})
	events.Session.Update(name, found)
	return found, err
}

func applyUpdate(session topology.Session, opts UpdateOptions, loc mux.Location) topology.Session {
	if opts.Background {
		session.Background = true
	}
	if opts.NoRecentTracking {
		session.NoRecentTracking = true
	}
	windows := make([]topology.Window, len(session.Windows))
	copy(windows, session.Windows)
	session.Windows = windows

	for i := range windows {
		if opts.WindowActive {
			windows[i].Active = windows[i].Index == loc.Window
		}
		if windows[i].Index != loc.Window {
			continue
		}
		panes := make([]topology.Pane, len(windows[i].Panes))
		copy(panes, windows[i].Panes)
		windows[i].Panes = panes
		for j := range panes {
			if opts.PaneActive {
				panes[j].Active = panes[j].Index == loc.Pane
			}
			if panes[j].Index != loc.Pane {
				continue
			}
			if opts.StartupCommand != nil {
				panes[j].StartupCommand = *opts.StartupCommand
			}
			if opts.ShellCommand != nil {
				panes[j].ShellCommand = *opts.ShellCommand
			}
		}
	}
	return session
}
