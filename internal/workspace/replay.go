package workspace

import (
	"github.com/atomicstack/stmux/internal/logging/events"
	"github.com/atomicstack/stmux/internal/mux"
	"github.com/atomicstack/stmux/internal/topology"
)

type pendingLayout struct {
	target string
	layout string
	panes  int
}

// replay creates the session, its windows and their panes in order and
// returns the layouts to apply once the panes exist.
func (e *Engine) replay(name string, session topology.Session) ([]pendingLayout, error) {
	if len(session.Windows) == 0 {
		return nil, nil
	}
	events.Session.Restore(name, len(session.Windows))

	var pending []pendingLayout
	for i, window := range session.Windows {
		position := i + 1
		windowTarget := mux.WindowTarget(name, position)
		first := window.FirstPane()

		if i == 0 {
			err := e.mux.NewSession(mux.NewSessionOptions{
				Name:       name,
				WindowName: window.Name,
				Dir:        first.Path,
				Env:        first.Env,
				Command:    first.StartupCommand,
			})
			if err != nil {
				return nil, err
			}
		} else {
			_, err := e.mux.NewWindow(mux.NewWindowOptions{
				Target:   windowTarget,
				Name:     window.Name,
				Dir:      first.Path,
				Env:      first.Env,
				Command:  first.StartupCommand,
				Detached: true,
			})
			if err != nil {
				return nil, err
			}
		}
		events.Window.Create(windowTarget, window.Name, i == 0)

		if err := e.sendKeys(mux.PaneTarget(name, position, 1), first); err != nil {
			return nil, err
		}

		if len(window.Panes) < 2 {
			continue
		}
		for j, pane := range window.Panes[1:] {
			target, err := e.mux.SplitWindow(mux.SplitOptions{
				Target:     windowTarget,
				Horizontal: true,
				Dir:        pane.Path,
				Env:        pane.Env,
				Command:    pane.StartupCommand,
			})
			if err != nil {
				return nil, err
			}
			if target == "" {
				target = mux.PaneTarget(name, position, j+2)
			}
			events.Pane.Split(target, pane.Path, pane.StartupCommand != "")
			if err := e.sendKeys(target, pane); err != nil {
				return nil, err
			}
		}
		pending = append(pending, pendingLayout{
			target: windowTarget,
			layout: window.Layout,
			panes:  len(window.Panes),
		})
	}

	for _, key := range sortedKeys(session.Options) {
		if err := e.mux.SetSessionOption(name, key, session.Options[key]); err != nil {
			return nil, err
		}
	}

	first := mux.WindowTarget(name, 1)
	if err := e.mux.SelectWindow(first); err != nil {
		return nil, err
	}
	events.Window.Select(first)
	return pending, nil
}

func (e *Engine) sendKeys(target string, pane topology.Pane) error {
	keys, ok := pane.Keys()
	if !ok {
		return nil
	}
	events.Pane.SendKeys(target, keys)
	return e.mux.SendKeys(target, keys)
}

// applyLayouts waits for every pending window to reach its pane count, or
// for the layout timeout to pass, then applies each layout verbatim.
func (e *Engine) applyLayouts(pending []pendingLayout) error {
	if len(pending) == 0 {
		return nil
	}
	settled := e.waitForPanes(pending)
	events.Window.LayoutWait(len(pending), settled)
	if !settled {
		e.opts.Sleep(e.opts.SettleDelay)
	}
	for _, p := range pending {
		if p.layout == "" {
			continue
		}
		if err := e.mux.SelectLayout(p.target, p.layout); err != nil {
			return err
		}
		events.Window.Layout(p.target, p.layout)
	}
	return nil
}

func (e *Engine) waitForPanes(pending []pendingLayout) bool {
	if e.opts.LayoutTimeout <= 0 {
		return false
	}
	deadline := e.opts.Now().Add(e.opts.LayoutTimeout)
	for {
		if e.panesReady(pending) {
			return true
		}
		if !e.opts.Now().Before(deadline) {
			return false
		}
		e.opts.Sleep(e.opts.PollInterval)
	}
}

func (e *Engine) panesReady(pending []pendingLayout) bool {
	for _, p := range pending {
		panes, err := e.mux.ListPanes(p.target)
		if err != nil {
			return false
		}
		if len(panes) < p.panes {
			return false
		}
	}
	return true
}
