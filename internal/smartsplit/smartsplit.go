// Package smartsplit shows a second session's first pane next to the
// current one. Which pane ends up where is remembered only through the
// @window-name tag tmux stores on each pane.
package smartsplit

import (
	"fmt"
	"path/filepath"

	"github.com/atomicstack/stmux/internal/logging"
	"github.com/atomicstack/stmux/internal/logging/events"
	"github.com/atomicstack/stmux/internal/mux"
	"github.com/atomicstack/stmux/internal/topology"
)

type Transition int

const (
	// Join pulls the pane of an existing window named after the target into
	// the current single-pane window.
	Join Transition = iota
	// Split opens the target's pane next to the only pane of the window.
	Split
	// Report means a pane of the current window already shows the target.
	Report
	// SwapRename exchanges the window's last pane with the target's pane.
	SwapRename
)

func (t Transition) String() string {
	switch t {
	case Join:
		return "join"
	case Split:
		return "split"
	case Report:
		return "report"
	case SwapRename:
		return "swap-rename"
	}
	return fmt.Sprintf("transition(%d)", int(t))
}

// State is what Decide looks at.
type State struct {
	Target string
	// Panes of the focused window, in order.
	Panes []mux.PaneInfo
	// WindowExists is set when another window of the current session is
	// named after Target.
	WindowExists bool
}

// Decide picks the transition for s. For Report it also returns the index
// of the pane tagged with the target.
func Decide(s State) (Transition, int) {
	single := len(s.Panes) == 1
	if s.WindowExists && single {
		return Join, 0
	}
	if single {
		return Split, 0
	}
	for _, p := range s.Panes {
		if p.Tag == s.Target {
			return Report, p.Index
		}
	}
	return SwapRename, 0
}

type Options struct {
	// Before places a split pane to the left of the current one.
	Before bool
}

// Splitter runs the transitions against a multiplexer.
type Splitter struct {
	mux mux.Multiplexer
}

func New(m mux.Multiplexer) *Splitter {
	return &Splitter{mux: m}
}

// Run inspects the focused window and applies the transition for target.
// session provides the path, environment and commands of the pane to open.
func (s *Splitter) Run(target string, session topology.Session, opts Options) (Transition, error) {
	loc, err := s.mux.Current()
	if err != nil {
		return 0, err
	}
	panes, err := s.mux.ListPanes(loc.WindowTarget())
	if err != nil {
		return 0, err
	}
	windows, err := s.mux.ListWindows(loc.Session)
	if err != nil {
		return 0, err
	}
	existing, exists := findWindow(windows, target, loc.Window)

	transition, tagged := Decide(State{Target: target, Panes: panes, WindowExists: exists})
	events.Split.Decide(target, transition.String(), len(panes))

	stored, _ := session.FirstPane()
	switch transition {
	case Join:
		err = s.join(loc, existing)
	case Split:
		err = s.split(loc, target, stored, opts)
	case Report:
		s.report(target, tagged)
	case SwapRename:
		if len(panes) == 0 {
			return transition, fmt.Errorf("window %s has no panes", loc.WindowTarget())
		}
		err = s.swapRename(loc, target, stored, panes[len(panes)-1], existing, exists)
	}
	return transition, err
}

func findWindow(windows []mux.WindowInfo, name string, current int) (mux.WindowInfo, bool) {
	for _, w := range windows {
		if w.Name == name && w.Index != current {
			return w, true
		}
	}
	return mux.WindowInfo{}, false
}

func (s *Splitter) join(loc mux.Location, window mux.WindowInfo) error {
	source := mux.PaneTarget(loc.Session, window.Index, 1)
	if err := s.mux.JoinPane(source, loc.WindowTarget()); err != nil {
		return err
	}
	events.Pane.Join(source, loc.WindowTarget())
	if err := s.mux.RefreshClient(); err != nil {
		logging.Error(err)
	}
	return nil
}

func (s *Splitter) split(loc mux.Location, target string, pane topology.Pane, opts Options) error {
	created, err := s.mux.SplitWindow(mux.SplitOptions{
		Target:     mux.PaneTarget(loc.Session, loc.Window, loc.Pane),
		Horizontal: true,
		Before:     opts.Before,
		Dir:        pane.Path,
		Env:        pane.Env,
		Command:    pane.StartupCommand,
	})
	if err != nil {
		return err
	}
	events.Pane.Split(created, pane.Path, pane.StartupCommand != "")
	if err := s.sendKeys(created, pane); err != nil {
		return err
	}
	return s.tag(created, target)
}

func (s *Splitter) report(target string, index int) {
	msg := fmt.Sprintf("#[fg=#e0e0e0,align=centre]Pane #[fg=#8a60ab]%d#[fg=#e0e0e0] is #[fg=#8a60ab]%s", index, target)
	if err := s.mux.DisplayMessage(msg); err != nil {
		logging.Error(err)
	}
}

func (s *Splitter) swapRename(loc mux.Location, target string, pane topology.Pane, last mux.PaneInfo, existing mux.WindowInfo, exists bool) error {
	lastTarget := mux.PaneTarget(loc.Session, loc.Window, last.Index)
	displacedName := windowNameFor(last)

	if !exists {
		window, err := s.mux.NewWindow(mux.NewWindowOptions{
			Target:   loc.Session,
			Name:     displacedName,
			Dir:      pane.Path,
			Env:      pane.Env,
			Command:  pane.StartupCommand,
			Detached: true,
		})
		if err != nil {
			return err
		}
		events.Window.Create(window, displacedName, false)
		source := window + ".1"
		if err := s.sendKeys(source, pane); err != nil {
			return err
		}
		if err := s.mux.SwapPane(source, lastTarget); err != nil {
			return err
		}
		events.Pane.Swap(source, lastTarget)
		return s.tag(lastTarget, target)
	}

	source := mux.PaneTarget(loc.Session, existing.Index, 1)
	if err := s.mux.SwapPane(source, lastTarget); err != nil {
		return err
	}
	events.Pane.Swap(source, lastTarget)
	vacated := mux.WindowTarget(loc.Session, existing.Index)
	if err := s.mux.RenameWindow(vacated, displacedName); err != nil {
		return err
	}
	events.Window.Rename(vacated, displacedName)
	return s.tag(lastTarget, target)
}

// windowNameFor names the window that receives a displaced pane: its tag
// when it has one, otherwise the last element of its path.
func windowNameFor(p mux.PaneInfo) string {
	if p.Tag != "" {
		return p.Tag
	}
	if base := filepath.Base(p.Path); base != "." && base != string(filepath.Separator) {
		return base
	}
	return "pane"
}

func (s *Splitter) sendKeys(target string, pane topology.Pane) error {
	keys, ok := pane.Keys()
	if !ok {
		return nil
	}
	events.Pane.SendKeys(target, keys)
	return s.mux.SendKeys(target, keys)
}

func (s *Splitter) tag(target, name string) error {
	if err := s.mux.SetPaneOption(target, mux.TagOption, name); err != nil {
		return err
	}
	events.Pane.Tag(target, name)
	return nil
}
