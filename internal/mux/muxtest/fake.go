// Package muxtest provides an in-memory mux.Multiplexer for tests.
package muxtest

import (
	"fmt"

	"github.com/atomicstack/stmux/internal/mux"
)

// Call records a single multiplexer operation.
type Call struct {
	Op   string
	Args []string
}

type Pane struct {
	Path    string
	Command string
	Env     map[string]string
	Tag     string
	Keys    []string
	Active  bool
}

type Window struct {
	Index  int
	Name   string
	Layout string
	Active bool
	Panes  []*Pane
}

type Session struct {
	Name    string
	Windows []*Window
	Options map[string]string
}

// Fake models sessions, windows and panes in memory and records every call.
type Fake struct {
	Sessions []*Session
	Focus    mux.Location

	Calls     []Call
	Messages  []string
	Globals   map[string]string
	Popups    []mux.PopupOptions
	Switched  []string
	Refreshes int

	// Errs makes the named operation fail.
	Errs map[string]error
	// PopupFn runs in place of a real popup.
	PopupFn func(mux.PopupOptions) error
}

var _ mux.Multiplexer = (*Fake)(nil)

func New() *Fake {
	return &Fake{Globals: map[string]string{}}
}

// AddSession seeds a session whose windows each carry the given pane paths.
func (f *Fake) AddSession(name string, windows ...[]string) *Session {
	s := &Session{Name: name, Options: map[string]string{}}
	for i, paths := range windows {
		w := &Window{Index: i + 1, Name: fmt.Sprintf("w%d", i+1), Active: i == 0}
		for j, p := range paths {
			w.Panes = append(w.Panes, &Pane{Path: p, Active: j == 0})
		}
		s.Windows = append(s.Windows, w)
	}
	f.Sessions = append(f.Sessions, s)
	return s
}

// FocusOn moves the simulated client to session:window.pane.
func (f *Fake) FocusOn(session string, window, pane int) {
	f.Focus = mux.Location{Session: session, Window: window, Pane: pane}
	if _, w := f.lookupWindow(mux.WindowTarget(session, window)); w != nil {
		f.Focus.WindowName = w.Name
	}
}

// Count returns how many calls of op were recorded.
func (f *Fake) Count(op string) int {
	n := 0
	for _, c := range f.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// CallsOf returns the recorded calls of op in order.
func (f *Fake) CallsOf(op string) []Call {
	var out []Call
	for _, c := range f.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Session returns the named session or nil.
func (f *Fake) Session(name string) *Session {
	for _, s := range f.Sessions {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Window resolves a target to a window or nil.
func (f *Fake) Window(target string) *Window {
	_, w := f.lookupWindow(target)
	return w
}

// Pane resolves a pane target or nil.
func (f *Fake) Pane(target string) *Pane {
	_, w, idx := f.lookupPane(target)
	if idx < 0 {
		return nil
	}
	return w.Panes[idx]
}

func (f *Fake) record(op string, args ...string) error {
	f.Calls = append(f.Calls, Call{Op: op, Args: append([]string(nil), args...)})
	if err, ok := f.Errs[op]; ok {
		return err
	}
	return nil
}

func (f *Fake) ListSessions() ([]string, error) {
	if err := f.record("list-sessions"); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(f.Sessions))
	for _, s := range f.Sessions {
		names = append(names, s.Name)
	}
	return names, nil
}

func (f *Fake) HasSession(name string) (bool, error) {
	if err := f.record("has-session", name); err != nil {
		return false, err
	}
	return f.Session(name) != nil, nil
}

func (f *Fake) Current() (mux.Location, error) {
	if err := f.record("current"); err != nil {
		return mux.Location{}, err
	}
	if f.Focus.Session == "" {
		return mux.Location{}, fmt.Errorf("no current client")
	}
	loc := f.Focus
	if _, w := f.lookupWindow(loc.WindowTarget()); w != nil {
		loc.WindowName = w.Name
	}
	return loc, nil
}

func (f *Fake) ListWindows(session string) ([]mux.WindowInfo, error) {
	if err := f.record("list-windows", session); err != nil {
		return nil, err
	}
	s := f.Session(mux.ParseTarget(session).Session)
	if s == nil {
		return nil, fmt.Errorf("can't find session: %s", session)
	}
	out := make([]mux.WindowInfo, 0, len(s.Windows))
	for _, w := range s.Windows {
		out = append(out, mux.WindowInfo{Index: w.Index, Name: w.Name, Layout: w.Layout, Active: w.Active})
	}
	return out, nil
}

func (f *Fake) ListPanes(window string) ([]mux.PaneInfo, error) {
	if err := f.record("list-panes", window); err != nil {
		return nil, err
	}
	_, w := f.lookupWindow(window)
	if w == nil {
		return nil, fmt.Errorf("can't find window: %s", window)
	}
	out := make([]mux.PaneInfo, 0, len(w.Panes))
	for i, p := range w.Panes {
		out = append(out, mux.PaneInfo{Index: i + 1, Path: p.Path, Active: p.Active, Command: p.Command, Tag: p.Tag})
	}
	return out, nil
}

func (f *Fake) NewSession(opts mux.NewSessionOptions) error {
	if err := f.record("new-session", opts.Name, opts.WindowName, opts.Dir, opts.Command); err != nil {
		return err
	}
	if f.Session(opts.Name) != nil {
		return fmt.Errorf("duplicate session: %s", opts.Name)
	}
	pane := &Pane{Path: opts.Dir, Command: opts.Command, Env: opts.Env, Active: true}
	w := &Window{Index: 1, Name: opts.WindowName, Active: true, Panes: []*Pane{pane}}
	f.Sessions = append(f.Sessions, &Session{Name: opts.Name, Windows: []*Window{w}, Options: map[string]string{}})
	return nil
}

func (f *Fake) NewWindow(opts mux.NewWindowOptions) (string, error) {
	if err := f.record("new-window", opts.Target, opts.Name, opts.Dir, opts.Command); err != nil {
		return "", err
	}
	t := mux.ParseTarget(opts.Target)
	s := f.Session(t.Session)
	if s == nil {
		return "", fmt.Errorf("can't find session: %s", t.Session)
	}
	idx, explicit := t.WindowIndex()
	if !explicit {
		for _, w := range s.Windows {
			if w.Index >= idx {
				idx = w.Index + 1
			}
		}
	}
	for _, w := range s.Windows {
		if w.Index == idx {
			return "", fmt.Errorf("index %d in use", idx)
		}
	}
	w := &Window{Index: idx, Name: opts.Name, Panes: []*Pane{{Path: opts.Dir, Command: opts.Command, Env: opts.Env, Active: true}}}
	if !opts.Detached {
		for _, other := range s.Windows {
			other.Active = false
		}
		w.Active = true
	}
	s.Windows = append(s.Windows, w)
	return mux.WindowTarget(s.Name, idx), nil
}

func (f *Fake) SplitWindow(opts mux.SplitOptions) (string, error) {
	if err := f.record("split-window", opts.Target, opts.Dir, opts.Command); err != nil {
		return "", err
	}
	s, w := f.lookupWindow(opts.Target)
	if w == nil {
		return "", fmt.Errorf("can't find window: %s", opts.Target)
	}
	pane := &Pane{Path: opts.Dir, Command: opts.Command, Env: opts.Env}
	pos := len(w.Panes)
	if opts.Before {
		pos = 0
		if _, _, idx := f.lookupPane(opts.Target); idx >= 0 {
			pos = idx
		}
	}
	w.Panes = append(w.Panes, nil)
	copy(w.Panes[pos+1:], w.Panes[pos:])
	w.Panes[pos] = pane
	return mux.PaneTarget(s.Name, w.Index, pos+1), nil
}

func (f *Fake) SendKeys(target, keys string) error {
	if err := f.record("send-keys", target, keys); err != nil {
		return err
	}
	p := f.Pane(target)
	if p == nil {
		return fmt.Errorf("can't find pane: %s", target)
	}
	p.Keys = append(p.Keys, keys)
	return nil
}

func (f *Fake) SelectWindow(target string) error {
	if err := f.record("select-window", target); err != nil {
		return err
	}
	s, w := f.lookupWindow(target)
	if w == nil {
		return fmt.Errorf("can't find window: %s", target)
	}
	for _, other := range s.Windows {
		other.Active = other == w
	}
	return nil
}

func (f *Fake) SelectLayout(target, layout string) error {
	if err := f.record("select-layout", target, layout); err != nil {
		return err
	}
	_, w := f.lookupWindow(target)
	if w == nil {
		return fmt.Errorf("can't find window: %s", target)
	}
	w.Layout = layout
	return nil
}

func (f *Fake) SwapPane(source, target string) error {
	if err := f.record("swap-pane", source, target); err != nil {
		return err
	}
	sw, si := f.paneSlot(source)
	tw, ti := f.paneSlot(target)
	if sw == nil || tw == nil {
		return fmt.Errorf("can't find pane: %s / %s", source, target)
	}
	sw.Panes[si], tw.Panes[ti] = tw.Panes[ti], sw.Panes[si]
	return nil
}

func (f *Fake) JoinPane(source, target string) error {
	if err := f.record("join-pane", source, target); err != nil {
		return err
	}
	ss, sw := f.lookupWindow(source)
	_, _, si := f.lookupPane(source)
	_, tw := f.lookupWindow(target)
	if sw == nil || tw == nil || si < 0 {
		return fmt.Errorf("can't join %s to %s", source, target)
	}
	pane := sw.Panes[si]
	sw.Panes = append(sw.Panes[:si], sw.Panes[si+1:]...)
	tw.Panes = append(tw.Panes, pane)
	if len(sw.Panes) == 0 {
		for i, w := range ss.Windows {
			if w == sw {
				ss.Windows = append(ss.Windows[:i], ss.Windows[i+1:]...)
				break
			}
		}
	}
	return nil
}

func (f *Fake) RenameWindow(target, name string) error {
	if err := f.record("rename-window", target, name); err != nil {
		return err
	}
	_, w := f.lookupWindow(target)
	if w == nil {
		return fmt.Errorf("can't find window: %s", target)
	}
	w.Name = name
	return nil
}

func (f *Fake) SetSessionOption(session, name, value string) error {
	if err := f.record("set-option", session, name, value); err != nil {
		return err
	}
	s := f.Session(session)
	if s == nil {
		return fmt.Errorf("can't find session: %s", session)
	}
	s.Options[name] = value
	return nil
}

func (f *Fake) SetPaneOption(target, name, value string) error {
	if err := f.record("set-pane-option", target, name, value); err != nil {
		return err
	}
	p := f.Pane(target)
	if p == nil {
		return fmt.Errorf("can't find pane: %s", target)
	}
	if name == mux.TagOption {
		p.Tag = value
	}
	return nil
}

func (f *Fake) SetGlobalOption(name, value string) error {
	if err := f.record("set-global", name, value); err != nil {
		return err
	}
	if f.Globals == nil {
		f.Globals = map[string]string{}
	}
	f.Globals[name] = value
	return nil
}

func (f *Fake) SwitchClient(session string) error {
	if err := f.record("switch-client", session); err != nil {
		return err
	}
	if f.Session(session) == nil {
		return fmt.Errorf("can't find session: %s", session)
	}
	f.Switched = append(f.Switched, session)
	return nil
}

func (f *Fake) DisplayMessage(message string) error {
	if err := f.record("display-message", message); err != nil {
		return err
	}
	f.Messages = append(f.Messages, message)
	return nil
}

func (f *Fake) RefreshClient() error {
	if err := f.record("refresh-client"); err != nil {
		return err
	}
	f.Refreshes++
	return nil
}

func (f *Fake) DisplayPopup(opts mux.PopupOptions) error {
	if err := f.record("display-popup", opts.Title, opts.Command); err != nil {
		return err
	}
	f.Popups = append(f.Popups, opts)
	if f.PopupFn != nil {
		return f.PopupFn(opts)
	}
	return nil
}

func (f *Fake) lookupWindow(target string) (*Session, *Window) {
	t := mux.ParseTarget(target)
	s := f.Session(t.Session)
	if s == nil {
		return nil, nil
	}
	if t.Window == "" {
		for _, w := range s.Windows {
			if w.Active {
				return s, w
			}
		}
		if len(s.Windows) > 0 {
			return s, s.Windows[0]
		}
		return s, nil
	}
	if idx, ok := t.WindowIndex(); ok {
		for _, w := range s.Windows {
			if w.Index == idx {
				return s, w
			}
		}
	}
	for _, w := range s.Windows {
		if w.Name == t.Window {
			return s, w
		}
	}
	return s, nil
}

// lookupPane returns the zero-based pane slot addressed by target, or -1.
// A target without a pane part addresses the window's active pane.
func (f *Fake) lookupPane(target string) (*Session, *Window, int) {
	s, w := f.lookupWindow(target)
	if w == nil {
		return s, nil, -1
	}
	idx := mux.ParseTarget(target).Pane - 1
	if idx == -1 {
		idx = 0
		for i, p := range w.Panes {
			if p.Active {
				idx = i
				break
			}
		}
	}
	if idx < 0 || idx >= len(w.Panes) {
		return s, w, -1
	}
	return s, w, idx
}

func (f *Fake) paneSlot(target string) (*Window, int) {
	_, w, idx := f.lookupPane(target)
	if idx < 0 {
		return nil, -1
	}
	return w, idx
}
