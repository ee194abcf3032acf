// Package mux describes the terminal multiplexer operations stmux relies on.
//
// Every method is a single blocking round trip: creation calls return once
// the new session, window or pane is addressable, list calls return one
// entry per entity in multiplexer order, and pane options persist until
// overwritten. The tmux package provides the real implementation and
// muxtest an in-memory one.
package mux

// TagOption is the pane user option holding the name of the logical session
// a pane stands in for. It is written by smart split and read back by it and
// by the status line.
const TagOption = "@window-name"

type Multiplexer interface {
	ListSessions() ([]string, error)
	HasSession(name string) (bool, error)
	Current() (Location, error)
	ListWindows(session string) ([]WindowInfo, error)
	ListPanes(window string) ([]PaneInfo, error)

	NewSession(opts NewSessionOptions) error
	NewWindow(opts NewWindowOptions) (string, error)
	SplitWindow(opts SplitOptions) (string, error)
	SendKeys(target, keys string) error
	SelectWindow(target string) error
	SelectLayout(target, layout string) error
	SwapPane(source, target string) error
	JoinPane(source, target string) error
	RenameWindow(target, name string) error

	SetSessionOption(session, name, value string) error
	SetPaneOption(target, name, value string) error
	SetGlobalOption(name, value string) error

	SwitchClient(session string) error
	DisplayMessage(message string) error
	RefreshClient() error
	DisplayPopup(opts PopupOptions) error
}

// Location identifies the pane the user is looking at.
type Location struct {
	Session    string
	Window     int
	WindowName string
	Pane       int
}

// WindowTarget addresses the focused window.
func (l Location) WindowTarget() string {
	return WindowTarget(l.Session, l.Window)
}

type WindowInfo struct {
	Index  int
	Name   string
	Layout string
	Active bool
}

type PaneInfo struct {
	Index   int
	Path    string
	Active  bool
	Command string
	Tag     string
}

type NewSessionOptions struct {
	Name       string
	WindowName string
	Dir        string
	Env        map[string]string
	Command    string
}

// NewWindowOptions creates a window. Target is either "session" (append)
// or "session:index" (explicit position).
type NewWindowOptions struct {
	Target   string
	Name     string
	Dir      string
	Env      map[string]string
	Command  string
	Detached bool
}

type SplitOptions struct {
	Target     string
	Horizontal bool
	Before     bool
	Dir        string
	Env        map[string]string
	Command    string
}

type PopupOptions struct {
	Title   string
	Command string
	Width   string
	Height  string
}
