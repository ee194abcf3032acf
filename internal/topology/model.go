// Package topology models the windows and panes of a tmux session and keeps
// them in a TOML file keyed by session name.
package topology

import "unicode"

type Pane struct {
	Index          int               `toml:"index"`
	Path           string            `toml:"path"`
	Active         bool              `toml:"active"`
	StartupCommand string            `toml:"startup_command,omitempty"`
	ShellCommand   string            `toml:"shell_command,omitempty"`
	Env            map[string]string `toml:"env,omitempty"`
}

// Keys returns the shell command to type into the pane after creation. A
// startup command replaces the shell, so it suppresses the keys.
func (p Pane) Keys() (string, bool) {
	if p.StartupCommand != "" || p.ShellCommand == "" {
		return "", false
	}
	return p.ShellCommand, true
}

type Window struct {
	Index  int    `toml:"index"`
	Name   string `toml:"name"`
	Layout string `toml:"layout"`
	Panes  []Pane `toml:"panes"`
	Active bool   `toml:"active,omitempty"`
}

// FirstPane returns the pane created together with the window.
func (w Window) FirstPane() Pane {
	if len(w.Panes) == 0 {
		return Pane{Index: 1}
	}
	return w.Panes[0]
}

type Session struct {
	Background       bool              `toml:"background,omitempty"`
	NoRecentTracking bool              `toml:"no_recent_tracking,omitempty"`
	Windows          []Window          `toml:"windows"`
	Options          map[string]string `toml:"options,omitempty"`
}

// FirstPane returns the first pane of the first window, which seeds smart
// split and session creation.
func (s Session) FirstPane() (Pane, bool) {
	if len(s.Windows) == 0 {
		return Pane{}, false
	}
	return s.Windows[0].FirstPane(), true
}

// Sessions is the stored topology keyed by session name.
type Sessions map[string]Session

// IsNumericName reports whether name consists only of digits. tmux hands
// out such names to unnamed sessions, so they are never stored or restored.
func IsNumericName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
