// Package status renders the tmux status-left segment listing bookmarks and
// the windows of the current session.
package status

import (
	"fmt"
	"slices"
	"strings"

	"github.com/atomicstack/stmux/internal/mux"
	"github.com/atomicstack/stmux/internal/namelist"
)

const (
	colorSession  = "#[fg=#8a60ab]"
	colorIndex    = "#[fg=#8a60ba]"
	colorColon    = "#[fg=#af9fbf]"
	colorCurrent  = "#[fg=#e0e0e0]"
	colorInactive = "#[fg=#75707a]"
	colorFrame    = "#[fg=#9797aa]"
	colorTag      = "#[fg=#d0d0d0]"
)

// Window is what the status line shows for one window.
type Window struct {
	Name   string
	Active bool
	// Tag is the smart-split tag of the window's active pane.
	Tag string
}

// Format builds the status-left string. The current session is shown with
// its windows, either in place of its bookmark or ahead of the bookmarks.
func Format(session string, windows []Window, bookmarks []string) string {
	var b strings.Builder
	if !slices.Contains(bookmarks, session) {
		b.WriteString(current(session, windows))
		b.WriteString("  ")
	}
	parts := make([]string, len(bookmarks))
	for i, name := range bookmarks {
		if name == session {
			index := fmt.Sprint(i + 1)
			if i > 0 {
				index = " " + index
			}
			parts[i] = fmt.Sprintf("%s%s%s:%s%s ", colorIndex, index, colorColon, colorCurrent, current(name, windows))
			continue
		}
		parts[i] = fmt.Sprintf("%s%d%s:%s%s", colorIndex, i+1, colorColon, colorInactive, name)
	}
	b.WriteString(strings.Join(parts, " "))
	return b.String()
}

func current(session string, windows []Window) string {
	names := make([]string, len(windows))
	for i, w := range windows {
		switch {
		case w.Active && w.Tag != "":
			names[i] = fmt.Sprintf("%s[%s%s%s|%s%s%s]", colorFrame, colorCurrent, w.Name, colorFrame, colorTag, w.Tag, colorFrame)
		case w.Active:
			names[i] = fmt.Sprintf("%s[%s%s%s]", colorFrame, colorCurrent, w.Name, colorFrame)
		default:
			names[i] = colorFrame + w.Name
		}
	}
	return fmt.Sprintf("%s%s %s", colorSession, session, strings.Join(names, " "))
}

// Build gathers the current session, its windows and the bookmarks and
// formats them.
func Build(m mux.Multiplexer, bookmarks namelist.Store) (string, error) {
	loc, err := m.Current()
	if err != nil {
		return "", err
	}
	infos, err := m.ListWindows(loc.Session)
	if err != nil {
		return "", err
	}
	windows := make([]Window, len(infos))
	for i, info := range infos {
		windows[i] = Window{Name: info.Name, Active: info.Active}
		if !info.Active {
			continue
		}
		panes, err := m.ListPanes(mux.WindowTarget(loc.Session, info.Index))
		if err != nil {
			return "", err
		}
		for _, p := range panes {
			if p.Active {
				windows[i].Tag = p.Tag
			}
		}
	}
	names, err := bookmarks.Read()
	if err != nil {
		return "", err
	}
	return Format(loc.Session, windows, names), nil
}

// Apply sets the global status-left option.
func Apply(m mux.Multiplexer, bookmarks namelist.Store) error {
	line, err := Build(m, bookmarks)
	if err != nil {
		return err
	}
	return m.SetGlobalOption("status-left", line)
}
