package mux

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// WindowTarget formats a positional window target.
func WindowTarget(session string, window int) string {
	return fmt.Sprintf("%s:%d", session, window)
}

// PaneTarget formats a positional pane target.
func PaneTarget(session string, window, pane int) string {
	return fmt.Sprintf("%s:%d.%d", session, window, pane)
}

// NamedWindowTarget addresses a window by name within a session.
func NamedWindowTarget(session, window string) string {
	return session + ":" + window
}

// Target is a parsed "session:window.pane" reference. Window holds either an
// index or a name; Pane is zero when absent.
type Target struct {
	Session string
	Window  string
	Pane    int
}

// ParseTarget splits a target into its parts. An exact-match "=" prefix on
// the session is dropped.
func ParseTarget(raw string) Target {
	var t Target
	rest := strings.TrimSpace(raw)
	session, window, found := strings.Cut(rest, ":")
	t.Session = strings.TrimPrefix(session, "=")
	if !found {
		return t
	}
	if idx := strings.LastIndex(window, "."); idx >= 0 {
		if pane, err := strconv.Atoi(window[idx+1:]); err == nil {
			t.Pane = pane
			window = window[:idx]
		}
	}
	t.Window = window
	return t
}

// WindowIndex returns the numeric window part, if any.
func (t Target) WindowIndex() (int, bool) {
	if t.Window == "" {
		return 0, false
	}
	idx, err := strconv.Atoi(t.Window)
	if err != nil {
		return 0, false
	}
	return idx, true
}

// EnvArgs renders an environment map as repeated -e flags in key order.
func EnvArgs(env map[string]string) []string {
	if len(env) == 0 {
		return nil
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		args = append(args, "-e", k+"="+env[k])
	}
	return args
}
