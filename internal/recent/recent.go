// Package recent keeps the most-recently-used session list and walks it
// relative to the current session.
package recent

import (
	"github.com/atomicstack/stmux/internal/logging/events"
	"github.com/atomicstack/stmux/internal/mux"
	"github.com/atomicstack/stmux/internal/namelist"
	"github.com/atomicstack/stmux/internal/topology"
)

type Rotation struct {
	mux  mux.Multiplexer
	list namelist.Store
}

func New(m mux.Multiplexer, list namelist.Store) *Rotation {
	return &Rotation{mux: m, list: list}
}

// List returns the stored order, most recent first.
func (r *Rotation) List() ([]string, error) {
	return r.list.Read()
}

// Next returns the live session recorded after current. It reports false
// when current is the last live entry or is not in the list.
func (r *Rotation) Next(current string) (string, bool, error) {
	live, err := r.liveOrder()
	if err != nil {
		return "", false, err
	}
	name, ok := Next(live, current)
	events.Recent.Rotate("next", current, name)
	return name, ok, nil
}

// Previous returns the live session recorded before current. It reports
// false when current is the first live entry or is not in the list.
func (r *Rotation) Previous(current string) (string, bool, error) {
	live, err := r.liveOrder()
	if err != nil {
		return "", false, err
	}
	name, ok := Previous(live, current)
	events.Recent.Rotate("previous", current, name)
	return name, ok, nil
}

// Add moves name to the front of the list. Numeric names and sessions
// stored with no_recent_tracking are ignored; session may be nil.
func (r *Rotation) Add(session *topology.Session, name string) (bool, error) {
	if topology.IsNumericName(name) || (session != nil && session.NoRecentTracking) {
		events.Recent.Add(name, true)
		return false, nil
	}
	err := r.list.Update(func(names []string) ([]string, bool) {
		return MoveToFront(names, name), true
	})
	if err != nil {
		return false, err
	}
	events.Recent.Add(name, false)
	return true, nil
}

// liveOrder reads the list and the running sessions fresh on every call.
func (r *Rotation) liveOrder() ([]string, error) {
	names, err := r.list.Read()
	if err != nil {
		return nil, err
	}
	sessions, err := r.mux.ListSessions()
	if err != nil {
		return nil, err
	}
	return FilterLive(names, sessions), nil
}

// FilterLive keeps the entries of names that appear in live, in list order.
func FilterLive(names, live []string) []string {
	running := make(map[string]struct{}, len(live))
	for _, name := range live {
		running[name] = struct{}{}
	}
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := running[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

func Next(order []string, current string) (string, bool) {
	for i, name := range order {
		if name != current {
			continue
		}
		if i+1 < len(order) {
			return order[i+1], true
		}
		return "", false
	}
	return "", false
}

func Previous(order []string, current string) (string, bool) {
	for i, name := range order {
		if name != current {
			continue
		}
		if i > 0 {
			return order[i-1], true
		}
		return "", false
	}
	return "", false
}

// MoveToFront returns names with name first and every other occurrence of
// it removed.
func MoveToFront(names []string, name string) []string {
	out := make([]string, 0, len(names)+1)
	out = append(out, name)
	for _, n := range names {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}
