package topology

import "github.com/atomicstack/stmux/internal/logging/events"

// Merge returns stored plus every live session whose name stored lacks.
// Stored entries are kept whole; nothing is merged below the session level.
func Merge(stored, live Sessions) Sessions {
	merged := make(Sessions, len(stored)+len(live))
	for name, session := range stored {
		merged[name] = session
	}
	for name, session := range live {
		if _, ok := merged[name]; ok {
			continue
		}
		merged[name] = session
	}
	events.Topology.Merge(len(stored), len(live), len(merged))
	return merged
}
