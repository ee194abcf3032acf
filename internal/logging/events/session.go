package events

import "github.com/atomicstack/stmux/internal/logging"

type SessionTracer struct{}

type sessionReason string

const (
	SessionReasonNumeric    sessionReason = "numeric"
	SessionReasonNoWindows  sessionReason = "no-windows"
	SessionReasonLive       sessionReason = "live"
	SessionReasonNotFound   sessionReason = "not-found"
	SessionReasonBackground sessionReason = "background"
)

var Session = SessionTracer{}

func (SessionTracer) Switch(target string) {
	logging.Trace("session.switch", map[string]interface{}{"target": target})
}

func (SessionTracer) Select(name string, live bool) {
	logging.Trace("session.select", map[string]interface{}{"name": name, "live": live})
}

func (SessionTracer) Restore(name string, windows int) {
	logging.Trace("session.restore", map[string]interface{}{"name": name, "windows": windows})
}

func (SessionTracer) Skip(name string, reason sessionReason) {
	logging.Trace("session.skip", map[string]interface{}{"name": name, "reason": string(reason)})
}

func (SessionTracer) Capture(name string, windows int) {
	logging.Trace("session.capture", map[string]interface{}{"name": name, "windows": windows})
}

func (SessionTracer) Delete(name string, found bool) {
	logging.Trace("session.delete", map[string]interface{}{"name": name, "found": found})
}

func (SessionTracer) Update(name string, found bool) {
	logging.Trace("session.update", map[string]interface{}{"name": name, "found": found})
}
