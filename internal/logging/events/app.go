package events

import "github.com/atomicstack/stmux/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Command(path string, args []string) {
	logging.Trace("app.command", map[string]interface{}{"command": path, "args": args})
}

func (AppTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("app.error", map[string]interface{}{"error": err.Error()})
}
