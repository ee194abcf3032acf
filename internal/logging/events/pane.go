package events

import "github.com/atomicstack/stmux/internal/logging"

type PaneTracer struct{}

var Pane = PaneTracer{}

func (PaneTracer) Split(target, path string, startup bool) {
	logging.Trace("pane.split", map[string]interface{}{"target": target, "path": path, "startup": startup})
}

func (PaneTracer) SendKeys(target, keys string) {
	logging.Trace("pane.send-keys", map[string]interface{}{"target": target, "keys": keys})
}

func (PaneTracer) Join(source, target string) {
	logging.Trace("pane.join", map[string]interface{}{"source": source, "target": target})
}

func (PaneTracer) Swap(first, second string) {
	logging.Trace("pane.swap", map[string]interface{}{"first": first, "second": second})
}

func (PaneTracer) Tag(target, name string) {
	logging.Trace("pane.tag", map[string]interface{}{"target": target, "name": name})
}
