package events

import "github.com/atomicstack/stmux/internal/logging"

type WindowTracer struct{}

var Window = WindowTracer{}

func (WindowTracer) Create(target, name string, first bool) {
	logging.Trace("window.create", map[string]interface{}{"target": target, "name": name, "session": first})
}

func (WindowTracer) Select(target string) {
	logging.Trace("window.select", map[string]interface{}{"target": target})
}

func (WindowTracer) Layout(target, layout string) {
	logging.Trace("window.layout", map[string]interface{}{"target": target, "layout": layout})
}

func (WindowTracer) LayoutWait(pending int, settled bool) {
	logging.Trace("window.layout.wait", map[string]interface{}{"pending": pending, "settled": settled})
}

func (WindowTracer) Rename(target, name string) {
	logging.Trace("window.rename", map[string]interface{}{"target": target, "name": name})
}
