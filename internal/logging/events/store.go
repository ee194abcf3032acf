package events

import "github.com/atomicstack/stmux/internal/logging"

type TopologyTracer struct{}

type RecentTracer struct{}

type SplitTracer struct{}

type PickerTracer struct{}

var (
	Topology = TopologyTracer{}
	Recent   = RecentTracer{}
	Split    = SplitTracer{}
	Picker   = PickerTracer{}
)

func (TopologyTracer) Load(path string, sessions int) {
	logging.Trace("topology.load", map[string]interface{}{"path": path, "sessions": sessions})
}

func (TopologyTracer) Save(path string, sessions int) {
	logging.Trace("topology.save", map[string]interface{}{"path": path, "sessions": sessions})
}

func (TopologyTracer) Merge(stored, live, merged int) {
	logging.Trace("topology.merge", map[string]interface{}{"stored": stored, "live": live, "merged": merged})
}

func (TopologyTracer) Convert(source, destination string, sessions int) {
	logging.Trace("topology.convert", map[string]interface{}{"source": source, "destination": destination, "sessions": sessions})
}

func (RecentTracer) Rotate(direction, current, result string) {
	logging.Trace("recent.rotate", map[string]interface{}{"direction": direction, "current": current, "result": result})
}

func (RecentTracer) Add(name string, skipped bool) {
	logging.Trace("recent.add", map[string]interface{}{"name": name, "skipped": skipped})
}

func (SplitTracer) Decide(target, transition string, panes int) {
	logging.Trace("split.decide", map[string]interface{}{"target": target, "transition": transition, "panes": panes})
}

func (PickerTracer) Open(title string, candidates int) {
	logging.Trace("picker.open", map[string]interface{}{"title": title, "candidates": candidates})
}

func (PickerTracer) Choose(choice string) {
	logging.Trace("picker.choose", map[string]interface{}{"choice": choice})
}
