package events

import "github.com/atomicstack/fsel/internal/logging"

type StackTracer struct{}

var Stack = StackTracer{}

func (StackTracer) Open(path []string, panes int) {
	logging.Trace("stack.open", map[string]interface{}{"path": path, "panes": panes})
}

func (StackTracer) Expand(path []string, recalled string, ok bool) {
	logging.Trace("stack.expand", map[string]interface{}{"path": path, "recalled": recalled, "ok": ok})
}

func (StackTracer) Activate(index, panes int) {
	logging.Trace("stack.activate", map[string]interface{}{"index": index, "panes": panes})
}

func (StackTracer) Enter(path []string, ok bool) {
	logging.Trace("stack.enter", map[string]interface{}{"path": path, "ok": ok})
}

func (StackTracer) Memorize(path []string, name string, persistent bool) {
	logging.Trace("stack.memorize", map[string]interface{}{"path": path, "name": name, "persistent": persistent})
}
