package events

import "github.com/atomicstack/fsel/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Root(folder, root string) {
	logging.Trace("app.root", map[string]interface{}{"folder": folder, "root": root})
}

func (AppTracer) Output(code int, path string) {
	logging.Trace("app.output", map[string]interface{}{"code": code, "path": path})
}
