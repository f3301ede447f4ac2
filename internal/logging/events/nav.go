package events

import "github.com/atomicstack/fsel/internal/logging"

type NavTracer struct{}

var Nav = NavTracer{}

func (NavTracer) Key(key string, focus int) {
	logging.Trace("nav.key", map[string]interface{}{"key": key, "focus": focus})
}

func (NavTracer) Focus(from, to int) {
	logging.Trace("nav.focus", map[string]interface{}{"from": from, "to": to})
}

func (NavTracer) Outcome(signal string, focus int) {
	logging.Trace("nav.outcome", map[string]interface{}{"signal": signal, "focus": focus})
}
