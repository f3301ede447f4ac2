package events

import "github.com/atomicstack/fsel/internal/logging"

type SessionTracer struct{}

var Session = SessionTracer{}

func (SessionTracer) Acquire(width, height int) {
	logging.Trace("session.acquire", map[string]interface{}{"width": width, "height": height})
}

func (SessionTracer) Release(err error) {
	payload := map[string]interface{}{}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("session.release", payload)
}

func (SessionTracer) Resize(width, height int) {
	logging.Trace("session.resize", map[string]interface{}{"width": width, "height": height})
}

func (SessionTracer) Finish(signal string, path []string) {
	logging.Trace("session.finish", map[string]interface{}{"signal": signal, "path": path})
}
