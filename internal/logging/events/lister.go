package events

import "github.com/atomicstack/fsel/internal/logging"

type ListerTracer struct{}

var Lister = ListerTracer{}

func (ListerTracer) ReadFailed(dir string, err error) {
	logging.Trace("lister.read.failed", map[string]interface{}{"dir": dir, "error": err.Error()})
}
