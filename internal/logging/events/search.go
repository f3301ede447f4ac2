package events

import "github.com/atomicstack/fsel/internal/logging"

type SearchTracer struct{}

var Search = SearchTracer{}

func (SearchTracer) Query(query string, committed bool, matches int) {
	logging.Trace("search.query", map[string]interface{}{"query": query, "committed": committed, "matches": matches})
}

func (SearchTracer) Clear() {
	logging.Trace("search.clear", nil)
}

func (SearchTracer) Jump(pane, index int) {
	logging.Trace("search.jump", map[string]interface{}{"pane": pane, "index": index})
}
