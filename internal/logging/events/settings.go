package events

import "github.com/atomicstack/fsel/internal/logging"

type SettingsTracer struct{}

var Settings = SettingsTracer{}

func (SettingsTracer) Load(root string, known bool) {
	logging.Trace("settings.load", map[string]interface{}{"root": root, "known": known})
}

func (SettingsTracer) Save(root, field string, recents int) {
	logging.Trace("settings.save", map[string]interface{}{"root": root, "field": field, "recents": recents})
}
