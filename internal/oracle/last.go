package oracle

// LastChoice remembers the single most recent pick under each path. Choices
// made during the session take precedence over persisted ones.
type LastChoice struct {
	history map[string]string
	visit   map[string]string
}

// NewLastChoice wraps the persistent history map. A nil map is replaced by an
// empty one that the caller can retrieve through History.
func NewLastChoice(history map[string]string) *LastChoice {
	if history == nil {
		history = make(map[string]string)
	}
	return &LastChoice{history: history, visit: make(map[string]string)}
}

// Memorize implements Oracle.
func (o *LastChoice) Memorize(path []string, name string, persistent bool) {
	key := StringPath(path)
	if persistent {
		o.history[key] = name
		return
	}
	o.visit[key] = name
}

// RecallChosenName implements Oracle.
func (o *LastChoice) RecallChosenName(path []string) (string, bool) {
	key := StringPath(path)
	if name, ok := o.visit[key]; ok && name != "" {
		return name, true
	}
	if name, ok := o.history[key]; ok && name != "" {
		return name, true
	}
	return "", false
}

// History exposes the persistent map for saving.
func (o *LastChoice) History() map[string]string {
	return o.history
}
