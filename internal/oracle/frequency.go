package oracle

// Frequency recalls the child chosen most often under a path. Only persistent
// choices are counted so that browsing does not skew the statistics.
// Persistent choices also land in the last-choice history, which stays
// current for a later switch to the last strategy.
type Frequency struct {
	stats   *Stats
	history map[string]string
	session map[string]string
}

// NewFrequency wraps the persistent counter trie and history map. Nil
// arguments are replaced by empty ones.
func NewFrequency(stats *Stats, history map[string]string) *Frequency {
	if stats == nil {
		stats = NewStats()
	}
	if history == nil {
		history = make(map[string]string)
	}
	return &Frequency{stats: stats, history: history, session: make(map[string]string)}
}

// Memorize implements Oracle.
func (o *Frequency) Memorize(path []string, name string, persistent bool) {
	if !persistent {
		o.session[StringPath(path)] = name
		return
	}
	o.stats.Incr(withName(path, name))
	o.history[StringPath(path)] = name
}

// RecallChosenName implements Oracle.
func (o *Frequency) RecallChosenName(path []string) (string, bool) {
	return o.stats.Node(path).MostFrequent()
}

// Stats exposes the counter trie for saving.
func (o *Frequency) Stats() *Stats {
	return o.stats
}

// History exposes the last-choice map for saving.
func (o *Frequency) History() map[string]string {
	return o.history
}

// Session returns the ephemeral choices made during this run.
func (o *Frequency) Session() map[string]string {
	return o.session
}
