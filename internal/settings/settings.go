package settings

import (
	"encoding/json"
	"fmt"

	"github.com/atomicstack/fsel/internal/oracle"
)

const (
	FieldRecentFolders     = "recent-folders"
	FieldRecentFiles       = "recent-files"
	FieldRecentExecutables = "recent-executables"
	FieldHistory           = "history"
	FieldUsageStats        = "usage_stats"

	// RecentCount caps the length of every recents list.
	RecentCount = 10
)

// Settings is the per-root document persisted by a Store. Fields this
// program does not know about are carried through unchanged.
type Settings struct {
	RecentFolders     []string
	RecentFiles       []string
	RecentExecutables []string
	History           map[string]string
	UsageStats        *oracle.Stats

	extra map[string]json.RawMessage
}

// New returns empty settings with initialised maps.
func New() *Settings {
	return &Settings{
		History:    make(map[string]string),
		UsageStats: oracle.NewStats(),
	}
}

// RecentField selects the recents list matching the kind of target picked.
func RecentField(selectFiles, executables bool) string {
	if !selectFiles {
		return FieldRecentFolders
	}
	if executables {
		return FieldRecentExecutables
	}
	return FieldRecentFiles
}

// Recent returns the recents list stored under field.
func (s *Settings) Recent(field string) []string {
	switch field {
	case FieldRecentFiles:
		return s.RecentFiles
	case FieldRecentExecutables:
		return s.RecentExecutables
	default:
		return s.RecentFolders
	}
}

// SetRecent replaces the recents list stored under field.
func (s *Settings) SetRecent(field string, list []string) {
	switch field {
	case FieldRecentFiles:
		s.RecentFiles = list
	case FieldRecentExecutables:
		s.RecentExecutables = list
	default:
		s.RecentFolders = list
	}
}

// UpdateRecents moves rel to the front of list, dropping any earlier copy and
// trimming the list to RecentCount entries. The root itself (".") is never
// recorded.
func UpdateRecents(list []string, rel string) []string {
	if rel == "" || rel == "." {
		return list
	}
	updated := make([]string, 0, len(list)+1)
	updated = append(updated, rel)
	for _, item := range list {
		if item != rel {
			updated = append(updated, item)
		}
	}
	if len(updated) > RecentCount {
		updated = updated[:RecentCount]
	}
	return updated
}

// MarshalJSON writes known fields alongside any preserved unknown ones. Keys
// come out sorted.
func (s *Settings) MarshalJSON() ([]byte, error) {
	doc := make(map[string]json.RawMessage, len(s.extra)+5)
	for k, v := range s.extra {
		doc[k] = v
	}
	put := func(key string, value any) error {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		doc[key] = raw
		return nil
	}
	lists := []struct {
		key  string
		list []string
	}{
		{FieldRecentFolders, s.RecentFolders},
		{FieldRecentFiles, s.RecentFiles},
		{FieldRecentExecutables, s.RecentExecutables},
	}
	for _, l := range lists {
		if l.list == nil {
			continue
		}
		if err := put(l.key, l.list); err != nil {
			return nil, err
		}
	}
	if len(s.History) > 0 {
		if err := put(FieldHistory, s.History); err != nil {
			return nil, err
		}
	}
	if !s.UsageStats.Empty() {
		if err := put(FieldUsageStats, s.UsageStats); err != nil {
			return nil, err
		}
	}
	return json.Marshal(doc)
}

// UnmarshalJSON reads known fields and keeps the rest for the next save.
func (s *Settings) UnmarshalJSON(data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*s = *New()
	for key, raw := range doc {
		var err error
		switch key {
		case FieldRecentFolders:
			err = json.Unmarshal(raw, &s.RecentFolders)
		case FieldRecentFiles:
			err = json.Unmarshal(raw, &s.RecentFiles)
		case FieldRecentExecutables:
			err = json.Unmarshal(raw, &s.RecentExecutables)
		case FieldHistory:
			err = json.Unmarshal(raw, &s.History)
		case FieldUsageStats:
			err = json.Unmarshal(raw, s.UsageStats)
		default:
			if s.extra == nil {
				s.extra = make(map[string]json.RawMessage)
			}
			s.extra[key] = raw
		}
		if err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
	}
	if s.History == nil {
		s.History = make(map[string]string)
	}
	return nil
}
