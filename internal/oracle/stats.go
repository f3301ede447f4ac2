package oracle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// CounterKey is the reserved JSON key holding a node's visit counter. Child
// names made only of dots are stored with one extra dot so they never read
// back as the counter.
const CounterKey = "."

// Stats is a trie of selection counters keyed by path segment. Children keep
// the order in which they were first recorded, which makes "most frequent"
// ties deterministic.
type Stats struct {
	Count    int
	names    []string
	children map[string]*Stats
}

// NewStats returns an empty trie.
func NewStats() *Stats {
	return &Stats{}
}

// Incr adds one to the counter at path, creating intermediate nodes.
func (s *Stats) Incr(path []string) {
	node := s
	for _, segment := range path {
		node = node.child(segment, true)
	}
	node.Count++
}

// Node returns the node at path, or nil when nothing was recorded there.
func (s *Stats) Node(path []string) *Stats {
	node := s
	for _, segment := range path {
		if node == nil {
			return nil
		}
		node = node.child(segment, false)
	}
	return node
}

// Children returns child names in first-seen order.
func (s *Stats) Children() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.names...)
}

// Child returns the named child node or nil.
func (s *Stats) Child(name string) *Stats {
	if s == nil {
		return nil
	}
	return s.child(name, false)
}

// MostFrequent returns the child with the highest counter. The first child
// reaching the maximum wins; children that were never chosen are ignored.
func (s *Stats) MostFrequent() (string, bool) {
	if s == nil {
		return "", false
	}
	top := 0
	result := ""
	for _, name := range s.names {
		if c := s.children[name].Count; c > top {
			top = c
			result = name
		}
	}
	return result, top > 0
}

// Empty reports whether the trie holds no counters.
func (s *Stats) Empty() bool {
	return s == nil || (s.Count == 0 && len(s.names) == 0)
}

func (s *Stats) child(name string, create bool) *Stats {
	if node, ok := s.children[name]; ok {
		return node
	}
	if !create {
		return nil
	}
	if s.children == nil {
		s.children = make(map[string]*Stats)
	}
	node := &Stats{}
	s.children[name] = node
	s.names = append(s.names, name)
	return node
}

// MarshalJSON encodes the trie as nested objects, children in first-seen order.
func (s *Stats) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Stats) encode(buf *bytes.Buffer) error {
	buf.WriteByte('{')
	first := true
	if s != nil && s.Count > 0 {
		fmt.Fprintf(buf, "%q:%d", CounterKey, s.Count)
		first = false
	}
	if s != nil {
		for _, name := range s.names {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			key, err := json.Marshal(escapeName(name))
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := s.children[name].encode(buf); err != nil {
				return err
			}
		}
	}
	buf.WriteByte('}')
	return nil
}

// UnmarshalJSON decodes nested objects, keeping the document's key order.
func (s *Stats) UnmarshalJSON(data []byte) error {
	*s = Stats{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return s.decode(dec)
}

func (s *Stats) decode(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("usage stats: expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("usage stats: expected key, got %v", tok)
		}
		if key == CounterKey {
			var n json.Number
			if err := dec.Decode(&n); err != nil {
				return fmt.Errorf("usage stats: counter: %w", err)
			}
			count, err := n.Int64()
			if err != nil {
				return fmt.Errorf("usage stats: counter %q: %w", n, err)
			}
			s.Count += int(count)
			continue
		}
		if err := s.child(unescapeName(key), true).decode(dec); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}

func escapeName(name string) string {
	if name != "" && strings.Trim(name, ".") == "" {
		return "." + name
	}
	return name
}

func unescapeName(key string) string {
	if len(key) > 1 && strings.Trim(key, ".") == "" {
		return key[1:]
	}
	return key
}
