package lister

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/atomicstack/fsel/internal/entry"
)

// node is one decoded JSON value. Objects keep their keys in document order.
type node struct {
	keys     []string
	children map[string]*node
	scalar   string
}

func (n *node) branch() bool {
	return n.children != nil
}

// JSON browses a JSON document: objects and arrays are branches, scalars are
// leaves described by their value.
type JSON struct {
	root *node
}

// LoadJSON reads and decodes the document at path.
func LoadJSON(path string) (*JSON, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open json document: %w", err)
	}
	defer f.Close()
	return ParseJSON(f)
}

// ParseJSON decodes a document from r.
func ParseJSON(r io.Reader) (*JSON, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	root, err := decodeNode(dec)
	if err != nil {
		return nil, fmt.Errorf("decode json document: %w", err)
	}
	if tok, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = fmt.Errorf("unexpected %v after the document", tok)
		}
		return nil, fmt.Errorf("decode json document: %w", err)
	}
	return &JSON{root: root}, nil
}

// List implements entry.Lister. Paths that do not resolve list as empty.
func (j *JSON) List(path []string) []entry.Entry {
	n := j.root
	for _, seg := range path {
		if n == nil || !n.branch() {
			return nil
		}
		n = n.children[seg]
	}
	if n == nil || !n.branch() {
		return nil
	}
	out := make([]entry.Entry, 0, len(n.keys))
	for _, k := range n.keys {
		child := n.children[k]
		e := entry.Entry{Name: k}
		if child.branch() {
			e.Attrs = entry.Directory
		} else {
			e.Description = child.scalar
		}
		out = append(out, e)
	}
	return out
}

func decodeNode(dec *json.Decoder) (*node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", v)
	case string:
		return &node{scalar: strconv.Quote(v)}, nil
	case json.Number:
		return &node{scalar: v.String()}, nil
	case bool:
		return &node{scalar: strconv.FormatBool(v)}, nil
	case nil:
		return &node{scalar: "null"}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func decodeObject(dec *json.Decoder) (*node, error) {
	n := &node{children: make(map[string]*node)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		child, err := decodeNode(dec)
		if err != nil {
			return nil, err
		}
		if _, dup := n.children[key]; !dup {
			n.keys = append(n.keys, key)
		}
		n.children[key] = child
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return n, nil
}

func decodeArray(dec *json.Decoder) (*node, error) {
	n := &node{children: make(map[string]*node)}
	for i := 0; dec.More(); i++ {
		child, err := decodeNode(dec)
		if err != nil {
			return nil, err
		}
		key := strconv.Itoa(i)
		n.keys = append(n.keys, key)
		n.children[key] = child
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return n, nil
}
