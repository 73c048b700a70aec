package familytree

import (
	"encoding/json"
	"fmt"
	"time"
)

// Snapshot is the flat, persisted form of a Store: ordered (name, record)
// pairs plus the root's name.
//
// Encoded as
//
//	{"members":[["A",{"name":"A","parent":null,...,"children":["B"]}]],"rootName":"A","lastUpdated":"..."}
type Snapshot struct {
	Members     []Entry   `json:"members"`
	RootName    *string   `json:"rootName"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Entry is one (name, record) pair, encoded as a two element JSON array
type Entry struct {
	Name   string
	Record Record
}

// Record is the persisted state of one member. Children is written for
// readers of the raw data but is never trusted on restore.
type Record struct {
	Name         string          `json:"name"`
	Parent       *string         `json:"parent"`
	Relationship string          `json:"relationship"`
	BirthDate    string          `json:"birthDate"`
	Notes        string          `json:"notes"`
	Children     json.RawMessage `json:"children,omitempty"`
	Collapsed    bool            `json:"collapsed"`
}

func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.Name, e.Record})
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("member entry has %d elements, want 2", len(pair))
	}
	if err := json.Unmarshal(pair[0], &e.Name); err != nil {
		return fmt.Errorf("member key: %w", err)
	}
	if err := json.Unmarshal(pair[1], &e.Record); err != nil {
		return fmt.Errorf("member %q: %w", e.Name, err)
	}
	return nil
}

// Snapshot captures every member in insertion order
func (s *Store) Snapshot() *Snapshot {
	snap := &Snapshot{Members: make([]Entry, 0, len(s.order))}
	for _, name := range s.order {
		m := s.members[name]

		children := m.children
		if children == nil {
			children = []string{}
		}
		raw, _ := json.Marshal(children)

		rec := Record{
			Name:         m.name,
			Relationship: m.relationship,
			BirthDate:    m.birthDate,
			Notes:        m.notes,
			Children:     raw,
			Collapsed:    m.collapsed,
		}
		if m.parent != "" {
			parent := m.parent
			rec.Parent = &parent
		}
		snap.Members = append(snap.Members, Entry{Name: name, Record: rec})
	}
	if s.root != "" {
		root := s.root
		snap.RootName = &root
	}
	return snap
}

// Encode serializes the snapshot to JSON
func (snap *Snapshot) Encode() ([]byte, error) {
	return json.Marshal(snap)
}

// Decode parses a persisted snapshot. Malformed data, including a document
// without a members list, yields ErrCorrupt.
func Decode(data []byte) (*Snapshot, error) {
	var shape struct {
		Members json.RawMessage `json:"members"`
	}
	if err := json.Unmarshal(data, &shape); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if len(shape.Members) == 0 || string(shape.Members) == "null" {
		return nil, fmt.Errorf("%w: no members list", ErrCorrupt)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &snap, nil
}

// Restore rebuilds a Store from a snapshot. Persisted child lists are
// discarded and re-derived from parent links, so stale children can never
// disagree with the parents. Entry keys are authoritative over record names.
func Restore(snap *Snapshot) (*Store, error) {
	s := New()
	for i, e := range snap.Members {
		if e.Name == "" {
			return nil, fmt.Errorf("%w: entry %d has an empty name", ErrCorrupt, i)
		}
		if _, dup := s.members[e.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate member %q", ErrCorrupt, e.Name)
		}
		m := &member{
			name:         e.Name,
			relationship: e.Record.Relationship,
			birthDate:    e.Record.BirthDate,
			notes:        e.Record.Notes,
			collapsed:    e.Record.Collapsed,
		}
		if e.Record.Parent != nil {
			m.parent = *e.Record.Parent
		}
		s.members[e.Name] = m
		s.order = append(s.order, e.Name)
	}

	if snap.RootName != nil {
		if root, ok := s.members[*snap.RootName]; ok {
			root.parent = ""
			s.root = root.name
		}
	}

	for _, name := range s.order {
		m := s.members[name]
		if m.parent == "" || m.parent == name {
			continue
		}
		if p, ok := s.members[m.parent]; ok {
			p.children = append(p.children, name)
		}
	}

	return s, nil
}

// Load decodes and restores a persisted snapshot in one step
func Load(data []byte) (*Store, *Snapshot, error) {
	snap, err := Decode(data)
	if err != nil {
		return nil, nil, err
	}
	s, err := Restore(snap)
	if err != nil {
		return nil, nil, err
	}
	return s, snap, nil
}
