// Package familytree holds the in-memory family tree: a rooted tree of
// uniquely named members with parent links and derived child lists.
//
// A Store is not safe for concurrent use. Callers serialize access (see
// services/tree).
package familytree

import (
	"fmt"
	"slices"

	"github.com/thenoetrevino/lineage/internal/models"
)

type member struct {
	name         string
	parent       string
	relationship string
	birthDate    string
	notes        string
	children     []string
	collapsed    bool
}

// Store is an arena of members keyed by name.
//
// Invariants kept by every mutation:
//   - names are unique
//   - the root is the only member without a parent
//   - children[p] lists exactly the members whose parent is p
//   - no member is its own ancestor
type Store struct {
	members map[string]*member
	order   []string // insertion order, used for snapshots
	root    string
}

// New returns an empty store
func New() *Store {
	return &Store{members: make(map[string]*member)}
}

// Len returns the number of members
func (s *Store) Len() int {
	return len(s.members)
}

// Insert adds a member. A member inserted without a parent, or into an empty
// store, becomes the root; any previous root is re-parented beneath it.
func (s *Store) Insert(name, parent, relationship, birthDate, notes string) error {
	if _, ok := s.members[name]; ok {
		return fmt.Errorf("%w: %q", ErrAlreadyExists, name)
	}

	becomesRoot := parent == "" || len(s.members) == 0
	var p *member
	if !becomesRoot {
		var ok bool
		if p, ok = s.members[parent]; !ok {
			return fmt.Errorf("parent %w: %q", ErrNotFound, parent)
		}
		if relationship == models.RelationshipRoot {
			return fmt.Errorf("%w: %q", ErrRootRelationship, name)
		}
	}

	m := &member{
		name:         name,
		relationship: relationship,
		birthDate:    birthDate,
		notes:        notes,
	}
	s.members[name] = m
	s.order = append(s.order, name)

	if becomesRoot {
		s.promote(m)
		return nil
	}

	m.parent = parent
	p.children = append(p.children, name)
	return nil
}

// Rename moves a member to a new key and repoints every reference to it
func (s *Store) Rename(oldName, newName string) error {
	m, ok := s.members[oldName]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, oldName)
	}
	if oldName == newName {
		return nil
	}
	if _, ok := s.members[newName]; ok {
		return fmt.Errorf("%w: %q", ErrAlreadyExists, newName)
	}

	s.rename(m, newName)
	return nil
}

// Change describes the new state of an edited member. An empty Name keeps
// the current name; an empty Parent makes the member the root.
type Change struct {
	Name         string
	Parent       string
	Relationship string
	BirthDate    string
	Notes        string
}

// Edit renames, re-parents and updates a member. Every check runs before the
// first mutation, so a failed edit leaves the store untouched.
func (s *Store) Edit(name string, c Change) error {
	m, ok := s.members[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	newName := c.Name
	if newName == "" {
		newName = name
	}
	if newName != name {
		if _, ok := s.members[newName]; ok {
			return fmt.Errorf("%w: %q", ErrAlreadyExists, newName)
		}
	}

	parentChanged := c.Parent != m.parent
	if parentChanged && c.Parent != "" {
		if c.Parent == name || c.Parent == newName {
			return fmt.Errorf("%w: %q", ErrCycleDetected, name)
		}
		if _, ok := s.members[c.Parent]; !ok {
			return fmt.Errorf("parent %w: %q", ErrNotFound, c.Parent)
		}
		// every member descends from the root
		if s.root == name || s.isAncestor(name, c.Parent) {
			return fmt.Errorf("%w: %q under %q", ErrCycleDetected, name, c.Parent)
		}
	}
	if c.Parent != "" && c.Relationship == models.RelationshipRoot {
		return fmt.Errorf("%w: %q", ErrRootRelationship, name)
	}

	if newName != name {
		s.rename(m, newName)
	}

	m.relationship = c.Relationship
	m.birthDate = c.BirthDate
	m.notes = c.Notes

	if parentChanged {
		s.detach(m)
		if c.Parent == "" {
			s.promote(m)
		} else {
			m.parent = c.Parent
			p := s.members[c.Parent]
			p.children = append(p.children, m.name)
		}
	}

	if s.root == m.name {
		m.relationship = models.RelationshipRoot
	}
	return nil
}

// Delete removes a member and all of its descendants and reports how many
// members were removed. Deleting the root clears the store.
func (s *Store) Delete(name string) (int, error) {
	m, ok := s.members[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	s.detach(m)

	if s.root == name {
		removed := len(s.members)
		s.Clear()
		return removed, nil
	}

	doomed := make(map[string]struct{})
	s.walk(name, func(n string) { doomed[n] = struct{}{} })
	for n := range doomed {
		delete(s.members, n)
	}
	s.order = slices.DeleteFunc(s.order, func(n string) bool {
		_, gone := doomed[n]
		return gone
	})

	return len(doomed), nil
}

// Clear removes every member
func (s *Store) Clear() {
	s.members = make(map[string]*member)
	s.order = nil
	s.root = ""
}

// Depth returns the number of generations: the length of the longest
// root-to-leaf path counting the root as 1, or 0 for an empty tree.
func (s *Store) Depth() int {
	root, ok := s.members[s.root]
	if !ok {
		return 0
	}
	return s.depth(root, make(map[string]struct{}))
}

func (s *Store) depth(m *member, seen map[string]struct{}) int {
	seen[m.name] = struct{}{}
	deepest := 0
	for _, c := range m.children {
		if _, dup := seen[c]; dup {
			continue
		}
		if child, ok := s.members[c]; ok {
			deepest = max(deepest, s.depth(child, seen))
		}
	}
	return deepest + 1
}

// SetCollapsed marks a member's subtree as folded in renderings
func (s *Store) SetCollapsed(name string, collapsed bool) error {
	m, ok := s.members[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	m.collapsed = collapsed
	return nil
}

// ExpandAll unfolds every member
func (s *Store) ExpandAll() {
	for _, m := range s.members {
		m.collapsed = false
	}
}

// CollapseAll folds every member except the root
func (s *Store) CollapseAll() {
	for name, m := range s.members {
		m.collapsed = name != s.root
	}
}

// promote makes m the root. The previous root, if any, becomes its child.
func (s *Store) promote(m *member) {
	m.parent = ""
	m.relationship = models.RelationshipRoot

	if old, ok := s.members[s.root]; ok && old != m {
		old.parent = m.name
		old.relationship = models.RelationshipChild
		m.children = append(m.children, old.name)
	}
	s.root = m.name
}

// detach removes m from its parent's child list
func (s *Store) detach(m *member) {
	if m.parent == "" {
		return
	}
	if p, ok := s.members[m.parent]; ok {
		p.children = slices.DeleteFunc(p.children, func(c string) bool { return c == m.name })
	}
}

func (s *Store) rename(m *member, newName string) {
	oldName := m.name

	delete(s.members, oldName)
	m.name = newName
	s.members[newName] = m

	if i := slices.Index(s.order, oldName); i >= 0 {
		s.order[i] = newName
	}

	for _, other := range s.members {
		if other.parent == oldName {
			other.parent = newName
		}
	}
	if p, ok := s.members[m.parent]; ok {
		if i := slices.Index(p.children, oldName); i >= 0 {
			p.children[i] = newName
		}
	}
	if s.root == oldName {
		s.root = newName
	}
}

// isAncestor reports whether ancestor appears on the parent chain of name
func (s *Store) isAncestor(ancestor, name string) bool {
	seen := make(map[string]struct{})
	for cur := name; cur != ""; {
		if cur == ancestor {
			return true
		}
		if _, loop := seen[cur]; loop {
			return false
		}
		seen[cur] = struct{}{}
		m, ok := s.members[cur]
		if !ok {
			return false
		}
		cur = m.parent
	}
	return false
}

// walk visits name and its descendants depth-first, each at most once
func (s *Store) walk(name string, visit func(string)) {
	seen := make(map[string]struct{})
	var rec func(string)
	rec = func(n string) {
		if _, dup := seen[n]; dup {
			return
		}
		m, ok := s.members[n]
		if !ok {
			return
		}
		seen[n] = struct{}{}
		for _, c := range m.children {
			rec(c)
		}
		visit(n)
	}
	rec(name)
}
