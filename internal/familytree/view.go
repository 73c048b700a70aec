package familytree

import (
	"fmt"
	"slices"

	"github.com/thenoetrevino/lineage/internal/models"
)

// Root returns the root member's name, or "" for an empty tree
func (s *Store) Root() string {
	return s.root
}

// Has reports whether a member with this name exists
func (s *Store) Has(name string) bool {
	_, ok := s.members[name]
	return ok
}

// Get returns a copy of the named member
func (s *Store) Get(name string) (*models.Member, error) {
	m, ok := s.members[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return m.toModel(), nil
}

// Members returns copies of all members in insertion order
func (s *Store) Members() []*models.Member {
	out := make([]*models.Member, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.members[name].toModel())
	}
	return out
}

// Names returns all member names in insertion order
func (s *Store) Names() []string {
	return slices.Clone(s.order)
}

// Children returns the names of a member's children in order
func (s *Store) Children(name string) ([]string, error) {
	m, ok := s.members[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return slices.Clone(m.children), nil
}

// Parent returns the name of a member's parent, "" for the root
func (s *Store) Parent(name string) (string, error) {
	m, ok := s.members[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return m.parent, nil
}

// Descendants counts the members below name
func (s *Store) Descendants(name string) (int, error) {
	if _, ok := s.members[name]; !ok {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return s.countBelow(name), nil
}

// Orphans lists members that cannot be reached from the root. Mutations never
// create them, but a restored snapshot may contain some.
func (s *Store) Orphans() []string {
	reachable := make(map[string]struct{}, len(s.members))
	if s.root != "" {
		s.walk(s.root, func(n string) { reachable[n] = struct{}{} })
	}

	var orphans []string
	for _, name := range s.order {
		if _, ok := reachable[name]; !ok {
			orphans = append(orphans, name)
		}
	}
	return orphans
}

// Hierarchy returns the nested view of the tree rooted at the root member,
// or nil for an empty tree. Collapsed members are rendered without children.
func (s *Store) Hierarchy() *models.MemberNode {
	root, ok := s.members[s.root]
	if !ok {
		return nil
	}
	return s.node(root, make(map[string]struct{}))
}

func (s *Store) node(m *member, seen map[string]struct{}) *models.MemberNode {
	seen[m.name] = struct{}{}
	n := &models.MemberNode{
		Name:         m.name,
		Relationship: m.relationship,
		BirthDate:    m.birthDate,
		Notes:        m.notes,
		Collapsed:    m.collapsed,
		Children:     []*models.MemberNode{},
	}
	if m.collapsed {
		n.Hidden = s.countBelow(m.name)
		return n
	}
	for _, c := range m.children {
		if _, dup := seen[c]; dup {
			continue
		}
		if child, ok := s.members[c]; ok {
			n.Children = append(n.Children, s.node(child, seen))
		}
	}
	return n
}

func (s *Store) countBelow(name string) int {
	count := 0
	s.walk(name, func(string) { count++ })
	return count - 1
}

func (m *member) toModel() *models.Member {
	children := slices.Clone(m.children)
	if children == nil {
		children = []string{}
	}
	return &models.Member{
		Name:         m.name,
		Parent:       m.parent,
		Relationship: m.relationship,
		BirthDate:    m.birthDate,
		Notes:        m.notes,
		Children:     children,
		Collapsed:    m.collapsed,
	}
}
