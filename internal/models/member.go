package models

import "time"

// Member is a read-only copy of one person in the family tree.
// Children holds the names of the members whose Parent is this member.
type Member struct {
	Name         string   `json:"name"`
	Parent       string   `json:"parent"` // empty for the root
	Relationship string   `json:"relationship"`
	BirthDate    string   `json:"birthDate"`
	Notes        string   `json:"notes"`
	Children     []string `json:"children"`
	Collapsed    bool     `json:"collapsed"`
}

// IsRoot reports whether the member has no parent
func (m *Member) IsRoot() bool {
	return m.Parent == ""
}

// GetName returns the member's name
func (m *Member) GetName() string {
	return m.Name
}

// MemberNode is the nested view consumed by renderers (CLI tree, HTTP API)
type MemberNode struct {
	Name         string        `json:"name"`
	Relationship string        `json:"relationship"`
	BirthDate    string        `json:"birthDate"`
	Notes        string        `json:"notes"`
	Collapsed    bool          `json:"collapsed,omitempty"`
	Hidden       int           `json:"hidden,omitempty"` // descendants folded away by Collapsed
	Children     []*MemberNode `json:"children"`
}

// TreeStats summarizes a family tree
type TreeStats struct {
	TotalMembers int       `json:"totalMembers"`
	Generations  int       `json:"generations"`
	LastUpdated  time.Time `json:"lastUpdated"`
}
