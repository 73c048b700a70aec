// Package tree runs one user's family tree session: it loads the persisted
// snapshot, applies validated mutations, and writes the snapshot back after
// every change.
package tree

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/thenoetrevino/lineage/internal/events"
	"github.com/thenoetrevino/lineage/internal/familytree"
	"github.com/thenoetrevino/lineage/internal/models"
	"github.com/thenoetrevino/lineage/internal/validation"
)

// Service defines all family tree operations of one user session
type Service interface {
	UID() string

	// Read operations
	Member(ctx context.Context, name string) (*models.Member, error)
	Members(ctx context.Context) []*models.Member
	Hierarchy(ctx context.Context) *models.MemberNode
	Stats(ctx context.Context) models.TreeStats
	Orphans(ctx context.Context) []string
	Snapshot(ctx context.Context) *familytree.Snapshot

	// Write operations
	AddMember(ctx context.Context, req AddMemberRequest) (*models.Member, error)
	EditMember(ctx context.Context, req EditMemberRequest) (*models.Member, error)
	RenameMember(ctx context.Context, oldName, newName string) error
	DeleteMember(ctx context.Context, name string) (int, error)

	// Display state
	SetCollapsed(ctx context.Context, name string, collapsed bool) error
	ExpandAll(ctx context.Context) error
	CollapseAll(ctx context.Context) error

	// Reset discards the tree, leaving the placeholder family when seeded is
	// true and an empty tree otherwise
	Reset(ctx context.Context, seeded bool) error
}

// repository is the slice of the key-value store a session needs
type repository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// AddMemberRequest encapsulates all data needed to add a member
type AddMemberRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Parent       string `json:"parent" validate:"max=100"` // empty makes the member the root
	Relationship string `json:"relationship" validate:"max=50"`
	BirthDate    string `json:"birthDate" validate:"max=100"`
	Notes        string `json:"notes" validate:"max=2000"`
}

// EditMemberRequest replaces every field of an existing member
type EditMemberRequest struct {
	Name         string `json:"-" validate:"required,max=100"`
	NewName      string `json:"name" validate:"max=100"` // empty keeps the current name
	Parent       string `json:"parent" validate:"max=100"`
	Relationship string `json:"relationship" validate:"max=50"`
	BirthDate    string `json:"birthDate" validate:"max=100"`
	Notes        string `json:"notes" validate:"max=2000"`
}

type renameRequest struct {
	OldName string `json:"name" validate:"required,max=100"`
	NewName string `json:"newName" validate:"required,max=100"`
}

// service implements Service
type service struct {
	mu          sync.Mutex
	store       *familytree.Store
	lastUpdated time.Time

	uid         string
	key         string
	repo        repository
	eventClient events.EventPublisher
	opts        options
}

// Open starts a session for uid. A missing snapshot yields the placeholder
// family (or an empty tree when seeding is disabled); a corrupt one is logged
// and replaced the same way.
func Open(ctx context.Context, repo repository, uid string, eventClient events.EventPublisher, opts ...Option) (Service, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return nil, ErrMissingUser
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &service{
		uid:         uid,
		key:         models.FamilyTreeKey(uid),
		repo:        repo,
		eventClient: eventClient,
		opts:        o,
	}

	data, ok, err := repo.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to load family tree: %w", err)
	}
	if !ok {
		s.store = s.fresh()
		return s, nil
	}

	store, snap, err := familytree.Load([]byte(data))
	if err != nil {
		s.opts.logger.Warn("discarding unreadable family tree",
			"uid", uid,
			"error", err)
		s.store = s.fresh()
		return s, nil
	}
	if orphans := store.Orphans(); len(orphans) > 0 {
		s.opts.logger.Warn("family tree has unreachable members",
			"uid", uid,
			"orphans", orphans)
	}

	s.store = store
	s.lastUpdated = snap.LastUpdated
	return s, nil
}

func (s *service) fresh() *familytree.Store {
	if s.opts.seedOnEmpty {
		return familytree.Seeded()
	}
	return familytree.New()
}

func (s *service) UID() string {
	return s.uid
}

// AddMember validates the request and inserts the member
func (s *service) AddMember(ctx context.Context, req AddMemberRequest) (*models.Member, error) {
	req = AddMemberRequest{
		Name:         strings.TrimSpace(req.Name),
		Parent:       strings.TrimSpace(req.Parent),
		Relationship: strings.TrimSpace(req.Relationship),
		BirthDate:    strings.TrimSpace(req.BirthDate),
		Notes:        strings.TrimSpace(req.Notes),
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if req.Relationship == "" {
		req.Relationship = models.RelationshipChild
	}

	var member *models.Member
	err := s.mutate(ctx, req.Name, func(store *familytree.Store) error {
		if err := store.Insert(req.Name, req.Parent, req.Relationship, req.BirthDate, req.Notes); err != nil {
			return fmt.Errorf("failed to add member: %w", err)
		}
		member, _ = store.Get(req.Name)
		return nil
	})
	return member, err
}

// EditMember renames, re-parents and updates a member in one step
func (s *service) EditMember(ctx context.Context, req EditMemberRequest) (*models.Member, error) {
	req = EditMemberRequest{
		Name:         strings.TrimSpace(req.Name),
		NewName:      strings.TrimSpace(req.NewName),
		Parent:       strings.TrimSpace(req.Parent),
		Relationship: strings.TrimSpace(req.Relationship),
		BirthDate:    strings.TrimSpace(req.BirthDate),
		Notes:        strings.TrimSpace(req.Notes),
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	finalName := req.NewName
	if finalName == "" {
		finalName = req.Name
	}

	var member *models.Member
	err := s.mutate(ctx, finalName, func(store *familytree.Store) error {
		change := familytree.Change{
			Name:         req.NewName,
			Parent:       req.Parent,
			Relationship: req.Relationship,
			BirthDate:    req.BirthDate,
			Notes:        req.Notes,
		}
		if err := store.Edit(req.Name, change); err != nil {
			return fmt.Errorf("failed to edit member: %w", err)
		}
		member, _ = store.Get(finalName)
		return nil
	})
	return member, err
}

// RenameMember moves a member to a new name
func (s *service) RenameMember(ctx context.Context, oldName, newName string) error {
	req := renameRequest{OldName: strings.TrimSpace(oldName), NewName: strings.TrimSpace(newName)}
	if err := validation.Struct(req); err != nil {
		return err
	}

	return s.mutate(ctx, req.NewName, func(store *familytree.Store) error {
		if err := store.Rename(req.OldName, req.NewName); err != nil {
			return fmt.Errorf("failed to rename member: %w", err)
		}
		return nil
	})
}

// DeleteMember removes a member with all descendants and reports how many
// members were removed. Deleting the root empties the tree.
func (s *service) DeleteMember(ctx context.Context, name string) (int, error) {
	name = strings.TrimSpace(name)

	var removed int
	err := s.mutate(ctx, name, func(store *familytree.Store) error {
		var err error
		if removed, err = store.Delete(name); err != nil {
			return fmt.Errorf("failed to delete member: %w", err)
		}
		return nil
	})
	return removed, err
}

func (s *service) SetCollapsed(ctx context.Context, name string, collapsed bool) error {
	name = strings.TrimSpace(name)
	return s.mutate(ctx, name, func(store *familytree.Store) error {
		return store.SetCollapsed(name, collapsed)
	})
}

func (s *service) ExpandAll(ctx context.Context) error {
	return s.mutate(ctx, "", func(store *familytree.Store) error {
		store.ExpandAll()
		return nil
	})
}

func (s *service) CollapseAll(ctx context.Context) error {
	return s.mutate(ctx, "", func(store *familytree.Store) error {
		store.CollapseAll()
		return nil
	})
}

func (s *service) Reset(ctx context.Context, seeded bool) error {
	return s.mutate(ctx, "", func(store *familytree.Store) error {
		if seeded {
			*store = *familytree.Seeded()
			return nil
		}
		store.Clear()
		return nil
	})
}

// mutate applies fn under the session lock and persists the result before
// releasing it, so snapshots are written in mutation order. A failed write is
// logged only: the in-memory tree stays authoritative for the session.
func (s *service) mutate(ctx context.Context, member string, fn func(*familytree.Store) error) error {
	s.mu.Lock()
	err := fn(s.store)
	if err == nil {
		s.persist(ctx)
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}

	events.Publish(s.eventClient, events.Event{
		Type:   events.EventTreeChanged,
		UserID: s.uid,
		Member: member,
	})
	return nil
}

// persist writes the snapshot. Callers hold s.mu.
func (s *service) persist(ctx context.Context) {
	snap := s.store.Snapshot()
	snap.LastUpdated = s.opts.now().UTC()

	data, err := snap.Encode()
	if err == nil {
		err = s.repo.Set(ctx, s.key, string(data))
	}
	if err != nil {
		s.opts.logger.Error("failed to save family tree",
			"uid", s.uid,
			"members", s.store.Len(),
			"error", err)
		return
	}
	s.lastUpdated = snap.LastUpdated
}

// Member returns a copy of the named member
func (s *service) Member(_ context.Context, name string) (*models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Get(strings.TrimSpace(name))
}

func (s *service) Members(_ context.Context) []*models.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Members()
}

func (s *service) Hierarchy(_ context.Context) *models.MemberNode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Hierarchy()
}

func (s *service) Orphans(_ context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Orphans()
}

// Stats summarizes the tree. LastUpdated is zero until the tree is first saved.
func (s *service) Stats(_ context.Context) models.TreeStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.TreeStats{
		TotalMembers: s.store.Len(),
		Generations:  s.store.Depth(),
		LastUpdated:  s.lastUpdated,
	}
}

// Snapshot returns the persisted form of the current tree
func (s *service) Snapshot(_ context.Context) *familytree.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.store.Snapshot()
	snap.LastUpdated = s.lastUpdated
	return snap
}
