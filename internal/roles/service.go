package roles

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/accessdesk/accessdesk/internal/platform/store"
	"github.com/accessdesk/accessdesk/internal/shared"
)

// Service owns the validation and mutation rules for roles. Every operation
// is a read-validate-write cycle over the whole collection, serialized by a
// per-collection mutex so concurrent admins cannot lose updates.
type Service struct {
	store store.Store
	mu    sync.Mutex
}

// NewService builds Service instance.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// EnsureSeeded installs the three default roles when the collection is
// empty. Idempotent; called once at service initialization so reads never
// carry write side effects.
func (s *Service) EnsureSeeded(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return err
	}
	if len(all) > 0 {
		return nil
	}

	now := time.Now().UTC()
	seed := []Role{
		{
			ID:          1,
			Name:        "Admin",
			Description: "Full system access",
			Permissions: append([]string(nil), BaselinePermissionIDs...),
			IsDefault:   true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          2,
			Name:        "Editor",
			Description: "Can edit content and manage users",
			Permissions: []string{"edit_user", "view_users", "view_roles"},
			IsDefault:   true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          3,
			Name:        "Viewer",
			Description: "Read-only access",
			Permissions: []string{"view_users", "view_roles"},
			IsDefault:   true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
	return s.store.Save(ctx, store.CollectionRoles, seed)
}

// List returns all roles.
func (s *Service) List(ctx context.Context) ([]Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Create validates the draft and appends a new role.
func (s *Service) Create(ctx context.Context, draft Draft) (Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := strings.TrimSpace(draft.Name)
	if name == "" {
		return Role{}, shared.Validationf("name required")
	}

	all, err := s.load(ctx)
	if err != nil {
		return Role{}, err
	}
	for _, r := range all {
		if strings.EqualFold(r.Name, name) {
			return Role{}, shared.Validationf("duplicate name")
		}
	}

	now := time.Now().UTC()
	role := Role{
		ID:          nextID(all),
		Name:        name,
		Description: draft.Description,
		Permissions: append([]string(nil), draft.Permissions...),
		IsDefault:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	all = append(all, role)
	if err := s.store.Save(ctx, store.CollectionRoles, all); err != nil {
		return Role{}, err
	}
	return role, nil
}

// Update merges the patch into the matching role. Default roles are
// rejected before any validation so storage is never touched.
func (s *Service) Update(ctx context.Context, id int64, patch Patch) (Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return Role{}, err
	}
	idx := indexOf(all, id)
	if idx < 0 {
		return Role{}, fmt.Errorf("role %d: %w", id, shared.ErrNotFound)
	}
	if all[idx].IsDefault {
		return Role{}, fmt.Errorf("role %q: %w", all[idx].Name, shared.ErrProtected)
	}

	if patch.Name != nil && *patch.Name != all[idx].Name {
		for i, r := range all {
			if i != idx && strings.EqualFold(r.Name, *patch.Name) {
				return Role{}, shared.Validationf("duplicate name")
			}
		}
	}

	if patch.Name != nil {
		all[idx].Name = *patch.Name
	}
	if patch.Description != nil {
		all[idx].Description = *patch.Description
	}
	if patch.Permissions != nil {
		all[idx].Permissions = append([]string(nil), (*patch.Permissions)...)
	}
	all[idx].UpdatedAt = time.Now().UTC()

	if err := s.store.Save(ctx, store.CollectionRoles, all); err != nil {
		return Role{}, err
	}
	return all[idx], nil
}

// Delete removes the matching role unless it is a default role.
func (s *Service) Delete(ctx context.Context, id int64) (DeleteAck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return DeleteAck{}, err
	}
	idx := indexOf(all, id)
	if idx < 0 {
		return DeleteAck{}, fmt.Errorf("role %d: %w", id, shared.ErrNotFound)
	}
	if all[idx].IsDefault {
		return DeleteAck{}, fmt.Errorf("role %q: %w", all[idx].Name, shared.ErrProtected)
	}

	all = append(all[:idx], all[idx+1:]...)
	if err := s.store.Save(ctx, store.CollectionRoles, all); err != nil {
		return DeleteAck{}, err
	}
	return DeleteAck{ID: id, DeletedAt: time.Now().UTC()}, nil
}

func (s *Service) load(ctx context.Context) ([]Role, error) {
	var all []Role
	if err := s.store.Load(ctx, store.CollectionRoles, &all); err != nil {
		return nil, err
	}
	return all, nil
}

func indexOf(all []Role, id int64) int {
	for i, r := range all {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// nextID hands out time-based ids, bumping past collisions so an id is
// never reused within the collection.
func nextID(all []Role) int64 {
	taken := make(map[int64]struct{}, len(all))
	for _, r := range all {
		taken[r.ID] = struct{}{}
	}
	id := time.Now().UnixMilli()
	for {
		if _, ok := taken[id]; !ok {
			return id
		}
		id++
	}
}
