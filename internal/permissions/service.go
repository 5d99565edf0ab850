package permissions

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/accessdesk/accessdesk/internal/platform/store"
	"github.com/accessdesk/accessdesk/internal/shared"
)

// Service owns the permission catalog. Unlike roles and users there is no
// id uniqueness enforcement: a derived-id collision is resolved by whichever
// record the presentation layer rebuilds last. Kept deliberately loose; see
// DESIGN.md.
type Service struct {
	store store.Store
	mu    sync.Mutex
}

// NewService builds Service instance.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// EnsureSeeded installs the starter catalog when the collection is empty.
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
	seed := []Permission{
		{ID: "create_user", Name: "Create User", Description: "Allows creating new users in the system", Category: "User Management"},
		{ID: "edit_user", Name: "Edit User", Description: "Allows editing existing users", Category: "User Management"},
		{ID: "delete_user", Name: "Delete User", Description: "Allows deleting users from the system", Category: "User Management"},
		{ID: "manage_roles", Name: "Manage Roles", Description: "Allows creating and modifying roles", Category: "Role Management"},
	}
	return s.store.Save(ctx, store.CollectionPermissions, seed)
}

// List returns all permissions.
func (s *Service) List(ctx context.Context) ([]Permission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Create appends a permission, deriving the slug id from the name when the
// draft does not carry one.
func (s *Service) Create(ctx context.Context, draft Draft) (Permission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := strings.TrimSpace(draft.Name)
	if name == "" {
		return Permission{}, shared.Validationf("name required")
	}

	all, err := s.load(ctx)
	if err != nil {
		return Permission{}, err
	}

	id := strings.TrimSpace(draft.ID)
	if id == "" {
		id = SlugID(name)
	}
	perm := Permission{
		ID:          id,
		Name:        name,
		Description: draft.Description,
		Category:    draft.Category,
	}
	all = append(all, perm)
	if err := s.store.Save(ctx, store.CollectionPermissions, all); err != nil {
		return Permission{}, err
	}
	return perm, nil
}

// Update replaces the full record for the matching id, preserving the id.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (Permission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return Permission{}, err
	}
	idx := indexOf(all, id)
	if idx < 0 {
		return Permission{}, fmt.Errorf("permission %q: %w", id, shared.ErrNotFound)
	}

	all[idx] = Permission{
		ID:          id,
		Name:        patch.Name,
		Description: patch.Description,
		Category:    patch.Category,
	}
	if err := s.store.Save(ctx, store.CollectionPermissions, all); err != nil {
		return Permission{}, err
	}
	return all[idx], nil
}

// Delete removes the matching record. An absent id is not an error.
func (s *Service) Delete(ctx context.Context, id string) (DeleteAck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return DeleteAck{}, err
	}
	idx := indexOf(all, id)
	if idx >= 0 {
		all = append(all[:idx], all[idx+1:]...)
		if err := s.store.Save(ctx, store.CollectionPermissions, all); err != nil {
			return DeleteAck{}, err
		}
	}
	return DeleteAck{ID: id, DeletedAt: time.Now().UTC()}, nil
}

func (s *Service) load(ctx context.Context) ([]Permission, error) {
	var all []Permission
	if err := s.store.Load(ctx, store.CollectionPermissions, &all); err != nil {
		return nil, err
	}
	return all, nil
}

func indexOf(all []Permission, id string) int {
	for i, p := range all {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// SlugID derives a stable identifier from a display name: lowercase with
// every whitespace run collapsed to a single underscore.
func SlugID(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "_")
}
