package users

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/accessdesk/accessdesk/internal/platform/store"
	"github.com/accessdesk/accessdesk/internal/shared"
)

// Service owns the validation and mutation rules for users. Operations are
// read-validate-write over the full collection, serialized per collection.
type Service struct {
	store store.Store
	mu    sync.Mutex
}

// NewService builds Service instance.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Create validates the draft and appends a new user. Email uniqueness is an
// exact match, unlike the case-insensitive role name check.
func (s *Service) Create(ctx context.Context, draft Draft) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := strings.TrimSpace(draft.Name)
	email := strings.TrimSpace(draft.Email)
	if name == "" || email == "" {
		return User{}, shared.Validationf("name and email required")
	}

	all, err := s.load(ctx)
	if err != nil {
		return User{}, err
	}
	for _, u := range all {
		if u.Email == email {
			return User{}, shared.Validationf("duplicate email")
		}
	}

	now := time.Now().UTC()
	user := User{
		ID:        nextID(all),
		Name:      name,
		Email:     email,
		Role:      draft.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	all = append(all, user)
	if err := s.store.Save(ctx, store.CollectionUsers, all); err != nil {
		return User{}, err
	}
	return user, nil
}

// Update merges the patch into the matching user, re-checking email
// uniqueness only when the email is actually changing.
func (s *Service) Update(ctx context.Context, id int64, patch Patch) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return User{}, err
	}
	idx := indexOf(all, id)
	if idx < 0 {
		return User{}, fmt.Errorf("user %d: %w", id, shared.ErrNotFound)
	}

	if patch.Email != nil && *patch.Email != all[idx].Email {
		for i, u := range all {
			if i != idx && u.Email == *patch.Email {
				return User{}, shared.Validationf("duplicate email")
			}
		}
	}

	if patch.Name != nil {
		all[idx].Name = *patch.Name
	}
	if patch.Email != nil {
		all[idx].Email = *patch.Email
	}
	if patch.Role != nil {
		all[idx].Role = *patch.Role
	}
	all[idx].UpdatedAt = time.Now().UTC()

	if err := s.store.Save(ctx, store.CollectionUsers, all); err != nil {
		return User{}, err
	}
	return all[idx], nil
}

// Delete removes the matching user. Roles are unaffected.
func (s *Service) Delete(ctx context.Context, id int64) (DeleteAck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return DeleteAck{}, err
	}
	idx := indexOf(all, id)
	if idx < 0 {
		return DeleteAck{}, fmt.Errorf("user %d: %w", id, shared.ErrNotFound)
	}

	all = append(all[:idx], all[idx+1:]...)
	if err := s.store.Save(ctx, store.CollectionUsers, all); err != nil {
		return DeleteAck{}, err
	}
	return DeleteAck{ID: id, DeletedAt: time.Now().UTC()}, nil
}

func (s *Service) load(ctx context.Context) ([]User, error) {
	var all []User
	if err := s.store.Load(ctx, store.CollectionUsers, &all); err != nil {
		return nil, err
	}
	return all, nil
}

func indexOf(all []User, id int64) int {
	for i, u := range all {
		if u.ID == id {
			return i
		}
	}
	return -1
}

// nextID hands out time-based ids, bumping past collisions.
func nextID(all []User) int64 {
	taken := make(map[int64]struct{}, len(all))
	for _, u := range all {
		taken[u.ID] = struct{}{}
	}
	id := time.Now().UnixMilli()
	for {
		if _, ok := taken[id]; !ok {
			return id
		}
		id++
	}
}
