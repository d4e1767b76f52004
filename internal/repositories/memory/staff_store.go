package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"sport_club_backend/internal/models"
	"sport_club_backend/internal/repositories"

	"github.com/google/uuid"
)

// Ensure StaffStore implements the interface.
var _ repositories.AuthRepository = (*StaffStore)(nil)

// StaffStore is an in-memory implementation of repositories.AuthRepository.
type StaffStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]models.StaffUser
}

// NewStaffStore creates a new in-memory staff store.
func NewStaffStore() *StaffStore {
	return &StaffStore{users: make(map[uuid.UUID]models.StaffUser)}
}

// CreateUser stores a new staff account; usernames are unique.
func (s *StaffStore) CreateUser(_ context.Context, user *models.StaffUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username {
			return fmt.Errorf("%w: username %s (constraint: staff_users_username_key)", repositories.ErrDuplicateKey, user.Username)
		}
	}
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	s.users[user.ID] = *user
	return nil
}

// FindUserByUsername retrieves a staff account by username.
func (s *StaffStore) FindUserByUsername(_ context.Context, username string) (*models.StaffUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// FindUserByID retrieves a staff account by id.
func (s *StaffStore) FindUserByID(_ context.Context, id uuid.UUID) (*models.StaffUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

// CountUsers returns the number of staff accounts.
func (s *StaffStore) CountUsers(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}
