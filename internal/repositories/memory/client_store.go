// Package memory provides in-memory implementations of the repository interfaces.
// They back the --memory development mode and the handler tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"sport_club_backend/internal/models"
	"sport_club_backend/internal/repositories"

	"github.com/google/uuid"
)

// Ensure ClientStore implements the interface.
var _ repositories.ClientRepository = (*ClientStore)(nil)

// ClientStore is an in-memory implementation of repositories.ClientRepository.
type ClientStore struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]models.Client
}

// NewClientStore creates a new in-memory client store.
func NewClientStore() *ClientStore {
	return &ClientStore{
		clients: make(map[uuid.UUID]models.Client),
	}
}

// ExistsByEmail reports whether any client already uses email.
func (s *ClientStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clients {
		if c.Email != nil && *c.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// Save stores or replaces a client. Email uniqueness mirrors the clients_email_key constraint.
func (s *ClientStore) Save(_ context.Context, client *models.Client) (*models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if client.Email != nil {
		for id, c := range s.clients {
			if id != client.ID && c.Email != nil && *c.Email == *client.Email {
				return nil, fmt.Errorf("%w: email %s (constraint: clients_email_key)", repositories.ErrDuplicateKey, *client.Email)
			}
		}
	}

	now := time.Now().UTC()
	stored := copyClient(*client)
	stored.Memberships = nil
	if existing, ok := s.clients[client.ID]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	s.clients[stored.ID] = stored

	out := copyClient(stored)
	return &out, nil
}

// FindByID retrieves a client by ID.
func (s *ClientStore) FindByID(_ context.Context, id uuid.UUID) (*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.clients[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := copyClient(c)
	return &out, nil
}

// FindAll returns a page of clients ordered by name, optionally filtered by a
// case-insensitive substring of name or email.
func (s *ClientStore) FindAll(_ context.Context, page, pageSize int, searchTerm *string) ([]models.Client, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := ""
	if searchTerm != nil {
		needle = strings.ToLower(strings.TrimSpace(*searchTerm))
	}

	matched := make([]models.Client, 0, len(s.clients))
	for _, c := range s.clients {
		if needle != "" &&
			!strings.Contains(strings.ToLower(c.FullName), needle) &&
			(c.Email == nil || !strings.Contains(strings.ToLower(*c.Email), needle)) {
			continue
		}
		matched = append(matched, copyClient(c))
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].FullName != matched[j].FullName {
			return matched[i].FullName < matched[j].FullName
		}
		return matched[i].ID.String() < matched[j].ID.String()
	})

	total := len(matched)
	if pageSize <= 0 {
		return matched, total, nil
	}
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= total {
		return []models.Client{}, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func copyClient(c models.Client) models.Client {
	if c.Email != nil {
		email := *c.Email
		c.Email = &email
	}
	if c.Memberships != nil {
		c.Memberships = append([]models.Membership(nil), c.Memberships...)
	}
	return c
}
