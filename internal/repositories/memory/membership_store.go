package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"sport_club_backend/internal/models"
	"sport_club_backend/internal/repositories"

	"github.com/google/uuid"
)

// Ensure MembershipStore implements the interface.
var _ repositories.MembershipRepository = (*MembershipStore)(nil)

// MembershipStore is an in-memory implementation of repositories.MembershipRepository.
// When built with a ClientStore it enforces the owner reference and fills ClientName.
type MembershipStore struct {
	mu          sync.RWMutex
	memberships map[uuid.UUID]models.Membership
	clients     *ClientStore
}

// NewMembershipStore creates a new in-memory membership store. clients may be nil.
func NewMembershipStore(clients *ClientStore) *MembershipStore {
	return &MembershipStore{
		memberships: make(map[uuid.UUID]models.Membership),
		clients:     clients,
	}
}

// Save stores or replaces a membership.
func (s *MembershipStore) Save(ctx context.Context, membership *models.Membership) (*models.Membership, error) {
	if s.clients != nil {
		if _, err := s.clients.FindByID(ctx, membership.ClientID); err != nil {
			return nil, fmt.Errorf("%w: client %s (constraint: memberships_client_id_fkey)", repositories.ErrForeignKey, membership.ClientID)
		}
	}

	s.mu.Lock()
	stored := *membership
	stored.ClientName = ""
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	s.memberships[stored.ID] = stored
	s.mu.Unlock()

	return s.FindByID(ctx, stored.ID)
}

// FindByID retrieves a membership by ID.
func (s *MembershipStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Membership, error) {
	s.mu.RLock()
	m, ok := s.memberships[id]
	s.mu.RUnlock()
	if !ok {
		return nil, repositories.ErrNotFound
	}
	s.fillClientName(ctx, &m)
	return &m, nil
}

// FindByClientID lists a client's memberships, newest start date first.
func (s *MembershipStore) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]models.Membership, error) {
	s.mu.RLock()
	result := []models.Membership{}
	for _, m := range s.memberships {
		if m.ClientID == clientID {
			result = append(result, m)
		}
	}
	s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if !result[i].StartDate.Equal(result[j].StartDate) {
			return result[i].StartDate.After(result[j].StartDate)
		}
		return result[i].ID.String() < result[j].ID.String()
	})
	for i := range result {
		s.fillClientName(ctx, &result[i])
	}
	return result, nil
}

func (s *MembershipStore) fillClientName(ctx context.Context, m *models.Membership) {
	if s.clients == nil {
		return
	}
	if c, err := s.clients.FindByID(ctx, m.ClientID); err == nil {
		m.ClientName = c.FullName
	}
}
