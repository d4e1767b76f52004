package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sport_club_backend/internal/models"
	"sport_club_backend/internal/repositories"
	"sport_club_backend/pkg/utils"

	"github.com/google/uuid"
)

// --- Custom Service Errors for Membership ---
var (
	ErrMembershipNotFound   = errors.New("membership not found")
	ErrMembershipExists     = errors.New("membership with this id already exists")
	ErrClientNotResolved    = fmt.Errorf("%w: client cannot be resolved", ErrValidation)
	ErrMembershipValidation = fmt.Errorf("%w: membership data is invalid", ErrValidation)
)

// MembershipDTO carries membership fields across the service boundary.
type MembershipDTO struct {
	ID          uuid.UUID             `json:"id"`
	ClientID    uuid.UUID             `json:"client_id"`
	ClientName  string                `json:"client_name"`
	Type        models.MembershipType `json:"type"`
	StartDate   time.Time             `json:"start_date"`
	EndDate     time.Time             `json:"end_date"`
	CreditCount int                   `json:"credit_count"`
}

type MembershipService interface {
	CreateMembership(ctx context.Context, dto MembershipDTO) (*models.Membership, error)
	GetMembershipByID(ctx context.Context, id uuid.UUID) (*models.Membership, error)
	GetClientMemberships(ctx context.Context, clientID uuid.UUID) ([]models.Membership, error)
	IsActiveMembership(ctx context.Context, id uuid.UUID) (bool, error)
}

type membershipService struct {
	membershipRepo repositories.MembershipRepository
	clientService  ClientService
	now            func() time.Time
}

// NewMembershipService creates a new instance of MembershipService.
func NewMembershipService(repo repositories.MembershipRepository, clientService ClientService) MembershipService {
	return &membershipService{
		membershipRepo: repo,
		clientService:  clientService,
		now:            time.Now,
	}
}

func validateMembershipData(dto MembershipDTO) error {
	if dto.Type == "" {
		return fmt.Errorf("%w: membership type is required", ErrMembershipValidation)
	}
	if !dto.Type.Valid() {
		return fmt.Errorf("%w: unknown membership type %q", ErrMembershipValidation, dto.Type)
	}
	if dto.StartDate.IsZero() || dto.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrMembershipValidation)
	}
	if !dto.EndDate.After(dto.StartDate) {
		return fmt.Errorf("%w: end date must be after start date", ErrMembershipValidation)
	}
	if dto.CreditCount < 0 {
		return fmt.Errorf("%w: credit count cannot be negative", ErrMembershipValidation)
	}
	return nil
}

func (s *membershipService) resolveClient(ctx context.Context, clientID uuid.UUID) (*models.Client, error) {
	client, err := s.clientService.GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrClientNotResolved, clientID)
		}
		return nil, err
	}
	return client, nil
}

// CreateMembership sells a membership to an existing client.
func (s *membershipService) CreateMembership(ctx context.Context, dto MembershipDTO) (*models.Membership, error) {
	client, err := s.resolveClient(ctx, dto.ClientID)
	if err != nil {
		return nil, err
	}
	if err := validateMembershipData(dto); err != nil {
		return nil, err
	}

	id := dto.ID
	if id == uuid.Nil {
		id = uuid.New()
	} else if _, err := s.membershipRepo.FindByID(ctx, id); err == nil {
		return nil, ErrMembershipExists
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check membership id: %w", err)
	}
	membership := &models.Membership{
		ID:          id,
		ClientID:    client.ID,
		ClientName:  client.FullName,
		Type:        dto.Type,
		StartDate:   dto.StartDate.UTC(),
		EndDate:     dto.EndDate.UTC(),
		CreditCount: dto.CreditCount,
	}

	saved, err := s.membershipRepo.Save(ctx, membership)
	if err != nil {
		if errors.Is(err, repositories.ErrForeignKey) {
			return nil, fmt.Errorf("%w: %s", ErrClientNotResolved, client.ID)
		}
		return nil, fmt.Errorf("failed to create membership in repository: %w", err)
	}
	utils.LogInfo("Membership created", map[string]interface{}{
		"membership_id": saved.ID.String(),
		"client_id":     client.ID.String(),
		"type":          string(saved.Type),
	})
	return saved, nil
}

// GetMembershipByID returns ErrMembershipNotFound when id is nil or unknown.
func (s *membershipService) GetMembershipByID(ctx context.Context, id uuid.UUID) (*models.Membership, error) {
	if id == uuid.Nil {
		return nil, ErrMembershipNotFound
	}
	membership, err := s.membershipRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMembershipNotFound
		}
		return nil, fmt.Errorf("failed to get membership by ID: %w", err)
	}
	return membership, nil
}

func (s *membershipService) GetClientMemberships(ctx context.Context, clientID uuid.UUID) ([]models.Membership, error) {
	client, err := s.resolveClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	memberships, err := s.membershipRepo.FindByClientID(ctx, client.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get memberships of client: %w", err)
	}
	return memberships, nil
}

// IsActiveMembership requires both a current date range and an active owner.
// An unknown membership is inactive.
func (s *membershipService) IsActiveMembership(ctx context.Context, id uuid.UUID) (bool, error) {
	membership, err := s.GetMembershipByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrMembershipNotFound) {
			return false, nil
		}
		return false, err
	}

	if !membership.CoversTime(s.now()) {
		return false, nil
	}

	active, err := s.clientService.IsActiveClient(ctx, membership.ClientID)
	if err != nil {
		return false, fmt.Errorf("failed to check membership owner: %w", err)
	}
	return active, nil
}
