package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sport_club_backend/internal/models"
	"sport_club_backend/internal/repositories"
	"sport_club_backend/pkg/utils"

	"github.com/google/uuid"
)

// --- Custom Service Errors for Client ---
var (
	// ErrValidation is the parent of every input rejection raised by the services.
	ErrValidation = errors.New("validation error")

	ErrClientNotFound   = errors.New("client not found")
	ErrClientExists     = errors.New("client with this id already exists")
	ErrEmailExists      = fmt.Errorf("%w: email already exists", ErrValidation)
	ErrClientValidation = fmt.Errorf("%w: client data is invalid", ErrValidation)
)

const (
	defaultPageSize = 10
	// MaxPageSize caps how many clients one GetClients call returns.
	MaxPageSize = 100
)

// --- Client DTOs ---

// ClientDTO carries client fields across the service boundary.
// A nil ID asks the service to generate one; a nil Email means the client has none.
type ClientDTO struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name" binding:"required"`
	Email     *string   `json:"email"`
	IsBlocked bool      `json:"is_blocked"`
}

// --- ClientService Interface ---
type ClientService interface {
	CreateClient(ctx context.Context, dto ClientDTO) (*models.Client, error)
	UpdateClient(ctx context.Context, id uuid.UUID, dto ClientDTO) (*models.Client, error)
	ToggleBlockStatus(ctx context.Context, id uuid.UUID, blocked bool) error
	GetClientByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	GetClients(ctx context.Context, page, pageSize int, searchTerm *string) ([]models.Client, int, error)
	ClientState(ctx context.Context, id uuid.UUID) (models.ClientState, error)
	IsActiveClient(ctx context.Context, id uuid.UUID) (bool, error)
}

// --- clientService Implementation ---
type clientService struct {
	clientRepo repositories.ClientRepository
}

// NewClientService creates a new instance of ClientService.
func NewClientService(repo repositories.ClientRepository) ClientService {
	return &clientService{clientRepo: repo}
}

func validateClientData(fullName string, email *string) error {
	if utils.IsEmpty(fullName) {
		return fmt.Errorf("%w: full name cannot be empty", ErrClientValidation)
	}
	if email != nil && !utils.IsValidEmail(*email) {
		return fmt.Errorf("%w: email format is invalid", ErrClientValidation)
	}
	return nil
}

func (s *clientService) ensureEmailFree(ctx context.Context, email string) error {
	exists, err := s.clientRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if exists {
		return ErrEmailExists
	}
	return nil
}

// CreateClient registers a new club member. The email, when present, must be unused.
func (s *clientService) CreateClient(ctx context.Context, dto ClientDTO) (*models.Client, error) {
	email := utils.TrimOptional(dto.Email)
	if err := validateClientData(dto.FullName, email); err != nil {
		return nil, err
	}
	if email != nil {
		if err := s.ensureEmailFree(ctx, *email); err != nil {
			return nil, err
		}
	}

	id := dto.ID
	if id == uuid.Nil {
		id = uuid.New()
	} else if _, err := s.clientRepo.FindByID(ctx, id); err == nil {
		return nil, ErrClientExists
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check client id: %w", err)
	}

	client := &models.Client{
		ID:        id,
		FullName:  strings.TrimSpace(dto.FullName),
		Email:     email,
		IsBlocked: dto.IsBlocked,
	}

	saved, err := s.clientRepo.Save(ctx, client)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create client in repository: %w", err)
	}
	utils.LogInfo("Client created", map[string]interface{}{"client_id": saved.ID.String()})
	return saved, nil
}

// UpdateClient overwrites name, email and blocked flag of an existing client.
// The email is only checked for uniqueness when it actually changes; a nil email clears it.
func (s *clientService) UpdateClient(ctx context.Context, id uuid.UUID, dto ClientDTO) (*models.Client, error) {
	client, err := s.findClient(ctx, id)
	if err != nil {
		return nil, err
	}

	email := utils.TrimOptional(dto.Email)
	if err := validateClientData(dto.FullName, email); err != nil {
		return nil, err
	}
	if email != nil && (client.Email == nil || *client.Email != *email) {
		if err := s.ensureEmailFree(ctx, *email); err != nil {
			return nil, err
		}
	}

	client.FullName = strings.TrimSpace(dto.FullName)
	client.Email = email
	client.IsBlocked = dto.IsBlocked

	saved, err := s.clientRepo.Save(ctx, client)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to update client in repository: %w", err)
	}
	return saved, nil
}

// ToggleBlockStatus sets the blocked flag. An unknown client is a no-op.
func (s *clientService) ToggleBlockStatus(ctx context.Context, id uuid.UUID, blocked bool) error {
	client, err := s.findClient(ctx, id)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			utils.LogDebug("Block toggle skipped for unknown client", map[string]interface{}{"client_id": id.String()})
			return nil
		}
		return err
	}

	client.IsBlocked = blocked
	if _, err := s.clientRepo.Save(ctx, client); err != nil {
		return fmt.Errorf("failed to update block status: %w", err)
	}
	utils.LogInfo("Client block status changed", map[string]interface{}{"client_id": id.String(), "blocked": blocked})
	return nil
}

// GetClientByID returns ErrClientNotFound when id is nil or unknown.
func (s *clientService) GetClientByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	return s.findClient(ctx, id)
}

func (s *clientService) GetClients(ctx context.Context, page, pageSize int, searchTerm *string) ([]models.Client, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	pageSize = utils.ClampInt(pageSize, 1, MaxPageSize)

	clients, totalCount, err := s.clientRepo.FindAll(ctx, page, pageSize, searchTerm)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get clients: %w", err)
	}
	return clients, totalCount, nil
}

// ClientState distinguishes a missing client from a blocked or active one.
func (s *clientService) ClientState(ctx context.Context, id uuid.UUID) (models.ClientState, error) {
	client, err := s.findClient(ctx, id)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			return models.ClientNotFound, nil
		}
		return "", err
	}
	if client.IsBlocked {
		return models.ClientBlocked, nil
	}
	return models.ClientActive, nil
}

// IsActiveClient is false only for a client that exists and is blocked.
// Callers that must tell "missing" apart should use ClientState.
func (s *clientService) IsActiveClient(ctx context.Context, id uuid.UUID) (bool, error) {
	state, err := s.ClientState(ctx, id)
	if err != nil {
		return false, err
	}
	return state != models.ClientBlocked, nil
}

func (s *clientService) findClient(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	if id == uuid.Nil {
		return nil, ErrClientNotFound
	}
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client by ID: %w", err)
	}
	return client, nil
}
