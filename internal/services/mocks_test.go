package services

import (
	"context"

	"sport_club_backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// mockClientRepository is a testify mock of repositories.ClientRepository.
// Save may be given a func(*models.Client) *models.Client to echo its argument.
type mockClientRepository struct {
	mock.Mock
}

func (m *mockClientRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockClientRepository) Save(ctx context.Context, client *models.Client) (*models.Client, error) {
	args := m.Called(ctx, client)
	if fn, ok := args.Get(0).(func(*models.Client) *models.Client); ok {
		return fn(client), args.Error(1)
	}
	saved, _ := args.Get(0).(*models.Client)
	return saved, args.Error(1)
}

func (m *mockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	args := m.Called(ctx, id)
	client, _ := args.Get(0).(*models.Client)
	return client, args.Error(1)
}

func (m *mockClientRepository) FindAll(ctx context.Context, page, pageSize int, searchTerm *string) ([]models.Client, int, error) {
	args := m.Called(ctx, page, pageSize, searchTerm)
	clients, _ := args.Get(0).([]models.Client)
	return clients, args.Int(1), args.Error(2)
}

type mockMembershipRepository struct {
	mock.Mock
}

func (m *mockMembershipRepository) Save(ctx context.Context, membership *models.Membership) (*models.Membership, error) {
	args := m.Called(ctx, membership)
	if fn, ok := args.Get(0).(func(*models.Membership) *models.Membership); ok {
		return fn(membership), args.Error(1)
	}
	saved, _ := args.Get(0).(*models.Membership)
	return saved, args.Error(1)
}

func (m *mockMembershipRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Membership, error) {
	args := m.Called(ctx, id)
	membership, _ := args.Get(0).(*models.Membership)
	return membership, args.Error(1)
}

func (m *mockMembershipRepository) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]models.Membership, error) {
	args := m.Called(ctx, clientID)
	memberships, _ := args.Get(0).([]models.Membership)
	return memberships, args.Error(1)
}

// mockClientService stands in for ClientService when testing MembershipService.
type mockClientService struct {
	mock.Mock
}

func (m *mockClientService) CreateClient(ctx context.Context, dto ClientDTO) (*models.Client, error) {
	args := m.Called(ctx, dto)
	client, _ := args.Get(0).(*models.Client)
	return client, args.Error(1)
}

func (m *mockClientService) UpdateClient(ctx context.Context, id uuid.UUID, dto ClientDTO) (*models.Client, error) {
	args := m.Called(ctx, id, dto)
	client, _ := args.Get(0).(*models.Client)
	return client, args.Error(1)
}

func (m *mockClientService) ToggleBlockStatus(ctx context.Context, id uuid.UUID, blocked bool) error {
	return m.Called(ctx, id, blocked).Error(0)
}

func (m *mockClientService) GetClientByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	args := m.Called(ctx, id)
	client, _ := args.Get(0).(*models.Client)
	return client, args.Error(1)
}

func (m *mockClientService) GetClients(ctx context.Context, page, pageSize int, searchTerm *string) ([]models.Client, int, error) {
	args := m.Called(ctx, page, pageSize, searchTerm)
	clients, _ := args.Get(0).([]models.Client)
	return clients, args.Int(1), args.Error(2)
}

func (m *mockClientService) ClientState(ctx context.Context, id uuid.UUID) (models.ClientState, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.ClientState), args.Error(1)
}

func (m *mockClientService) IsActiveClient(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func strPtr(s string) *string {
	return &s
}
