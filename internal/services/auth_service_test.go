package services

import (
	"context"
	"testing"
	"time"

	"sport_club_backend/internal/models"
	"sport_club_backend/internal/repositories/memory"
	"sport_club_backend/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

func newTestAuthService(limiter *rate.Limiter) (*memory.StaffStore, *utils.TokenIssuer, AuthService) {
	store := memory.NewStaffStore()
	tokens := utils.NewTokenIssuer("test-secret", time.Hour)
	svc := NewAuthService(store, tokens, limiter)
	svc.(*authService).hashCost = bcrypt.MinCost
	return store, tokens, svc
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	_, tokens, svc := newTestAuthService(nil)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, RegisterUserRequest{
		Username: " frontdesk ",
		Password: "password123",
		FullName: "Front Desk",
	})
	require.NoError(t, err)
	assert.Equal(t, "frontdesk", user.Username)
	assert.Equal(t, models.RoleStaff, user.Role)
	assert.True(t, user.IsActive)
	assert.Empty(t, user.PasswordHash)

	resp, err := svc.LoginUser(ctx, LoginRequest{Username: "frontdesk", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.Empty(t, resp.User.PasswordHash)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	claims, err := tokens.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.RoleStaff, claims.Role)

	profile, err := svc.GetUserProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "frontdesk", profile.Username)
}

func TestAuthService_LoginFailures(t *testing.T) {
	store, _, svc := newTestAuthService(nil)
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, RegisterUserRequest{Username: "coach", Password: "password123"})
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, store.CreateUser(ctx, &models.StaffUser{
		ID:           uuid.New(),
		Username:     "retired",
		PasswordHash: string(hash),
		Role:         models.RoleStaff,
		IsActive:     false,
	}))

	tests := []struct {
		name string
		req  LoginRequest
	}{
		{name: "wrong password", req: LoginRequest{Username: "coach", Password: "nope-nope"}},
		{name: "unknown user", req: LoginRequest{Username: "ghost", Password: "password123"}},
		{name: "inactive user", req: LoginRequest{Username: "retired", Password: "password123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.LoginUser(ctx, tt.req)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestAuthService_RegisterValidation(t *testing.T) {
	_, _, svc := newTestAuthService(nil)
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, RegisterUserRequest{Username: "admin", Password: "password123", Role: "ADMIN"})
	require.NoError(t, err)

	_, err = svc.RegisterUser(ctx, RegisterUserRequest{Username: "admin", Password: "password123"})
	assert.ErrorIs(t, err, ErrUsernameExists)

	_, err = svc.RegisterUser(ctx, RegisterUserRequest{Username: "coach", Password: "password123", Role: "owner"})
	assert.ErrorIs(t, err, ErrRoleNotFound)

	_, err = svc.RegisterUser(ctx, RegisterUserRequest{Username: "coach", Password: "short"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.RegisterUser(ctx, RegisterUserRequest{Username: "   ", Password: "password123"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAuthService_LoginRateLimited(t *testing.T) {
	_, _, svc := newTestAuthService(rate.NewLimiter(0, 1))
	ctx := context.Background()

	_, err := svc.LoginUser(ctx, LoginRequest{Username: "ghost", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.LoginUser(ctx, LoginRequest{Username: "ghost", Password: "password123"})
	assert.ErrorIs(t, err, ErrTooManyAttempts)
}

func TestAuthService_GetUserProfileMissing(t *testing.T) {
	_, _, svc := newTestAuthService(nil)

	_, err := svc.GetUserProfile(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_EnsureBootstrapAdmin(t *testing.T) {
	store, _, svc := newTestAuthService(nil)
	ctx := context.Background()

	created, err := svc.EnsureBootstrapAdmin(ctx, "", "password123")
	require.NoError(t, err)
	assert.False(t, created)

	created, err = svc.EnsureBootstrapAdmin(ctx, "root", "password123")
	require.NoError(t, err)
	assert.True(t, created)

	admin, err := store.FindUserByUsername(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	created, err = svc.EnsureBootstrapAdmin(ctx, "second", "password123")
	require.NoError(t, err)
	assert.False(t, created)

	count, err := store.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
