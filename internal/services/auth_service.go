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
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

// --- Custom Service Errors ---
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameExists     = errors.New("username already exists")
	ErrRoleNotFound       = errors.New("specified role not found")
	ErrTooManyAttempts    = errors.New("too many login attempts, try again later")
)

// --- Data Transfer Objects (DTOs) ---

// LoginRequest DTO
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterUserRequest DTO
type RegisterUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name"`
	Role     string `json:"role"` // "admin" or "staff"; staff when empty
}

// AuthResponse DTO
type AuthResponse struct {
	User        *models.StaffUser `json:"user"`
	AccessToken string            `json:"access_token"`
	ExpiresIn   int64             `json:"expires_in"`
}

// --- AuthService Interface ---
type AuthService interface {
	RegisterUser(ctx context.Context, req RegisterUserRequest) (*models.StaffUser, error)
	LoginUser(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	GetUserProfile(ctx context.Context, userID uuid.UUID) (*models.StaffUser, error)
	EnsureBootstrapAdmin(ctx context.Context, username, password string) (bool, error)
}

// --- authService Implementation ---
type authService struct {
	authRepo repositories.AuthRepository
	tokens   *utils.TokenIssuer
	limiter  *rate.Limiter
	hashCost int
}

// NewAuthService creates a new instance of AuthService.
// A nil limiter disables login throttling.
func NewAuthService(authRepo repositories.AuthRepository, tokens *utils.TokenIssuer, limiter *rate.Limiter) AuthService {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	return &authService{
		authRepo: authRepo,
		tokens:   tokens,
		limiter:  limiter,
		hashCost: bcrypt.DefaultCost,
	}
}

func normalizeRole(role string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "", models.RoleStaff:
		return models.RoleStaff, nil
	case models.RoleAdmin:
		return models.RoleAdmin, nil
	}
	return "", fmt.Errorf("%w: '%s'", ErrRoleNotFound, role)
}

// RegisterUser creates a staff account with a bcrypt-hashed password.
func (s *authService) RegisterUser(ctx context.Context, req RegisterUserRequest) (*models.StaffUser, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username cannot be empty", ErrValidation)
	}
	if !utils.IsValidPasswordLength(req.Password, 8) {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	role, err := normalizeRole(req.Role)
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.StaffUser{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hashed),
		FullName:     utils.NewNullString(strings.TrimSpace(req.FullName)),
		Role:         role,
		IsActive:     true,
	}
	if err := s.authRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrUsernameExists
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

// LoginUser checks credentials and issues an access token.
func (s *authService) LoginUser(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if !s.limiter.Allow() {
		return nil, ErrTooManyAttempts
	}

	user, err := s.authRepo.FindUserByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}

	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	user.PasswordHash = ""
	return &AuthResponse{
		User:        user,
		AccessToken: accessToken,
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
	}, nil
}

// GetUserProfile retrieves a user's profile by their ID.
func (s *authService) GetUserProfile(ctx context.Context, userID uuid.UUID) (*models.StaffUser, error) {
	user, err := s.authRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to retrieve user profile: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}

// EnsureBootstrapAdmin creates the first admin account when no staff exist yet.
// It reports whether an account was created.
func (s *authService) EnsureBootstrapAdmin(ctx context.Context, username, password string) (bool, error) {
	if utils.IsEmpty(username) || password == "" {
		return false, nil
	}
	count, err := s.authRepo.CountUsers(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count staff users: %w", err)
	}
	if count > 0 {
		return false, nil
	}
	if _, err := s.RegisterUser(ctx, RegisterUserRequest{
		Username: username,
		Password: password,
		FullName: "Administrator",
		Role:     models.RoleAdmin,
	}); err != nil {
		return false, err
	}
	utils.LogInfo("Bootstrap admin created", map[string]interface{}{"username": username})
	return true, nil
}
