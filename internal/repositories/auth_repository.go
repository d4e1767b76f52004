package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sport_club_backend/internal/models"

	"github.com/google/uuid"
)

// AuthRepository defines the interface for staff account storage.
type AuthRepository interface {
	CreateUser(ctx context.Context, user *models.StaffUser) error
	FindUserByUsername(ctx context.Context, username string) (*models.StaffUser, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.StaffUser, error)
	CountUsers(ctx context.Context) (int, error)
}

// authRepository implements the AuthRepository interface.
type authRepository struct {
	db SQLExecutor
}

// NewAuthRepository creates a new instance of AuthRepository.
func NewAuthRepository(db SQLExecutor) AuthRepository {
	return &authRepository{db: db}
}

const staffColumns = `id, username, password_hash, full_name, role, is_active, created_at, updated_at`

func scanStaffUser(row scanner, user *models.StaffUser) error {
	var fullName sql.NullString
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &fullName,
		&user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return err
	}
	if fullName.Valid {
		user.FullName = &fullName.String
	}
	return nil
}

// CreateUser inserts a new staff account. The password must already be hashed.
func (r *authRepository) CreateUser(ctx context.Context, user *models.StaffUser) error {
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now

	query := `INSERT INTO staff_users (` + staffColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.PasswordHash, user.FullName,
		user.Role, user.IsActive, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return translatePQError(err, "creating staff user "+user.Username)
	}
	return nil
}

// FindUserByUsername retrieves a staff account, including its password hash, by username.
func (r *authRepository) FindUserByUsername(ctx context.Context, username string) (*models.StaffUser, error) {
	user := &models.StaffUser{}
	row := r.db.QueryRowContext(ctx, `SELECT `+staffColumns+` FROM staff_users WHERE username = $1`, username)
	if err := scanStaffUser(row, user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding user by username %s: %v", ErrDatabaseError, username, err)
	}
	return user, nil
}

// FindUserByID retrieves a staff account by id.
func (r *authRepository) FindUserByID(ctx context.Context, id uuid.UUID) (*models.StaffUser, error) {
	user := &models.StaffUser{}
	row := r.db.QueryRowContext(ctx, `SELECT `+staffColumns+` FROM staff_users WHERE id = $1`, id)
	if err := scanStaffUser(row, user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding user by ID %s: %v", ErrDatabaseError, id, err)
	}
	return user, nil
}

// CountUsers returns the number of staff accounts.
func (r *authRepository) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM staff_users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: counting staff users: %v", ErrDatabaseError, err)
	}
	return n, nil
}
