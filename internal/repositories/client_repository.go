package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"sport_club_backend/internal/models"

	"github.com/google/uuid"
)

// ClientRepository defines the interface for client-related database operations.
type ClientRepository interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, client *models.Client) (*models.Client, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	FindAll(ctx context.Context, page, pageSize int, searchTerm *string) ([]models.Client, int, error) // Clients, total count, error
}

type clientRepository struct {
	db SQLExecutor
}

// NewClientRepository creates a new instance of ClientRepository.
func NewClientRepository(db SQLExecutor) ClientRepository {
	return &clientRepository{db: db}
}

const clientColumns = `id, full_name, email, is_blocked, created_at, updated_at`

func scanClient(row scanner, client *models.Client, extra ...interface{}) error {
	var email sql.NullString
	dest := []interface{}{&client.ID, &client.FullName, &email, &client.IsBlocked, &client.CreatedAt, &client.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return err
	}
	client.Email = nil
	if email.Valid {
		client.Email = &email.String
	}
	return nil
}

// ExistsByEmail reports whether any client already uses email.
func (r *clientRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM clients WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%w: checking email %s: %v", ErrDatabaseError, email, err)
	}
	return exists, nil
}

// Save inserts the client or overwrites the stored row with the same id.
func (r *clientRepository) Save(ctx context.Context, client *models.Client) (*models.Client, error) {
	now := time.Now().UTC()
	if client.CreatedAt.IsZero() {
		client.CreatedAt = now
	}
	client.UpdatedAt = now

	query := `INSERT INTO clients (` + clientColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          ON CONFLICT (id) DO UPDATE SET
	              full_name = EXCLUDED.full_name,
	              email = EXCLUDED.email,
	              is_blocked = EXCLUDED.is_blocked,
	              updated_at = EXCLUDED.updated_at
	          RETURNING ` + clientColumns

	saved := &models.Client{}
	row := r.db.QueryRowContext(ctx, query,
		client.ID, client.FullName, client.Email, client.IsBlocked, client.CreatedAt, client.UpdatedAt)
	if err := scanClient(row, saved); err != nil {
		return nil, translatePQError(err, "saving client "+client.ID.String())
	}
	saved.Memberships = client.Memberships
	return saved, nil
}

// FindByID retrieves a client by their ID.
func (r *clientRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	client := &models.Client{}
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	if err := scanClient(r.db.QueryRowContext(ctx, query, id), client); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting client by ID %s: %v", ErrDatabaseError, id, err)
	}
	return client, nil
}

// FindAll retrieves a page of clients ordered by name with an optional search on name and email.
func (r *clientRepository) FindAll(ctx context.Context, page, pageSize int, searchTerm *string) ([]models.Client, int, error) {
	clients := []models.Client{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + clientColumns + `, COUNT(*) OVER() AS total_count FROM clients`)

	var args []interface{}
	argCount := 1

	if searchTerm != nil && strings.TrimSpace(*searchTerm) != "" {
		searchPattern := "%" + strings.ToLower(strings.TrimSpace(*searchTerm)) + "%"
		queryBuilder.WriteString(fmt.Sprintf(" WHERE (LOWER(full_name) LIKE $%d OR LOWER(COALESCE(email, '')) LIKE $%d)", argCount, argCount))
		args = append(args, searchPattern)
		argCount++
	}

	queryBuilder.WriteString(" ORDER BY full_name ASC, id ASC")

	if pageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, pageSize)
		argCount++
		if page > 0 {
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
			args = append(args, (page-1)*pageSize)
		}
	}

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying clients: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var client models.Client
		if err := scanClient(rows, &client, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning client: %v", ErrDatabaseError, err)
		}
		clients = append(clients, client)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating client rows: %v", ErrDatabaseError, err)
	}

	return clients, totalCount, nil
}
