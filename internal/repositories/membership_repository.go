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

// MembershipRepository defines the interface for membership-related database operations.
type MembershipRepository interface {
	Save(ctx context.Context, membership *models.Membership) (*models.Membership, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Membership, error)
	FindByClientID(ctx context.Context, clientID uuid.UUID) ([]models.Membership, error)
}

type membershipRepository struct {
	db SQLExecutor
}

// NewMembershipRepository creates a new instance of MembershipRepository.
func NewMembershipRepository(db SQLExecutor) MembershipRepository {
	return &membershipRepository{db: db}
}

const membershipSelect = `
	SELECT m.id, m.client_id, COALESCE(c.full_name, ''), m.type, m.start_date, m.end_date, m.credit_count, m.created_at
	FROM memberships m
	LEFT JOIN clients c ON c.id = m.client_id`

func scanMembership(row scanner, m *models.Membership) error {
	var membershipType string
	if err := row.Scan(&m.ID, &m.ClientID, &m.ClientName, &membershipType,
		&m.StartDate, &m.EndDate, &m.CreditCount, &m.CreatedAt); err != nil {
		return err
	}
	m.Type = models.MembershipType(membershipType)
	return nil
}

// Save inserts the membership or overwrites the stored row with the same id.
func (r *membershipRepository) Save(ctx context.Context, membership *models.Membership) (*models.Membership, error) {
	if membership.CreatedAt.IsZero() {
		membership.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO memberships (id, client_id, type, start_date, end_date, credit_count, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          ON CONFLICT (id) DO UPDATE SET
	              client_id = EXCLUDED.client_id,
	              type = EXCLUDED.type,
	              start_date = EXCLUDED.start_date,
	              end_date = EXCLUDED.end_date,
	              credit_count = EXCLUDED.credit_count`

	_, err := r.db.ExecContext(ctx, query,
		membership.ID, membership.ClientID, string(membership.Type),
		membership.StartDate, membership.EndDate, membership.CreditCount, membership.CreatedAt)
	if err != nil {
		return nil, translatePQError(err, "saving membership "+membership.ID.String())
	}
	return r.FindByID(ctx, membership.ID)
}

// FindByID retrieves a membership together with its owner's name.
func (r *membershipRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Membership, error) {
	m := &models.Membership{}
	if err := scanMembership(r.db.QueryRowContext(ctx, membershipSelect+` WHERE m.id = $1`, id), m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting membership by ID %s: %v", ErrDatabaseError, id, err)
	}
	return m, nil
}

// FindByClientID lists a client's memberships, newest start date first.
func (r *membershipRepository) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]models.Membership, error) {
	rows, err := r.db.QueryContext(ctx, membershipSelect+` WHERE m.client_id = $1 ORDER BY m.start_date DESC, m.id ASC`, clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying memberships of client %s: %v", ErrDatabaseError, clientID, err)
	}
	defer rows.Close()

	memberships := []models.Membership{}
	for rows.Next() {
		var m models.Membership
		if err := scanMembership(rows, &m); err != nil {
			return nil, fmt.Errorf("%w: scanning membership: %v", ErrDatabaseError, err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating membership rows: %v", ErrDatabaseError, err)
	}
	return memberships, nil
}
