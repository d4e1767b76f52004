package repositories

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestTranslatePQError(t *testing.T) {
	unique := &pq.Error{Code: "23505", Message: "duplicate key", Constraint: "clients_email_key"}
	foreign := &pq.Error{Code: "23503", Message: "missing parent", Constraint: "memberships_client_id_fkey"}
	other := errors.New("connection reset by peer")

	err := translatePQError(unique, "saving client")
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.Contains(t, err.Error(), "clients_email_key")

	assert.ErrorIs(t, translatePQError(foreign, "saving membership"), ErrForeignKey)

	err = translatePQError(other, "saving client")
	assert.ErrorIs(t, err, ErrDatabaseError)
	assert.NotErrorIs(t, err, ErrDuplicateKey)
	assert.Contains(t, err.Error(), "saving client")
}
