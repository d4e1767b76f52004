package models

import (
	"time"

	"github.com/google/uuid"
)

// MembershipType is the kind of subscription a client bought.
type MembershipType string

const (
	MembershipStandard  MembershipType = "STANDARD"
	MembershipPremium   MembershipType = "PREMIUM"
	MembershipUnlimited MembershipType = "UNLIMITED"
)

// Valid reports whether t is one of the known membership types.
func (t MembershipType) Valid() bool {
	switch t {
	case MembershipStandard, MembershipPremium, MembershipUnlimited:
		return true
	}
	return false
}

// Membership is a time-bounded subscription with a credit balance owned by a client.
type Membership struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	ClientID    uuid.UUID      `json:"client_id" db:"client_id"`
	ClientName  string         `json:"client_name,omitempty"` // For JOIN queries
	Type        MembershipType `json:"type" db:"type"`
	StartDate   time.Time      `json:"start_date" db:"start_date"`
	EndDate     time.Time      `json:"end_date" db:"end_date"`
	CreditCount int            `json:"credit_count" db:"credit_count"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
}

// CoversTime reports whether t falls inside [StartDate, EndDate).
func (m *Membership) CoversTime(t time.Time) bool {
	return !t.Before(m.StartDate) && t.Before(m.EndDate)
}
