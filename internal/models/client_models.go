package models

import (
	"time"

	"github.com/google/uuid"
)

// Client represents a registered member of the sport club.
type Client struct {
	ID          uuid.UUID    `json:"id" db:"id"`
	FullName    string       `json:"full_name" db:"full_name"`
	Email       *string      `json:"email" db:"email"`
	IsBlocked   bool         `json:"is_blocked" db:"is_blocked"`
	Memberships []Membership `json:"memberships,omitempty"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}

// ClientState is the outcome of looking a client up for access decisions.
type ClientState string

const (
	ClientNotFound ClientState = "NOT_FOUND"
	ClientBlocked  ClientState = "BLOCKED"
	ClientActive   ClientState = "ACTIVE"
)
