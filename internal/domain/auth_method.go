package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuthMethodType represents the type of authentication credential.
type AuthMethodType string

const (
	AuthMethodPassword AuthMethodType = "password"
	AuthMethodGoogle   AuthMethodType = "google"
)

func (m AuthMethodType) String() string { return string(m) }

// IsValid returns true if the method type is a known value.
func (m AuthMethodType) IsValid() bool {
	switch m {
	case AuthMethodPassword, AuthMethodGoogle:
		return true
	}
	return false
}

// IsFederated returns true if the credential comes from an external provider.
func (m AuthMethodType) IsFederated() bool {
	return m == AuthMethodGoogle
}

// AuthMethod is one credential of a user. A user signed up with a password
// may later link Google, and the other way round.
type AuthMethod struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Method       AuthMethodType
	ProviderID   *string
	PasswordHash *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
