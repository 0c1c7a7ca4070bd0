package domain

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultDisplayName is used when the identity provider has no name.
	DefaultDisplayName = "Writer"
	// DefaultHandle is used when no email local part is available.
	DefaultHandle = "writer"
)

// User represents an authenticated application user.
type User struct {
	ID          uuid.UUID
	Email       string
	Handle      string
	DisplayName string
	AvatarURL   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ApplyDefaults fills in display name, avatar and handle when missing.
func (u *User) ApplyDefaults() {
	u.DisplayName = strings.TrimSpace(u.DisplayName)
	if u.DisplayName == "" {
		u.DisplayName = DefaultDisplayName
	}
	if u.AvatarURL == "" {
		u.AvatarURL = DefaultAvatarURL(u.DisplayName)
	}
	if u.Handle == "" {
		u.Handle = HandleFromEmail(u.Email)
	}
}

// Snapshot returns the author fields that are copied onto a Work at write time.
func (u *User) Snapshot() AuthorSnapshot {
	return AuthorSnapshot{
		ID:     u.ID,
		Name:   u.DisplayName,
		Handle: u.Handle,
		Email:  u.Email,
		Avatar: u.AvatarURL,
	}
}

// HandleFromEmail derives a handle from the local part of an email address.
func HandleFromEmail(email string) string {
	local := EmailLocalPart(email)
	if local == "" {
		return DefaultHandle
	}
	return local
}

// EmailLocalPart returns the lower-cased part before '@', or "" if there is none.
func EmailLocalPart(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	idx := strings.IndexByte(email, '@')
	if idx <= 0 {
		return ""
	}
	return email[:idx]
}

// DefaultAvatarURL builds a generated avatar for users without a picture.
func DefaultAvatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random"
}

// RefreshToken represents a hashed refresh token stored in the database.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// IsRevoked returns true if the token has been revoked.
func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsExpired returns true if the token has expired relative to now.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
