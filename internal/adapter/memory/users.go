package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quietpage/quietpage/internal/domain"
)

// UserRepo stores users.
type UserRepo struct{ s *Store }

func (r *UserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user: %w", domain.ErrNotFound)
}

// GetByHandle returns the oldest user with the handle.
func (r *UserRepo) GetByHandle(_ context.Context, handle string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var found *domain.User
	for _, u := range r.s.users {
		if u.Handle != handle {
			continue
		}
		if found == nil || u.CreatedAt.Before(found.CreatedAt) {
			u := u
			found = &u
		}
	}
	if found == nil {
		return nil, fmt.Errorf("user %s: %w", handle, domain.ErrNotFound)
	}
	return found, nil
}

func (r *UserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return nil, fmt.Errorf("user: %w", domain.ErrAlreadyExists)
		}
	}

	created := *u
	if created.ID == uuid.Nil {
		created.ID = uuid.New()
	}
	if _, ok := r.s.users[created.ID]; ok {
		return nil, fmt.Errorf("user %s: %w", created.ID, domain.ErrAlreadyExists)
	}
	created.CreatedAt = r.s.stamp(time.Time{})
	created.UpdatedAt = created.CreatedAt
	r.s.users[created.ID] = created
	return &created, nil
}

func (r *UserRepo) Update(_ context.Context, id uuid.UUID, name *string, avatarURL *string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	if name != nil {
		u.DisplayName = *name
	}
	if avatarURL != nil {
		u.AvatarURL = *avatarURL
	}
	u.UpdatedAt = r.s.stamp(u.UpdatedAt)
	r.s.users[id] = u
	return &u, nil
}

// AuthMethodRepo stores credentials.
type AuthMethodRepo struct{ s *Store }

func (r *AuthMethodRepo) GetByOAuth(_ context.Context, method domain.AuthMethodType, providerID string) (*domain.AuthMethod, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, am := range r.s.authMethods {
		if am.Method == method && am.ProviderID != nil && *am.ProviderID == providerID {
			return &am, nil
		}
	}
	return nil, fmt.Errorf("auth_method: %w", domain.ErrNotFound)
}

func (r *AuthMethodRepo) GetByUserAndMethod(_ context.Context, userID uuid.UUID, method domain.AuthMethodType) (*domain.AuthMethod, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, am := range r.s.authMethods {
		if am.UserID == userID && am.Method == method {
			return &am, nil
		}
	}
	return nil, fmt.Errorf("auth_method: %w", domain.ErrNotFound)
}

func (r *AuthMethodRepo) Create(_ context.Context, am *domain.AuthMethod) (*domain.AuthMethod, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[am.UserID]; !ok {
		return nil, fmt.Errorf("auth_method: %w", domain.ErrNotFound)
	}
	for _, existing := range r.s.authMethods {
		if existing.UserID == am.UserID && existing.Method == am.Method {
			return nil, fmt.Errorf("auth_method: %w", domain.ErrAlreadyExists)
		}
	}

	created := *am
	if created.ID == uuid.Nil {
		created.ID = uuid.New()
	}
	created.CreatedAt = r.s.stamp(time.Time{})
	created.UpdatedAt = created.CreatedAt
	r.s.authMethods[created.ID] = created
	return &created, nil
}

// TokenRepo stores refresh tokens.
type TokenRepo struct{ s *Store }

func (r *TokenRepo) Create(_ context.Context, t *domain.RefreshToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	created := *t
	if created.ID == uuid.Nil {
		created.ID = uuid.New()
	}
	created.CreatedAt = r.s.stamp(time.Time{})
	r.s.tokens[created.ID] = created
	return nil
}

func (r *TokenRepo) GetByHash(_ context.Context, hash string) (*domain.RefreshToken, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	now := r.s.now()
	for _, t := range r.s.tokens {
		if t.TokenHash == hash && !t.IsExpired(now) {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("refresh_token: %w", domain.ErrNotFound)
}

func (r *TokenRepo) RevokeByID(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if t, ok := r.s.tokens[id]; ok && t.RevokedAt == nil {
		now := r.s.now()
		t.RevokedAt = &now
		r.s.tokens[id] = t
	}
	return nil
}

func (r *TokenRepo) RevokeAllByUser(_ context.Context, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	for id, t := range r.s.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			t.RevokedAt = &now
			r.s.tokens[id] = t
		}
	}
	return nil
}

func (r *TokenRepo) DeleteExpired(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	n := 0
	for id, t := range r.s.tokens {
		if t.IsRevoked() || t.IsExpired(now) {
			delete(r.s.tokens, id)
			n++
		}
	}
	return n, nil
}
