package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/quietpage/quietpage/internal/domain"
)

// LoginWithPassword signs a user in with email and password. Every rejection
// (unknown email, account without a password, wrong password) is the same
// AuthError and costs one bcrypt comparison, so neither the answer nor its
// timing tells which accounts exist.
func (s *Service) LoginWithPassword(ctx context.Context, input LoginPasswordInput) (*AuthResult, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, hash, err := s.passwordCredential(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("auth.LoginWithPassword: %w", err)
	}

	if hash == nil {
		_ = bcrypt.CompareHashAndPassword(s.decoyHash(), []byte(input.Password))
		return nil, domain.NewAuthError(reasonBadCredentials, nil)
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(input.Password)); err != nil {
		s.log.InfoContext(ctx, "password mismatch", slog.String("user_id", user.ID.String()))
		return nil, domain.NewAuthError(reasonBadCredentials, nil)
	}

	result, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("auth.LoginWithPassword issue tokens: %w", err)
	}

	s.log.InfoContext(ctx, "user signed in", slog.String("user_id", user.ID.String()), slog.String("method", "password"))
	return result, nil
}

// passwordCredential returns the user and their stored bcrypt hash. A nil
// hash with a nil error means there is nothing to compare against.
func (s *Service) passwordCredential(ctx context.Context, email string) (*domain.User, []byte, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("get user: %w", err)
	}

	am, err := s.authMethods.GetByUserAndMethod(ctx, user.ID, domain.AuthMethodPassword)
	if errors.Is(err, domain.ErrNotFound) {
		return user, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("get auth method: %w", err)
	}
	if am.PasswordHash == nil {
		return user, nil, nil
	}
	return user, []byte(*am.PasswordHash), nil
}

// decoyHash is compared against when there is no real hash.
func (s *Service) decoyHash() []byte {
	s.decoyOnce.Do(func() {
		cost := s.cfg.PasswordHashCost
		if cost < bcrypt.MinCost {
			cost = bcrypt.DefaultCost
		}
		s.decoy, _ = bcrypt.GenerateFromPassword([]byte("quietpage-decoy"), cost)
	})
	return s.decoy
}
