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

// Register creates a user with email + password authentication and signs
// them in. The handle is derived from the email local part.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.DisplayName = strings.TrimSpace(input.DisplayName)

	if err := input.Validate(s.cfg.PasswordMinLength); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.PasswordHashCost)
	if err != nil {
		return nil, fmt.Errorf("auth.Register hash password: %w", err)
	}
	hashStr := string(hash)

	createdUser, err := s.createUser(ctx,
		&domain.User{Email: input.Email, DisplayName: input.DisplayName},
		domain.AuthMethod{Method: domain.AuthMethodPassword, PasswordHash: &hashStr},
	)
	if err != nil {
		// Email uniqueness is enforced by the store.
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.NewAuthError(reasonEmailTaken, domain.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	result, err := s.issueTokens(ctx, createdUser)
	if err != nil {
		return nil, fmt.Errorf("auth.Register issue tokens: %w", err)
	}

	s.log.InfoContext(ctx, "user registered",
		slog.String("method", "password"),
		slog.String("user_id", createdUser.ID.String()),
		slog.String("handle", createdUser.Handle))

	return result, nil
}
