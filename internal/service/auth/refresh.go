package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/quietpage/quietpage/internal/auth"
	"github.com/quietpage/quietpage/internal/domain"
)

// Refresh rotates a refresh token: the presented one is revoked and a new
// pair is issued. Unknown, revoked or expired tokens fail with an AuthError;
// presenting a revoked token also ends all of the user's sessions.
func (s *Service) Refresh(ctx context.Context, input RefreshInput) (*AuthResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash := auth.HashToken(input.RefreshToken)

	token, err := s.tokens.GetByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "unknown refresh token presented")
			return nil, domain.NewAuthError(reasonSessionExpired, nil)
		}
		return nil, fmt.Errorf("auth.Refresh get token: %w", err)
	}

	if token.IsRevoked() {
		// A rotated token came back: whoever holds the newer one may be an
		// attacker, so every session of the user ends.
		s.log.WarnContext(ctx, "revoked refresh token replayed",
			slog.String("user_id", token.UserID.String()))
		if err := s.tokens.RevokeAllByUser(ctx, token.UserID); err != nil {
			return nil, fmt.Errorf("auth.Refresh revoke sessions: %w", err)
		}
		return nil, domain.NewAuthError(reasonSessionExpired, nil)
	}
	if token.IsExpired(s.now()) {
		return nil, domain.NewAuthError(reasonSessionExpired, nil)
	}

	user, err := s.users.GetByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "refresh for deleted user",
				slog.String("user_id", token.UserID.String()))
			return nil, domain.NewAuthError(reasonSessionExpired, nil)
		}
		return nil, fmt.Errorf("auth.Refresh get user: %w", err)
	}

	if err := s.tokens.RevokeByID(ctx, token.ID); err != nil {
		return nil, fmt.Errorf("auth.Refresh revoke token: %w", err)
	}

	result, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("auth.Refresh issue tokens: %w", err)
	}
	return result, nil
}
