package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/quietpage/quietpage/internal/domain"
	"github.com/quietpage/quietpage/internal/transport/wire"
)

const reasonUnreachable = "Could not reach the server. Please try again."

// Session is the result of a successful sign-in.
type Session struct {
	User   *domain.User
	Tokens Tokens
}

// Register creates a password account and signs it in.
func (c *Client) Register(ctx context.Context, email, password, displayName string) (*Session, error) {
	return c.authenticate(ctx, "/auth/register", wire.RegisterRequest{
		Email:       email,
		Password:    password,
		DisplayName: displayName,
	})
}

// LoginPassword signs in with email and password.
func (c *Client) LoginPassword(ctx context.Context, email, password string) (*Session, error) {
	return c.authenticate(ctx, "/auth/login/password", wire.PasswordLoginRequest{
		Email:    email,
		Password: password,
	})
}

// LoginFederated exchanges a provider authorization code for a session.
func (c *Client) LoginFederated(ctx context.Context, provider, code string) (*Session, error) {
	return c.authenticate(ctx, "/auth/login", wire.LoginRequest{
		Provider: provider,
		Code:     code,
	})
}

// Refresh rotates the refresh token. The new pair replaces the client's
// tokens.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	return c.authenticate(ctx, "/auth/refresh", wire.RefreshRequest{RefreshToken: refreshToken})
}

// Logout revokes every refresh token of the signed-in user and forgets the
// local pair.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, request{method: http.MethodPost, path: "/auth/logout"})
	c.SetTokens(Tokens{})
	return authFailure(err)
}

// Me returns the signed-in user.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var out wire.User
	if err := c.do(ctx, request{method: http.MethodGet, path: "/auth/me", out: &out}); err != nil {
		return nil, authFailure(err)
	}
	return out.ToDomain(), nil
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (*Session, error) {
	var out wire.AuthResponse
	err := c.do(ctx, request{
		method:    http.MethodPost,
		path:      path,
		body:      body,
		out:       &out,
		anonymous: true,
	})
	if err != nil {
		return nil, authFailure(err)
	}

	tokens := Tokens{Access: out.AccessToken, Refresh: out.RefreshToken}
	c.SetTokens(tokens)
	return &Session{User: out.User.ToDomain(), Tokens: tokens}, nil
}

// authFailure turns anything that is not already an auth or validation error
// into an AuthError, so sign-in screens always have a reason to show.
func authFailure(err error) error {
	if err == nil {
		return nil
	}
	var ae *domain.AuthError
	if errors.As(err, &ae) {
		return ae
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrAlreadyExists) {
		return domain.NewAuthError("An account with this email already exists.", domain.ErrAlreadyExists)
	}
	return domain.NewAuthError(reasonUnreachable, err)
}
