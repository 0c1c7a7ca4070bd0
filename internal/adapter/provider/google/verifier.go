// Package google exchanges Google OAuth authorization codes for a verified
// identity, the federated sign-in path of the identity service.
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/quietpage/quietpage/internal/auth"
	"github.com/quietpage/quietpage/internal/config"
	"github.com/quietpage/quietpage/internal/domain"
)

const (
	defaultTokenURL    = "https://oauth2.googleapis.com/token"
	defaultUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	retryBackoff       = 500 * time.Millisecond
)

// Verifier exchanges Google OAuth authorization codes for user identity.
type Verifier struct {
	clientID     string
	clientSecret string
	redirectURI  string
	tokenURL     string
	userinfoURL  string
	httpClient   *http.Client
	log          *slog.Logger
}

// Option customizes a Verifier.
type Option func(*Verifier)

// WithEndpoints points the verifier at other token and userinfo URLs.
func WithEndpoints(tokenURL, userinfoURL string) Option {
	return func(v *Verifier) {
		v.tokenURL = tokenURL
		v.userinfoURL = userinfoURL
	}
}

// WithHTTPClient replaces the default 10s-timeout client.
func WithHTTPClient(c *http.Client) Option {
	return func(v *Verifier) { v.httpClient = c }
}

// NewVerifier creates a Google OAuth verifier from the auth config.
func NewVerifier(cfg config.AuthConfig, logger *slog.Logger, opts ...Option) *Verifier {
	v := &Verifier{
		clientID:     cfg.GoogleClientID,
		clientSecret: cfg.GoogleClientSecret,
		redirectURI:  cfg.GoogleRedirectURI,
		tokenURL:     defaultTokenURL,
		userinfoURL:  defaultUserinfoURL,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		log:          logger.With("adapter", "google_oauth"),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

type userinfoResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

var errUnavailable = errors.New("google unavailable")

// VerifyCode exchanges an authorization code for a verified identity.
// Every failure is a *domain.AuthError.
func (v *Verifier) VerifyCode(ctx context.Context, provider, code string) (*auth.OAuthIdentity, error) {
	if provider != "google" {
		return nil, domain.NewAuthError("Unsupported sign-in provider.", fmt.Errorf("provider %q", provider))
	}

	accessToken, err := v.exchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	info, err := v.fetchUserinfo(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	if !info.VerifiedEmail {
		return nil, domain.NewAuthError("Your Google email address is not verified.", nil)
	}

	identity := &auth.OAuthIdentity{
		Email:      info.Email,
		ProviderID: info.ID,
	}
	if info.Name != "" {
		identity.Name = &info.Name
	}
	if info.Picture != "" {
		identity.AvatarURL = &info.Picture
	}

	v.log.DebugContext(ctx, "google oauth success", slog.String("provider_id", info.ID))
	return identity, nil
}

func (v *Verifier) exchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", v.clientID)
	form.Set("client_secret", v.clientSecret)
	form.Set("redirect_uri", v.redirectURI)
	encoded := form.Encode()

	newReq := func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.tokenURL, strings.NewReader(encoded))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	}

	resp, err := v.doWithRetry(ctx, newReq)
	if err != nil {
		v.log.ErrorContext(ctx, "google token exchange failed", slog.String("error", err.Error()))
		return "", domain.NewAuthError("Google sign-in is unavailable. Please try again.", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", domain.NewAuthError("Google sign-in is unavailable. Please try again.", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		_ = json.Unmarshal(body, &errResp)
		v.log.ErrorContext(ctx, "google token exchange rejected",
			slog.Int("status", resp.StatusCode),
			slog.String("error", errResp.Error))

		if resp.StatusCode == http.StatusBadRequest {
			return "", domain.NewAuthError("The sign-in code is invalid or expired.", fmt.Errorf("token endpoint: %s", errResp.Error))
		}
		return "", domain.NewAuthError("Google sign-in is unavailable. Please try again.", errUnavailable)
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil || tok.AccessToken == "" {
		return "", domain.NewAuthError("Google sign-in is unavailable. Please try again.", fmt.Errorf("invalid token response"))
	}
	return tok.AccessToken, nil
}

func (v *Verifier) fetchUserinfo(ctx context.Context, accessToken string) (*userinfoResponse, error) {
	newReq := func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.userinfoURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+accessToken)
		return req, nil
	}

	resp, err := v.doWithRetry(ctx, newReq)
	if err != nil {
		v.log.ErrorContext(ctx, "google userinfo failed", slog.String("error", err.Error()))
		return nil, domain.NewAuthError("Google sign-in is unavailable. Please try again.", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		v.log.ErrorContext(ctx, "google userinfo rejected", slog.Int("status", resp.StatusCode))
		return nil, domain.NewAuthError("Google sign-in is unavailable. Please try again.", errUnavailable)
	}

	var info userinfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, domain.NewAuthError("Google sign-in is unavailable. Please try again.", fmt.Errorf("invalid userinfo response: %w", err))
	}
	if info.ID == "" || info.Email == "" {
		return nil, domain.NewAuthError("Google did not share an email address.", nil)
	}
	return &info, nil
}

// doWithRetry sends the request and retries once after a short backoff on
// network errors or 5xx answers.
func (v *Verifier) doWithRetry(ctx context.Context, newReq func() (*http.Request, error)) (*http.Response, error) {
	send := func() (*http.Response, error) {
		req, err := newReq()
		if err != nil {
			return nil, err
		}
		return v.httpClient.Do(req)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := send()
	if err == nil && resp.StatusCode < 500 {
		return resp, nil
	}
	if resp != nil {
		resp.Body.Close()
	}

	select {
	case <-time.After(retryBackoff):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return send()
}
