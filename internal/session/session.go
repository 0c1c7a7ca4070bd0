// Package session holds the signed-in user of a client and broadcasts
// sign-in and sign-out to observers.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/quietpage/quietpage/internal/adapter/api"
	"github.com/quietpage/quietpage/internal/domain"
	"github.com/quietpage/quietpage/internal/transport/wire"
)

// Local store keys.
const (
	KeyUser   = "writer_user"
	KeyTokens = "writer_tokens"
)

const reasonNameRequired = "Please enter your name."

// ---------------------------------------------------------------------------
// Consumer interfaces
// ---------------------------------------------------------------------------

type identity interface {
	LoginFederated(ctx context.Context, provider string, code string) (*api.Session, error)
	LoginPassword(ctx context.Context, email string, password string) (*api.Session, error)
	Logout(ctx context.Context) error
	Refresh(ctx context.Context, refreshToken string) (*api.Session, error)
	Register(ctx context.Context, email string, password string, displayName string) (*api.Session, error)
	SetTokens(t api.Tokens)
}

type kvStore interface {
	Delete(key string) error
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// Listener observes the current user. It receives nil after sign-out.
type Listener func(u *domain.User)

// State is the client's authentication state.
type State struct {
	log    *slog.Logger
	remote identity
	kv     kvStore

	mu        sync.RWMutex
	user      *domain.User
	listeners map[int]Listener
	nextID    int
}

// New creates the session state and hydrates the last-known user from the
// local store. The cached user is advisory until Restore confirms it.
func New(logger *slog.Logger, remote identity, kv kvStore) *State {
	s := &State{
		log:       logger.With("component", "session"),
		remote:    remote,
		kv:        kv,
		listeners: make(map[int]Listener),
	}
	s.user = s.cachedUser()
	return s
}

// CurrentUser returns the signed-in user or nil.
func (s *State) CurrentUser() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// OnChange registers l for every sign-in and sign-out. The returned func
// removes it.
func (s *State) OnChange(l Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// SignInWithPassword signs in with email and password.
func (s *State) SignInWithPassword(ctx context.Context, email, password string) error {
	sess, err := s.remote.LoginPassword(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return fmt.Errorf("session.SignInWithPassword: %w", err)
	}
	s.signedIn(ctx, sess)
	return nil
}

// SignInWithFederatedProvider completes a provider sign-in with the
// authorization code the provider redirected back with.
func (s *State) SignInWithFederatedProvider(ctx context.Context, provider, code string) error {
	sess, err := s.remote.LoginFederated(ctx, provider, code)
	if err != nil {
		return fmt.Errorf("session.SignInWithFederatedProvider: %w", err)
	}
	s.signedIn(ctx, sess)
	return nil
}

// SignUpWithPassword creates an account. A blank display name is rejected
// before anything is sent.
func (s *State) SignUpWithPassword(ctx context.Context, email, password, displayName string) error {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return domain.NewValidationError("displayName", reasonNameRequired)
	}

	sess, err := s.remote.Register(ctx, strings.TrimSpace(email), password, displayName)
	if err != nil {
		return fmt.Errorf("session.SignUpWithPassword: %w", err)
	}
	s.signedIn(ctx, sess)
	return nil
}

// SignOut revokes the session remotely and forgets it locally. Local state
// is cleared even when the remote call fails.
func (s *State) SignOut(ctx context.Context) error {
	remoteErr := s.remote.Logout(ctx)

	s.forget(ctx)
	s.log.InfoContext(ctx, "signed out")

	if remoteErr != nil {
		return fmt.Errorf("session.SignOut: %w", remoteErr)
	}
	return nil
}

// Restore resumes the session stored by a previous run by rotating its
// refresh token. Without stored tokens it only clears a stale cached user.
func (s *State) Restore(ctx context.Context) error {
	tokens, ok := s.storedTokens()
	if !ok || tokens.Refresh == "" {
		if s.CurrentUser() != nil {
			s.forget(ctx)
		}
		return nil
	}

	sess, err := s.remote.Refresh(ctx, tokens.Refresh)
	if err != nil {
		s.forget(ctx)
		return fmt.Errorf("session.Restore: %w", err)
	}
	s.signedIn(ctx, sess)
	return nil
}

// PersistTokens stores a rotated token pair. The API client calls it after a
// transparent refresh.
func (s *State) PersistTokens(t api.Tokens) {
	if err := s.writeJSON(KeyTokens, t); err != nil {
		s.log.Warn("persist tokens", slog.String("error", err.Error()))
	}
}

// ---------------------------------------------------------------------------
// Internals
// ---------------------------------------------------------------------------

func (s *State) signedIn(ctx context.Context, sess *api.Session) {
	s.remote.SetTokens(sess.Tokens)

	if err := s.writeJSON(KeyUser, wire.FromUser(sess.User)); err != nil {
		s.log.WarnContext(ctx, "cache user", slog.String("error", err.Error()))
	}
	s.PersistTokens(sess.Tokens)

	s.set(sess.User)
	s.log.InfoContext(ctx, "signed in", slog.String("user_id", sess.User.ID.String()))
}

func (s *State) forget(ctx context.Context) {
	s.remote.SetTokens(api.Tokens{})
	for _, key := range []string{KeyUser, KeyTokens} {
		if err := s.kv.Delete(key); err != nil {
			s.log.WarnContext(ctx, "clear local session", slog.String("key", key), slog.String("error", err.Error()))
		}
	}
	s.set(nil)
}

func (s *State) set(u *domain.User) {
	s.mu.Lock()
	s.user = u
	ls := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		ls = append(ls, l)
	}
	s.mu.Unlock()

	current := s.CurrentUser()
	for _, l := range ls {
		l(current)
	}
}

func (s *State) cachedUser() *domain.User {
	var u wire.User
	if !s.readJSON(KeyUser, &u) {
		return nil
	}
	return u.ToDomain()
}

func (s *State) storedTokens() (api.Tokens, bool) {
	var t api.Tokens
	return t, s.readJSON(KeyTokens, &t)
}

func (s *State) readJSON(key string, v any) bool {
	raw, err := s.kv.Get(key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Warn("read local store", slog.String("key", key), slog.String("error", err.Error()))
		}
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		s.log.Warn("decode local store", slog.String("key", key), slog.String("error", err.Error()))
		return false
	}
	return true
}

func (s *State) writeJSON(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.kv.Set(key, raw)
}
