// Package memory is an in-process implementation of every store the service
// needs. It backs store.driver=memory, demos and handler tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quietpage/quietpage/internal/domain"
)

type progressKey struct {
	user  uuid.UUID
	story uuid.UUID
}

// Store holds all records behind one RWMutex. Values are copied in and out
// so callers never share memory with the store.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	users       map[uuid.UUID]domain.User
	authMethods map[uuid.UUID]domain.AuthMethod
	tokens      map[uuid.UUID]domain.RefreshToken
	works       map[uuid.UUID]*domain.Work
	saves       map[uuid.UUID]domain.Save
	progress    map[progressKey]domain.ReadingProgress
}

// New creates an empty store.
func New() *Store {
	return &Store{
		now:         time.Now,
		users:       make(map[uuid.UUID]domain.User),
		authMethods: make(map[uuid.UUID]domain.AuthMethod),
		tokens:      make(map[uuid.UUID]domain.RefreshToken),
		works:       make(map[uuid.UUID]*domain.Work),
		saves:       make(map[uuid.UUID]domain.Save),
		progress:    make(map[progressKey]domain.ReadingProgress),
	}
}

// stamp returns a timestamp strictly after prev, so updatedAt always advances.
func (s *Store) stamp(prev time.Time) time.Time {
	t := s.now().UTC()
	if !t.After(prev) {
		t = prev.Add(time.Microsecond)
	}
	return t
}

func (s *Store) Users() *UserRepo             { return &UserRepo{s: s} }
func (s *Store) AuthMethods() *AuthMethodRepo { return &AuthMethodRepo{s: s} }
func (s *Store) Tokens() *TokenRepo           { return &TokenRepo{s: s} }
func (s *Store) Works() *WorkRepo             { return &WorkRepo{s: s} }
func (s *Store) Saves() *SaveRepo             { return &SaveRepo{s: s} }
func (s *Store) Progress() *ProgressRepo      { return &ProgressRepo{s: s} }

// TxManager runs fn directly. Each repo call is atomic on its own, which is
// all the in-memory driver promises.
type TxManager struct{}

func (TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
