// Package profile resolves public author pages from a handle.
package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/quietpage/quietpage/internal/config"
	"github.com/quietpage/quietpage/internal/domain"
	"github.com/quietpage/quietpage/pkg/ctxutil"
)

type userRepo interface {
	GetByHandle(ctx context.Context, handle string) (*domain.User, error)
}

type workRepo interface {
	List(ctx context.Context, f domain.WorkFilter) ([]domain.Work, error)
}

// resolver is one strategy for finding an author. It returns ErrNotFound
// when the strategy has no match so the next one can be tried.
type resolver struct {
	name    string
	resolve func(ctx context.Context, handle string) (domain.AuthorProfile, error)
}

// Service implements profile operations.
type Service struct {
	log       *slog.Logger
	users     userRepo
	works     workRepo
	cfg       config.FeedConfig
	resolvers []resolver
}

// NewService creates a profile service.
func NewService(logger *slog.Logger, users userRepo, works workRepo, cfg config.FeedConfig) *Service {
	s := &Service{
		log:   logger.With("service", "profile"),
		users: users,
		works: works,
		cfg:   cfg,
	}
	// Older works were written before handles were stored on users, so the
	// work snapshots are searched when the users lookup misses.
	s.resolvers = []resolver{
		{name: "user_handle", resolve: s.byUserHandle},
		{name: "work_author_handle", resolve: s.byWorkSnapshot(func(a domain.AuthorSnapshot) string {
			return strings.ToLower(a.Handle)
		})},
		{name: "work_author_email", resolve: s.byWorkSnapshot(func(a domain.AuthorSnapshot) string {
			return domain.EmailLocalPart(a.Email)
		})},
	}
	return s
}

// ResolveAuthor finds the author behind handle. The first resolver that
// matches wins; ErrNotFound when none does.
func (s *Service) ResolveAuthor(ctx context.Context, handle string) (domain.AuthorProfile, error) {
	handle = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(handle), "@"))
	if handle == "" {
		return domain.AuthorProfile{}, domain.NewValidationError("handle", "required")
	}

	for _, r := range s.resolvers {
		p, err := r.resolve(ctx, handle)
		if err == nil {
			s.log.DebugContext(ctx, "author resolved",
				slog.String("handle", handle),
				slog.String("resolver", r.name))
			return p, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return domain.AuthorProfile{}, fmt.Errorf("profile.ResolveAuthor %s: %w", r.name, err)
		}
	}
	return domain.AuthorProfile{}, fmt.Errorf("profile.ResolveAuthor: %w", domain.ErrNotFound)
}

// Stats counts an author's stories, poems and drafts. Drafts are only
// counted for the author themselves.
func (s *Service) Stats(ctx context.Context, authorID uuid.UUID) (domain.ProfileStats, error) {
	f := domain.WorkFilter{AuthorID: authorID}
	if userID, _ := ctxutil.UserIDFromCtx(ctx); userID != authorID {
		f.Status = domain.WorkStatusPublished
	}

	works, err := s.works.List(ctx, f)
	if err != nil {
		return domain.ProfileStats{}, fmt.Errorf("profile.Stats: %w", domain.NewStoreError("query", err))
	}
	return domain.CountStats(works), nil
}

// Works lists the published works of the author behind handle, most
// recently updated first.
func (s *Service) Works(ctx context.Context, handle string) ([]domain.Work, error) {
	p, err := s.ResolveAuthor(ctx, handle)
	if err != nil {
		return nil, err
	}

	works, err := s.works.List(ctx, domain.WorkFilter{AuthorID: p.ID, Status: domain.WorkStatusPublished})
	if err != nil {
		return nil, fmt.Errorf("profile.Works: %w", domain.NewStoreError("query", err))
	}
	domain.SortByUpdatedDesc(works)
	return works, nil
}

func (s *Service) byUserHandle(ctx context.Context, handle string) (domain.AuthorProfile, error) {
	u, err := s.users.GetByHandle(ctx, handle)
	if err != nil {
		return domain.AuthorProfile{}, err
	}
	return domain.ProfileFromUser(u), nil
}

// byWorkSnapshot scans recent published works for an author snapshot whose
// key matches the handle.
func (s *Service) byWorkSnapshot(key func(domain.AuthorSnapshot) string) func(context.Context, string) (domain.AuthorProfile, error) {
	return func(ctx context.Context, handle string) (domain.AuthorProfile, error) {
		works, err := s.works.List(ctx, domain.WorkFilter{
			Status: domain.WorkStatusPublished,
			Limit:  s.cfg.ScanLimit,
		})
		if err != nil {
			return domain.AuthorProfile{}, domain.NewStoreError("scan works", err)
		}
		domain.SortByUpdatedDesc(works)

		for i := range works {
			if key(works[i].Author) == handle {
				return domain.ProfileFromSnapshot(works[i].Author), nil
			}
		}
		return domain.AuthorProfile{}, domain.ErrNotFound
	}
}
