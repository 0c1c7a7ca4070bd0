// Package work implements the work document model: creating, saving,
// publishing and listing stories, poems and blog posts.
package work

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/quietpage/quietpage/internal/config"
	"github.com/quietpage/quietpage/internal/domain"
	"github.com/quietpage/quietpage/internal/richtext"
	"github.com/quietpage/quietpage/pkg/ctxutil"
)

type workRepo interface {
	Create(ctx context.Context, w *domain.Work) (*domain.Work, error)
	Update(ctx context.Context, id uuid.UUID, p domain.WorkPatch) error
	Delete(ctx context.Context, id uuid.UUID) error
	ToggleLike(ctx context.Context, id, userID uuid.UUID) (bool, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Work, error)
	List(ctx context.Context, f domain.WorkFilter) ([]domain.Work, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// feedCache holds pages of the published feed. It may be nil.
type feedCache interface {
	Get(ctx context.Context, typ domain.WorkType, limit int) ([]domain.Work, bool, error)
	Set(ctx context.Context, typ domain.WorkType, limit int, works []domain.Work) error
	Invalidate(ctx context.Context) error
}

// Service implements work operations on behalf of the signed-in user.
type Service struct {
	log   *slog.Logger
	works workRepo
	users userRepo
	cache feedCache
	cfg   config.FeedConfig
	feed  singleflight.Group
}

// NewService creates a work service. cache may be nil.
func NewService(logger *slog.Logger, works workRepo, users userRepo, cache feedCache, cfg config.FeedConfig) *Service {
	return &Service{
		log:   logger.With("service", "work"),
		works: works,
		users: users,
		cache: cache,
		cfg:   cfg,
	}
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

// Create stores a new work authored by the caller and returns it with the
// store-assigned id and timestamps.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Work, error) {
	author, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	input.normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	w := &domain.Work{
		Title:    input.Title,
		Type:     input.Type,
		Status:   input.Status,
		Chapters: input.Chapters,
		Author:   author.Snapshot(),
		Likes:    []uuid.UUID{},
		Excerpt:  input.Excerpt,
		ReadTime: readTime(input.Chapters),
	}
	if w.IsPublished() && w.Excerpt == "" {
		w.Excerpt = richtext.Excerpt(richtext.PlainText(w.Chapters[0].Content))
	}

	created, err := s.works.Create(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("work.Create: %w", domain.NewStoreError("create", err))
	}

	if created.IsPublished() {
		s.invalidateFeed(ctx)
	}

	s.log.InfoContext(ctx, "work created",
		slog.String("user_id", author.ID.String()),
		slog.String("work_id", created.ID.String()),
		slog.String("status", created.Status.String()))

	return created, nil
}

// Save merges patch into the work. Only the author may save; the author
// snapshot is refreshed from the caller's profile on every save, and read
// time is recomputed whenever chapters change. Publishing without an excerpt
// derives one from the first chapter.
func (s *Service) Save(ctx context.Context, id uuid.UUID, patch domain.WorkPatch) error {
	author, err := s.caller(ctx)
	if err != nil {
		return err
	}

	if err := patch.Validate(); err != nil {
		return err
	}

	current, err := s.works.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("work.Save: %w", domain.NewStoreError("load", err))
	}
	if !current.IsAuthor(author.ID) {
		return fmt.Errorf("work.Save: %w", domain.ErrForbidden)
	}

	if patch.Title != nil {
		title := normalizeTitle(*patch.Title)
		patch.Title = &title
	}
	snapshot := author.Snapshot()
	patch.Author = &snapshot
	patch.ReadTime = nil
	if patch.Chapters != nil {
		rt := readTime(patch.Chapters)
		patch.ReadTime = &rt
	}

	publishing := patch.Status != nil && *patch.Status == domain.WorkStatusPublished
	if publishing && patch.Excerpt == nil {
		chapters := patch.Chapters
		if chapters == nil {
			chapters = current.Chapters
		}
		excerpt := richtext.Excerpt(richtext.PlainText(chapters[0].Content))
		patch.Excerpt = &excerpt
	}

	if err := s.works.Update(ctx, id, patch); err != nil {
		return fmt.Errorf("work.Save: %w", domain.NewStoreError("save", err))
	}

	// The feed shows titles and excerpts, so any write touching a published
	// work or changing visibility drops it.
	if current.IsPublished() || publishing {
		s.invalidateFeed(ctx)
	}

	s.log.InfoContext(ctx, "work saved",
		slog.String("user_id", author.ID.String()),
		slog.String("work_id", id.String()))

	return nil
}

// Publish is Save with status published.
func (s *Service) Publish(ctx context.Context, id uuid.UUID, patch domain.WorkPatch) error {
	status := domain.WorkStatusPublished
	patch.Status = &status
	return s.Save(ctx, id, patch)
}

// Unpublish returns a published work to the author's drafts.
func (s *Service) Unpublish(ctx context.Context, id uuid.UUID) error {
	status := domain.WorkStatusDraft
	return s.Save(ctx, id, domain.WorkPatch{Status: &status})
}

// Delete removes a work permanently. Only the author may delete.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	current, err := s.works.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("work.Delete: %w", domain.NewStoreError("load", err))
	}
	if !current.IsAuthor(userID) {
		return fmt.Errorf("work.Delete: %w", domain.ErrForbidden)
	}

	if err := s.works.Delete(ctx, id); err != nil {
		return fmt.Errorf("work.Delete: %w", domain.NewStoreError("delete", err))
	}

	if current.IsPublished() {
		s.invalidateFeed(ctx)
	}

	s.log.InfoContext(ctx, "work deleted",
		slog.String("user_id", userID.String()),
		slog.String("work_id", id.String()))

	return nil
}

// ToggleLike adds the caller to the work's likes, or removes them if they
// already liked it. It returns the new membership and count.
func (s *Service) ToggleLike(ctx context.Context, id uuid.UUID) (bool, int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return false, 0, domain.ErrUnauthorized
	}

	liked, count, err := s.works.ToggleLike(ctx, id, userID)
	if err != nil {
		return false, 0, fmt.Errorf("work.ToggleLike: %w", domain.NewStoreError("like", err))
	}

	s.log.InfoContext(ctx, "work like toggled",
		slog.String("user_id", userID.String()),
		slog.String("work_id", id.String()),
		slog.Bool("liked", liked))

	return liked, count, nil
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// Load returns a work. Drafts are visible to their author only; everybody
// else gets ErrNotFound.
func (s *Service) Load(ctx context.Context, id uuid.UUID) (*domain.Work, error) {
	w, err := s.works.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("work.Load: %w", domain.NewStoreError("load", err))
	}

	if !w.IsPublished() {
		userID, _ := ctxutil.UserIDFromCtx(ctx)
		if !w.IsAuthor(userID) {
			return nil, fmt.Errorf("work.Load: %w", domain.ErrNotFound)
		}
	}
	return w, nil
}

// ListByAuthor lists an author's works, most recently updated first. Other
// users only ever see the author's published works.
func (s *Service) ListByAuthor(ctx context.Context, authorID uuid.UUID, status domain.WorkStatus) ([]domain.Work, error) {
	if status != "" && !status.IsValid() {
		return nil, domain.NewValidationError("status", "unknown status")
	}

	userID, _ := ctxutil.UserIDFromCtx(ctx)
	if userID != authorID {
		if status == domain.WorkStatusDraft {
			return nil, fmt.Errorf("work.ListByAuthor: %w", domain.ErrForbidden)
		}
		status = domain.WorkStatusPublished
	}

	works, err := s.works.List(ctx, domain.WorkFilter{AuthorID: authorID, Status: status})
	if err != nil {
		return nil, fmt.Errorf("work.ListByAuthor: %w", domain.NewStoreError("query", err))
	}
	domain.SortByUpdatedDesc(works)
	return works, nil
}

// Feed returns up to limit published works of the given type (all types when
// empty), most recently updated first. The store picks which works make the
// page; ordering happens afterwards.
func (s *Service) Feed(ctx context.Context, typ domain.WorkType, limit int) ([]domain.Work, error) {
	if typ != "" && !typ.IsValid() {
		return nil, domain.NewValidationError("type", "unknown work type")
	}
	if limit <= 0 || limit > s.cfg.Limit {
		limit = s.cfg.Limit
	}

	if s.cache != nil {
		works, ok, err := s.cache.Get(ctx, typ, limit)
		if err != nil {
			s.log.WarnContext(ctx, "feed cache read failed", slog.String("error", err.Error()))
		} else if ok {
			return works, nil
		}
	}

	key := fmt.Sprintf("%s:%d", typ, limit)
	v, err, _ := s.feed.Do(key, func() (any, error) {
		works, err := s.works.List(ctx, domain.WorkFilter{
			Status: domain.WorkStatusPublished,
			Type:   typ,
			Limit:  limit,
		})
		if err != nil {
			return nil, err
		}
		domain.SortByUpdatedDesc(works)

		if s.cache != nil {
			if err := s.cache.Set(ctx, typ, limit, works); err != nil {
				s.log.WarnContext(ctx, "feed cache write failed", slog.String("error", err.Error()))
			}
		}
		return works, nil
	})
	if err != nil {
		return nil, fmt.Errorf("work.Feed: %w", domain.NewStoreError("query", err))
	}
	return v.([]domain.Work), nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (s *Service) caller(ctx context.Context) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("work: load caller: %w", err)
	}
	return user, nil
}

func (s *Service) invalidateFeed(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.WarnContext(ctx, "feed cache invalidation failed", slog.String("error", err.Error()))
	}
}

func readTime(chapters []domain.Chapter) string {
	texts := make([]string, 0, len(chapters))
	for _, ch := range chapters {
		texts = append(texts, richtext.PlainText(ch.Content))
	}
	return richtext.ReadTime(strings.Join(texts, " "))
}

func normalizeTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.DefaultTitle
	}
	return title
}
