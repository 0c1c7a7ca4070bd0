// Package library keeps a reader's bookmarks and reading positions.
package library

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/quietpage/quietpage/internal/domain"
	"github.com/quietpage/quietpage/pkg/ctxutil"
)

type saveRepo interface {
	List(ctx context.Context, userID uuid.UUID, storyID uuid.UUID) ([]domain.Save, error)
	Create(ctx context.Context, s domain.Save) (domain.Save, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type progressRepo interface {
	Get(ctx context.Context, userID, storyID uuid.UUID) (domain.ReadingProgress, error)
	Upsert(ctx context.Context, p domain.ReadingProgress) error
}

type workReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Work, error)
}

// Service implements library operations for the signed-in user.
type Service struct {
	log      *slog.Logger
	saves    saveRepo
	progress progressRepo
	works    workReader
}

// NewService creates a library service.
func NewService(logger *slog.Logger, saves saveRepo, progress progressRepo, works workReader) *Service {
	return &Service{
		log:      logger.With("service", "library"),
		saves:    saves,
		progress: progress,
		works:    works,
	}
}

// ListSaves returns the caller's bookmarks, newest first. A non-nil storyID
// narrows the list to bookmarks of that work.
func (s *Service) ListSaves(ctx context.Context, storyID uuid.UUID) ([]domain.Save, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	saves, err := s.saves.List(ctx, userID, storyID)
	if err != nil {
		return nil, fmt.Errorf("library.ListSaves: %w", domain.NewStoreError("query saves", err))
	}
	return saves, nil
}

// CreateSave bookmarks save.StoryID for the caller. The display snapshot is
// taken from the stored work, not from the request.
func (s *Service) CreateSave(ctx context.Context, save domain.Save) (domain.Save, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Save{}, domain.ErrUnauthorized
	}
	if save.StoryID == uuid.Nil {
		return domain.Save{}, domain.NewValidationError("storyId", "required")
	}

	w, err := s.visibleWork(ctx, userID, save.StoryID)
	if err != nil {
		return domain.Save{}, fmt.Errorf("library.CreateSave: %w", err)
	}

	created, err := s.saves.Create(ctx, domain.NewSave(userID, w))
	if err != nil {
		return domain.Save{}, fmt.Errorf("library.CreateSave: %w", domain.NewStoreError("create save", err))
	}

	s.log.InfoContext(ctx, "work saved to library",
		slog.String("user_id", userID.String()),
		slog.String("work_id", w.ID.String()))

	return created, nil
}

// DeleteSave removes one of the caller's bookmarks.
func (s *Service) DeleteSave(ctx context.Context, id uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.saves.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("library.DeleteSave: %w", domain.NewStoreError("delete save", err))
	}

	s.log.InfoContext(ctx, "save removed",
		slog.String("user_id", userID.String()),
		slog.String("save_id", id.String()))

	return nil
}

// GetProgress returns where the caller stopped reading a work.
// ErrNotFound means the caller never opened it.
func (s *Service) GetProgress(ctx context.Context, storyID uuid.UUID) (domain.ReadingProgress, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ReadingProgress{}, domain.ErrUnauthorized
	}

	p, err := s.progress.Get(ctx, userID, storyID)
	if err != nil {
		return domain.ReadingProgress{}, fmt.Errorf("library.GetProgress: %w", domain.NewStoreError("load progress", err))
	}
	return p, nil
}

// UpsertProgress records the chapter the caller is reading.
func (s *Service) UpsertProgress(ctx context.Context, storyID uuid.UUID, chapterIndex int) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if chapterIndex < 0 {
		return domain.NewValidationError("lastChapterIndex", "must not be negative")
	}

	w, err := s.visibleWork(ctx, userID, storyID)
	if err != nil {
		return fmt.Errorf("library.UpsertProgress: %w", err)
	}
	if chapterIndex >= len(w.Chapters) {
		return domain.NewValidationError("lastChapterIndex", "out of range")
	}

	err = s.progress.Upsert(ctx, domain.ReadingProgress{
		UserID:           userID,
		StoryID:          storyID,
		LastChapterIndex: chapterIndex,
	})
	if err != nil {
		return fmt.Errorf("library.UpsertProgress: %w", domain.NewStoreError("save progress", err))
	}
	return nil
}

// visibleWork loads a work the user may read: any published work, or their
// own draft.
func (s *Service) visibleWork(ctx context.Context, userID, id uuid.UUID) (*domain.Work, error) {
	w, err := s.works.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewStoreError("load work", err)
	}
	if !w.IsPublished() && !w.IsAuthor(userID) {
		return nil, domain.ErrNotFound
	}
	return w, nil
}
