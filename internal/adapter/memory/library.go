package memory

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/quietpage/quietpage/internal/domain"
)

// SaveRepo stores bookmarks.
type SaveRepo struct{ s *Store }

func (r *SaveRepo) List(_ context.Context, userID, storyID uuid.UUID) ([]domain.Save, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Save, 0)
	for _, sv := range r.s.saves {
		if sv.UserID != userID {
			continue
		}
		if storyID != uuid.Nil && sv.StoryID != storyID {
			continue
		}
		out = append(out, sv)
	}
	slices.SortFunc(out, func(a, b domain.Save) int { return b.SavedAt.Compare(a.SavedAt) })
	return out, nil
}

func (r *SaveRepo) Create(_ context.Context, sv domain.Save) (domain.Save, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.works[sv.StoryID]; !ok {
		return domain.Save{}, fmt.Errorf("save: work %s: %w", sv.StoryID, domain.ErrNotFound)
	}
	if sv.ID == uuid.Nil {
		sv.ID = uuid.New()
	}
	sv.SavedAt = r.s.stamp(time.Time{})
	if sv.UpdatedAt.IsZero() {
		sv.UpdatedAt = sv.SavedAt
	}
	r.s.saves[sv.ID] = sv
	return sv, nil
}

func (r *SaveRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sv, ok := r.s.saves[id]
	if !ok || sv.UserID != userID {
		return fmt.Errorf("save %s: %w", id, domain.ErrNotFound)
	}
	delete(r.s.saves, id)
	return nil
}

// ProgressRepo stores reading positions.
type ProgressRepo struct{ s *Store }

func (r *ProgressRepo) Get(_ context.Context, userID, storyID uuid.UUID) (domain.ReadingProgress, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.progress[progressKey{userID, storyID}]
	if !ok {
		return domain.ReadingProgress{}, fmt.Errorf("reading_progress %s: %w", storyID, domain.ErrNotFound)
	}
	return p, nil
}

func (r *ProgressRepo) Upsert(_ context.Context, p domain.ReadingProgress) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.works[p.StoryID]; !ok {
		return fmt.Errorf("reading_progress: work %s: %w", p.StoryID, domain.ErrNotFound)
	}
	key := progressKey{p.UserID, p.StoryID}
	p.UpdatedAt = r.s.stamp(r.s.progress[key].UpdatedAt)
	r.s.progress[key] = p
	return nil
}
