package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/quietpage/quietpage/internal/domain"
)

// WorkRepo stores works. List returns map order, like the hosted store.
type WorkRepo struct{ s *Store }

func (r *WorkRepo) Create(_ context.Context, w *domain.Work) (*domain.Work, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	created := w.Clone()
	if created.ID == uuid.Nil {
		created.ID = uuid.New()
	}
	if _, ok := r.s.works[created.ID]; ok {
		return nil, fmt.Errorf("work %s: %w", created.ID, domain.ErrAlreadyExists)
	}
	if created.Likes == nil {
		created.Likes = []uuid.UUID{}
	}
	created.LikesCount = len(created.Likes)
	created.CreatedAt = r.s.stamp(time.Time{})
	created.UpdatedAt = created.CreatedAt
	r.s.works[created.ID] = created
	return created.Clone(), nil
}

// Update merges p into the stored work. A missing id is not an error.
func (r *WorkRepo) Update(_ context.Context, id uuid.UUID, p domain.WorkPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	w, ok := r.s.works[id]
	if !ok {
		return nil
	}
	w.Apply(p)
	w.UpdatedAt = r.s.stamp(w.UpdatedAt)
	return nil
}

func (r *WorkRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.works, id)
	for sid, sv := range r.s.saves {
		if sv.StoryID == id {
			delete(r.s.saves, sid)
		}
	}
	for k := range r.s.progress {
		if k.story == id {
			delete(r.s.progress, k)
		}
	}
	return nil
}

func (r *WorkRepo) ToggleLike(_ context.Context, id, userID uuid.UUID) (bool, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	w, ok := r.s.works[id]
	if !ok {
		return false, 0, fmt.Errorf("work %s: %w", id, domain.ErrNotFound)
	}
	liked := w.ToggleLike(userID)
	return liked, w.LikesCount, nil
}

func (r *WorkRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Work, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	w, ok := r.s.works[id]
	if !ok {
		return nil, fmt.Errorf("work %s: %w", id, domain.ErrNotFound)
	}
	return w.Clone(), nil
}

func (r *WorkRepo) List(_ context.Context, f domain.WorkFilter) ([]domain.Work, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Work, 0)
	for _, w := range r.s.works {
		if !f.Matches(w) {
			continue
		}
		out = append(out, *w.Clone())
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}
