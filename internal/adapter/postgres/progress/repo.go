// Package progress implements the reading-progress repository using PostgreSQL.
package progress

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/quietpage/quietpage/internal/adapter/postgres"
	"github.com/quietpage/quietpage/internal/domain"
)

const table = "reading_progress"

type row struct {
	UserID           uuid.UUID `db:"user_id"`
	StoryID          uuid.UUID `db:"story_id"`
	LastChapterIndex int       `db:"last_chapter_index"`
	UpdatedAt        time.Time `db:"updated_at"`
}

// Repo provides reading-progress persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new progress repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Get returns the progress record for (userID, storyID).
func (r *Repo) Get(ctx context.Context, userID, storyID uuid.UUID) (domain.ReadingProgress, error) {
	q := postgres.Builder().
		Select("user_id", "story_id", "last_chapter_index", "updated_at").
		From(table).
		Where(squirrel.Eq{"user_id": userID, "story_id": storyID})

	var res row
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &res, q); err != nil {
		return domain.ReadingProgress{}, postgres.MapError(err, "reading_progress", storyID.String())
	}

	return domain.ReadingProgress{
		UserID:           res.UserID,
		StoryID:          res.StoryID,
		LastChapterIndex: res.LastChapterIndex,
		UpdatedAt:        res.UpdatedAt,
	}, nil
}

// Upsert writes the chapter index under the composite key, replacing any
// previous record.
func (r *Repo) Upsert(ctx context.Context, p domain.ReadingProgress) error {
	q := postgres.Builder().
		Insert(table).
		Columns("user_id", "story_id", "last_chapter_index").
		Values(p.UserID, p.StoryID, p.LastChapterIndex).
		Suffix("ON CONFLICT (user_id, story_id) DO UPDATE SET last_chapter_index = EXCLUDED.last_chapter_index, updated_at = now()")

	if _, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), q); err != nil {
		return postgres.MapError(err, "reading_progress", p.StoryID.String())
	}
	return nil
}
