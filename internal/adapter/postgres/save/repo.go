// Package save implements the bookmark repository using PostgreSQL.
package save

import (
	"context"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/quietpage/quietpage/internal/adapter/postgres"
	"github.com/quietpage/quietpage/internal/domain"
)

const table = "saves"

var columns = []string{
	"id", "user_id", "story_id", "saved_at", "title", "type",
	"author_name", "author_handle", "excerpt", "story_updated_at",
}

type row struct {
	ID             uuid.UUID `db:"id"`
	UserID         uuid.UUID `db:"user_id"`
	StoryID        uuid.UUID `db:"story_id"`
	SavedAt        time.Time `db:"saved_at"`
	Title          string    `db:"title"`
	Type           string    `db:"type"`
	AuthorName     string    `db:"author_name"`
	AuthorHandle   string    `db:"author_handle"`
	Excerpt        string    `db:"excerpt"`
	StoryUpdatedAt time.Time `db:"story_updated_at"`
}

func (r row) toDomain() domain.Save {
	return domain.Save{
		ID:           r.ID,
		UserID:       r.UserID,
		StoryID:      r.StoryID,
		SavedAt:      r.SavedAt,
		Title:        r.Title,
		Type:         domain.WorkType(r.Type),
		AuthorName:   r.AuthorName,
		AuthorHandle: r.AuthorHandle,
		Excerpt:      r.Excerpt,
		UpdatedAt:    r.StoryUpdatedAt,
	}
}

// Repo provides bookmark persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new save repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// List returns the user's saves, optionally narrowed to one story,
// newest first.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, storyID uuid.UUID) ([]domain.Save, error) {
	where := squirrel.Eq{"user_id": userID}
	if storyID != uuid.Nil {
		where["story_id"] = storyID
	}

	q := postgres.Builder().
		Select(columns...).
		From(table).
		Where(where).
		OrderBy("saved_at DESC")

	var rows []row
	if err := postgres.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, q); err != nil {
		return nil, postgres.MapError(err, "saves", "")
	}

	saves := make([]domain.Save, 0, len(rows))
	for _, rw := range rows {
		saves = append(saves, rw.toDomain())
	}
	return saves, nil
}

// Create inserts a bookmark snapshot. saved_at is assigned by the server.
func (r *Repo) Create(ctx context.Context, s domain.Save) (domain.Save, error) {
	id := s.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	storyUpdated := s.UpdatedAt
	if storyUpdated.IsZero() {
		storyUpdated = time.Now()
	}

	q := postgres.Builder().
		Insert(table).
		Columns("id", "user_id", "story_id", "title", "type", "author_name", "author_handle", "excerpt", "story_updated_at").
		Values(id, s.UserID, s.StoryID, s.Title, string(s.Type), s.AuthorName, s.AuthorHandle, s.Excerpt, storyUpdated).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	var res row
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &res, q); err != nil {
		return domain.Save{}, postgres.MapError(err, "save", id.String())
	}
	return res.toDomain(), nil
}

// Delete removes a save owned by userID. A missing or foreign save yields ErrNotFound.
func (r *Repo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	q := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"id": id, "user_id": userID})

	tag, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), q)
	if err != nil {
		return postgres.MapError(err, "save", id.String())
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "save", id.String())
	}
	return nil
}
