// Package work implements the Work repository using PostgreSQL.
// Chapters are stored as a jsonb array, likes as a uuid[] set.
package work

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/quietpage/quietpage/internal/adapter/postgres"
	"github.com/quietpage/quietpage/internal/domain"
)

const table = "works"

var columns = []string{
	"id", "title", "type", "status", "chapters",
	"author_id", "author_name", "author_handle", "author_email", "author_avatar",
	"likes", "likes_count", "excerpt", "read_time", "created_at", "updated_at",
}

// toggleLikeSQL flips membership and moves the counter in one statement.
// SET expressions see the old row, RETURNING sees the new one.
const toggleLikeSQL = `
UPDATE works SET
  likes = CASE WHEN $2::uuid = ANY(likes) THEN array_remove(likes, $2::uuid) ELSE array_append(likes, $2::uuid) END,
  likes_count = CASE WHEN $2::uuid = ANY(likes) THEN GREATEST(likes_count - 1, 0) ELSE likes_count + 1 END
WHERE id = $1
RETURNING $2::uuid = ANY(likes) AS liked, likes_count`

type row struct {
	ID           uuid.UUID   `db:"id"`
	Title        string      `db:"title"`
	Type         string      `db:"type"`
	Status       string      `db:"status"`
	Chapters     []byte      `db:"chapters"`
	AuthorID     uuid.UUID   `db:"author_id"`
	AuthorName   string      `db:"author_name"`
	AuthorHandle string      `db:"author_handle"`
	AuthorEmail  string      `db:"author_email"`
	AuthorAvatar string      `db:"author_avatar"`
	Likes        []uuid.UUID `db:"likes"`
	LikesCount   int         `db:"likes_count"`
	Excerpt      string      `db:"excerpt"`
	ReadTime     string      `db:"read_time"`
	CreatedAt    time.Time   `db:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at"`
}

func (r row) toDomain() (*domain.Work, error) {
	var chapters []domain.Chapter
	if err := json.Unmarshal(r.Chapters, &chapters); err != nil {
		return nil, fmt.Errorf("decode chapters of work %s: %w", r.ID, err)
	}
	likes := r.Likes
	if likes == nil {
		likes = []uuid.UUID{}
	}

	return &domain.Work{
		ID:       r.ID,
		Title:    r.Title,
		Type:     domain.WorkType(r.Type),
		Status:   domain.WorkStatus(r.Status),
		Chapters: chapters,
		Author: domain.AuthorSnapshot{
			ID:     r.AuthorID,
			Name:   r.AuthorName,
			Handle: r.AuthorHandle,
			Email:  r.AuthorEmail,
			Avatar: r.AuthorAvatar,
		},
		Likes:      likes,
		LikesCount: r.LikesCount,
		Excerpt:    r.Excerpt,
		ReadTime:   r.ReadTime,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}, nil
}

// Repo provides work persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new work repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

// Create inserts w with server-assigned timestamps and returns the stored work.
// A zero ID is replaced with a fresh one.
func (r *Repo) Create(ctx context.Context, w *domain.Work) (*domain.Work, error) {
	id := w.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	chapters, err := json.Marshal(w.Chapters)
	if err != nil {
		return nil, fmt.Errorf("encode chapters: %w", err)
	}
	likes := w.Likes
	if likes == nil {
		likes = []uuid.UUID{}
	}

	q := postgres.Builder().
		Insert(table).
		Columns(
			"id", "title", "type", "status", "chapters",
			"author_id", "author_name", "author_handle", "author_email", "author_avatar",
			"likes", "likes_count", "excerpt", "read_time",
		).
		Values(
			id, w.Title, string(w.Type), string(w.Status), chapters,
			w.Author.ID, w.Author.Name, w.Author.Handle, w.Author.Email, w.Author.Avatar,
			likes, len(likes), w.Excerpt, w.ReadTime,
		).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	var res row
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &res, q); err != nil {
		return nil, postgres.MapError(err, "work", id.String())
	}
	return res.toDomain()
}

// Update merges the non-nil fields of p into the stored work and advances
// updated_at. An id with no row is not an error.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, p domain.WorkPatch) error {
	q := postgres.Builder().
		Update(table).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id})

	if p.Title != nil {
		q = q.Set("title", *p.Title)
	}
	if p.Type != nil {
		q = q.Set("type", string(*p.Type))
	}
	if p.Status != nil {
		q = q.Set("status", string(*p.Status))
	}
	if p.Chapters != nil {
		chapters, err := json.Marshal(p.Chapters)
		if err != nil {
			return fmt.Errorf("encode chapters: %w", err)
		}
		q = q.Set("chapters", chapters)
	}
	if p.Author != nil {
		q = q.SetMap(map[string]any{
			"author_id":     p.Author.ID,
			"author_name":   p.Author.Name,
			"author_handle": p.Author.Handle,
			"author_email":  p.Author.Email,
			"author_avatar": p.Author.Avatar,
		})
	}
	if p.Excerpt != nil {
		q = q.Set("excerpt", *p.Excerpt)
	}
	if p.ReadTime != nil {
		q = q.Set("read_time", *p.ReadTime)
	}

	if _, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), q); err != nil {
		return postgres.MapError(err, "work", id.String())
	}
	return nil
}

// Delete removes the work. Deleting a missing work is not an error.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.Builder().Delete(table).Where(squirrel.Eq{"id": id})

	if _, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), q); err != nil {
		return postgres.MapError(err, "work", id.String())
	}
	return nil
}

// ToggleLike adds userID to likes (and increments the counter) or removes
// it (and decrements), atomically. It returns the new membership and count.
func (r *Repo) ToggleLike(ctx context.Context, id, userID uuid.UUID) (bool, int, error) {
	var (
		liked bool
		count int
	)
	err := postgres.QuerierFromCtx(ctx, r.db).
		QueryRow(ctx, toggleLikeSQL, id, userID).
		Scan(&liked, &count)
	if err != nil {
		return false, 0, postgres.MapError(err, "work", id.String())
	}
	return liked, count, nil
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// GetByID returns a work by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Work, error) {
	q := postgres.Builder().Select(columns...).From(table).Where(squirrel.Eq{"id": id})

	var res row
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &res, q); err != nil {
		return nil, postgres.MapError(err, "work", id.String())
	}
	return res.toDomain()
}

// List returns works matching f. Rows come back in no particular order.
func (r *Repo) List(ctx context.Context, f domain.WorkFilter) ([]domain.Work, error) {
	where := squirrel.Eq{}
	if f.AuthorID != uuid.Nil {
		where["author_id"] = f.AuthorID
	}
	if f.Status != "" {
		where["status"] = string(f.Status)
	}
	if f.Type != "" {
		where["type"] = string(f.Type)
	}

	q := postgres.Builder().Select(columns...).From(table)
	if len(where) > 0 {
		q = q.Where(where)
	}
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}

	var rows []row
	if err := postgres.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, q); err != nil {
		return nil, postgres.MapError(err, "works", "")
	}

	works := make([]domain.Work, 0, len(rows))
	for _, rw := range rows {
		w, err := rw.toDomain()
		if err != nil {
			return nil, err
		}
		works = append(works, *w)
	}
	return works, nil
}
