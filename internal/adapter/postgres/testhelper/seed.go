package testhelper

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quietpage/quietpage/internal/domain"
)

func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser inserts a user with a unique email and handle.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:          uuid.New(),
		Email:       "writer-" + suffix + "@example.com",
		Handle:      "writer-" + suffix,
		DisplayName: "Writer " + suffix,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, email, handle, display_name, avatar_url, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Email, user.Handle, user.DisplayName, user.AvatarURL, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: seed user: %v", err)
	}

	return user
}

// SeedWork inserts a single-chapter work authored by author.
func SeedWork(t *testing.T, pool *pgxpool.Pool, author domain.User, status domain.WorkStatus, typ domain.WorkType) domain.Work {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	w := domain.Work{
		ID:        uuid.New(),
		Title:     "Seeded " + uniqueSuffix(),
		Type:      typ,
		Status:    status,
		Chapters:  []domain.Chapter{{ID: "1", Title: "Chapter 1", Subtitle: "The Beginning", Content: "<p>Once.</p>"}},
		Author:    author.Snapshot(),
		Likes:     []uuid.UUID{},
		Excerpt:   "Once....",
		ReadTime:  "1 min",
		CreatedAt: now,
		UpdatedAt: now,
	}

	chapters, err := json.Marshal(w.Chapters)
	if err != nil {
		t.Fatalf("testhelper: marshal chapters: %v", err)
	}

	_, err = pool.Exec(context.Background(),
		`INSERT INTO works (id, title, type, status, chapters, author_id, author_name, author_handle,
		                    author_email, author_avatar, excerpt, read_time, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		w.ID, w.Title, string(w.Type), string(w.Status), chapters, w.Author.ID, w.Author.Name, w.Author.Handle,
		w.Author.Email, w.Author.Avatar, w.Excerpt, w.ReadTime, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: seed work: %v", err)
	}

	return w
}
