// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/quietpage/quietpage/internal/adapter/postgres"
	"github.com/quietpage/quietpage/internal/domain"
)

const table = "users"

var columns = []string{"id", "email", "handle", "display_name", "avatar_url", "created_at", "updated_at"}

type row struct {
	ID          uuid.UUID `db:"id"`
	Email       string    `db:"email"`
	Handle      string    `db:"handle"`
	DisplayName string    `db:"display_name"`
	AvatarURL   string    `db:"avatar_url"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r row) toDomain() *domain.User {
	return &domain.User{
		ID:          r.ID,
		Email:       r.Email,
		Handle:      r.Handle,
		DisplayName: r.DisplayName,
		AvatarURL:   r.AvatarURL,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, id.String())
}

// GetByEmail returns a user by email address, case-insensitively.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Expr("lower(email) = ?", strings.ToLower(email)), "")
}

// GetByHandle returns the oldest user with the given handle.
func (r *Repo) GetByHandle(ctx context.Context, handle string) (*domain.User, error) {
	q := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"handle": handle}).
		OrderBy("created_at ASC").
		Limit(1)

	var res row
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &res, q); err != nil {
		return nil, postgres.MapError(err, "user", handle)
	}
	return res.toDomain(), nil
}

func (r *Repo) getOne(ctx context.Context, where squirrel.Sqlizer, key string) (*domain.User, error) {
	q := postgres.Builder().Select(columns...).From(table).Where(where)

	var res row
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &res, q); err != nil {
		return nil, postgres.MapError(err, "user", key)
	}
	return res.toDomain(), nil
}

// Create inserts a new user and returns the persisted domain.User.
// A zero ID is replaced with a fresh one.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	id := u.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	q := postgres.Builder().
		Insert(table).
		Columns("id", "email", "handle", "display_name", "avatar_url").
		Values(id, u.Email, u.Handle, u.DisplayName, u.AvatarURL).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	var res row
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &res, q); err != nil {
		return nil, postgres.MapError(err, "user", id.String())
	}
	return res.toDomain(), nil
}

// Update modifies display name and avatar for the given user. Nil fields are kept.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, name *string, avatarURL *string) (*domain.User, error) {
	q := postgres.Builder().
		Update(table).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", "))
	if name != nil {
		q = q.Set("display_name", *name)
	}
	if avatarURL != nil {
		q = q.Set("avatar_url", *avatarURL)
	}

	var res row
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &res, q); err != nil {
		return nil, postgres.MapError(err, "user", id.String())
	}
	return res.toDomain(), nil
}
