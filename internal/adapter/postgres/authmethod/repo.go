// Package authmethod implements the AuthMethod repository using PostgreSQL.
package authmethod

import (
	"context"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/quietpage/quietpage/internal/adapter/postgres"
	"github.com/quietpage/quietpage/internal/domain"
)

const table = "auth_methods"

var columns = []string{"id", "user_id", "method", "provider_id", "password_hash", "created_at", "updated_at"}

type row struct {
	ID           uuid.UUID `db:"id"`
	UserID       uuid.UUID `db:"user_id"`
	Method       string    `db:"method"`
	ProviderID   *string   `db:"provider_id"`
	PasswordHash *string   `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r row) toDomain() *domain.AuthMethod {
	return &domain.AuthMethod{
		ID:           r.ID,
		UserID:       r.UserID,
		Method:       domain.AuthMethodType(r.Method),
		ProviderID:   r.ProviderID,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// Repo provides auth_methods persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new auth method repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// GetByOAuth returns the auth method for a federated provider + provider ID.
func (r *Repo) GetByOAuth(ctx context.Context, method domain.AuthMethodType, providerID string) (*domain.AuthMethod, error) {
	return r.getOne(ctx, squirrel.Eq{"method": string(method), "provider_id": providerID})
}

// GetByUserAndMethod returns the user's credential of the given type.
func (r *Repo) GetByUserAndMethod(ctx context.Context, userID uuid.UUID, method domain.AuthMethodType) (*domain.AuthMethod, error) {
	return r.getOne(ctx, squirrel.Eq{"user_id": userID, "method": string(method)})
}

func (r *Repo) getOne(ctx context.Context, where squirrel.Eq) (*domain.AuthMethod, error) {
	q := postgres.Builder().Select(columns...).From(table).Where(where)

	var res row
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &res, q); err != nil {
		return nil, postgres.MapError(err, "auth_method", "")
	}
	return res.toDomain(), nil
}

// Create inserts a new credential.
func (r *Repo) Create(ctx context.Context, am *domain.AuthMethod) (*domain.AuthMethod, error) {
	id := am.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	q := postgres.Builder().
		Insert(table).
		Columns("id", "user_id", "method", "provider_id", "password_hash").
		Values(id, am.UserID, string(am.Method), am.ProviderID, am.PasswordHash).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	var res row
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &res, q); err != nil {
		return nil, postgres.MapError(err, "auth_method", id.String())
	}
	return res.toDomain(), nil
}
