package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/quietpage/quietpage/internal/adapter/firestore"
	"github.com/quietpage/quietpage/internal/adapter/memory"
	"github.com/quietpage/quietpage/internal/adapter/postgres"
	"github.com/quietpage/quietpage/internal/adapter/postgres/authmethod"
	"github.com/quietpage/quietpage/internal/adapter/postgres/progress"
	"github.com/quietpage/quietpage/internal/adapter/postgres/save"
	"github.com/quietpage/quietpage/internal/adapter/postgres/token"
	"github.com/quietpage/quietpage/internal/adapter/postgres/user"
	"github.com/quietpage/quietpage/internal/adapter/postgres/work"
	"github.com/quietpage/quietpage/internal/config"
	"github.com/quietpage/quietpage/internal/domain"
	"github.com/quietpage/quietpage/internal/transport/rest"
	"github.com/quietpage/quietpage/migrations"
)

type userStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByHandle(ctx context.Context, handle string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	Update(ctx context.Context, id uuid.UUID, name *string, avatarURL *string) (*domain.User, error)
}

type authMethodStore interface {
	GetByOAuth(ctx context.Context, method domain.AuthMethodType, providerID string) (*domain.AuthMethod, error)
	GetByUserAndMethod(ctx context.Context, userID uuid.UUID, method domain.AuthMethodType) (*domain.AuthMethod, error)
	Create(ctx context.Context, am *domain.AuthMethod) (*domain.AuthMethod, error)
}

type tokenStore interface {
	Create(ctx context.Context, t *domain.RefreshToken) error
	GetByHash(ctx context.Context, hash string) (*domain.RefreshToken, error)
	RevokeByID(ctx context.Context, id uuid.UUID) error
	RevokeAllByUser(ctx context.Context, userID uuid.UUID) error
	DeleteExpired(ctx context.Context) (int, error)
}

type txRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type workStore interface {
	Create(ctx context.Context, w *domain.Work) (*domain.Work, error)
	Update(ctx context.Context, id uuid.UUID, p domain.WorkPatch) error
	Delete(ctx context.Context, id uuid.UUID) error
	ToggleLike(ctx context.Context, id, userID uuid.UUID) (bool, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Work, error)
	List(ctx context.Context, f domain.WorkFilter) ([]domain.Work, error)
}

type saveStore interface {
	List(ctx context.Context, userID, storyID uuid.UUID) ([]domain.Save, error)
	Create(ctx context.Context, s domain.Save) (domain.Save, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type progressStore interface {
	Get(ctx context.Context, userID, storyID uuid.UUID) (domain.ReadingProgress, error)
	Upsert(ctx context.Context, p domain.ReadingProgress) error
}

// stores is the persistence the services run on, chosen by store.driver.
type stores struct {
	users       userStore
	authMethods authMethodStore
	tokens      tokenStore
	tx          txRunner
	works       workStore
	saves       saveStore
	progress    progressStore

	checks  map[string]rest.Pinger
	closers []func()
}

func (s *stores) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func openStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*stores, error) {
	s := &stores{checks: make(map[string]rest.Pinger)}

	if cfg.Store.Driver == config.StoreDriverMemory {
		mem := memory.New()
		s.users = mem.Users()
		s.authMethods = mem.AuthMethods()
		s.tokens = mem.Tokens()
		s.tx = memory.TxManager{}
		s.works = mem.Works()
		s.saves = mem.Saves()
		s.progress = mem.Progress()
		logger.Warn("using in-memory store, data is lost on exit")
		return s, nil
	}

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, cfg.Database.DSN, migrations.FS, logger); err != nil {
			return nil, fmt.Errorf("app.openStores: %w", err)
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("app.openStores: %w", err)
	}
	s.closers = append(s.closers, pool.Close)
	s.checks["database"] = pool

	s.users = user.New(pool)
	s.authMethods = authmethod.New(pool)
	s.tokens = token.New(pool)
	s.tx = postgres.NewTxManager(pool)

	if cfg.Store.Driver == config.StoreDriverFirestore {
		client, err := firestore.NewClient(ctx, cfg.Firestore)
		if err != nil {
			s.close()
			return nil, fmt.Errorf("app.openStores: %w", err)
		}
		s.closers = append(s.closers, func() { client.Close() }) //nolint:errcheck
		s.works = firestore.NewWorkRepo(client)
		s.saves = firestore.NewSaveRepo(client)
		s.progress = firestore.NewProgressRepo(client)
		logger.Info("documents stored in firestore", slog.String("project_id", cfg.Firestore.ProjectID))
		return s, nil
	}

	s.works = work.New(pool)
	s.saves = save.New(pool)
	s.progress = progress.New(pool)
	return s, nil
}

// Migrate applies the embedded migrations and exits. It backs the migrate
// command.
func Migrate(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := NewLogger(cfg.Log)
	if cfg.Store.Driver == config.StoreDriverMemory {
		logger.Info("memory store has no schema, nothing to migrate")
		return nil
	}
	return postgres.Migrate(ctx, cfg.Database.DSN, migrations.FS, logger)
}
