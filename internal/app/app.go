package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/quietpage/quietpage/internal/adapter/provider/google"
	"github.com/quietpage/quietpage/internal/adapter/redis"
	"github.com/quietpage/quietpage/internal/auth"
	"github.com/quietpage/quietpage/internal/config"
	"github.com/quietpage/quietpage/internal/domain"
	"github.com/quietpage/quietpage/internal/janitor"
	"github.com/quietpage/quietpage/internal/metrics"
	authsvc "github.com/quietpage/quietpage/internal/service/auth"
	"github.com/quietpage/quietpage/internal/service/library"
	"github.com/quietpage/quietpage/internal/service/profile"
	"github.com/quietpage/quietpage/internal/service/work"
	"github.com/quietpage/quietpage/internal/transport/middleware"
	"github.com/quietpage/quietpage/internal/transport/rest"
)

type feedCache interface {
	Get(ctx context.Context, typ domain.WorkType, limit int) ([]domain.Work, bool, error)
	Set(ctx context.Context, typ domain.WorkType, limit int, works []domain.Work) error
	Invalidate(ctx context.Context) error
}

// Run is the service entry point. It loads configuration, opens the stores,
// serves the REST API and runs the janitor until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", Build().String()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("store", cfg.Store.Driver),
	)

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.close()

	m := metrics.New()

	var cache feedCache
	if cfg.Redis.Addr != "" {
		rdb, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("app.Run: %w", err)
		}
		defer rdb.Close() //nolint:errcheck

		fc := redis.NewFeedCache(rdb, cfg.Feed.CacheTTL)
		fc.OnLookup(m.FeedCacheLookup)
		st.checks["cache"] = fc
		cache = fc
	}

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	verifier := google.NewVerifier(cfg.Auth, logger)

	authService := authsvc.NewService(logger, st.users, st.tokens, st.authMethods, st.tx, verifier, jwtManager, cfg.Auth)
	workService := work.NewService(logger, st.works, st.users, cache, cfg.Feed)
	libraryService := library.NewService(logger, st.saves, st.progress, st.works)
	profileService := profile.NewService(logger, st.users, st.works, cfg.Feed)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.AuthPerMinute, cfg.RateLimit.Burst, cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	router := rest.NewRouter(rest.Handlers{
		Auth:     rest.NewAuthHandler(authService, logger),
		Works:    rest.NewWorkHandler(workService, logger),
		Library:  rest.NewLibraryHandler(libraryService, logger),
		Profiles: rest.NewProfileHandler(profileService, logger),
		Health:   rest.NewHealthHandler(Build().String(), st.checks),
		Metrics:  m.Handler(),
	}, rest.RouterOptions{
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		AuthLimit:    limiter.Limit(),
		Observe:      middleware.Metrics(m),
	})

	var cors middleware.Middleware
	if cfg.CORS.AllowedOrigins != "" {
		cors = middleware.CORS(cfg.CORS)
	}

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.RealIP(cfg.Server.TrustProxy),
		middleware.Logger(logger),
		cors,
		middleware.Auth(authService),
	)(router)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("app.Run: listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down http server")
		return srv.Shutdown(shutdownCtx)
	})

	if cfg.Janitor.Enabled {
		j, err := janitor.New(logger, cfg.Janitor.Cron, authService, m, nil)
		if err != nil {
			return fmt.Errorf("app.Run: %w", err)
		}
		g.Go(func() error { return j.Run(gctx) })
	}

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("stopped")
	return nil
}
