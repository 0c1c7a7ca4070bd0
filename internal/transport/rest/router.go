package rest

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/quietpage/quietpage/internal/transport/middleware"
)

// Handlers groups everything NewRouter mounts. Metrics may be nil.
type Handlers struct {
	Auth     *AuthHandler
	Works    *WorkHandler
	Library  *LibraryHandler
	Profiles *ProfileHandler
	Health   *HealthHandler
	Metrics  http.Handler
}

// RouterOptions configures the per-route middleware. Zero values disable the
// corresponding feature.
type RouterOptions struct {
	MaxBodyBytes int64
	// AuthLimit guards the /auth subtree, typically a rate limiter.
	AuthLimit middleware.Middleware
	// Observe runs inside the router so it sees matched route templates.
	Observe middleware.Middleware
}

// NewRouter mounts the REST API. Authentication, CORS and logging are applied
// by the caller around the returned router.
func NewRouter(h Handlers, opts RouterOptions) *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	if opts.Observe != nil {
		r.Use(mux.MiddlewareFunc(opts.Observe))
	}
	if opts.MaxBodyBytes > 0 {
		r.Use(limitBody(opts.MaxBodyBytes))
	}

	r.HandleFunc("/live", h.Health.Live).Methods(http.MethodGet)
	r.HandleFunc("/ready", h.Health.Ready).Methods(http.MethodGet)
	r.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)
	if h.Metrics != nil {
		r.Handle("/metrics", h.Metrics).Methods(http.MethodGet)
	}

	a := r.PathPrefix("/auth").Subrouter()
	if opts.AuthLimit != nil {
		a.Use(mux.MiddlewareFunc(opts.AuthLimit))
	}
	a.HandleFunc("/register", h.Auth.Register).Methods(http.MethodPost)
	a.HandleFunc("/login/password", h.Auth.LoginWithPassword).Methods(http.MethodPost)
	a.HandleFunc("/login", h.Auth.Login).Methods(http.MethodPost)
	a.HandleFunc("/refresh", h.Auth.Refresh).Methods(http.MethodPost)
	a.HandleFunc("/logout", h.Auth.Logout).Methods(http.MethodPost)
	a.HandleFunc("/me", h.Auth.Me).Methods(http.MethodGet)

	r.HandleFunc("/works", h.Works.List).Methods(http.MethodGet)
	r.HandleFunc("/works", h.Works.Create).Methods(http.MethodPost)
	r.HandleFunc("/works/{id}", h.Works.Get).Methods(http.MethodGet)
	r.HandleFunc("/works/{id}", h.Works.Patch).Methods(http.MethodPatch)
	r.HandleFunc("/works/{id}", h.Works.Delete).Methods(http.MethodDelete)
	r.HandleFunc("/works/{id}/like", h.Works.Like).Methods(http.MethodPost)
	r.HandleFunc("/works/{id}/publish", h.Works.Publish).Methods(http.MethodPost)
	r.HandleFunc("/works/{id}/unpublish", h.Works.Unpublish).Methods(http.MethodPost)

	r.HandleFunc("/saves", h.Library.ListSaves).Methods(http.MethodGet)
	r.HandleFunc("/saves", h.Library.CreateSave).Methods(http.MethodPost)
	r.HandleFunc("/saves/{id}", h.Library.DeleteSave).Methods(http.MethodDelete)
	r.HandleFunc("/progress/{storyId}", h.Library.GetProgress).Methods(http.MethodGet)
	r.HandleFunc("/progress/{storyId}", h.Library.PutProgress).Methods(http.MethodPut)

	r.HandleFunc("/profiles/{handle}", h.Profiles.Get).Methods(http.MethodGet)
	r.HandleFunc("/profiles/{handle}/works", h.Profiles.Works).Methods(http.MethodGet)

	return r
}

func limitBody(n int64) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, n)
			}
			next.ServeHTTP(w, r)
		})
	}
}
