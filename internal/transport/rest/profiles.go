package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/quietpage/quietpage/internal/domain"
	"github.com/quietpage/quietpage/internal/transport/wire"
)

type profileService interface {
	ResolveAuthor(ctx context.Context, handle string) (domain.AuthorProfile, error)
	Stats(ctx context.Context, authorID uuid.UUID) (domain.ProfileStats, error)
	Works(ctx context.Context, handle string) ([]domain.Work, error)
}

// ProfileHandler serves public author pages.
type ProfileHandler struct {
	svc profileService
	log *slog.Logger
}

func NewProfileHandler(svc profileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{svc: svc, log: logger.With("handler", "profile")}
}

// Get handles GET /profiles/{handle}.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	author, err := h.svc.ResolveAuthor(ctx, mux.Vars(r)["handle"])
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	stats, err := h.svc.Stats(ctx, author.ID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, wire.FromProfile(author, stats))
}

// Works handles GET /profiles/{handle}/works.
func (h *ProfileHandler) Works(w http.ResponseWriter, r *http.Request) {
	works, err := h.svc.Works(r.Context(), mux.Vars(r)["handle"])
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.FromWorks(works))
}
