package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/quietpage/quietpage/internal/domain"
	"github.com/quietpage/quietpage/internal/transport/wire"
)

type libraryService interface {
	CreateSave(ctx context.Context, save domain.Save) (domain.Save, error)
	DeleteSave(ctx context.Context, id uuid.UUID) error
	GetProgress(ctx context.Context, storyID uuid.UUID) (domain.ReadingProgress, error)
	ListSaves(ctx context.Context, storyID uuid.UUID) ([]domain.Save, error)
	UpsertProgress(ctx context.Context, storyID uuid.UUID, chapterIndex int) error
}

// LibraryHandler serves saves and reading progress.
type LibraryHandler struct {
	svc libraryService
	log *slog.Logger
}

func NewLibraryHandler(svc libraryService, logger *slog.Logger) *LibraryHandler {
	return &LibraryHandler{svc: svc, log: logger.With("handler", "library")}
}

// ListSaves handles GET /saves?storyId=.
func (h *LibraryHandler) ListSaves(w http.ResponseWriter, r *http.Request) {
	var storyID uuid.UUID
	if raw := r.URL.Query().Get("storyId"); raw != "" {
		var err error
		if storyID, err = uuid.Parse(raw); err != nil {
			writeError(w, http.StatusBadRequest, "invalid storyId")
			return
		}
	}

	saves, err := h.svc.ListSaves(r.Context(), storyID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.FromSaves(saves))
}

// CreateSave handles POST /saves.
func (h *LibraryHandler) CreateSave(w http.ResponseWriter, r *http.Request) {
	var req wire.CreateSaveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	save, err := h.svc.CreateSave(r.Context(), domain.Save{StoryID: req.StoryID})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, wire.FromSave(save))
}

// DeleteSave handles DELETE /saves/{id}.
func (h *LibraryHandler) DeleteSave(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteSave(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetProgress handles GET /progress/{storyId}.
func (h *LibraryHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	storyID, ok := pathID(w, r, "storyId")
	if !ok {
		return
	}

	p, err := h.svc.GetProgress(r.Context(), storyID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.FromProgress(p))
}

// PutProgress handles PUT /progress/{storyId}.
func (h *LibraryHandler) PutProgress(w http.ResponseWriter, r *http.Request) {
	storyID, ok := pathID(w, r, "storyId")
	if !ok {
		return
	}
	var req wire.ProgressRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.svc.UpsertProgress(r.Context(), storyID, req.LastChapterIndex); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
