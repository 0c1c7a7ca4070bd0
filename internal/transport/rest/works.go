package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/quietpage/quietpage/internal/domain"
	"github.com/quietpage/quietpage/internal/service/work"
	"github.com/quietpage/quietpage/internal/transport/wire"
)

type workService interface {
	Create(ctx context.Context, input work.CreateInput) (*domain.Work, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Feed(ctx context.Context, typ domain.WorkType, limit int) ([]domain.Work, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID, status domain.WorkStatus) ([]domain.Work, error)
	Load(ctx context.Context, id uuid.UUID) (*domain.Work, error)
	Publish(ctx context.Context, id uuid.UUID, patch domain.WorkPatch) error
	Save(ctx context.Context, id uuid.UUID, patch domain.WorkPatch) error
	ToggleLike(ctx context.Context, id uuid.UUID) (bool, int, error)
	Unpublish(ctx context.Context, id uuid.UUID) error
}

// WorkHandler serves the /works endpoints.
type WorkHandler struct {
	svc workService
	log *slog.Logger
}

func NewWorkHandler(svc workService, logger *slog.Logger) *WorkHandler {
	return &WorkHandler{svc: svc, log: logger.With("handler", "work")}
}

// List handles GET /works. With authorId it lists that author's works,
// otherwise it serves the published feed.
func (h *WorkHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status := domain.WorkStatus(q.Get("status"))
	if status != "" && !status.IsValid() {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	var (
		works []domain.Work
		err   error
	)
	if raw := q.Get("authorId"); raw != "" {
		authorID, perr := uuid.Parse(raw)
		if perr != nil {
			writeError(w, http.StatusBadRequest, "invalid authorId")
			return
		}
		works, err = h.svc.ListByAuthor(r.Context(), authorID, status)
	} else {
		if status == domain.WorkStatusDraft {
			writeError(w, http.StatusBadRequest, "the feed only lists published works")
			return
		}
		typ := domain.WorkType(q.Get("type"))
		if typ == "all" {
			typ = ""
		}
		limit := 0
		if raw := q.Get("limit"); raw != "" {
			limit, err = strconv.Atoi(raw)
			if err != nil || limit < 0 {
				writeError(w, http.StatusBadRequest, "invalid limit")
				return
			}
		}
		works, err = h.svc.Feed(r.Context(), typ, limit)
	}
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, wire.FromWorks(works))
}

// Create handles POST /works.
func (h *WorkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req wire.CreateWorkRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.svc.Create(r.Context(), work.CreateInput{
		Title:    req.Title,
		Type:     req.Type,
		Status:   req.Status,
		Chapters: req.Chapters,
		Excerpt:  req.Excerpt,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, wire.FromWork(created))
}

// Get handles GET /works/{id}.
func (h *WorkHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	found, err := h.svc.Load(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, wire.FromWork(found))
}

// Patch handles PATCH /works/{id}: a merge update of the given fields.
func (h *WorkHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req wire.WorkPatch
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.svc.Save(r.Context(), id, req.ToDomain()); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Publish handles POST /works/{id}/publish. The body is an optional patch
// applied in the same write.
func (h *WorkHandler) Publish(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req wire.WorkPatch
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}

	if err := h.svc.Publish(r.Context(), id, req.ToDomain()); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Unpublish handles POST /works/{id}/unpublish.
func (h *WorkHandler) Unpublish(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.Unpublish(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /works/{id}.
func (h *WorkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Like handles POST /works/{id}/like.
func (h *WorkHandler) Like(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	liked, count, err := h.svc.ToggleLike(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, wire.LikeResponse{Liked: liked, LikesCount: count})
}
