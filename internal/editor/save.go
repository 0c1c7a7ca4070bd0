package editor

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/quietpage/quietpage/internal/domain"
	"github.com/quietpage/quietpage/internal/richtext"
)

// SavedIndicatorDuration is how long the "saved" status stays visible.
const SavedIndicatorDuration = 2 * time.Second

const msgDeleteFailed = "Failed to delete draft."

// Save stores the document as a draft. The first save creates the work and
// adopts its id; later saves merge into it. On failure the document and the
// save status are left as they were.
func (e *Editor) Save(ctx context.Context) error {
	return e.persist(ctx, "Save", domain.WorkStatusDraft, false, func() {
		e.phase = PhaseSaved
		e.save = SaveSaved
		e.saveSeq++
		seq, gen := e.saveSeq, e.gen
		e.clock.AfterFunc(SavedIndicatorDuration, func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			if e.saveSeq != seq || e.gen != gen {
				return
			}
			e.save = SaveIdle
			if e.phase == PhaseSaved {
				e.phase = PhaseEditing
			}
		})
	})
}

// Publish stores the document as published with an excerpt taken from the
// active chapter and closes the session.
func (e *Editor) Publish(ctx context.Context) error {
	return e.persist(ctx, "Publish", domain.WorkStatusPublished, true, func() {
		e.phase = PhasePublished
		e.save = SaveIdle
		e.redirect = RouteRead
	})
}

// Unpublish turns a published work back into a draft once confirm agrees.
// A declined confirmation is not an error.
func (e *Editor) Unpublish(ctx context.Context, confirm func() bool) error {
	e.mu.Lock()
	published := e.id != uuid.Nil && e.status == domain.WorkStatusPublished
	e.mu.Unlock()
	if !published {
		return domain.NewValidationError("status", "work is not published")
	}
	if confirm != nil && !confirm() {
		return nil
	}

	return e.persist(ctx, "Unpublish", domain.WorkStatusDraft, false, func() {
		e.phase = PhaseUnpublished
		e.save = SaveIdle
	})
}

// DeleteDraft removes a draft after confirmation. Deleting the open work
// empties the editor.
func (e *Editor) DeleteDraft(ctx context.Context, id uuid.UUID, confirm func() bool) error {
	if confirm != nil && !confirm() {
		return nil
	}

	if err := e.works.DeleteWork(ctx, id); err != nil {
		e.mu.Lock()
		e.message = msgDeleteFailed
		e.mu.Unlock()
		return fmt.Errorf("editor.DeleteDraft: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.message = ""
	if e.id == id {
		e.gen++
		e.reset(uuid.Nil, "", "", "", nil)
		e.phase = PhaseEmpty
		e.buffer.SetContent("")
	}
	return nil
}

// Drafts lists the signed-in author's drafts, most recently updated first.
func (e *Editor) Drafts(ctx context.Context) ([]domain.Work, error) {
	user := e.users.CurrentUser()
	if user == nil {
		e.setRedirect(RouteLogin)
		return nil, fmt.Errorf("editor.Drafts: %w", domain.ErrUnauthorized)
	}

	works, err := e.works.QueryWorksByAuthor(ctx, user.ID, domain.WorkStatusDraft)
	if err != nil {
		return nil, fmt.Errorf("editor.Drafts: %w", err)
	}
	domain.SortByUpdatedDesc(works)
	return works, nil
}

// AutoSave saves every interval while there are unsaved edits. It returns
// when ctx is done.
func (e *Editor) AutoSave(ctx context.Context, interval time.Duration) error {
	ticker := e.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.Chan():
			if !e.autoSaveDue() {
				continue
			}
			if err := e.Save(ctx); err != nil {
				e.log.WarnContext(ctx, "auto-save failed", slog.String("error", err.Error()))
			}
		}
	}
}

func (e *Editor) autoSaveDue() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.phase {
	case PhaseEmpty, PhaseSaving, PhasePublished:
		return false
	}
	return e.edits != e.saved
}

// persist writes the document with the given status. It runs the remote
// call without the lock. On success, done runs with the lock held to move
// the session to its next phase. If another document was opened meanwhile
// the result is dropped: neither the error nor done touch the new session.
func (e *Editor) persist(ctx context.Context, op string, status domain.WorkStatus, withExcerpt bool, done func()) error {
	user := e.users.CurrentUser()
	if user == nil {
		e.setRedirect(RouteLogin)
		return fmt.Errorf("editor.%s: %w", op, domain.ErrUnauthorized)
	}

	e.mu.Lock()
	if e.phase == PhaseEmpty {
		e.mu.Unlock()
		return domain.NewValidationError("work", "no work is open")
	}
	e.flush()
	var (
		gen       = e.gen
		id        = e.id
		edits     = e.edits
		prevPhase = e.phase
		prevSave  = e.save
		title     = normalizeTitle(e.title)
		typ       = e.typ
		chapters  = slices.Clone(e.chapters)
		excerpt   string
	)
	if withExcerpt {
		excerpt = richtext.Excerpt(richtext.PlainText(e.chapters[e.active].Content))
	}
	e.phase = PhaseSaving
	e.save = SaveSaving
	e.mu.Unlock()

	author := user.Snapshot()
	var err error
	if id == uuid.Nil {
		var created *domain.Work
		created, err = e.works.CreateWork(ctx, &domain.Work{
			Title:    title,
			Type:     typ,
			Status:   status,
			Chapters: chapters,
			Author:   author,
			Excerpt:  excerpt,
		})
		if err == nil {
			id = created.ID
		}
	} else {
		patch := domain.WorkPatch{
			Title:    &title,
			Type:     &typ,
			Status:   &status,
			Chapters: chapters,
			Author:   &author,
		}
		if withExcerpt {
			patch.Excerpt = &excerpt
		}
		err = e.works.SaveWork(ctx, id, patch)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen {
		e.log.DebugContext(ctx, "discarding stale save result", slog.String("work_id", id.String()))
		return nil
	}
	if err != nil {
		e.phase = prevPhase
		e.save = prevSave
		return fmt.Errorf("editor.%s: %w", op, err)
	}

	e.id = id
	e.status = status
	e.title = title
	e.saved = edits
	e.log.InfoContext(ctx, "work saved",
		slog.String("user_id", user.ID.String()),
		slog.String("work_id", id.String()),
		slog.String("status", string(status)))
	done()
	return nil
}
