// Package reader drives the reading screen of one published work: chapter
// navigation with resume, likes and saves.
package reader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/quietpage/quietpage/internal/domain"
)

// Client routes the reader redirects to.
const (
	RouteLogin  = "/login"
	RouteFeed   = "/read"
	RouteDrafts = "/drafts"
)

type workStore interface {
	LoadWork(ctx context.Context, id uuid.UUID) (*domain.Work, error)
	SaveWork(ctx context.Context, id uuid.UUID, patch domain.WorkPatch) error
	ToggleLike(ctx context.Context, id uuid.UUID) (bool, int, error)
}

type library interface {
	CreateSave(ctx context.Context, storyID uuid.UUID) (domain.Save, error)
	DeleteSave(ctx context.Context, id uuid.UUID) error
	GetProgress(ctx context.Context, storyID uuid.UUID) (domain.ReadingProgress, error)
	ListSaves(ctx context.Context, storyID uuid.UUID) ([]domain.Save, error)
	UpsertProgress(ctx context.Context, storyID uuid.UUID, idx int) error
}

type currentUser interface {
	CurrentUser() *domain.User
}

// Reader is the controller behind the reading screen.
type Reader struct {
	log     *slog.Logger
	works   workStore
	library library
	users   currentUser

	mu        sync.Mutex
	gen       uint64
	work      *domain.Work
	chapter   int
	scrollTop int
	saved     bool
	saving    bool
	redirect  string
}

func New(logger *slog.Logger, works workStore, lib library, users currentUser) *Reader {
	return &Reader{
		log:     logger.With("component", "reader"),
		works:   works,
		library: lib,
		users:   users,
	}
}

// Open loads a work and, for a signed-in reader, resumes at the stored
// chapter. Progress past the last chapter restarts at the first.
func (r *Reader) Open(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	r.gen++
	gen := r.gen
	r.work = nil
	r.chapter = 0
	r.saved = false
	r.redirect = ""
	r.mu.Unlock()

	w, err := r.works.LoadWork(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			r.redirectIfCurrent(gen, RouteFeed)
		}
		return fmt.Errorf("reader.Open: %w", err)
	}

	r.mu.Lock()
	if gen != r.gen {
		r.mu.Unlock()
		return nil
	}
	r.work = w
	r.scrollTop++
	r.mu.Unlock()

	user := r.users.CurrentUser()
	if user == nil {
		return nil
	}

	idx := 0
	p, err := r.library.GetProgress(ctx, id)
	switch {
	case err == nil:
		idx = domain.ClampChapterIndex(p.LastChapterIndex, len(w.Chapters))
	case !errors.Is(err, domain.ErrNotFound):
		r.log.WarnContext(ctx, "load reading progress",
			slog.String("user_id", user.ID.String()),
			slog.String("error", err.Error()))
	}

	saves, err := r.library.ListSaves(ctx, id)
	if err != nil {
		r.log.WarnContext(ctx, "load saves",
			slog.String("user_id", user.ID.String()),
			slog.String("error", err.Error()))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen {
		return nil
	}
	r.chapter = idx
	r.saved = len(saves) > 0
	return nil
}

// ---------------------------------------------------------------------------
// Navigation
// ---------------------------------------------------------------------------

// GoToChapter moves to chapter i, resets the scroll position and records
// the position for signed-in readers.
func (r *Reader) GoToChapter(ctx context.Context, i int) error {
	r.mu.Lock()
	if r.work == nil {
		r.mu.Unlock()
		return domain.NewValidationError("work", "no work is open")
	}
	if i < 0 || i >= len(r.work.Chapters) {
		r.mu.Unlock()
		return domain.NewValidationError("chapter", "chapter out of range")
	}
	r.chapter = i
	r.scrollTop++
	id := r.work.ID
	r.mu.Unlock()

	if r.users.CurrentUser() == nil {
		return nil
	}
	if err := r.library.UpsertProgress(ctx, id, i); err != nil {
		return fmt.Errorf("reader.GoToChapter: %w", err)
	}
	return nil
}

func (r *Reader) Next(ctx context.Context) error { return r.GoToChapter(ctx, r.Chapter()+1) }
func (r *Reader) Prev(ctx context.Context) error { return r.GoToChapter(ctx, r.Chapter()-1) }

func (r *Reader) CanPrev() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.work != nil && r.chapter > 0
}

func (r *Reader) CanNext() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.work != nil && r.chapter < len(r.work.Chapters)-1
}

// ---------------------------------------------------------------------------
// Likes, saves, unpublish
// ---------------------------------------------------------------------------

// ToggleLike flips the reader's like locally first. When the remote call
// fails the work is reloaded so the count shows the stored value.
func (r *Reader) ToggleLike(ctx context.Context) error {
	user := r.users.CurrentUser()
	if user == nil {
		r.setRedirect(RouteLogin)
		return fmt.Errorf("reader.ToggleLike: %w", domain.ErrUnauthorized)
	}

	r.mu.Lock()
	if r.work == nil {
		r.mu.Unlock()
		return domain.NewValidationError("work", "no work is open")
	}
	id, gen := r.work.ID, r.gen
	r.work.ToggleLike(user.ID)
	r.mu.Unlock()

	liked, count, err := r.works.ToggleLike(ctx, id)
	if err != nil {
		r.reload(ctx, id, gen)
		return fmt.Errorf("reader.ToggleLike: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.isCurrent(gen) {
		return nil
	}
	if r.work.HasLiked(user.ID) != liked {
		r.work.ToggleLike(user.ID)
	}
	r.work.LikesCount = count
	return nil
}

// ToggleSave bookmarks the work or removes every bookmark of it. Calls made
// while one is running are ignored.
func (r *Reader) ToggleSave(ctx context.Context) error {
	user := r.users.CurrentUser()
	if user == nil {
		r.setRedirect(RouteLogin)
		return fmt.Errorf("reader.ToggleSave: %w", domain.ErrUnauthorized)
	}

	r.mu.Lock()
	if r.work == nil {
		r.mu.Unlock()
		return domain.NewValidationError("work", "no work is open")
	}
	if r.saving {
		r.mu.Unlock()
		return nil
	}
	r.saving = true
	id, gen := r.work.ID, r.gen
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.saving = false
		r.mu.Unlock()
	}()

	saves, err := r.library.ListSaves(ctx, id)
	if err != nil {
		return fmt.Errorf("reader.ToggleSave: %w", err)
	}

	saved := len(saves) == 0
	if saved {
		if _, err := r.library.CreateSave(ctx, id); err != nil {
			return fmt.Errorf("reader.ToggleSave: %w", err)
		}
	} else {
		for _, s := range saves {
			if err := r.library.DeleteSave(ctx, s.ID); err != nil {
				return fmt.Errorf("reader.ToggleSave: %w", err)
			}
		}
	}

	r.mu.Lock()
	if r.isCurrent(gen) {
		r.saved = saved
	}
	r.mu.Unlock()

	r.log.InfoContext(ctx, "save toggled",
		slog.String("user_id", user.ID.String()),
		slog.String("work_id", id.String()),
		slog.Bool("saved", saved))
	return nil
}

// Unpublish returns the author's work to drafts after confirmation.
func (r *Reader) Unpublish(ctx context.Context, confirm func() bool) error {
	user := r.users.CurrentUser()
	if user == nil {
		r.setRedirect(RouteLogin)
		return fmt.Errorf("reader.Unpublish: %w", domain.ErrUnauthorized)
	}

	r.mu.Lock()
	if r.work == nil {
		r.mu.Unlock()
		return domain.NewValidationError("work", "no work is open")
	}
	id, gen, isAuthor := r.work.ID, r.gen, r.work.IsAuthor(user.ID)
	r.mu.Unlock()

	if !isAuthor {
		return fmt.Errorf("reader.Unpublish: %w", domain.ErrForbidden)
	}
	if confirm != nil && !confirm() {
		return nil
	}

	draft := domain.WorkStatusDraft
	if err := r.works.SaveWork(ctx, id, domain.WorkPatch{Status: &draft}); err != nil {
		return fmt.Errorf("reader.Unpublish: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.isCurrent(gen) {
		r.work.Status = draft
		r.redirect = RouteDrafts
	}
	return nil
}

// ---------------------------------------------------------------------------
// View state
// ---------------------------------------------------------------------------

// Work returns a copy of the open work, or nil.
func (r *Reader) Work() *domain.Work {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.work == nil {
		return nil
	}
	return r.work.Clone()
}

// Chapter is the index of the chapter being read.
func (r *Reader) Chapter() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.chapter
}

// ScrollTop increases every time the view has to scroll back to the top.
func (r *Reader) ScrollTop() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.scrollTop
}

func (r *Reader) IsSaved() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saved
}

func (r *Reader) Redirect() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.redirect
}

// AuthorLink is the profile route of the open work's author.
func (r *Reader) AuthorLink() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.work == nil {
		return ""
	}
	handle := r.work.Author.Handle
	if handle == "" {
		handle = domain.HandleFromEmail(r.work.Author.Email)
	}
	return "/profile/" + handle
}

// reload replaces the open work with the stored one unless another Open
// happened since gen was taken.
func (r *Reader) reload(ctx context.Context, id uuid.UUID, gen uint64) {
	w, err := r.works.LoadWork(ctx, id)
	if err != nil {
		r.log.WarnContext(ctx, "reload work", slog.String("work_id", id.String()), slog.String("error", err.Error()))
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.isCurrent(gen) {
		r.work = w
	}
}

// isCurrent reports whether the work opened at gen is still open. Caller
// holds the lock.
func (r *Reader) isCurrent(gen uint64) bool {
	return r.work != nil && r.gen == gen
}

// redirectIfCurrent sets route unless another Open happened since gen.
func (r *Reader) redirectIfCurrent(gen uint64, route string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gen == gen {
		r.redirect = route
	}
}

func (r *Reader) setRedirect(route string) {
	r.mu.Lock()
	r.redirect = route
	r.mu.Unlock()
}
