// Package editor drives one editing session of a work: chapters, saving,
// publishing and the focus-mode typing indicator.
package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/quietpage/quietpage/internal/domain"
	"github.com/quietpage/quietpage/internal/richtext"
)

// Client routes the editor redirects to.
const (
	RouteLogin  = "/login"
	RouteDrafts = "/drafts"
	RouteRead   = "/read"
)

// Phase is the editing session's position in its lifecycle.
type Phase string

const (
	PhaseEmpty       Phase = "empty"
	PhaseLoaded      Phase = "loaded"
	PhaseEditing     Phase = "editing"
	PhaseSaving      Phase = "saving"
	PhaseSaved       Phase = "saved"
	PhasePublished   Phase = "published"
	PhaseUnpublished Phase = "unpublished"
)

// SaveStatus is the save indicator shown next to the title.
type SaveStatus string

const (
	SaveIdle   SaveStatus = "idle"
	SaveSaving SaveStatus = "saving"
	SaveSaved  SaveStatus = "saved"
)

// ---------------------------------------------------------------------------
// Consumer interfaces
// ---------------------------------------------------------------------------

type workStore interface {
	CreateWork(ctx context.Context, w *domain.Work) (*domain.Work, error)
	DeleteWork(ctx context.Context, id uuid.UUID) error
	LoadWork(ctx context.Context, id uuid.UUID) (*domain.Work, error)
	QueryWorksByAuthor(ctx context.Context, authorID uuid.UUID, status domain.WorkStatus) ([]domain.Work, error)
	SaveWork(ctx context.Context, id uuid.UUID, patch domain.WorkPatch) error
}

type currentUser interface {
	CurrentUser() *domain.User
}

type focusMode interface {
	FocusMode() bool
}

// Editor is the controller behind the writing screen. It is safe for
// concurrent use; remote calls run without holding the lock.
type Editor struct {
	log   *slog.Logger
	works workStore
	users currentUser
	focus focusMode
	clock clockwork.Clock

	buffer *richtext.Buffer

	mu       sync.Mutex
	gen      uint64 // bumped on every Open/OpenNew; stale results compare against it
	id       uuid.UUID
	title    string
	typ      domain.WorkType
	status   domain.WorkStatus
	chapters []domain.Chapter
	active   int
	phase    Phase
	save     SaveStatus
	saveSeq  uint64
	edits    uint64
	saved    uint64
	redirect string
	message  string
	typing   bool
	pointer  *point
}

// New creates an editor with an empty session.
func New(logger *slog.Logger, works workStore, users currentUser, focus focusMode, clock clockwork.Clock) *Editor {
	e := &Editor{
		log:    logger.With("component", "editor"),
		works:  works,
		users:  users,
		focus:  focus,
		clock:  clock,
		buffer: richtext.NewBuffer(),
		phase:  PhaseEmpty,
		save:   SaveIdle,
	}
	e.buffer.OnChange(e.onInput)
	return e
}

// Buffer is the editing surface of the active chapter.
func (e *Editor) Buffer() *richtext.Buffer { return e.buffer }

// Open loads an existing work for editing. Only its author may edit it.
func (e *Editor) Open(ctx context.Context, id uuid.UUID) error {
	user := e.users.CurrentUser()
	if user == nil {
		e.setRedirect(RouteLogin)
		return fmt.Errorf("editor.Open: %w", domain.ErrUnauthorized)
	}

	e.mu.Lock()
	e.gen++
	gen := e.gen
	e.mu.Unlock()

	w, err := e.works.LoadWork(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			e.redirectIfCurrent(gen, RouteDrafts)
		}
		return fmt.Errorf("editor.Open: %w", err)
	}
	if !w.IsAuthor(user.ID) {
		e.redirectIfCurrent(gen, RouteDrafts)
		return fmt.Errorf("editor.Open: %w", domain.ErrForbidden)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen {
		return nil
	}

	chapters := w.Chapters
	if len(chapters) == 0 {
		chapters = []domain.Chapter{domain.DefaultChapter()}
	}
	e.reset(w.ID, w.Title, w.Type, w.Status, chapters)
	e.phase = PhaseLoaded
	e.buffer.SetContent(e.chapters[0].Content)
	return nil
}

// OpenNew starts a fresh, unsaved work of the given type with one default
// chapter.
func (e *Editor) OpenNew(typ domain.WorkType) error {
	if e.users.CurrentUser() == nil {
		e.setRedirect(RouteLogin)
		return fmt.Errorf("editor.OpenNew: %w", domain.ErrUnauthorized)
	}
	if typ == "" {
		typ = domain.WorkTypeStory
	}
	if !typ.IsValid() {
		return domain.NewValidationError("type", "unknown work type")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.gen++
	e.reset(uuid.Nil, "", typ, domain.WorkStatusDraft, []domain.Chapter{domain.DefaultChapter()})
	e.phase = PhaseLoaded
	e.buffer.SetContent("")
	return nil
}

// reset replaces the document. Caller holds the lock.
func (e *Editor) reset(id uuid.UUID, title string, typ domain.WorkType, status domain.WorkStatus, chapters []domain.Chapter) {
	e.id = id
	e.title = title
	e.typ = typ
	e.status = status
	e.chapters = slices.Clone(chapters)
	e.active = 0
	e.save = SaveIdle
	e.edits, e.saved = 0, 0
	e.redirect = ""
	e.message = ""
	e.typing = false
	e.pointer = nil
}

// ---------------------------------------------------------------------------
// Document
// ---------------------------------------------------------------------------

func (e *Editor) ID() uuid.UUID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.id
}

func (e *Editor) Title() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.title
}

func (e *Editor) SetTitle(title string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.title = title
	e.touch()
}

func (e *Editor) Type() domain.WorkType {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.typ
}

func (e *Editor) Status() domain.WorkStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// Chapters returns the chapters with the active one flushed from the buffer.
func (e *Editor) Chapters() []domain.Chapter {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.flush()
	return slices.Clone(e.chapters)
}

func (e *Editor) ActiveChapter() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// SetChapterHeading edits the active chapter's title and subtitle.
func (e *Editor) SetChapterHeading(title, subtitle string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.chapters) == 0 {
		return
	}
	e.chapters[e.active].Title = title
	e.chapters[e.active].Subtitle = subtitle
	e.touch()
}

// SwitchChapter makes chapter i active after saving the buffer into the
// current one.
func (e *Editor) SwitchChapter(i int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i < 0 || i >= len(e.chapters) {
		return domain.NewValidationError("chapter", "chapter out of range")
	}
	e.flush()
	e.active = i
	e.buffer.SetContent(e.chapters[i].Content)
	return nil
}

// AddChapter appends an empty chapter and makes it active.
func (e *Editor) AddChapter() domain.Chapter {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.flush()
	ch := domain.NewChapter(len(e.chapters), e.clock.Now())
	e.chapters = append(e.chapters, ch)
	e.active = len(e.chapters) - 1
	e.buffer.SetContent("")
	e.touch()
	return ch
}

// flush copies the buffer into the active chapter. Caller holds the lock.
func (e *Editor) flush() {
	if len(e.chapters) == 0 {
		return
	}
	e.chapters[e.active].Content = e.buffer.HTML()
}

// touch records an edit. Caller holds the lock.
func (e *Editor) touch() {
	e.edits++
	if e.phase == PhaseLoaded || e.phase == PhaseSaved {
		e.phase = PhaseEditing
	}
}

// Dirty reports whether there are edits no save has covered yet.
func (e *Editor) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.edits != e.saved
}

// ---------------------------------------------------------------------------
// View state
// ---------------------------------------------------------------------------

func (e *Editor) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

func (e *Editor) SaveStatus() SaveStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.save
}

// Redirect is the route the view should navigate to, or "".
func (e *Editor) Redirect() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.redirect
}

// Message is the last user-facing failure message, or "".
func (e *Editor) Message() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.message
}

func (e *Editor) setRedirect(route string) {
	e.mu.Lock()
	e.redirect = route
	e.mu.Unlock()
}

// redirectIfCurrent sets route unless another Open happened since gen.
func (e *Editor) redirectIfCurrent(gen uint64, route string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gen == gen {
		e.redirect = route
	}
}

func normalizeTitle(t string) string {
	if t = strings.TrimSpace(t); t == "" {
		return domain.DefaultTitle
	}
	return t
}
