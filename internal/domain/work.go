package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTitle is the title of a work nobody has named yet.
const DefaultTitle = "Untitled"

// WorkType is the kind of composition.
type WorkType string

const (
	WorkTypeStory WorkType = "story"
	WorkTypePoem  WorkType = "poem"
	WorkTypeBlog  WorkType = "blog"
	WorkTypeDraft WorkType = "draft"
)

func (t WorkType) String() string { return string(t) }

func (t WorkType) IsValid() bool {
	switch t {
	case WorkTypeStory, WorkTypePoem, WorkTypeBlog, WorkTypeDraft:
		return true
	}
	return false
}

// Label is the capitalized name shown in listings ("Story", "Poem").
func (t WorkType) Label() string {
	if t == "" {
		return "Story"
	}
	s := string(t)
	return strings.ToUpper(s[:1]) + s[1:]
}

// WorkStatus is the publication state of a work.
type WorkStatus string

const (
	WorkStatusDraft     WorkStatus = "draft"
	WorkStatusPublished WorkStatus = "published"
)

func (s WorkStatus) String() string { return string(s) }

func (s WorkStatus) IsValid() bool {
	switch s {
	case WorkStatusDraft, WorkStatusPublished:
		return true
	}
	return false
}

// Chapter is one section of a work. Content is HTML.
type Chapter struct {
	ID       string `json:"id" firestore:"id"`
	Title    string `json:"title" firestore:"title"`
	Subtitle string `json:"subtitle" firestore:"subtitle"`
	Content  string `json:"content" firestore:"content"`
}

// DefaultChapter is the chapter every new work starts with.
func DefaultChapter() Chapter {
	return Chapter{ID: "1", Title: "Chapter 1", Subtitle: "The Beginning"}
}

// NewChapter returns the empty chapter appended after n existing chapters.
func NewChapter(n int, now time.Time) Chapter {
	return Chapter{
		ID:    strconv.FormatInt(now.UnixMilli(), 10),
		Title: fmt.Sprintf("Chapter %d", n+1),
	}
}

// AuthorSnapshot is the author identity copied onto a work when it is written.
// It is not refreshed when the user later changes their profile.
type AuthorSnapshot struct {
	ID     uuid.UUID
	Name   string
	Handle string
	Email  string
	Avatar string
}

// Work is a story, poem or blog post with its chapters.
type Work struct {
	ID         uuid.UUID
	Title      string
	Type       WorkType
	Status     WorkStatus
	Chapters   []Chapter
	Author     AuthorSnapshot
	Likes      []uuid.UUID
	LikesCount int
	Excerpt    string
	ReadTime   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsPublished reports whether the work is visible in the feed.
func (w *Work) IsPublished() bool { return w.Status == WorkStatusPublished }

// IsAuthor reports whether userID wrote the work.
func (w *Work) IsAuthor(userID uuid.UUID) bool {
	return userID != uuid.Nil && w.Author.ID == userID
}

// HasLiked reports whether userID is in the likes set.
func (w *Work) HasLiked(userID uuid.UUID) bool {
	return slices.Contains(w.Likes, userID)
}

// ToggleLike flips userID's membership in likes and adjusts likesCount by
// one in the same direction. It returns the new membership.
func (w *Work) ToggleLike(userID uuid.UUID) bool {
	if i := slices.Index(w.Likes, userID); i >= 0 {
		w.Likes = slices.Delete(w.Likes, i, i+1)
		w.LikesCount--
		if w.LikesCount < 0 {
			w.LikesCount = 0
		}
		return false
	}
	w.Likes = append(w.Likes, userID)
	w.LikesCount++
	return true
}

// Clone returns a deep copy of the work.
func (w *Work) Clone() *Work {
	c := *w
	c.Chapters = slices.Clone(w.Chapters)
	c.Likes = slices.Clone(w.Likes)
	return &c
}

// Apply merges the non-nil fields of p into w.
func (w *Work) Apply(p WorkPatch) {
	if p.Title != nil {
		w.Title = *p.Title
	}
	if p.Type != nil {
		w.Type = *p.Type
	}
	if p.Status != nil {
		w.Status = *p.Status
	}
	if p.Chapters != nil {
		w.Chapters = slices.Clone(p.Chapters)
	}
	if p.Author != nil {
		w.Author = *p.Author
	}
	if p.Excerpt != nil {
		w.Excerpt = *p.Excerpt
	}
	if p.ReadTime != nil {
		w.ReadTime = *p.ReadTime
	}
}

// WorkPatch is a partial update. Nil fields are left untouched.
type WorkPatch struct {
	Title    *string
	Type     *WorkType
	Status   *WorkStatus
	Chapters []Chapter
	Author   *AuthorSnapshot
	Excerpt  *string
	ReadTime *string
}

// IsEmpty reports whether the patch changes nothing besides updatedAt.
func (p WorkPatch) IsEmpty() bool {
	return p.Title == nil && p.Type == nil && p.Status == nil && p.Chapters == nil &&
		p.Author == nil && p.Excerpt == nil && p.ReadTime == nil
}

// Validate checks the fields the patch sets.
func (p WorkPatch) Validate() error {
	var errs []FieldError
	if p.Type != nil && !p.Type.IsValid() {
		errs = append(errs, FieldError{Field: "type", Message: "unknown work type"})
	}
	if p.Status != nil && !p.Status.IsValid() {
		errs = append(errs, FieldError{Field: "status", Message: "unknown status"})
	}
	if p.Chapters != nil && len(p.Chapters) == 0 {
		errs = append(errs, FieldError{Field: "chapters", Message: "at least one chapter required"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// WorkFilter selects works in listings. Zero fields match everything.
type WorkFilter struct {
	AuthorID uuid.UUID
	Status   WorkStatus
	Type     WorkType
	Limit    int
}

// Matches reports whether w passes the filter (Limit is ignored).
func (f WorkFilter) Matches(w *Work) bool {
	if f.AuthorID != uuid.Nil && w.Author.ID != f.AuthorID {
		return false
	}
	if f.Status != "" && w.Status != f.Status {
		return false
	}
	if f.Type != "" && w.Type != f.Type {
		return false
	}
	return true
}

// SortByUpdatedDesc orders works most recently updated first. Stores do not
// guarantee an order, so every listing goes through this.
func SortByUpdatedDesc(works []Work) {
	slices.SortStableFunc(works, func(a, b Work) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
}
