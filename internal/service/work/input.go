package work

import (
	"slices"
	"strconv"

	"github.com/quietpage/quietpage/internal/domain"
)

const maxTitleLength = 300

// CreateInput holds the initial fields of a new work. Zero values take the
// defaults: "Untitled", type story, status draft and the default chapter.
type CreateInput struct {
	Title    string
	Type     domain.WorkType
	Status   domain.WorkStatus
	Chapters []domain.Chapter
	Excerpt  string
}

func (i *CreateInput) normalize() {
	i.Title = normalizeTitle(i.Title)
	if i.Type == "" {
		i.Type = domain.WorkTypeStory
	}
	if i.Status == "" {
		i.Status = domain.WorkStatusDraft
	}
	if len(i.Chapters) == 0 {
		i.Chapters = []domain.Chapter{domain.DefaultChapter()}
	} else {
		i.Chapters = slices.Clone(i.Chapters)
	}
}

// Validate validates a normalized create input.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if len([]rune(i.Title)) > maxTitleLength {
		errs = append(errs, domain.FieldError{Field: "title", Message: "too long"})
	}
	if !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "unknown work type"})
	}
	if !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}
	for idx, ch := range i.Chapters {
		if ch.ID == "" {
			errs = append(errs, domain.FieldError{Field: "chapters", Message: "chapter " + strconv.Itoa(idx+1) + " has no id"})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
