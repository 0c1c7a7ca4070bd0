package domain

import (
	"time"

	"github.com/google/uuid"
)

// Save is a reader's bookmark of a work with a display snapshot of it.
type Save struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	StoryID      uuid.UUID
	SavedAt      time.Time
	Title        string
	Type         WorkType
	AuthorName   string
	AuthorHandle string
	Excerpt      string
	UpdatedAt    time.Time
}

// NewSave builds a bookmark of w for userID.
func NewSave(userID uuid.UUID, w *Work) Save {
	return Save{
		UserID:       userID,
		StoryID:      w.ID,
		Title:        w.Title,
		Type:         w.Type,
		AuthorName:   w.Author.Name,
		AuthorHandle: w.Author.Handle,
		Excerpt:      w.Excerpt,
		UpdatedAt:    w.UpdatedAt,
	}
}

// ReadingProgress is the last chapter a user opened in a work.
type ReadingProgress struct {
	UserID           uuid.UUID
	StoryID          uuid.UUID
	LastChapterIndex int
	UpdatedAt        time.Time
}

// ClampChapterIndex returns idx if it addresses one of count chapters, else 0.
// Stored progress may point past the end after chapters were removed.
func ClampChapterIndex(idx, count int) int {
	if idx < 0 || idx >= count {
		return 0
	}
	return idx
}
