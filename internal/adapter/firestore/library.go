package firestore

import (
	"context"
	"fmt"
	"slices"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"github.com/quietpage/quietpage/internal/domain"
)

type saveDoc struct {
	UserID       string    `firestore:"userId"`
	StoryID      string    `firestore:"storyId"`
	SavedAt      time.Time `firestore:"savedAt,serverTimestamp"`
	Title        string    `firestore:"title"`
	Type         string    `firestore:"type"`
	AuthorName   string    `firestore:"authorName"`
	AuthorHandle string    `firestore:"authorHandle"`
	Excerpt      string    `firestore:"excerpt"`
	UpdatedAt    time.Time `firestore:"updatedAt"`
}

func (d saveDoc) toDomain(id string) domain.Save {
	saveID, _ := uuid.Parse(id)
	userID, _ := uuid.Parse(d.UserID)
	storyID, _ := uuid.Parse(d.StoryID)
	return domain.Save{
		ID:           saveID,
		UserID:       userID,
		StoryID:      storyID,
		SavedAt:      d.SavedAt,
		Title:        d.Title,
		Type:         domain.WorkType(d.Type),
		AuthorName:   d.AuthorName,
		AuthorHandle: d.AuthorHandle,
		Excerpt:      d.Excerpt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// SaveRepo stores bookmarks in the "saves" collection.
type SaveRepo struct {
	client *firestore.Client
}

// NewSaveRepo creates a bookmark repository.
func NewSaveRepo(client *firestore.Client) *SaveRepo {
	return &SaveRepo{client: client}
}

func (r *SaveRepo) col() *firestore.CollectionRef {
	return r.client.Collection(savesCollection)
}

// List returns the user's saves, optionally for one story, newest first.
func (r *SaveRepo) List(ctx context.Context, userID, storyID uuid.UUID) ([]domain.Save, error) {
	q := r.col().Where("userId", "==", userID.String())
	if storyID != uuid.Nil {
		q = q.Where("storyId", "==", storyID.String())
	}

	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, mapError(err, "saves", "")
	}

	saves := make([]domain.Save, 0, len(snaps))
	for _, snap := range snaps {
		var doc saveDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode save %s: %w", snap.Ref.ID, err)
		}
		saves = append(saves, doc.toDomain(snap.Ref.ID))
	}
	slices.SortFunc(saves, func(a, b domain.Save) int { return b.SavedAt.Compare(a.SavedAt) })
	return saves, nil
}

// Create writes a bookmark snapshot; savedAt is assigned by the server.
func (r *SaveRepo) Create(ctx context.Context, s domain.Save) (domain.Save, error) {
	id := s.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	ref := r.col().Doc(id.String())
	doc := saveDoc{
		UserID:       s.UserID.String(),
		StoryID:      s.StoryID.String(),
		Title:        s.Title,
		Type:         string(s.Type),
		AuthorName:   s.AuthorName,
		AuthorHandle: s.AuthorHandle,
		Excerpt:      s.Excerpt,
		UpdatedAt:    s.UpdatedAt,
	}
	if _, err := ref.Create(ctx, doc); err != nil {
		return domain.Save{}, mapError(err, "save", id.String())
	}

	snap, err := ref.Get(ctx)
	if err != nil {
		return domain.Save{}, mapError(err, "save", id.String())
	}
	var stored saveDoc
	if err := snap.DataTo(&stored); err != nil {
		return domain.Save{}, fmt.Errorf("decode save %s: %w", id, err)
	}
	return stored.toDomain(id.String()), nil
}

// Delete removes a save owned by userID. A missing or foreign save yields ErrNotFound.
func (r *SaveRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	ref := r.col().Doc(id.String())

	snap, err := ref.Get(ctx)
	if err != nil {
		return mapError(err, "save", id.String())
	}
	var doc saveDoc
	if err := snap.DataTo(&doc); err != nil {
		return fmt.Errorf("decode save %s: %w", id, err)
	}
	if doc.UserID != userID.String() {
		return fmt.Errorf("save %s: %w", id, domain.ErrNotFound)
	}

	_, err = ref.Delete(ctx)
	return mapError(err, "save", id.String())
}

type progressDoc struct {
	UserID           string    `firestore:"userId"`
	StoryID          string    `firestore:"storyId"`
	LastChapterIndex int       `firestore:"lastChapterIndex"`
	UpdatedAt        time.Time `firestore:"updatedAt,serverTimestamp"`
}

// ProgressRepo stores reading positions keyed by "<userId>_<storyId>".
type ProgressRepo struct {
	client *firestore.Client
}

// NewProgressRepo creates a reading-progress repository.
func NewProgressRepo(client *firestore.Client) *ProgressRepo {
	return &ProgressRepo{client: client}
}

func progressDocID(userID, storyID uuid.UUID) string {
	return userID.String() + "_" + storyID.String()
}

// Get returns the progress for (userID, storyID).
func (r *ProgressRepo) Get(ctx context.Context, userID, storyID uuid.UUID) (domain.ReadingProgress, error) {
	snap, err := r.client.Collection(progressCollection).Doc(progressDocID(userID, storyID)).Get(ctx)
	if err != nil {
		return domain.ReadingProgress{}, mapError(err, "reading_progress", storyID.String())
	}

	var doc progressDoc
	if err := snap.DataTo(&doc); err != nil {
		return domain.ReadingProgress{}, fmt.Errorf("decode progress: %w", err)
	}
	return domain.ReadingProgress{
		UserID:           userID,
		StoryID:          storyID,
		LastChapterIndex: doc.LastChapterIndex,
		UpdatedAt:        doc.UpdatedAt,
	}, nil
}

// Upsert overwrites the record under its composite key.
func (r *ProgressRepo) Upsert(ctx context.Context, p domain.ReadingProgress) error {
	ref := r.client.Collection(progressCollection).Doc(progressDocID(p.UserID, p.StoryID))
	_, err := ref.Set(ctx, progressDoc{
		UserID:           p.UserID.String(),
		StoryID:          p.StoryID.String(),
		LastChapterIndex: p.LastChapterIndex,
	})
	return mapError(err, "reading_progress", p.StoryID.String())
}
