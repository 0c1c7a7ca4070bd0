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

type workDoc struct {
	Title        string           `firestore:"title"`
	Type         string           `firestore:"type"`
	Status       string           `firestore:"status"`
	Chapters     []domain.Chapter `firestore:"chapters"`
	AuthorID     string           `firestore:"authorId"`
	AuthorName   string           `firestore:"authorName"`
	AuthorHandle string           `firestore:"authorHandle"`
	AuthorEmail  string           `firestore:"authorEmail"`
	AuthorAvatar string           `firestore:"authorAvatar"`
	Likes        []string         `firestore:"likes"`
	LikesCount   int              `firestore:"likesCount"`
	Excerpt      string           `firestore:"excerpt"`
	ReadTime     string           `firestore:"readTime"`
	CreatedAt    time.Time        `firestore:"createdAt,serverTimestamp"`
	UpdatedAt    time.Time        `firestore:"updatedAt,serverTimestamp"`
}

func toWorkDoc(w *domain.Work) workDoc {
	likes := make([]string, 0, len(w.Likes))
	for _, id := range w.Likes {
		likes = append(likes, id.String())
	}
	return workDoc{
		Title:        w.Title,
		Type:         string(w.Type),
		Status:       string(w.Status),
		Chapters:     slices.Clone(w.Chapters),
		AuthorID:     w.Author.ID.String(),
		AuthorName:   w.Author.Name,
		AuthorHandle: w.Author.Handle,
		AuthorEmail:  w.Author.Email,
		AuthorAvatar: w.Author.Avatar,
		Likes:        likes,
		LikesCount:   len(likes),
		Excerpt:      w.Excerpt,
		ReadTime:     w.ReadTime,
	}
}

func (d workDoc) toDomain(id string) (*domain.Work, error) {
	workID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("work id %q: %w", id, domain.ErrValidation)
	}
	// Documents written by older clients may carry a non-uuid author id.
	authorID, _ := uuid.Parse(d.AuthorID)

	likes := make([]uuid.UUID, 0, len(d.Likes))
	for _, s := range d.Likes {
		if u, err := uuid.Parse(s); err == nil {
			likes = append(likes, u)
		}
	}

	return &domain.Work{
		ID:       workID,
		Title:    d.Title,
		Type:     domain.WorkType(d.Type),
		Status:   domain.WorkStatus(d.Status),
		Chapters: d.Chapters,
		Author: domain.AuthorSnapshot{
			ID:     authorID,
			Name:   d.AuthorName,
			Handle: d.AuthorHandle,
			Email:  d.AuthorEmail,
			Avatar: d.AuthorAvatar,
		},
		Likes:      likes,
		LikesCount: d.LikesCount,
		Excerpt:    d.Excerpt,
		ReadTime:   d.ReadTime,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}, nil
}

// patchFields returns the merge map for p, always including a server
// timestamp for updatedAt.
func patchFields(p domain.WorkPatch) map[string]any {
	m := map[string]any{"updatedAt": firestore.ServerTimestamp}
	if p.Title != nil {
		m["title"] = *p.Title
	}
	if p.Type != nil {
		m["type"] = string(*p.Type)
	}
	if p.Status != nil {
		m["status"] = string(*p.Status)
	}
	if p.Chapters != nil {
		m["chapters"] = slices.Clone(p.Chapters)
	}
	if p.Author != nil {
		m["authorId"] = p.Author.ID.String()
		m["authorName"] = p.Author.Name
		m["authorHandle"] = p.Author.Handle
		m["authorEmail"] = p.Author.Email
		m["authorAvatar"] = p.Author.Avatar
	}
	if p.Excerpt != nil {
		m["excerpt"] = *p.Excerpt
	}
	if p.ReadTime != nil {
		m["readTime"] = *p.ReadTime
	}
	return m
}

// WorkRepo stores works in the "stories" collection.
type WorkRepo struct {
	client *firestore.Client
}

// NewWorkRepo creates a work repository.
func NewWorkRepo(client *firestore.Client) *WorkRepo {
	return &WorkRepo{client: client}
}

func (r *WorkRepo) col() *firestore.CollectionRef {
	return r.client.Collection(worksCollection)
}

// Create writes a new document with server timestamps and reads it back.
func (r *WorkRepo) Create(ctx context.Context, w *domain.Work) (*domain.Work, error) {
	id := w.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	ref := r.col().Doc(id.String())
	if _, err := ref.Create(ctx, toWorkDoc(w)); err != nil {
		return nil, mapError(err, "work", id.String())
	}
	return r.GetByID(ctx, id)
}

// Update merges p into the document. A missing document is created with the
// patched fields only, matching the hosted store's merge write.
func (r *WorkRepo) Update(ctx context.Context, id uuid.UUID, p domain.WorkPatch) error {
	_, err := r.col().Doc(id.String()).Set(ctx, patchFields(p), firestore.MergeAll)
	return mapError(err, "work", id.String())
}

// Delete removes the document. Deleting a missing document is not an error.
func (r *WorkRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.col().Doc(id.String()).Delete(ctx)
	return mapError(err, "work", id.String())
}

// ToggleLike flips membership with arrayUnion/arrayRemove and moves the
// counter with an increment, inside one transaction.
func (r *WorkRepo) ToggleLike(ctx context.Context, id, userID uuid.UUID) (bool, int, error) {
	ref := r.col().Doc(id.String())
	uid := userID.String()

	var (
		liked bool
		count int
	)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}
		var doc workDoc
		if err := snap.DataTo(&doc); err != nil {
			return err
		}

		if slices.Contains(doc.Likes, uid) {
			liked, count = false, max(doc.LikesCount-1, 0)
			return tx.Update(ref, []firestore.Update{
				{Path: "likes", Value: firestore.ArrayRemove(uid)},
				{Path: "likesCount", Value: firestore.Increment(-1)},
			})
		}
		liked, count = true, doc.LikesCount+1
		return tx.Update(ref, []firestore.Update{
			{Path: "likes", Value: firestore.ArrayUnion(uid)},
			{Path: "likesCount", Value: firestore.Increment(1)},
		})
	})
	if err != nil {
		return false, 0, mapError(err, "work", id.String())
	}
	return liked, count, nil
}

// GetByID loads one document.
func (r *WorkRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Work, error) {
	snap, err := r.col().Doc(id.String()).Get(ctx)
	if err != nil {
		return nil, mapError(err, "work", id.String())
	}

	var doc workDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("decode work %s: %w", id, err)
	}
	return doc.toDomain(snap.Ref.ID)
}

// List runs an equality query. Results are unordered.
func (r *WorkRepo) List(ctx context.Context, f domain.WorkFilter) ([]domain.Work, error) {
	q := r.col().Query
	if f.AuthorID != uuid.Nil {
		q = q.Where("authorId", "==", f.AuthorID.String())
	}
	if f.Status != "" {
		q = q.Where("status", "==", string(f.Status))
	}
	if f.Type != "" {
		q = q.Where("type", "==", string(f.Type))
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, mapError(err, "works", "")
	}

	works := make([]domain.Work, 0, len(snaps))
	for _, snap := range snaps {
		var doc workDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode work %s: %w", snap.Ref.ID, err)
		}
		w, err := doc.toDomain(snap.Ref.ID)
		if err != nil {
			continue
		}
		works = append(works, *w)
	}
	return works, nil
}
