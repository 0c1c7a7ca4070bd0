// Package wire holds the JSON bodies exchanged between the REST API and its
// clients, with conversions to and from domain types.
package wire

import (
	"time"

	"github.com/google/uuid"

	"github.com/quietpage/quietpage/internal/domain"
)

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

// Error is the body of every non-2xx response.
type Error struct {
	Error  string       `json:"error"`
	Reason string       `json:"reason,omitempty"`
	Fields []FieldError `json:"fields,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ---------------------------------------------------------------------------
// Auth
// ---------------------------------------------------------------------------

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type PasswordLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Provider string `json:"provider"`
	Code     string `json:"code"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

type User struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email"`
	AvatarURL   string    `json:"avatarUrl"`
	Handle      string    `json:"handle"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func FromUser(u *domain.User) User {
	return User{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		AvatarURL:   u.AvatarURL,
		Handle:      u.Handle,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (u User) ToDomain() *domain.User {
	return &domain.User{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		AvatarURL:   u.AvatarURL,
		Handle:      u.Handle,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// Works
// ---------------------------------------------------------------------------

// Work mirrors the stored document, with the author snapshot flattened.
type Work struct {
	ID           uuid.UUID         `json:"id"`
	Title        string            `json:"title"`
	Type         domain.WorkType   `json:"type"`
	Status       domain.WorkStatus `json:"status"`
	Chapters     []domain.Chapter  `json:"chapters"`
	AuthorID     uuid.UUID         `json:"authorId"`
	AuthorName   string            `json:"authorName"`
	AuthorHandle string            `json:"authorHandle"`
	AuthorEmail  string            `json:"authorEmail"`
	AuthorAvatar string            `json:"authorAvatar"`
	Likes        []uuid.UUID       `json:"likes"`
	LikesCount   int               `json:"likesCount"`
	Excerpt      string            `json:"excerpt"`
	ReadTime     string            `json:"readTime"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

func FromWork(w *domain.Work) Work {
	likes := w.Likes
	if likes == nil {
		likes = []uuid.UUID{}
	}
	return Work{
		ID:           w.ID,
		Title:        w.Title,
		Type:         w.Type,
		Status:       w.Status,
		Chapters:     w.Chapters,
		AuthorID:     w.Author.ID,
		AuthorName:   w.Author.Name,
		AuthorHandle: w.Author.Handle,
		AuthorEmail:  w.Author.Email,
		AuthorAvatar: w.Author.Avatar,
		Likes:        likes,
		LikesCount:   w.LikesCount,
		Excerpt:      w.Excerpt,
		ReadTime:     w.ReadTime,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}
}

func FromWorks(ws []domain.Work) []Work {
	out := make([]Work, 0, len(ws))
	for i := range ws {
		out = append(out, FromWork(&ws[i]))
	}
	return out
}

func (w Work) ToDomain() *domain.Work {
	return &domain.Work{
		ID:       w.ID,
		Title:    w.Title,
		Type:     w.Type,
		Status:   w.Status,
		Chapters: w.Chapters,
		Author: domain.AuthorSnapshot{
			ID:     w.AuthorID,
			Name:   w.AuthorName,
			Handle: w.AuthorHandle,
			Email:  w.AuthorEmail,
			Avatar: w.AuthorAvatar,
		},
		Likes:      w.Likes,
		LikesCount: w.LikesCount,
		Excerpt:    w.Excerpt,
		ReadTime:   w.ReadTime,
		CreatedAt:  w.CreatedAt,
		UpdatedAt:  w.UpdatedAt,
	}
}

func ToWorks(ws []Work) []domain.Work {
	out := make([]domain.Work, 0, len(ws))
	for _, w := range ws {
		out = append(out, *w.ToDomain())
	}
	return out
}

type CreateWorkRequest struct {
	Title    string            `json:"title"`
	Type     domain.WorkType   `json:"type"`
	Status   domain.WorkStatus `json:"status"`
	Chapters []domain.Chapter  `json:"chapters"`
	Excerpt  string            `json:"excerpt,omitempty"`
}

// WorkPatch is the body of PATCH /works/{id}. Absent fields are untouched.
// Author and read time are always set by the server.
type WorkPatch struct {
	Title    *string            `json:"title,omitempty"`
	Type     *domain.WorkType   `json:"type,omitempty"`
	Status   *domain.WorkStatus `json:"status,omitempty"`
	Chapters []domain.Chapter   `json:"chapters,omitempty"`
	Excerpt  *string            `json:"excerpt,omitempty"`
}

func FromPatch(p domain.WorkPatch) WorkPatch {
	return WorkPatch{
		Title:    p.Title,
		Type:     p.Type,
		Status:   p.Status,
		Chapters: p.Chapters,
		Excerpt:  p.Excerpt,
	}
}

func (p WorkPatch) ToDomain() domain.WorkPatch {
	return domain.WorkPatch{
		Title:    p.Title,
		Type:     p.Type,
		Status:   p.Status,
		Chapters: p.Chapters,
		Excerpt:  p.Excerpt,
	}
}

type LikeResponse struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likesCount"`
}

// ---------------------------------------------------------------------------
// Library
// ---------------------------------------------------------------------------

type Save struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"userId"`
	StoryID      uuid.UUID       `json:"storyId"`
	SavedAt      time.Time       `json:"savedAt"`
	Title        string          `json:"title"`
	Type         domain.WorkType `json:"type"`
	AuthorName   string          `json:"authorName"`
	AuthorHandle string          `json:"authorHandle"`
	Excerpt      string          `json:"excerpt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func FromSave(s domain.Save) Save {
	return Save(s)
}

func FromSaves(ss []domain.Save) []Save {
	out := make([]Save, 0, len(ss))
	for _, s := range ss {
		out = append(out, FromSave(s))
	}
	return out
}

func (s Save) ToDomain() domain.Save {
	return domain.Save(s)
}

type CreateSaveRequest struct {
	StoryID uuid.UUID `json:"storyId"`
}

type Progress struct {
	StoryID          uuid.UUID `json:"storyId"`
	LastChapterIndex int       `json:"lastChapterIndex"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func FromProgress(p domain.ReadingProgress) Progress {
	return Progress{StoryID: p.StoryID, LastChapterIndex: p.LastChapterIndex, UpdatedAt: p.UpdatedAt}
}

func (p Progress) ToDomain() domain.ReadingProgress {
	return domain.ReadingProgress{StoryID: p.StoryID, LastChapterIndex: p.LastChapterIndex, UpdatedAt: p.UpdatedAt}
}

type ProgressRequest struct {
	LastChapterIndex int `json:"lastChapterIndex"`
}

// ---------------------------------------------------------------------------
// Profiles
// ---------------------------------------------------------------------------

type Profile struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"displayName"`
	Handle      string    `json:"handle"`
	AvatarURL   string    `json:"avatarUrl"`
	Stats       Stats     `json:"stats"`
}

type Stats struct {
	Stories int `json:"stories"`
	Poems   int `json:"poems"`
	Drafts  int `json:"drafts"`
}

func FromProfile(p domain.AuthorProfile, s domain.ProfileStats) Profile {
	return Profile{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		Handle:      p.Handle,
		AvatarURL:   p.AvatarURL,
		Stats:       Stats(s),
	}
}
