package domain

import "github.com/google/uuid"

// AuthorProfile is what a profile page shows about a writer.
// ID is uuid.Nil when the author was resolved from a work snapshot and has no
// users row with that handle.
type AuthorProfile struct {
	ID          uuid.UUID
	DisplayName string
	Handle      string
	Email       string
	AvatarURL   string
}

// ProfileFromUser projects a user onto a profile.
func ProfileFromUser(u *User) AuthorProfile {
	return AuthorProfile{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Handle:      u.Handle,
		Email:       u.Email,
		AvatarURL:   u.AvatarURL,
	}
}

// ProfileFromSnapshot projects a work's author snapshot onto a profile.
func ProfileFromSnapshot(a AuthorSnapshot) AuthorProfile {
	return AuthorProfile{
		ID:          a.ID,
		DisplayName: a.Name,
		Handle:      a.Handle,
		Email:       a.Email,
		AvatarURL:   a.Avatar,
	}
}

// ProfileStats counts an author's works.
type ProfileStats struct {
	Stories int
	Poems   int
	Drafts  int
}

// CountStats computes stats over all works of one author.
func CountStats(works []Work) ProfileStats {
	var s ProfileStats
	for i := range works {
		w := &works[i]
		switch {
		case w.Status == WorkStatusDraft:
			s.Drafts++
		case w.IsPublished() && (w.Type == WorkTypeStory || w.Type == ""):
			s.Stories++
		case w.IsPublished() && w.Type == WorkTypePoem:
			s.Poems++
		}
	}
	return s
}
