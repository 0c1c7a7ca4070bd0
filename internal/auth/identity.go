package auth

import "github.com/quietpage/quietpage/internal/domain"

// OAuthIdentity is the profile a federated provider vouches for. Name and
// AvatarURL are nil when the provider did not share them.
type OAuthIdentity struct {
	Email      string
	Name       *string
	AvatarURL  *string
	ProviderID string
}

// ChangesProfile reports whether the provider's name or avatar differs from
// the user's. Missing or empty provider fields never count as a change.
func (i *OAuthIdentity) ChangesProfile(u *domain.User) bool {
	return differs(i.Name, u.DisplayName) || differs(i.AvatarURL, u.AvatarURL)
}

// ApplyTo fills a new user's email, name and avatar from the identity.
func (i *OAuthIdentity) ApplyTo(u *domain.User) {
	u.Email = i.Email
	if i.Name != nil {
		u.DisplayName = *i.Name
	}
	if i.AvatarURL != nil {
		u.AvatarURL = *i.AvatarURL
	}
}

func differs(p *string, current string) bool {
	return p != nil && *p != "" && *p != current
}
