// Package models defines the data shapes exchanged with the Dishcovery
// backend. Fields that may arrive in more than one upstream shape are
// normalized here, at ingestion, so the rest of the client always sees one
// canonical form.
package models

import "strings"

// DefaultAvatar is shown when the backend has no profile image for a user.
const DefaultAvatar = "https://cdn.dishcovery.app/static/avatar-default.png"

// UserStats are the profile counters shown on the profile screen.
type UserStats struct {
	RecipesTried int `json:"recipesTried"`
	Favourites   int `json:"favourites"`
	Reviews      int `json:"reviews"`
}

// UserProfile is the backend's user object. Username and the default
// avatar are derived client-side when the backend omits them; derived
// values are display-only and are never sent back as authoritative.
type UserProfile struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Username     string    `json:"username,omitempty"`
	ProfileImage string    `json:"profileImage,omitempty"`
	Stats        UserStats `json:"stats"`
}

// DisplayUsername returns the backend-provided username, or derives
// "@" + lowercase first name when the backend omitted one.
func (u *UserProfile) DisplayUsername() string {
	if u.Username != "" {
		return u.Username
	}
	if u.FirstName == "" {
		return ""
	}
	return "@" + strings.ToLower(u.FirstName)
}

// AvatarURL returns the profile image, falling back to the default avatar.
func (u *UserProfile) AvatarURL() string {
	if u.ProfileImage != "" {
		return u.ProfileImage
	}
	return DefaultAvatar
}

// FullName joins first and last name, tolerating either being empty.
func (u *UserProfile) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
