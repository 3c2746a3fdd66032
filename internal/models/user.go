package models

import (
	"strconv"
	"strings"
)

// UserProfile is the profile block the directory service returns per user.
type UserProfile struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// User is a directory entry used to resolve participant, owner and assignee
// ids to display names. The core never stores users; it only references ids.
type User struct {
	ID       int         `json:"id"`
	Username string      `json:"username,omitempty"`
	Email    string      `json:"email,omitempty"`
	Role     string      `json:"role,omitempty"`
	Has2FA   bool        `json:"has_2fa,omitempty"`
	Profile  UserProfile `json:"profile"`
}

// DisplayName builds a human label for the user: full name, then username,
// then email, falling back to the raw id.
func (u *User) DisplayName() string {
	parts := make([]string, 0, 2)
	if u.Profile.FirstName != "" {
		parts = append(parts, u.Profile.FirstName)
	}
	if u.Profile.LastName != "" {
		parts = append(parts, u.Profile.LastName)
	}
	if name := strings.TrimSpace(strings.Join(parts, " ")); name != "" {
		return name
	}
	if u.Username != "" {
		return u.Username
	}
	if u.Email != "" {
		return u.Email
	}
	return "User " + strconv.Itoa(u.ID)
}

// Initials returns up to two uppercase initials for avatar badges.
func (u *User) Initials() string {
	fields := strings.Fields(u.DisplayName())
	if len(fields) > 2 {
		fields = fields[:2]
	}
	var b strings.Builder
	for _, f := range fields {
		b.WriteString(strings.ToUpper(f[:1]))
	}
	if b.Len() == 0 {
		return "U"
	}
	return b.String()
}


// ActivityLog is one entry from the profile service's personal activity feed.
type ActivityLog struct {
	ID        int    `json:"id"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}
