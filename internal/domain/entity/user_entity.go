package entity

import (
	"strings"
	"time"
)

// User is the aggregate root for accounts.
// Passwords are stored as bcrypt hashes in Password field.
type User struct {
	ID         string
	Email      string
	UserName   string
	Password   string
	FirstName  string
	LastName   string
	Department string
	About      string
	AvatarURL  string
	IsVerified bool
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FullName joins first and last name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Summary is the public author view of u.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, UserName: u.UserName, AvatarURL: u.AvatarURL}
}

// UserSummary is what other users see next to posts and comments.
type UserSummary struct {
	ID        string `json:"id"`
	UserName  string `json:"user_name"`
	AvatarURL string `json:"avatar_url"`
}
