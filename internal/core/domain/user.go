package domain

import (
	"errors"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// DefaultProfilePic is assigned to every new account.
const DefaultProfilePic = "https://www.w3schools.com/howto/img_avatar.png"

var (
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateKey is returned by the store when the unique email index rejects an insert.
	ErrDuplicateKey = errors.New("duplicate key")
)

// User models a registered account. PasswordHash never leaves the service layer.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	ProfilePic   string
	IsOnline     bool
	LastSeen     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the sanitized view returned to clients.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Public strips every secret field from u.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
