package ports

import (
	"context"
	"time"

	"github.com/karnbhushan1994/freefortalk/internal/core/domain"
)

// SignupInput is the DTO passed from the transport layer to AuthService.Signup.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Role     string // optional, defaults to domain.RoleUser
}

// LoginInput is the DTO passed from the transport layer to AuthService.Login.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult is returned by every successful signup or login.
type AuthResult struct {
	Token string
	User  domain.PublicUser
}

type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
}

// PasswordHasher hashes and verifies passwords. Verify reports a mismatch as
// (false, nil); a non-nil error means the stored hash itself is unusable.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) (bool, error)
}

// SessionClaims is the decoded content of a session token.
type SessionClaims struct {
	UserID    string
	Role      string
	ExpiresAt time.Time
}

type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
	Parse(token string) (*SessionClaims, error)
}
