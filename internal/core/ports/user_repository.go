package ports

import (
	"context"

	"github.com/karnbhushan1994/freefortalk/internal/core/domain"
)

// UserRepository defines persistence for user accounts keyed by unique email.
type UserRepository interface {
	// FindByEmail returns domain.ErrUserNotFound when no account matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create returns domain.ErrDuplicateKey when the email is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
