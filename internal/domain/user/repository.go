package user

import "context"

type UserRepository interface {
	// GetByEmail returns ErrUserNotFound when no user has the email
	GetByEmail(ctx context.Context, email string) (User, error)
}
