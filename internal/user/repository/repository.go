package repository

import (
	"context"
	"errors"

	"github.com/AlibekovAA/microblog/internal/user/domain"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Repository stores accounts. Emails are expected to be normalized by the
// caller; uniqueness is enforced here.
type Repository interface {
	Create(ctx context.Context, user domain.User) error
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByID(ctx context.Context, id domain.ID) (domain.User, error)
}
