package repository

import (
	"context"
	"errors"

	"github.com/AlibekovAA/microblog/internal/tweet/domain"
)

var ErrTweetNotFound = errors.New("tweet not found")

// Repository persists tweets. ToggleLike must be atomic per tweet: concurrent
// toggles by different accounts never lose or duplicate a like.
type Repository interface {
	Create(ctx context.Context, tweet domain.Tweet) error
	List(ctx context.Context) ([]domain.Tweet, error)
	FindByID(ctx context.Context, id string) (domain.Tweet, error)
	ToggleLike(ctx context.Context, id, userID string) (domain.Tweet, bool, error)
	Delete(ctx context.Context, id string) error
}
