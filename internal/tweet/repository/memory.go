package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/AlibekovAA/microblog/internal/tweet/domain"
	"github.com/AlibekovAA/microblog/internal/tweet/policy"
)

type MemoryRepository struct {
	mu     sync.RWMutex
	tweets map[string]domain.Tweet
	seq    map[string]uint64
	next   uint64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		tweets: make(map[string]domain.Tweet),
		seq:    make(map[string]uint64),
	}
}

func (r *MemoryRepository) Create(ctx context.Context, tweet domain.Tweet) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	r.seq[tweet.ID] = r.next
	r.tweets[tweet.ID] = clone(tweet)
	return nil
}

// List orders newest first; insertion order breaks CreatedAt ties.
func (r *MemoryRepository) List(ctx context.Context) ([]domain.Tweet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	tweets := make([]domain.Tweet, 0, len(r.tweets))
	for _, t := range r.tweets {
		tweets = append(tweets, clone(t))
	}

	sort.Slice(tweets, func(i, j int) bool {
		if !tweets[i].CreatedAt.Equal(tweets[j].CreatedAt) {
			return tweets[i].CreatedAt.After(tweets[j].CreatedAt)
		}
		return r.seq[tweets[i].ID] > r.seq[tweets[j].ID]
	})

	return tweets, nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id string) (domain.Tweet, error) {
	if err := ctx.Err(); err != nil {
		return domain.Tweet{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tweets[id]
	if !ok {
		return domain.Tweet{}, ErrTweetNotFound
	}
	return clone(t), nil
}

func (r *MemoryRepository) ToggleLike(ctx context.Context, id, userID string) (domain.Tweet, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Tweet{}, false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tweets[id]
	if !ok {
		return domain.Tweet{}, false, ErrTweetNotFound
	}

	likes, liked := policy.NextLikes(t.Likes, userID)
	t.Likes = likes
	r.tweets[id] = t
	return clone(t), liked, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tweets[id]; !ok {
		return ErrTweetNotFound
	}
	delete(r.tweets, id)
	delete(r.seq, id)
	return nil
}

func clone(t domain.Tweet) domain.Tweet {
	likes := make([]string, len(t.Likes))
	copy(likes, t.Likes)
	t.Likes = likes
	return t
}
