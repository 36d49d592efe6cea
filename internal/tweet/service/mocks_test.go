package service

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/AlibekovAA/microblog/internal/common/clock"
	"github.com/AlibekovAA/microblog/internal/common/logger"
	"github.com/AlibekovAA/microblog/internal/tweet/domain"
	tweetrepo "github.com/AlibekovAA/microblog/internal/tweet/repository"
)

type mockTweetRepo struct {
	createFunc     func(ctx context.Context, tweet domain.Tweet) error
	listFunc       func(ctx context.Context) ([]domain.Tweet, error)
	findByIDFunc   func(ctx context.Context, id string) (domain.Tweet, error)
	toggleLikeFunc func(ctx context.Context, id, userID string) (domain.Tweet, bool, error)
	deleteFunc     func(ctx context.Context, id string) error
}

func (m *mockTweetRepo) Create(ctx context.Context, tweet domain.Tweet) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, tweet)
	}
	return nil
}

func (m *mockTweetRepo) List(ctx context.Context) ([]domain.Tweet, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []domain.Tweet{}, nil
}

func (m *mockTweetRepo) FindByID(ctx context.Context, id string) (domain.Tweet, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return domain.Tweet{}, tweetrepo.ErrTweetNotFound
}

func (m *mockTweetRepo) ToggleLike(ctx context.Context, id, userID string) (domain.Tweet, bool, error) {
	if m.toggleLikeFunc != nil {
		return m.toggleLikeFunc(ctx, id, userID)
	}
	return domain.Tweet{}, false, tweetrepo.ErrTweetNotFound
}

func (m *mockTweetRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockImageStore struct {
	putFunc func(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}

func (m *mockImageStore) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	if m.putFunc != nil {
		return m.putFunc(ctx, key, contentType, body, size)
	}
	return "https://cdn.test/" + key, nil
}

type mockIDGenerator struct {
	newIDFunc func() (string, error)
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newIDFunc != nil {
		return m.newIDFunc()
	}
	return testTweetID, nil
}

const (
	testTweetID = "7f1c2a4e-9b3d-4c8e-a1f0-2d5e6b7c8a90"
	testOwnerID = "0b8e1f2a-3c4d-4e5f-8a9b-0c1d2e3f4a5b"
	testOtherID = "5a6b7c8d-9e0f-4a1b-8c2d-3e4f5a6b7c8d"
)

type testDeps struct {
	repo   *mockTweetRepo
	images *mockImageStore
	ids    *mockIDGenerator
	clock  *clock.MockClock
}

func setupTweetService(t *testing.T) (*TweetService, *testDeps) {
	t.Helper()

	deps := &testDeps{
		repo:   &mockTweetRepo{},
		images: &mockImageStore{},
		ids:    &mockIDGenerator{},
		clock:  clock.NewMockClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)),
	}

	svc := NewTweetService(TweetServiceDeps{
		Repo:        deps.repo,
		Images:      deps.images,
		IDGenerator: deps.ids,
		Clock:       deps.clock,
		Log:         logger.NewWithWriter(&bytes.Buffer{}, "test", "debug"),
	})

	return svc, deps
}

func setupLogger() *logger.Logger {
	return logger.NewWithWriter(&bytes.Buffer{}, "test", "debug")
}

func errNotFound() error {
	return tweetrepo.ErrTweetNotFound
}
