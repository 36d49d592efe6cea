package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/AlibekovAA/microblog/internal/common/clock"
	"github.com/AlibekovAA/microblog/internal/common/logger"
	userdomain "github.com/AlibekovAA/microblog/internal/user/domain"
	userrepo "github.com/AlibekovAA/microblog/internal/user/repository"
)

type mockUserRepo struct {
	createFunc      func(ctx context.Context, user userdomain.User) error
	findByEmailFunc func(ctx context.Context, email string) (userdomain.User, error)
	findByIDFunc    func(ctx context.Context, id userdomain.ID) (userdomain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user userdomain.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (userdomain.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) FindByID(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

type mockHasher struct {
	hashFunc    func(password string) (string, error)
	matchesFunc func(hash, password string) bool
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *mockHasher) Matches(hash, password string) bool {
	if m.matchesFunc != nil {
		return m.matchesFunc(hash, password)
	}
	return hash == "hashed_"+password
}

type mockIDGenerator struct {
	newIDFunc func() (string, error)
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newIDFunc != nil {
		return m.newIDFunc()
	}
	return "user-123", nil
}

type mockTokenIssuer struct {
	issueFunc func(accountID, handle string) (string, error)
}

func (m *mockTokenIssuer) Issue(accountID, handle string) (string, error) {
	if m.issueFunc != nil {
		return m.issueFunc(accountID, handle)
	}
	return "token-for-" + accountID, nil
}

type testDeps struct {
	repo   *mockUserRepo
	hasher *mockHasher
	ids    *mockIDGenerator
	tokens *mockTokenIssuer
	clock  *clock.MockClock
}

func setupAuthService(t *testing.T) (*AuthService, *testDeps) {
	t.Helper()

	deps := &testDeps{
		repo:   &mockUserRepo{},
		hasher: &mockHasher{},
		ids:    &mockIDGenerator{},
		tokens: &mockTokenIssuer{},
		clock:  clock.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	}

	svc := NewAuthService(AuthServiceDeps{
		Repo:        deps.repo,
		Hasher:      deps.hasher,
		IDGenerator: deps.ids,
		Tokens:      deps.tokens,
		Clock:       deps.clock,
		Log:         logger.NewWithWriter(&bytes.Buffer{}, "test", "debug"),
	})

	return svc, deps
}
