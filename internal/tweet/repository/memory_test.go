package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/AlibekovAA/microblog/internal/tweet/domain"
)

var baseTime = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func seed(t *testing.T, repo *MemoryRepository, id string, at time.Time) {
	t.Helper()
	err := repo.Create(context.Background(), domain.Tweet{
		ID:        id,
		Content:   "content " + id,
		UserID:    "owner",
		Username:  "alice",
		CreatedAt: at,
	})
	if err != nil {
		t.Fatalf("create %s: %v", id, err)
	}
}

func TestMemoryRepository_ListNewestFirst(t *testing.T) {
	repo := NewMemoryRepository()
	seed(t, repo, "old", baseTime)
	seed(t, repo, "new", baseTime.Add(time.Minute))
	seed(t, repo, "tie-first", baseTime.Add(2*time.Minute))
	seed(t, repo, "tie-second", baseTime.Add(2*time.Minute))

	tweets, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	want := []string{"tie-second", "tie-first", "new", "old"}
	for i, id := range want {
		if tweets[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, tweets[i].ID)
		}
	}
	if tweets[0].Likes == nil {
		t.Error("expected empty, non-nil likes")
	}
}

func TestMemoryRepository_ToggleLike(t *testing.T) {
	repo := NewMemoryRepository()
	seed(t, repo, "t1", baseTime)
	ctx := context.Background()

	tweet, liked, err := repo.ToggleLike(ctx, "t1", "u1")
	if err != nil || !liked || len(tweet.Likes) != 1 {
		t.Fatalf("first toggle: %+v liked=%v err=%v", tweet, liked, err)
	}

	tweet, liked, err = repo.ToggleLike(ctx, "t1", "u1")
	if err != nil || liked || len(tweet.Likes) != 0 {
		t.Fatalf("second toggle: %+v liked=%v err=%v", tweet, liked, err)
	}

	if _, _, err := repo.ToggleLike(ctx, "missing", "u1"); !errors.Is(err, ErrTweetNotFound) {
		t.Fatalf("expected ErrTweetNotFound, got %v", err)
	}
}

func TestMemoryRepository_ConcurrentTogglesByDistinctAccounts(t *testing.T) {
	repo := NewMemoryRepository()
	seed(t, repo, "t1", baseTime)

	const accounts = 50
	var wg sync.WaitGroup
	for i := 0; i < accounts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, _, err := repo.ToggleLike(context.Background(), "t1", fmt.Sprintf("u%d", i)); err != nil {
				t.Errorf("toggle: %v", err)
			}
		}(i)
	}
	wg.Wait()

	tweet, err := repo.FindByID(context.Background(), "t1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(tweet.Likes) != accounts {
		t.Fatalf("expected %d likes, got %d", accounts, len(tweet.Likes))
	}

	seen := make(map[string]bool)
	for _, id := range tweet.Likes {
		if seen[id] {
			t.Fatalf("duplicate like from %s", id)
		}
		seen[id] = true
	}
}

func TestMemoryRepository_ReturnedTweetsAreCopies(t *testing.T) {
	repo := NewMemoryRepository()
	seed(t, repo, "t1", baseTime)
	ctx := context.Background()

	tweet, _, _ := repo.ToggleLike(ctx, "t1", "u1")
	tweet.Likes[0] = "mutated"

	stored, _ := repo.FindByID(ctx, "t1")
	if stored.Likes[0] != "u1" {
		t.Errorf("expected stored likes to be unaffected, got %v", stored.Likes)
	}
}

func TestMemoryRepository_Delete(t *testing.T) {
	repo := NewMemoryRepository()
	seed(t, repo, "t1", baseTime)
	ctx := context.Background()

	if err := repo.Delete(ctx, "t1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, "t1"); !errors.Is(err, ErrTweetNotFound) {
		t.Fatalf("expected ErrTweetNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, "t1"); !errors.Is(err, ErrTweetNotFound) {
		t.Fatalf("expected ErrTweetNotFound on second delete, got %v", err)
	}
}
