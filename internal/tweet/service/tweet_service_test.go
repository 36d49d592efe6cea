package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "github.com/AlibekovAA/microblog/internal/common/errors"
	"github.com/AlibekovAA/microblog/internal/common/jwtverify"
	"github.com/AlibekovAA/microblog/internal/tweet/domain"
	"github.com/AlibekovAA/microblog/internal/tweet/policy"
)

var (
	owner = jwtverify.Claims{UserID: testOwnerID, Username: "alice"}
	other = jwtverify.Claims{UserID: testOtherID, Username: "bob"}
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)

func TestValidateContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr error
	}{
		{name: "trimmed", content: "  hi  ", want: "hi"},
		{name: "empty", content: "", wantErr: ErrContentRequired},
		{name: "whitespace only", content: " \n\t ", wantErr: ErrContentRequired},
		{name: "exactly 280", content: strings.Repeat("a", 280), want: strings.Repeat("a", 280)},
		{name: "281", content: strings.Repeat("a", 281), wantErr: ErrContentTooLong},
		{name: "multibyte counted as characters", content: strings.Repeat("é", 280), want: strings.Repeat("é", 280)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateContent(tt.content)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTweetService_Create_Success(t *testing.T) {
	svc, deps := setupTweetService(t)

	var stored domain.Tweet
	deps.repo.createFunc = func(ctx context.Context, tweet domain.Tweet) error {
		stored = tweet
		return nil
	}

	tweet, err := svc.Create(context.Background(), owner, CreateInput{Content: "  hello  "})
	require.NoError(t, err)

	assert.Equal(t, testTweetID, tweet.ID)
	assert.Equal(t, "hello", tweet.Content)
	assert.Equal(t, testOwnerID, tweet.UserID)
	assert.Equal(t, "alice", tweet.Username)
	assert.NotNil(t, tweet.Likes)
	assert.Empty(t, tweet.Likes)
	assert.Empty(t, tweet.ImageURL)
	assert.True(t, tweet.CreatedAt.Equal(deps.clock.Now()))
	assert.Equal(t, tweet, stored)
}

func TestTweetService_Create_RejectsInvalidContent(t *testing.T) {
	svc, deps := setupTweetService(t)

	deps.repo.createFunc = func(ctx context.Context, tweet domain.Tweet) error {
		t.Error("create must not be called for invalid content")
		return nil
	}

	_, err := svc.Create(context.Background(), owner, CreateInput{Content: strings.Repeat("x", 281)})
	require.ErrorIs(t, err, ErrContentTooLong)

	de, ok := commonerrors.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, de.HTTPStatus())
	assert.Equal(t, "Content must be at most 280 characters", de.Message())

	_, err = svc.Create(context.Background(), owner, CreateInput{Content: "   "})
	assert.ErrorIs(t, err, ErrContentRequired)
}

func TestTweetService_Create_RequiresIdentity(t *testing.T) {
	svc, _ := setupTweetService(t)

	_, err := svc.Create(context.Background(), jwtverify.Claims{}, CreateInput{Content: "hi"})
	assert.ErrorIs(t, err, commonerrors.ErrUnauthorized)
}

func TestTweetService_Create_RepoFailure(t *testing.T) {
	svc, deps := setupTweetService(t)

	deps.repo.createFunc = func(ctx context.Context, tweet domain.Tweet) error {
		return errors.New("connection reset")
	}

	_, err := svc.Create(context.Background(), owner, CreateInput{Content: "hi"})
	assert.ErrorIs(t, err, commonerrors.ErrDatabaseError)
}

func TestTweetService_Create_WithImage(t *testing.T) {
	svc, deps := setupTweetService(t)

	var gotKey, gotType string
	var gotBody []byte
	deps.images.putFunc = func(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
		gotKey, gotType = key, contentType
		gotBody, _ = io.ReadAll(body)
		return "https://cdn.test/" + key, nil
	}

	tweet, err := svc.Create(context.Background(), owner, CreateInput{
		Content: "look",
		Image:   &Image{Filename: "cat.PNG", Body: bytes.NewReader(pngBytes), Size: int64(len(pngBytes))},
	})
	require.NoError(t, err)

	assert.Equal(t, "tweets/"+testTweetID+".png", gotKey)
	assert.Equal(t, "image/png", gotType)
	assert.Equal(t, pngBytes, gotBody)
	assert.Equal(t, "https://cdn.test/tweets/"+testTweetID+".png", tweet.ImageURL)
}

func TestTweetService_Create_UnsupportedImage(t *testing.T) {
	svc, deps := setupTweetService(t)

	deps.images.putFunc = func(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
		t.Error("put must not be called for a rejected image")
		return "", nil
	}

	_, err := svc.Create(context.Background(), owner, CreateInput{
		Content: "look",
		Image:   &Image{Filename: "notes.txt", Body: strings.NewReader("plain text")},
	})
	require.ErrorIs(t, err, ErrUnsupportedImage)

	de, _ := commonerrors.AsDomainError(err)
	assert.Equal(t, "Upload error: unsupported image format", de.Message())
}

func TestTweetService_Create_UploadFailure(t *testing.T) {
	svc, deps := setupTweetService(t)

	deps.images.putFunc = func(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
		return "", errors.New("bucket unavailable")
	}
	deps.repo.createFunc = func(ctx context.Context, tweet domain.Tweet) error {
		t.Error("create must not be called when the upload fails")
		return nil
	}

	_, err := svc.Create(context.Background(), owner, CreateInput{
		Content: "look",
		Image:   &Image{Filename: "cat.png", Body: bytes.NewReader(pngBytes)},
	})
	require.ErrorIs(t, err, ErrUploadFailed)

	de, _ := commonerrors.AsDomainError(err)
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus())
}

func TestTweetService_Create_ImageIgnoredWithoutStore(t *testing.T) {
	_, deps := setupTweetService(t)
	svc := NewTweetService(TweetServiceDeps{
		Repo:        deps.repo,
		IDGenerator: deps.ids,
		Clock:       deps.clock,
		Log:         setupLogger(),
	})

	tweet, err := svc.Create(context.Background(), owner, CreateInput{
		Content: "look",
		Image:   &Image{Filename: "cat.png", Body: bytes.NewReader(pngBytes)},
	})
	require.NoError(t, err)
	assert.Empty(t, tweet.ImageURL)
}

func TestTweetService_List_ReturnsRawError(t *testing.T) {
	svc, deps := setupTweetService(t)

	cause := errors.New("relation \"tweets\" does not exist")
	deps.repo.listFunc = func(ctx context.Context) ([]domain.Tweet, error) {
		return nil, cause
	}

	_, err := svc.List(context.Background())
	assert.Same(t, cause, err)
	assert.False(t, commonerrors.IsDomainError(err))
}

func TestTweetService_ToggleLike(t *testing.T) {
	svc, deps := setupTweetService(t)

	deps.repo.toggleLikeFunc = func(ctx context.Context, id, userID string) (domain.Tweet, bool, error) {
		assert.Equal(t, testTweetID, id)
		assert.Equal(t, testOtherID, userID)
		return domain.Tweet{ID: id, Likes: []string{userID}}, true, nil
	}

	tweet, err := svc.ToggleLike(context.Background(), other, testTweetID)
	require.NoError(t, err)
	assert.Equal(t, []string{testOtherID}, tweet.Likes)
}

func TestTweetService_ToggleLike_NotFound(t *testing.T) {
	svc, deps := setupTweetService(t)

	calls := 0
	deps.repo.toggleLikeFunc = func(ctx context.Context, id, userID string) (domain.Tweet, bool, error) {
		calls++
		return domain.Tweet{}, false, errNotFound()
	}

	_, err := svc.ToggleLike(context.Background(), owner, "not-a-uuid")
	assert.ErrorIs(t, err, ErrTweetNotFound)
	assert.Equal(t, 0, calls, "invalid id must not reach the store")

	_, err = svc.ToggleLike(context.Background(), owner, testTweetID)
	assert.ErrorIs(t, err, ErrTweetNotFound)
	assert.Equal(t, 1, calls)
}

func TestTweetService_ToggleLike_RequiresIdentity(t *testing.T) {
	svc, _ := setupTweetService(t)

	_, err := svc.ToggleLike(context.Background(), jwtverify.Claims{}, testTweetID)
	assert.ErrorIs(t, err, policy.ErrUnauthorized)
}

func TestTweetService_Delete_Owner(t *testing.T) {
	svc, deps := setupTweetService(t)

	deps.repo.findByIDFunc = func(ctx context.Context, id string) (domain.Tweet, error) {
		return domain.Tweet{ID: id, UserID: testOwnerID}, nil
	}
	deleted := ""
	deps.repo.deleteFunc = func(ctx context.Context, id string) error {
		deleted = id
		return nil
	}

	require.NoError(t, svc.Delete(context.Background(), owner, testTweetID))
	assert.Equal(t, testTweetID, deleted)
}

func TestTweetService_Delete_NonOwnerForbidden(t *testing.T) {
	svc, deps := setupTweetService(t)

	deps.repo.findByIDFunc = func(ctx context.Context, id string) (domain.Tweet, error) {
		return domain.Tweet{ID: id, UserID: testOwnerID}, nil
	}
	deps.repo.deleteFunc = func(ctx context.Context, id string) error {
		t.Error("delete must not be called for a non-owner")
		return nil
	}

	err := svc.Delete(context.Background(), other, testTweetID)
	require.ErrorIs(t, err, policy.ErrForbidden)

	de, _ := commonerrors.AsDomainError(err)
	assert.Equal(t, http.StatusForbidden, de.HTTPStatus())
	assert.Equal(t, "Not authorized to delete this tweet", de.Message())
}

func TestTweetService_Delete_MissingBeforeOwnership(t *testing.T) {
	svc, _ := setupTweetService(t)

	err := svc.Delete(context.Background(), other, testTweetID)
	assert.ErrorIs(t, err, ErrTweetNotFound)

	err = svc.Delete(context.Background(), other, "42")
	assert.ErrorIs(t, err, ErrTweetNotFound)
}

func TestTweetService_Delete_ConcurrentRemoval(t *testing.T) {
	svc, deps := setupTweetService(t)

	deps.repo.findByIDFunc = func(ctx context.Context, id string) (domain.Tweet, error) {
		return domain.Tweet{ID: id, UserID: testOwnerID}, nil
	}
	deps.repo.deleteFunc = func(ctx context.Context, id string) error {
		return errNotFound()
	}

	assert.ErrorIs(t, svc.Delete(context.Background(), owner, testTweetID), ErrTweetNotFound)
}
