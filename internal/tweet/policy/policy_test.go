package policy

import (
	"errors"
	"net/http"
	"reflect"
	"testing"

	commonerrors "github.com/AlibekovAA/microblog/internal/common/errors"
	"github.com/AlibekovAA/microblog/internal/common/jwtverify"
	"github.com/AlibekovAA/microblog/internal/tweet/domain"
)

var (
	owner    = jwtverify.Claims{UserID: "owner", Username: "alice"}
	stranger = jwtverify.Claims{UserID: "stranger", Username: "bob"}
	tweet    = domain.Tweet{ID: "t1", UserID: "owner"}
)

func TestAuthorizeDelete(t *testing.T) {
	tests := []struct {
		name    string
		actor   jwtverify.Claims
		wantErr error
		status  int
	}{
		{"owner", owner, nil, 0},
		{"stranger", stranger, ErrForbidden, http.StatusForbidden},
		{"anonymous", jwtverify.Claims{}, ErrUnauthorized, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AuthorizeDelete(tt.actor, tweet)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			de, _ := commonerrors.AsDomainError(err)
			if de.HTTPStatus() != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, de.HTTPStatus())
			}
		})
	}
}

func TestAuthorizeDelete_ForbiddenMessage(t *testing.T) {
	de, _ := commonerrors.AsDomainError(AuthorizeDelete(stranger, tweet))
	if de.Message() != "Not authorized to delete this tweet" {
		t.Errorf("unexpected message %q", de.Message())
	}
}

func TestAuthorizeLike(t *testing.T) {
	if err := AuthorizeLike(stranger); err != nil {
		t.Errorf("expected any authenticated account to like, got %v", err)
	}
	if err := AuthorizeLike(jwtverify.Claims{}); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestNextLikes(t *testing.T) {
	tests := []struct {
		name      string
		likes     []string
		actor     string
		want      []string
		wantLiked bool
	}{
		{"add to empty", nil, "a", []string{"a"}, true},
		{"append keeps order", []string{"a", "b"}, "c", []string{"a", "b", "c"}, true},
		{"remove", []string{"a", "b", "c"}, "b", []string{"a", "c"}, false},
		{"remove last", []string{"a"}, "a", []string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, liked := NextLikes(tt.likes, tt.actor)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			if liked != tt.wantLiked {
				t.Errorf("expected liked=%v, got %v", tt.wantLiked, liked)
			}
		})
	}
}

func TestNextLikes_ToggleTwiceIsIdentity(t *testing.T) {
	start := []string{"a", "b"}

	once, _ := NextLikes(start, "c")
	twice, _ := NextLikes(once, "c")

	if !reflect.DeepEqual(twice, start) {
		t.Errorf("expected %v after two toggles, got %v", start, twice)
	}
	if !reflect.DeepEqual(start, []string{"a", "b"}) {
		t.Error("input slice must not be modified")
	}
}
