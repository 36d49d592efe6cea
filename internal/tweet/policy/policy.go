package policy

import (
	"net/http"

	commonerrors "github.com/AlibekovAA/microblog/internal/common/errors"
	"github.com/AlibekovAA/microblog/internal/common/jwtverify"
	"github.com/AlibekovAA/microblog/internal/tweet/domain"
)

var (
	ErrUnauthorized = commonerrors.ErrUnauthorized

	ErrForbidden = commonerrors.NewDomainError(
		"TWEET_DELETE_FORBIDDEN",
		commonerrors.CategoryForbidden,
		http.StatusForbidden,
		"Not authorized to delete this tweet",
	)
)

// AuthorizeDelete allows only the owner. The tweet must already have been
// looked up, so a missing tweet is reported before any identity check.
func AuthorizeDelete(actor jwtverify.Claims, tweet domain.Tweet) error {
	if actor.UserID == "" {
		return ErrUnauthorized
	}
	if tweet.UserID != actor.UserID {
		return ErrForbidden
	}
	return nil
}

func AuthorizeLike(actor jwtverify.Claims) error {
	if actor.UserID == "" {
		return ErrUnauthorized
	}
	return nil
}

// NextLikes toggles actorID in likes and reports whether it is now present.
// The input slice is not modified.
func NextLikes(likes []string, actorID string) ([]string, bool) {
	next := make([]string, 0, len(likes)+1)
	removed := false
	for _, id := range likes {
		if id == actorID {
			removed = true
			continue
		}
		next = append(next, id)
	}
	if removed {
		return next, false
	}
	return append(next, actorID), true
}
