package mapper

import (
	"github.com/AlibekovAA/microblog/internal/tweet/domain"
	tweetdto "github.com/AlibekovAA/microblog/internal/tweet/service/dto"
)

func TweetToDTO(t domain.Tweet) tweetdto.Tweet {
	likes := t.Likes
	if likes == nil {
		likes = []string{}
	}
	return tweetdto.Tweet{
		ID:        t.ID,
		Content:   t.Content,
		User:      tweetdto.Author{ID: t.UserID, Username: t.Username},
		Likes:     likes,
		ImageURL:  t.ImageURL,
		CreatedAt: t.CreatedAt,
	}
}

func TweetsToDTO(tweets []domain.Tweet) []tweetdto.Tweet {
	out := make([]tweetdto.Tweet, 0, len(tweets))
	for _, t := range tweets {
		out = append(out, TweetToDTO(t))
	}
	return out
}
