package domain

import "time"

// Tweet is a post. Likes holds account ids in the order they liked, without
// duplicates.
type Tweet struct {
	ID        string
	Content   string
	UserID    string
	Username  string
	Likes     []string
	ImageURL  string
	CreatedAt time.Time
}

func (t Tweet) LikedBy(userID string) bool {
	for _, id := range t.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
