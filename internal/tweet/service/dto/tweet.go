package dto

import "time"

type Author struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type Tweet struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	User      Author    `json:"user"`
	Likes     []string  `json:"likes"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
