package domain

import "time"

type ID string

// User is an account. PasswordHash never leaves the service layer.
type User struct {
	ID           ID
	Email        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

type Summary struct {
	ID       ID
	Username string
}

func (u User) Summary() Summary {
	return Summary{ID: u.ID, Username: u.Username}
}
