package models

import "time"

// User owns tasks. PasswordHash is a bcrypt hash and never leaves the server.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

// UserSummary is the public projection of a User.
type UserSummary struct {
	ID        string
	Name      string
	Email     string
	TaskCount int
}
