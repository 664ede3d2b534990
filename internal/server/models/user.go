package models

import "time"

// User is a registered identity: unique username/email plus a bcrypt
// password hash. The hash never leaves the repository/service layers.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
