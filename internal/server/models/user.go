package models

import "time"

// User is a registered account. PasswordHash never leaves the server:
// it is excluded from JSON and only compared through the auth package.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
