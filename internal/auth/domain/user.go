package domain

import "time"

type ID string

// User is the stored identity. Username and email are unique and held in
// normalized form only; PasswordHash is never the plaintext password.
type User struct {
	ID           ID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
