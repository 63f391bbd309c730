package auth

import "time"

// User is an account record. PasswordHash is a bcrypt hash, never the raw
// credential.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
