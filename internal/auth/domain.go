// Package auth implements credential verification and the login endpoints.
package auth

import "time"

// User represents a user account. The stored hash is never compared with
// plain equality; verification goes through bcrypt.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
