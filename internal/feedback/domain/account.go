package domain

import "time"

// Account is one registered user: credentials, verification state, and the
// flag gating whether anonymous senders may leave messages.
type Account struct {
	ID                  string
	Username            string
	Email               string
	PasswordHash        string // argon2 encoded
	VerifyCode          string // short numeric code, single-use in intent
	VerifyCodeExpiresAt time.Time
	Verified            bool
	AcceptingMessages   bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
