package models

import "time"

// User is the account record managed by the users resource.
//
// PasswordHash and PasswordSalt are never serialized to JSON: only the
// server-side authentication flow may read them.
type User struct {
	// UserID is the server-assigned identifier of the account.
	UserID int64 `json:"id"`

	// Email is the unique login identifier of the account.
	// Required on registration and on resource creation.
	Email string `json:"email"`

	// Name is the optional display name of the account owner.
	Name string `json:"name,omitempty"`

	// Password carries the plaintext password on inbound register/login
	// requests only. It is hashed before storage and excluded from all
	// outbound responses.
	Password string `json:"password,omitempty"`

	// PasswordHash is the argon2id digest of the password.
	PasswordHash string `json:"-"`

	// PasswordSalt is the per-user random salt used for hashing.
	PasswordSalt string `json:"-"`

	// CreatedAt is the server-side creation timestamp.
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// Sanitized returns a copy of the user with the credential fields blanked,
// safe to embed in a response envelope.
func (u User) Sanitized() User {
	u.Password = ""
	u.PasswordHash = ""
	u.PasswordSalt = ""
	return u
}
