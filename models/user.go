package models

import "time"

// User represents an account entity used for authentication, authorization
// and signing-key resolution. Sensitive fields must never be exposed outside
// trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"-"`

	// Login is the unique user login identifier.
	// Typically used during authentication.
	Login string `json:"login"`

	// Name is the display name of the user. Orders are addressed to this
	// value, so it doubles as the delivery identity for received orders.
	Name string `json:"name"`

	// Password carries the plaintext password on inbound register/login
	// requests only. It is hashed with Argon2id before it ever reaches the
	// persistence layer and is never written back out.
	Password string `json:"password,omitempty"`

	// PasswordHash is the encoded Argon2id hash of the password.
	// Never serialized.
	PasswordHash string `json:"-"`

	// IsAdmin marks administrative accounts. Admins manage the platform and
	// are refused as order senders.
	IsAdmin bool `json:"is_admin"`

	// SigningKeyID is the name of the user's asymmetric signing key held by
	// the key custodian (e.g. "user-key-alice"). Empty until registration
	// has provisioned the key.
	SigningKeyID string `json:"-"`

	// PublicKey is the exported public half of the signing key, stored at
	// registration time so collaborators can resolve it without asking the
	// custodian.
	PublicKey string `json:"public_key,omitempty"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
