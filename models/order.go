package models

import "time"

// Order is the record binding a sender, a recipient, an encrypted video
// payload, its plaintext hash, and the sender's signature over that hash.
//
// An order is written exactly once at creation time and never mutated
// afterwards. Validation only reads it back.
type Order struct {
	// ID is the server-assigned identifier of the order.
	ID int64 `json:"id"`

	// SenderID references the account that created the order. The account
	// must be non-administrative; admins are refused at creation time.
	SenderID int64 `json:"sender_id"`

	// RecipientName is the display name the payload is addressed to.
	// It is not an account identifier: delivery is granted by exact string
	// equality (after trimming) against the requesting user's name.
	RecipientName string `json:"recipient_name"`

	// Amount is the monetary value attached to the order. It is opaque to
	// this service and carried as a string to avoid any rounding on the way
	// through.
	Amount string `json:"amount"`

	// VideoName is the user-supplied label for the payload.
	VideoName string `json:"video_name"`

	// VideoHash is the hex-encoded SHA-256 digest of the plaintext payload,
	// computed once before encryption. The same digest (base64-encoded) is
	// the exact signing input.
	VideoHash string `json:"video_hash"`

	// EncryptedPath points at the encrypted payload artifact
	// (nonce || ciphertext+tag) in the blob store.
	EncryptedPath string `json:"encrypted_path"`

	// WrappedKeyPath points at the wrapped data-key artifact produced by
	// the key custodian. Stored as an opaque text blob.
	WrappedKeyPath string `json:"wrapped_key_path"`

	// ExpiresAt is creation time plus the fixed validity window.
	// Recorded with the order but not checked by validation.
	ExpiresAt time.Time `json:"expires_at"`

	// Active is set true at creation. This service never flips it.
	Active bool `json:"active"`

	// SenderPublicKey is a snapshot of the sender's public signing key taken
	// at creation time. Validation deliberately ignores it and resolves the
	// sender's current key instead.
	SenderPublicKey string `json:"sender_public_key"`

	// Signature is the custodian-produced signature over the base64-encoded
	// payload digest, made with the sender's signing key.
	Signature string `json:"signature"`

	// SignedAt is the timestamp of the signing operation.
	SignedAt time.Time `json:"signed_at"`

	// CreatedAt is the timestamp the order record was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Order model.
func (o Order) TableName() string {
	return "orders"
}
