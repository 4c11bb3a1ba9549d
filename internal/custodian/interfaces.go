package custodian

//go:generate mockgen -source=interfaces.go -destination=../mock/custodian_mock.go -package=mock

import "context"

// Custodian is the client-side contract of the external key custodian — a
// service holding private key material and exposing wrap/unwrap and
// sign/verify operations over named key identifiers. Private keys never
// leave the custodian; this process only ever sees wrapped data keys,
// signatures, and exported public keys.
//
// Sign and Verify operate on the base64 encoding of a digest, not the raw
// bytes, so the wire format stays textual-safe end to end.
type Custodian interface {
	// CreateSigningKey provisions a named Ed25519 signing key inside the
	// custodian. Used by the registration flow.
	CreateSigningKey(ctx context.Context, keyID string) error

	// ExportPublicKey returns the public half of the named signing key.
	ExportPublicKey(ctx context.Context, keyID string) (string, error)

	// WrapDataKey encrypts a raw 32-byte data key under the named wrapping
	// key and returns the opaque wrapped blob.
	WrapDataKey(ctx context.Context, keyID string, dek []byte) (string, error)

	// UnwrapDataKey decrypts a blob produced by WrapDataKey and returns the
	// raw data key. Returns [ErrKeyUnwrapFailed] if the custodian rejects
	// the ciphertext or the key id.
	UnwrapDataKey(ctx context.Context, keyID string, wrapped string) ([]byte, error)

	// Sign produces a signature over the base64-encoded digest with the
	// named signing key.
	Sign(ctx context.Context, keyID string, digestBase64 string) (string, error)

	// Verify checks a signature over the base64-encoded digest. It never
	// returns an error: absence of proof, a custodian rejection, or a
	// transport failure all resolve to false, so callers can report
	// "corrupted" uniformly.
	Verify(ctx context.Context, keyID string, digestBase64 string, signature string) bool
}
