package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/envelope_service_mock.go -package=mock

// EnvelopeService performs the symmetric half of the envelope-encryption
// scheme: it generates per-order data keys (DEKs) and turns a plaintext
// buffer into a self-contained encrypted artifact and back.
//
// The artifact layout is fixed: nonce (12 bytes) || ciphertext+tag, where
// the tag is the 128-bit AES-GCM authentication tag. Callers never handle
// the tag separately.
//
// The service is stateless: key material is supplied per call and never
// retained.
type EnvelopeService interface {
	// GenerateDEK generates a random data-encryption key (32 bytes / 256
	// bits) from the OS CSPRNG. A fresh DEK is drawn for every order and
	// never reused.
	GenerateDEK() ([]byte, error)

	// Seal encrypts plaintext with the DEK using AES-256-GCM under a fresh
	// random 12-byte nonce and returns the storable artifact
	// nonce || ciphertext+tag.
	Seal(plaintext, dek []byte) ([]byte, error)

	// Open decrypts an artifact produced by Seal. It returns
	// [ErrArtifactTooShort] when the blob is not longer than the nonce and
	// [ErrAuthenticationFailed] when the GCM tag does not verify — the
	// latter signals tampering or a wrong key, distinguishable from I/O
	// errors.
	Open(artifact, dek []byte) ([]byte, error)
}
