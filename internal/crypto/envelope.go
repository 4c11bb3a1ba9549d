// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

// DEKLength is the size of a data-encryption key in bytes (AES-256).
const DEKLength = 32

// NonceLength is the size of the AES-GCM nonce prepended to every
// encrypted artifact.
const NonceLength = 12

// Sentinel errors returned by [EnvelopeService.Open]. Callers must match
// them with [errors.Is] to tell a corrupted artifact apart from plain I/O
// failures.
var (
	// ErrArtifactTooShort is returned when the artifact is not longer than
	// the nonce, i.e. it cannot possibly contain ciphertext.
	ErrArtifactTooShort = errors.New("encrypted artifact too short")

	// ErrAuthenticationFailed is returned when the GCM authentication tag
	// does not verify: the ciphertext was modified or the wrong DEK was
	// supplied.
	ErrAuthenticationFailed = errors.New("artifact authentication failed")
)

// envelopeService is the private implementation of [EnvelopeService].
type envelopeService struct {
}

// NewEnvelopeService constructs an [EnvelopeService] using AES-256-GCM with
// a 12-byte nonce and a 128-bit authentication tag.
func NewEnvelopeService() EnvelopeService {
	return &envelopeService{}
}

// GenerateDEK implements [EnvelopeService]. It reads 32 random bytes from
// the OS CSPRNG and returns them as the data-encryption key. Returns an
// error if the random read fails.
func (e *envelopeService) GenerateDEK() ([]byte, error) {
	dek := make([]byte, DEKLength)
	if _, err := io.ReadFull(rand.Reader, dek); err != nil {
		return nil, err
	}
	return dek, nil
}

// Seal implements [EnvelopeService]. It encrypts plaintext with dek using
// AES-256-GCM. A random 12-byte nonce is prepended to the ciphertext so
// that the decryption side can locate it: artifact = nonce ‖ ciphertext+tag.
// Returns an error if cipher creation or the random nonce read fails.
func (e *envelopeService) Seal(plaintext, dek []byte) ([]byte, error) {
	block, err := aes.NewCipher(dek)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	// Prepend the nonce so Open can split it out without a side channel.
	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)
	return append(nonce, ciphertext...), nil
}

// Open implements [EnvelopeService]. It splits the artifact produced by
// [envelopeService.Seal] into nonce and ciphertext, decrypts with dek and
// verifies the authentication tag.
//
// Returns the plaintext, or:
//   - [ErrArtifactTooShort] if the artifact is not longer than the nonce;
//   - [ErrAuthenticationFailed] if the tag does not verify (tampered
//     ciphertext or wrong DEK).
func (e *envelopeService) Open(artifact, dek []byte) ([]byte, error) {
	block, err := aes.NewCipher(dek)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(artifact) <= nonceSize {
		return nil, ErrArtifactTooShort
	}

	// Split the artifact into nonce and actual ciphertext.
	nonce, ciphertext := artifact[:nonceSize], artifact[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
	}

	return plaintext, nil
}
