// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

// Digest is a fixed-size SHA-256 digest of a plaintext payload. It is
// computed once over the plaintext before encryption and is the exact input
// (after encoding) to both signing and later verification.
type Digest [sha256.Size]byte

// HashPayload computes the SHA-256 digest of plaintext. Pure function, no
// failure modes.
func HashPayload(plaintext []byte) Digest {
	return sha256.Sum256(plaintext)
}

// Hex returns the lowercase hex encoding of the digest. This is the form
// stored on the order record.
func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}

// Base64 returns the standard base64 encoding of the digest. This is the
// textual-safe form handed to the custodian's sign/verify operations.
func (d Digest) Base64() string {
	return base64.StdEncoding.EncodeToString(d[:])
}
