// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package custodian

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"sync"
)

// wrappedPrefix marks blobs produced by the in-memory custodian so that a
// blob wrapped by one backend is never silently fed to the other.
const wrappedPrefix = "local:v1:"

// memoryCustodian is an in-process [Custodian] backed by a single AES-256-GCM
// master key for wrapping and per-key-id Ed25519 key pairs for signing.
//
// It exists for tests and for local development when no Vault address is
// configured. It mirrors the Transit client's semantics: Verify never
// returns an error, unknown key ids map to [ErrKeyNotFound], and rejected
// wrap blobs map to [ErrKeyUnwrapFailed].
type memoryCustodian struct {
	master []byte

	mu   sync.RWMutex
	keys map[string]ed25519.PrivateKey
}

// NewMemoryCustodian constructs an in-memory [Custodian] with a fresh random
// master wrapping key. Returns an error only if the OS CSPRNG read fails.
func NewMemoryCustodian() (Custodian, error) {
	master := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, master); err != nil {
		return nil, fmt.Errorf("generate master key: %w", err)
	}

	return &memoryCustodian{
		master: master,
		keys:   make(map[string]ed25519.PrivateKey),
	}, nil
}

// CreateSigningKey implements [Custodian]. Creating an existing key id is a
// no-op, matching Vault Transit behaviour.
func (m *memoryCustodian) CreateSigningKey(ctx context.Context, keyID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.keys[keyID]; ok {
		return nil
	}

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return fmt.Errorf("generate signing key %q: %w", keyID, err)
	}
	m.keys[keyID] = priv

	return nil
}

// ExportPublicKey implements [Custodian].
func (m *memoryCustodian) ExportPublicKey(ctx context.Context, keyID string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	priv, ok := m.keys[keyID]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrKeyNotFound, keyID)
	}

	pub := priv.Public().(ed25519.PublicKey)
	return base64.StdEncoding.EncodeToString(pub), nil
}

// WrapDataKey implements [Custodian]. The DEK is sealed under the master key
// with AES-256-GCM, nonce prepended, and returned as a prefixed base64 blob.
// The key id is bound into the GCM additional data so a blob wrapped under
// one key name cannot be unwrapped under another.
func (m *memoryCustodian) WrapDataKey(ctx context.Context, keyID string, dek []byte) (string, error) {
	gcm, err := m.aead()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	blob := gcm.Seal(nonce, nonce, dek, []byte(keyID))
	return wrappedPrefix + base64.StdEncoding.EncodeToString(blob), nil
}

// UnwrapDataKey implements [Custodian].
func (m *memoryCustodian) UnwrapDataKey(ctx context.Context, keyID string, wrapped string) ([]byte, error) {
	if !strings.HasPrefix(wrapped, wrappedPrefix) {
		return nil, fmt.Errorf("%w: unrecognized blob format", ErrKeyUnwrapFailed)
	}

	blob, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(wrapped, wrappedPrefix))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyUnwrapFailed, err)
	}

	gcm, err := m.aead()
	if err != nil {
		return nil, err
	}
	if len(blob) < gcm.NonceSize() {
		return nil, fmt.Errorf("%w: blob too short", ErrKeyUnwrapFailed)
	}

	nonce, ciphertext := blob[:gcm.NonceSize()], blob[gcm.NonceSize():]
	dek, err := gcm.Open(nil, nonce, ciphertext, []byte(keyID))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyUnwrapFailed, err)
	}

	return dek, nil
}

// Sign implements [Custodian]. Like Vault with prehashed=false, the input is
// base64-decoded and the raw bytes are signed.
func (m *memoryCustodian) Sign(ctx context.Context, keyID string, digestBase64 string) (string, error) {
	m.mu.RLock()
	priv, ok := m.keys[keyID]
	m.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrKeyNotFound, keyID)
	}

	message, err := base64.StdEncoding.DecodeString(digestBase64)
	if err != nil {
		return "", fmt.Errorf("decode signing input: %w", err)
	}

	signature := ed25519.Sign(priv, message)
	return wrappedPrefix + base64.StdEncoding.EncodeToString(signature), nil
}

// Verify implements [Custodian]. Every failure mode — unknown key,
// undecodable input or signature — resolves to false.
func (m *memoryCustodian) Verify(ctx context.Context, keyID string, digestBase64 string, signature string) bool {
	m.mu.RLock()
	priv, ok := m.keys[keyID]
	m.mu.RUnlock()
	if !ok {
		return false
	}

	message, err := base64.StdEncoding.DecodeString(digestBase64)
	if err != nil {
		return false
	}

	if !strings.HasPrefix(signature, wrappedPrefix) {
		return false
	}
	sig, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(signature, wrappedPrefix))
	if err != nil {
		return false
	}

	return ed25519.Verify(priv.Public().(ed25519.PublicKey), message, sig)
}

func (m *memoryCustodian) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(m.master)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return gcm, nil
}
