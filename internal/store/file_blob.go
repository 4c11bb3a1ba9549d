// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MKhiriev/go-video-vault/internal/config"
	"github.com/MKhiriev/go-video-vault/internal/logger"
	"github.com/MKhiriev/go-video-vault/internal/utils"
)

// Artifact file suffixes. The wrapped-key artifact sits next to the
// encrypted payload under the same base name.
const (
	encryptedSuffix  = ".enc"
	wrappedKeySuffix = ".enc.dek"
)

// fileBlobStorage is the filesystem implementation of [BlobStorage].
//
// Artifacts are laid out flat under a single root directory:
//
//	<root>/<senderID>_<unixMilli>_<uuidHex>.enc      — nonce || ciphertext+tag
//	<root>/<senderID>_<unixMilli>_<uuidHex>.enc.dek  — wrapped data key (text)
//
// The base name combines the sender id, a wall-clock timestamp, and a random
// token, so concurrent orders — even same-millisecond orders from the same
// sender — never collide.
type fileBlobStorage struct {
	root   string
	ids    *utils.UUIDGenerator
	logger *logger.Logger
}

// NewFileBlobStorage constructs a [BlobStorage] rooted at cfg.ArtifactDir,
// creating the directory if needed.
func NewFileBlobStorage(cfg config.Blobs, logger *logger.Logger) (BlobStorage, error) {
	root, err := filepath.Abs(cfg.ArtifactDir)
	if err != nil {
		return nil, fmt.Errorf("resolve artifact dir: %w", err)
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}

	logger.Debug().Str("root", root).Msg("creating file blob storage")
	return &fileBlobStorage{
		root:   root,
		ids:    utils.NewUUIDGenerator(),
		logger: logger,
	}, nil
}

// SaveArtifacts implements [BlobStorage]. The encrypted payload is written
// first, then the wrapped key; the writes are sequential and not atomic
// relative to each other. On a wrapped-key write failure the payload file is
// left behind — the order record is never created in that case, so the
// orphan is unreachable (see DESIGN.md for the reconciliation note).
func (f *fileBlobStorage) SaveArtifacts(ctx context.Context, senderID int64, encrypted []byte, wrappedKey string) (string, string, error) {
	log := logger.FromContext(ctx)

	baseName := f.newBaseName(senderID)
	encPath := filepath.Join(f.root, baseName+encryptedSuffix)
	keyPath := filepath.Join(f.root, baseName+wrappedKeySuffix)

	if err := os.WriteFile(encPath, encrypted, 0o640); err != nil {
		log.Err(err).Str("path", encPath).Msg("error writing encrypted artifact")
		return "", "", fmt.Errorf("write encrypted artifact: %w", err)
	}

	if err := os.WriteFile(keyPath, []byte(wrappedKey), 0o640); err != nil {
		log.Err(err).Str("path", keyPath).Msg("error writing wrapped key artifact")
		return "", "", fmt.Errorf("write wrapped key artifact: %w", err)
	}

	log.Debug().Str("base_name", baseName).Int("encrypted_size", len(encrypted)).Msg("order artifacts written")
	return encPath, keyPath, nil
}

// Scan implements [BlobStorage]. Both artifacts must exist and be non-empty
// before any cryptographic operation is attempted on them.
func (f *fileBlobStorage) Scan(ctx context.Context, encPath, keyPath string) error {
	for _, path := range []string{encPath, keyPath} {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrArtifactMissing, filepath.Base(path))
		}
		if info.Size() == 0 {
			return fmt.Errorf("%w: %s is empty", ErrArtifactMissing, filepath.Base(path))
		}
	}

	return nil
}

// LoadEncrypted implements [BlobStorage].
func (f *fileBlobStorage) LoadEncrypted(ctx context.Context, encPath string) ([]byte, error) {
	raw, err := os.ReadFile(encPath)
	if err != nil {
		return nil, fmt.Errorf("read encrypted artifact: %w", err)
	}

	return raw, nil
}

// LoadWrappedKey implements [BlobStorage]. The blob is an opaque text value
// produced by the custodian; trailing whitespace from manual edits is
// tolerated.
func (f *fileBlobStorage) LoadWrappedKey(ctx context.Context, keyPath string) (string, error) {
	raw, err := os.ReadFile(keyPath)
	if err != nil {
		return "", fmt.Errorf("read wrapped key artifact: %w", err)
	}

	return strings.TrimSpace(string(raw)), nil
}

// newBaseName builds the collision-free artifact base name:
// <senderID>_<unixMilli>_<uuidHex>.
func (f *fileBlobStorage) newBaseName(senderID int64) string {
	token := strings.ReplaceAll(f.ids.Generate(), "-", "")
	return fmt.Sprintf("%d_%d_%s", senderID, time.Now().UnixMilli(), token)
}
