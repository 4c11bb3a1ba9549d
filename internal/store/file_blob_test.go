package store

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/MKhiriev/go-video-vault/internal/config"
	"github.com/MKhiriev/go-video-vault/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBlobStorage(t *testing.T) BlobStorage {
	t.Helper()

	storage, err := NewFileBlobStorage(config.Blobs{ArtifactDir: t.TempDir()}, logger.Nop())
	require.NoError(t, err)

	return storage
}

func TestFileBlobStorage_SaveAndLoadArtifacts(t *testing.T) {
	storage := newTestBlobStorage(t)
	ctx := context.Background()

	encrypted := []byte{0x01, 0x02, 0x03, 0x04}
	wrappedKey := "vault:v1:wrapped"

	encPath, keyPath, err := storage.SaveArtifacts(ctx, 42, encrypted, wrappedKey)
	require.NoError(t, err)
	assert.Equal(t, keyPath, encPath+".dek")

	gotEncrypted, err := storage.LoadEncrypted(ctx, encPath)
	require.NoError(t, err)
	assert.Equal(t, encrypted, gotEncrypted)

	gotWrapped, err := storage.LoadWrappedKey(ctx, keyPath)
	require.NoError(t, err)
	assert.Equal(t, wrappedKey, gotWrapped)
}

func TestFileBlobStorage_BaseNameScheme(t *testing.T) {
	storage := newTestBlobStorage(t)

	encPath, _, err := storage.SaveArtifacts(context.Background(), 42, []byte{0x01}, "w")
	require.NoError(t, err)

	// <senderID>_<unixMilli>_<32 hex chars>.enc
	base := filepath.Base(encPath)
	assert.Regexp(t, regexp.MustCompile(`^42_\d+_[0-9a-f]{32}\.enc$`), base)
}

func TestFileBlobStorage_NamesNeverCollide(t *testing.T) {
	storage := newTestBlobStorage(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		encPath, _, err := storage.SaveArtifacts(ctx, 7, []byte{0x01}, "w")
		require.NoError(t, err)
		require.False(t, seen[encPath], "base name collision: %s", encPath)
		seen[encPath] = true
	}
}

func TestFileBlobStorage_Scan(t *testing.T) {
	storage := newTestBlobStorage(t)
	ctx := context.Background()

	encPath, keyPath, err := storage.SaveArtifacts(ctx, 42, []byte{0x01}, "w")
	require.NoError(t, err)

	require.NoError(t, storage.Scan(ctx, encPath, keyPath))
}

func TestFileBlobStorage_ScanMissingArtifact(t *testing.T) {
	storage := newTestBlobStorage(t)
	ctx := context.Background()

	encPath, keyPath, err := storage.SaveArtifacts(ctx, 42, []byte{0x01}, "w")
	require.NoError(t, err)

	require.NoError(t, os.Remove(encPath))

	err = storage.Scan(ctx, encPath, keyPath)
	assert.ErrorIs(t, err, ErrArtifactMissing)
}

func TestFileBlobStorage_ScanEmptyArtifact(t *testing.T) {
	storage := newTestBlobStorage(t)
	ctx := context.Background()

	encPath, keyPath, err := storage.SaveArtifacts(ctx, 42, []byte{0x01}, "w")
	require.NoError(t, err)

	// Truncate the wrapped key to zero bytes: a definite corruption signal.
	require.NoError(t, os.WriteFile(keyPath, nil, 0o640))

	err = storage.Scan(ctx, encPath, keyPath)
	assert.ErrorIs(t, err, ErrArtifactMissing)
}
