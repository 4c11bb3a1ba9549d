package custodian

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-video-vault/internal/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCustodian_WrapUnwrapRoundTrip(t *testing.T) {
	c, err := NewMemoryCustodian()
	require.NoError(t, err)
	ctx := context.Background()

	dek := []byte("0123456789abcdef0123456789abcdef")

	wrapped, err := c.WrapDataKey(ctx, "video-dek", dek)
	require.NoError(t, err)
	assert.NotContains(t, wrapped, string(dek))

	got, err := c.UnwrapDataKey(ctx, "video-dek", wrapped)
	require.NoError(t, err)
	assert.Equal(t, dek, got)
}

func TestMemoryCustodian_UnwrapWithDifferentKeyIDFails(t *testing.T) {
	c, err := NewMemoryCustodian()
	require.NoError(t, err)
	ctx := context.Background()

	wrapped, err := c.WrapDataKey(ctx, "video-dek", []byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	_, err = c.UnwrapDataKey(ctx, "other-key", wrapped)
	assert.ErrorIs(t, err, ErrKeyUnwrapFailed)
}

func TestMemoryCustodian_UnwrapGarbageFails(t *testing.T) {
	c, err := NewMemoryCustodian()
	require.NoError(t, err)

	_, err = c.UnwrapDataKey(context.Background(), "video-dek", "not-a-wrapped-blob")
	assert.ErrorIs(t, err, ErrKeyUnwrapFailed)
}

func TestMemoryCustodian_SignVerify(t *testing.T) {
	c, err := NewMemoryCustodian()
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.CreateSigningKey(ctx, "user-key-alice"))

	digest := crypto.HashPayload([]byte("hello-video"))
	sig, err := c.Sign(ctx, "user-key-alice", digest.Base64())
	require.NoError(t, err)

	assert.True(t, c.Verify(ctx, "user-key-alice", digest.Base64(), sig))
}

func TestMemoryCustodian_VerifyRejectsChangedPayload(t *testing.T) {
	c, err := NewMemoryCustodian()
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.CreateSigningKey(ctx, "user-key-alice"))

	digest := crypto.HashPayload([]byte("hello-video"))
	sig, err := c.Sign(ctx, "user-key-alice", digest.Base64())
	require.NoError(t, err)

	changed := crypto.HashPayload([]byte("hello-videO"))
	assert.False(t, c.Verify(ctx, "user-key-alice", changed.Base64(), sig))
}

func TestMemoryCustodian_VerifyRejectsDifferentSigner(t *testing.T) {
	c, err := NewMemoryCustodian()
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.CreateSigningKey(ctx, "user-key-alice"))
	require.NoError(t, c.CreateSigningKey(ctx, "user-key-eve"))

	digest := crypto.HashPayload([]byte("hello-video"))
	sig, err := c.Sign(ctx, "user-key-alice", digest.Base64())
	require.NoError(t, err)

	assert.False(t, c.Verify(ctx, "user-key-eve", digest.Base64(), sig))
}

func TestMemoryCustodian_VerifyUnknownKeyIsFalse(t *testing.T) {
	c, err := NewMemoryCustodian()
	require.NoError(t, err)

	digest := crypto.HashPayload([]byte("hello-video"))
	assert.False(t, c.Verify(context.Background(), "ghost", digest.Base64(), "local:v1:AAAA"))
}

func TestMemoryCustodian_ExportPublicKey(t *testing.T) {
	c, err := NewMemoryCustodian()
	require.NoError(t, err)
	ctx := context.Background()

	_, err = c.ExportPublicKey(ctx, "user-key-alice")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, c.CreateSigningKey(ctx, "user-key-alice"))

	pub, err := c.ExportPublicKey(ctx, "user-key-alice")
	require.NoError(t, err)
	assert.NotEmpty(t, pub)
}

func TestMemoryCustodian_CreateSigningKeyIdempotent(t *testing.T) {
	c, err := NewMemoryCustodian()
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.CreateSigningKey(ctx, "user-key-alice"))
	pub1, err := c.ExportPublicKey(ctx, "user-key-alice")
	require.NoError(t, err)

	require.NoError(t, c.CreateSigningKey(ctx, "user-key-alice"))
	pub2, err := c.ExportPublicKey(ctx, "user-key-alice")
	require.NoError(t, err)

	assert.Equal(t, pub1, pub2)
}
