package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-video-vault/models"
)

// UserRepository resolves and creates user accounts. The order workflow uses
// it as its identity resolver: sender id → admin flag, signing-key id,
// public key, display name.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
}

// OrderRepository is the transaction store for order records. Records are
// write-once: there is no update or delete operation.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order models.Order) (models.Order, error)
	FindOrderByID(ctx context.Context, orderID int64) (models.Order, error)
	FindOrdersByRecipient(ctx context.Context, recipientName string) ([]models.Order, error)
}

// AuditRepository appends entries to the append-only audit trail.
type AuditRepository interface {
	Append(ctx context.Context, entry models.AuditEntry) (models.AuditEntry, error)
}

// BlobStorage persists the two artifacts of an order — the encrypted payload
// and the custodian-wrapped data key — under a collision-free base name
// derived from the sender id, a wall-clock timestamp, and a random token.
//
// Writes are sequential (payload first, then wrapped key) and not atomic
// relative to each other. Reads must pass the Scan gate (existence and
// non-zero size) before any cryptographic work is attempted on the content.
type BlobStorage interface {
	// SaveArtifacts writes the encrypted payload and the wrapped key under a
	// fresh base name and returns the two artifact paths.
	SaveArtifacts(ctx context.Context, senderID int64, encrypted []byte, wrappedKey string) (encPath, keyPath string, err error)

	// Scan verifies both artifacts exist and are non-empty. Returns
	// [ErrArtifactMissing] otherwise. A truncated or zero-length artifact is
	// a definite corruption signal that is cheaper to detect than a failed
	// decrypt.
	Scan(ctx context.Context, encPath, keyPath string) error

	// LoadEncrypted reads the encrypted payload artifact.
	LoadEncrypted(ctx context.Context, encPath string) ([]byte, error)

	// LoadWrappedKey reads the wrapped data-key artifact.
	LoadWrappedKey(ctx context.Context, keyPath string) (string, error)
}
