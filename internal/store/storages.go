package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-video-vault/internal/config"
	"github.com/MKhiriev/go-video-vault/internal/logger"
	"github.com/MKhiriev/go-video-vault/migrations"
)

// Storages aggregates every persistence backend the service layer depends
// on: the relational repositories and the filesystem blob storage.
type Storages struct {
	UserRepository  UserRepository
	OrderRepository OrderRepository
	AuditRepository AuditRepository
	BlobStorage     BlobStorage
}

// NewStorages opens the database (PostgreSQL for "postgres://" DSNs, SQLite
// otherwise), runs pending migrations, and wires up all repositories plus
// the blob storage.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := connect(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting storage database: %w", err)
	}

	if err := migrations.Migrate(db.DB, dialect(cfg.DB.DSN)); err != nil {
		return nil, fmt.Errorf("error migrating storage database: %w", err)
	}

	blobStorage, err := NewFileBlobStorage(cfg.Blobs, log)
	if err != nil {
		return nil, fmt.Errorf("error creating blob storage: %w", err)
	}

	return &Storages{
		UserRepository:  NewUserRepository(db, log),
		OrderRepository: NewOrderRepository(db, log),
		AuditRepository: NewAuditRepository(db, log),
		BlobStorage:     blobStorage,
	}, nil
}

func connect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	if isPostgresDSN(cfg.DSN) {
		return NewConnectPostgres(ctx, cfg, log)
	}
	return NewConnectSQLite(ctx, cfg, log)
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func dialect(dsn string) string {
	if isPostgresDSN(dsn) {
		return "pgx"
	}
	return "sqlite3"
}
