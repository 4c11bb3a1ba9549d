package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-video-vault/internal/logger"
	"github.com/MKhiriev/go-video-vault/models"
)

// auditRepository is the SQL-backed implementation of [AuditRepository].
// The audit_log table is append-only; there are no read paths in this
// service.
type auditRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAuditRepository constructs an [AuditRepository] backed by the provided
// database connection and logger.
func NewAuditRepository(db *DB, logger *logger.Logger) AuditRepository {
	logger.Debug().Msg("creating audit repository")
	return &auditRepository{
		db:     db,
		logger: logger,
	}
}

// Append inserts an audit entry and returns it with the server-assigned ID
// and timestamp.
func (r *auditRepository) Append(ctx context.Context, entry models.AuditEntry) (models.AuditEntry, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, appendAuditEntry,
		entry.ActorID, entry.Action, entry.Entity, entry.EntityID, entry.Message)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*auditRepository.Append").Msg("error: row is nil")
		return models.AuditEntry{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err := row.Scan(&entry.ID, &entry.CreatedAt); err != nil {
		log.Err(err).Str("func", "*auditRepository.Append").Msg("error: scanning error")
		return models.AuditEntry{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return entry, nil
}
