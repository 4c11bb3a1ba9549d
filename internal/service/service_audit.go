package service

import (
	"context"

	"github.com/MKhiriev/go-video-vault/internal/logger"
	"github.com/MKhiriev/go-video-vault/internal/store"
	"github.com/MKhiriev/go-video-vault/models"
)

// auditService is the concrete implementation of AuditService. Entries go to
// the append-only audit_log table.
type auditService struct {
	auditRepository store.AuditRepository
	logger          *logger.Logger
}

// NewAuditService constructs an AuditService backed by the given repository.
func NewAuditService(auditRepository store.AuditRepository, logger *logger.Logger) AuditService {
	return &auditService{
		auditRepository: auditRepository,
		logger:          logger,
	}
}

// Record appends an audit entry. A failed append is logged and swallowed:
// the audit trail never fails the business operation that produced the entry.
func (a *auditService) Record(ctx context.Context, entry models.AuditEntry) {
	log := logger.FromContext(ctx)

	if _, err := a.auditRepository.Append(ctx, entry); err != nil {
		log.Err(err).
			Str("action", entry.Action).
			Int64("actor_id", entry.ActorID).
			Msg("audit entry append failed")
	}
}
