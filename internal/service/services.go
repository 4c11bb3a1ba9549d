package service

import (
	"github.com/MKhiriev/go-video-vault/internal/config"
	"github.com/MKhiriev/go-video-vault/internal/crypto"
	"github.com/MKhiriev/go-video-vault/internal/custodian"
	"github.com/MKhiriev/go-video-vault/internal/logger"
	"github.com/MKhiriev/go-video-vault/internal/store"
)

type Services struct {
	AuthService  AuthService
	OrderService OrderService
	AuditService AuditService
}

func NewServices(storages *store.Storages, keeper custodian.Custodian, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	auditService := NewAuditService(storages.AuditRepository, logger)
	envelope := crypto.NewEnvelopeService()

	return &Services{
		AuthService:  NewAuthService(storages.UserRepository, keeper, cfg.App, logger),
		OrderService: NewOrderService(storages, envelope, keeper, auditService, cfg.Custodian, logger),
		AuditService: auditService,
	}
}
