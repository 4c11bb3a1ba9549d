package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-video-vault/internal/config"
	"github.com/MKhiriev/go-video-vault/internal/custodian"
	"github.com/MKhiriev/go-video-vault/internal/handler"
	"github.com/MKhiriev/go-video-vault/internal/logger"
	"github.com/MKhiriev/go-video-vault/internal/server"
	"github.com/MKhiriev/go-video-vault/internal/service"
	"github.com/MKhiriev/go-video-vault/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("go-video-vault-server")

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	keeper, err := newCustodian(cfg.Custodian, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating custodian")
	}

	services := service.NewServices(storages, keeper, *cfg, log)

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

// newCustodian selects the key custodian backend: Vault Transit when an
// address is configured, otherwise an in-process custodian whose keys do not
// survive a restart.
func newCustodian(cfg config.Custodian, log *logger.Logger) (custodian.Custodian, error) {
	if cfg.Address != "" {
		return custodian.NewTransitCustodian(custodian.TransitConfig{
			Address: cfg.Address,
			Token:   cfg.Token,
			Timeout: cfg.RequestTimeout,
		}, log), nil
	}

	log.Warn().Msg("no custodian address configured, using in-memory custodian with ephemeral keys")
	return custodian.NewMemoryCustodian()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
