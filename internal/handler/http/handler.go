package http

import (
	"github.com/ltcdata/insurance-api/internal/logger"
	"github.com/ltcdata/insurance-api/internal/service"
	"github.com/ltcdata/insurance-api/internal/store"
)

type Handler struct {
	services *service.Services
	db       *store.DB
	version  string

	logger *logger.Logger
}

func NewHandler(services *service.Services, db *store.DB, version string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		db:       db,
		version:  version,
		logger:   logger,
	}
}
