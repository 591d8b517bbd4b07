package service

import (
	"github.com/ltcdata/insurance-api/internal/config"
	"github.com/ltcdata/insurance-api/internal/logger"
	"github.com/ltcdata/insurance-api/internal/store"
)

type Services struct {
	AuthService   AuthService
	PolicyService PolicyService
	ClaimsService ClaimsService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:   NewAuthService(storages.UserRepository, cfg.App, logger),
		PolicyService: NewPolicyService(storages.DatasetRepository, cfg.Query, logger),
		ClaimsService: NewClaimsService(storages.DatasetRepository, cfg.Query, logger),
	}
}
