package service

import (
	"context"
	"net/url"

	"github.com/ltcdata/insurance-api/internal/config"
	"github.com/ltcdata/insurance-api/internal/logger"
	"github.com/ltcdata/insurance-api/internal/query"
	"github.com/ltcdata/insurance-api/internal/store"
	"github.com/ltcdata/insurance-api/models"
)

// claimsService implements ClaimsService on top of the shared dataset
// pipeline bound to the claims worksheet allow-list.
type claimsService struct {
	datasetService
}

// NewClaimsService constructs a ClaimsService using pagination limits from cfg.
func NewClaimsService(repository store.DatasetRepository, cfg config.Query, logger *logger.Logger) ClaimsService {
	return &claimsService{
		datasetService: datasetService{
			schema:     query.Claims,
			repository: repository,
			limits:     query.Limits{DefaultLimit: cfg.DefaultLimit, MaxLimit: cfg.MaxLimit},
			logger:     logger,
		},
	}
}

func (s *claimsService) List(ctx context.Context, principal models.Principal, params url.Values) (models.ListResponse, error) {
	return s.list(ctx, principal, params)
}

func (s *claimsService) Get(ctx context.Context, principal models.Principal, rfbID int64) (models.Row, error) {
	return s.get(ctx, principal, rfbID)
}

// Summary returns aggregate claims statistics computed inside the caller's
// carrier scope. A denied scope yields empty aggregates without a database
// round trip.
func (s *claimsService) Summary(ctx context.Context, principal models.Principal) (models.ClaimsSummary, error) {
	log := logger.FromContext(ctx)

	scope := query.ResolveScope(principal.Role, principal.CarrierAccess)
	if scope.Denied() {
		log.Warn().Int64("user_id", principal.UserID).Msg("carrier scope denies access to claims summary")
		return models.ClaimsSummary{
			DecisionsBreakdown: map[string]int64{},
			ClaimsByState:      map[string]int64{},
			ClaimsByCarrier:    map[string]int64{},
		}, nil
	}

	return s.repository.ClaimsSummary(ctx, scope)
}
