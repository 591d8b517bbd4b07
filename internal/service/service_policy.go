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

// policyService implements PolicyService on top of the shared dataset
// pipeline bound to the policy snapshot allow-list.
type policyService struct {
	datasetService
}

// NewPolicyService constructs a PolicyService using pagination limits from cfg.
func NewPolicyService(repository store.DatasetRepository, cfg config.Query, logger *logger.Logger) PolicyService {
	return &policyService{
		datasetService: datasetService{
			schema:     query.Policies,
			repository: repository,
			limits:     query.Limits{DefaultLimit: cfg.DefaultLimit, MaxLimit: cfg.MaxLimit},
			logger:     logger,
		},
	}
}

func (s *policyService) List(ctx context.Context, principal models.Principal, params url.Values) (models.ListResponse, error) {
	return s.list(ctx, principal, params)
}

func (s *policyService) Get(ctx context.Context, principal models.Principal, policyID int64) (models.Row, error) {
	return s.get(ctx, principal, policyID)
}

// Summary returns aggregate policy statistics computed inside the caller's
// carrier scope. A denied scope yields empty aggregates without a database
// round trip.
func (s *policyService) Summary(ctx context.Context, principal models.Principal) (models.PolicySummary, error) {
	log := logger.FromContext(ctx)

	scope := query.ResolveScope(principal.Role, principal.CarrierAccess)
	if scope.Denied() {
		log.Warn().Int64("user_id", principal.UserID).Msg("carrier scope denies access to policy summary")
		return models.PolicySummary{
			PoliciesByState:   map[string]int64{},
			PoliciesByCarrier: map[string]int64{},
		}, nil
	}

	return s.repository.PolicySummary(ctx, scope)
}
