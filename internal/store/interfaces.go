package store

import (
	"context"

	"github.com/ltcdata/insurance-api/internal/query"
	"github.com/ltcdata/insurance-api/models"
)

// UserRepository provides access to API user accounts.
type UserRepository interface {
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	TouchLastLogin(ctx context.Context, userID int64) error
}

// DatasetRepository executes resolved query descriptions against the
// warehouse tables and computes scope-aware aggregates.
type DatasetRepository interface {
	List(ctx context.Context, qd query.QueryDescription) ([]models.Row, error)
	GetByID(ctx context.Context, schema *query.Schema, id int64, scope query.ScopePredicate) (models.Row, error)
	PolicySummary(ctx context.Context, scope query.ScopePredicate) (models.PolicySummary, error)
	ClaimsSummary(ctx context.Context, scope query.ScopePredicate) (models.ClaimsSummary, error)
}
