package service

import (
	"context"
	"net/url"

	"github.com/ltcdata/insurance-api/models"
)

// AuthService authenticates API users and manages the JWT token lifecycle.
type AuthService interface {
	Login(ctx context.Context, username, password string) (models.TokenResponse, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// PolicyService exposes scoped read access to the policy snapshot table.
type PolicyService interface {
	List(ctx context.Context, principal models.Principal, params url.Values) (models.ListResponse, error)
	Get(ctx context.Context, principal models.Principal, policyID int64) (models.Row, error)
	Summary(ctx context.Context, principal models.Principal) (models.PolicySummary, error)
}

// ClaimsService exposes scoped read access to the claims worksheet table.
type ClaimsService interface {
	List(ctx context.Context, principal models.Principal, params url.Values) (models.ListResponse, error)
	Get(ctx context.Context, principal models.Principal, rfbID int64) (models.Row, error)
	Summary(ctx context.Context, principal models.Principal) (models.ClaimsSummary, error)
}
