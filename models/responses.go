package models

import "time"

// TokenResponse is the body returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	UserID      int64  `json:"user_id"`
	Username    string `json:"username"`
	Role        Role   `json:"role"`
}

// ListResponse is the paginated envelope returned by the list endpoints.
type ListResponse struct {
	Data   []Row `json:"data"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Count  int   `json:"count"`
}

// PolicySummary is the aggregate statistics payload for policies,
// computed within the caller's carrier scope.
type PolicySummary struct {
	TotalPolicies          int64            `json:"total_policies"`
	TotalAnnualizedPremium float64          `json:"total_annualized_premium"`
	TotalLifetimePremium   float64          `json:"total_lifetime_premium"`
	AvgAnnualizedPremium   float64          `json:"avg_annualized_premium"`
	PoliciesByState        map[string]int64 `json:"policies_by_state"`
	PoliciesByCarrier      map[string]int64 `json:"policies_by_carrier"`
}

// ClaimsSummary is the aggregate statistics payload for claims,
// computed within the caller's carrier scope.
type ClaimsSummary struct {
	TotalClaims        int64            `json:"total_claims"`
	AvgTurnaround      float64          `json:"avg_tat"`
	DecisionsBreakdown map[string]int64 `json:"decisions_breakdown"`
	ClaimsByState      map[string]int64 `json:"claims_by_state"`
	ClaimsByCarrier    map[string]int64 `json:"claims_by_carrier"`
}

// HealthResponse is returned by the liveness probe.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ReadinessResponse is returned by the readiness probe and reports the
// database connection state alongside the service status.
type ReadinessResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse is the structured error body rendered for 4xx responses.
// Kind, Field and Value are filled for validation failures so that clients
// can pinpoint the offending query parameter.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`
}
