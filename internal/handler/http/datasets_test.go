// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/ltcdata/insurance-api/internal/query"
	"github.com/ltcdata/insurance-api/internal/service"
	"github.com/ltcdata/insurance-api/internal/store"
	"github.com/ltcdata/insurance-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// List
// ─────────────────────────────────────────────

func TestListPolicies_Success(t *testing.T) {
	policies := &mockPolicyService{
		listFn: func(ctx context.Context, principal models.Principal, params url.Values) (models.ListResponse, error) {
			assert.Equal(t, "CA", params.Get("INSURED_STATE"))
			return models.ListResponse{
				Data:   []models.Row{{"POLICY_ID": float64(42), "INSURED_STATE": "CA"}},
				Limit:  100,
				Offset: 0,
				Count:  1,
			}, nil
		},
	}
	server := newTestServer(t, &service.Services{
		AuthService:   authOK(),
		PolicyService: policies,
	})

	resp := doGet(t, server, "/api/v1/policies?INSURED_STATE=CA", "good-token")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.ListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "CA", body.Data[0]["INSURED_STATE"])
	assert.Equal(t, 1, body.Count)
}

func TestListPolicies_ValidationError(t *testing.T) {
	policies := &mockPolicyService{
		listFn: func(ctx context.Context, principal models.Principal, params url.Values) (models.ListResponse, error) {
			return models.ListResponse{}, &query.ValidationError{
				Kind:  query.ErrFieldNotAllowed,
				Field: "SSN",
				Value: "123",
			}
		},
	}
	server := newTestServer(t, &service.Services{
		AuthService:   authOK(),
		PolicyService: policies,
	})

	resp := doGet(t, server, "/api/v1/policies?SSN=123", "good-token")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body models.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "field_not_allowed", body.Kind)
	assert.Equal(t, "SSN", body.Field)
	assert.Equal(t, "123", body.Value)
}

func TestListClaims_InternalErrorHidesDetail(t *testing.T) {
	claims := &mockClaimsService{
		listFn: func(ctx context.Context, principal models.Principal, params url.Values) (models.ListResponse, error) {
			return models.ListResponse{}, store.ErrExecutingQuery
		},
	}
	server := newTestServer(t, &service.Services{
		AuthService:   authOK(),
		ClaimsService: claims,
	})

	resp := doGet(t, server, "/api/v1/claims", "good-token")
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body models.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), body.Error)
}

// ─────────────────────────────────────────────
// Get by identifier
// ─────────────────────────────────────────────

func TestGetPolicy_Success(t *testing.T) {
	policies := &mockPolicyService{
		getFn: func(ctx context.Context, principal models.Principal, policyID int64) (models.Row, error) {
			assert.Equal(t, int64(42), policyID)
			return models.Row{"POLICY_ID": float64(42)}, nil
		},
	}
	server := newTestServer(t, &service.Services{
		AuthService:   authOK(),
		PolicyService: policies,
	})

	resp := doGet(t, server, "/api/v1/policies/42", "good-token")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var row models.Row
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&row))
	assert.Equal(t, float64(42), row["POLICY_ID"])
}

func TestGetPolicy_InvalidIdentifier(t *testing.T) {
	server := newTestServer(t, &service.Services{
		AuthService:   authOK(),
		PolicyService: &mockPolicyService{},
	})

	resp := doGet(t, server, "/api/v1/policies/not-a-number", "good-token")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetClaim_NotFound(t *testing.T) {
	claims := &mockClaimsService{
		getFn: func(ctx context.Context, principal models.Principal, rfbID int64) (models.Row, error) {
			return nil, store.ErrRecordNotFound
		},
	}
	server := newTestServer(t, &service.Services{
		AuthService:   authOK(),
		ClaimsService: claims,
	})

	resp := doGet(t, server, "/api/v1/claims/9999", "good-token")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ─────────────────────────────────────────────
// Analytics summaries
// ─────────────────────────────────────────────

func TestPolicySummary_Success(t *testing.T) {
	policies := &mockPolicyService{
		summaryFn: func(ctx context.Context, principal models.Principal) (models.PolicySummary, error) {
			return models.PolicySummary{
				TotalPolicies:          3,
				TotalAnnualizedPremium: 1500.50,
				PoliciesByState:        map[string]int64{"CA": 2, "NY": 1},
				PoliciesByCarrier:      map[string]int64{"Acme": 3},
			}, nil
		},
	}
	server := newTestServer(t, &service.Services{
		AuthService:   authOK(),
		PolicyService: policies,
	})

	resp := doGet(t, server, "/api/v1/policies/analytics/summary", "good-token")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.PolicySummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(3), body.TotalPolicies)
	assert.Equal(t, int64(2), body.PoliciesByState["CA"])
	assert.Equal(t, int64(3), body.PoliciesByCarrier["Acme"])
}

func TestClaimsSummary_Success(t *testing.T) {
	claims := &mockClaimsService{
		summaryFn: func(ctx context.Context, principal models.Principal) (models.ClaimsSummary, error) {
			return models.ClaimsSummary{
				TotalClaims:        5,
				AvgTurnaround:      12.4,
				DecisionsBreakdown: map[string]int64{"APPROVED": 4, "DENIED": 1},
				ClaimsByState:      map[string]int64{"CA": 5},
				ClaimsByCarrier:    map[string]int64{"Acme": 5},
			}, nil
		},
	}
	server := newTestServer(t, &service.Services{
		AuthService:   authOK(),
		ClaimsService: claims,
	})

	resp := doGet(t, server, "/api/v1/claims/analytics/summary", "good-token")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.ClaimsSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(5), body.TotalClaims)
	assert.InDelta(t, 12.4, body.AvgTurnaround, 0.001)
	assert.Equal(t, int64(4), body.DecisionsBreakdown["APPROVED"])
}

// ─────────────────────────────────────────────
// System endpoints
// ─────────────────────────────────────────────

func TestRoot(t *testing.T) {
	server := newTestServer(t, &service.Services{AuthService: authOK()})

	resp := doGet(t, server, "/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "insurance-warehouse-api", body["service"])
	assert.Equal(t, "test", body["version"])
}

func TestHealth(t *testing.T) {
	server := newTestServer(t, &service.Services{AuthService: authOK()})

	resp := doGet(t, server, "/health", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body.Status)
}

func TestReady_NoDatabase(t *testing.T) {
	server := newTestServer(t, &service.Services{AuthService: authOK()})

	resp := doGet(t, server, "/ready", "")
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var body models.ReadinessResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "not ready", body.Status)
	assert.Equal(t, "disconnected", body.Database)
}

func TestTraceIDHeader(t *testing.T) {
	server := newTestServer(t, &service.Services{AuthService: authOK()})

	// generated when absent
	resp := doGet(t, server, "/health", "")
	assert.NotEmpty(t, resp.Header.Get(traceIDHeader))

	// echoed back when the caller supplies one
	req, err := http.NewRequest(http.MethodGet, server.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set(traceIDHeader, "caller-trace-1")
	resp2, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, "caller-trace-1", resp2.Header.Get(traceIDHeader))
}
