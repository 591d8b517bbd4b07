// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/ltcdata/insurance-api/internal/logger"
	"github.com/ltcdata/insurance-api/internal/service"
	"github.com/ltcdata/insurance-api/models"
)

// ─────────────────────────────────────────────
// Mock AuthService
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	loginFn      func(ctx context.Context, username, password string) (models.TokenResponse, error)
	parseTokenFn func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (models.TokenResponse, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, username, password)
	}
	return models.TokenResponse{}, service.ErrInvalidCredentials
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if m.parseTokenFn != nil {
		return m.parseTokenFn(ctx, tokenString)
	}
	return models.Token{}, service.ErrTokenIsExpiredOrInvalid
}

// ─────────────────────────────────────────────
// Mock PolicyService / ClaimsService
// ─────────────────────────────────────────────

type mockPolicyService struct {
	listFn    func(ctx context.Context, principal models.Principal, params url.Values) (models.ListResponse, error)
	getFn     func(ctx context.Context, principal models.Principal, policyID int64) (models.Row, error)
	summaryFn func(ctx context.Context, principal models.Principal) (models.PolicySummary, error)
}

func (m *mockPolicyService) List(ctx context.Context, principal models.Principal, params url.Values) (models.ListResponse, error) {
	if m.listFn != nil {
		return m.listFn(ctx, principal, params)
	}
	return models.ListResponse{Data: []models.Row{}}, nil
}

func (m *mockPolicyService) Get(ctx context.Context, principal models.Principal, policyID int64) (models.Row, error) {
	if m.getFn != nil {
		return m.getFn(ctx, principal, policyID)
	}
	return models.Row{}, nil
}

func (m *mockPolicyService) Summary(ctx context.Context, principal models.Principal) (models.PolicySummary, error) {
	if m.summaryFn != nil {
		return m.summaryFn(ctx, principal)
	}
	return models.PolicySummary{}, nil
}

type mockClaimsService struct {
	listFn    func(ctx context.Context, principal models.Principal, params url.Values) (models.ListResponse, error)
	getFn     func(ctx context.Context, principal models.Principal, rfbID int64) (models.Row, error)
	summaryFn func(ctx context.Context, principal models.Principal) (models.ClaimsSummary, error)
}

func (m *mockClaimsService) List(ctx context.Context, principal models.Principal, params url.Values) (models.ListResponse, error) {
	if m.listFn != nil {
		return m.listFn(ctx, principal, params)
	}
	return models.ListResponse{Data: []models.Row{}}, nil
}

func (m *mockClaimsService) Get(ctx context.Context, principal models.Principal, rfbID int64) (models.Row, error) {
	if m.getFn != nil {
		return m.getFn(ctx, principal, rfbID)
	}
	return models.Row{}, nil
}

func (m *mockClaimsService) Summary(ctx context.Context, principal models.Principal) (models.ClaimsSummary, error) {
	if m.summaryFn != nil {
		return m.summaryFn(ctx, principal)
	}
	return models.ClaimsSummary{}, nil
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func strptr(s string) *string { return &s }

// analystPrincipal is a convenience fixture used across multiple tests.
var analystPrincipal = models.Principal{
	UserID:        7,
	Username:      "analyst",
	Role:          models.RoleAnalyst,
	CarrierAccess: strptr("Acme"),
}

// authOK returns an AuthService mock that accepts the token "good-token" and
// yields analystPrincipal.
func authOK() *mockAuthService {
	return &mockAuthService{
		parseTokenFn: func(ctx context.Context, tokenString string) (models.Token, error) {
			if tokenString == "good-token" {
				return models.Token{Principal: analystPrincipal}, nil
			}
			return models.Token{}, service.ErrTokenIsExpiredOrInvalid
		},
	}
}

// newTestServer builds a Handler over the given service mocks and returns an
// httptest server running the full router with all middleware attached.
func newTestServer(t *testing.T, svcs *service.Services) *httptest.Server {
	t.Helper()
	h := NewHandler(svcs, nil, "test", logger.Nop())
	server := httptest.NewServer(h.Init())
	t.Cleanup(server.Close)
	return server
}

func doGet(t *testing.T, server *httptest.Server, path, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, server.URL+path, nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := server.Client().Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}
