package utils

import (
	"testing"
	"time"

	"github.com/ltcdata/insurance-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer  = "insurance-api-test"
	testSignKey = "test-sign-key"
)

func strptr(s string) *string { return &s }

var testUser = models.User{
	UserID:        42,
	Username:      "analyst1",
	Role:          models.RoleAnalyst,
	CarrierAccess: strptr("Acme,Globex"),
}

func TestGenerateJWTToken_Success(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, testUser, time.Hour, testSignKey)
	require.NoError(t, err)

	require.NotEmpty(t, token.SignedString)
	assert.Equal(t, int64(42), token.Principal.UserID)
	assert.Equal(t, "analyst1", token.Principal.Username)
	assert.Equal(t, models.RoleAnalyst, token.Principal.Role)
	require.NotNil(t, token.Principal.CarrierAccess)
	assert.Equal(t, "Acme,Globex", *token.Principal.CarrierAccess)
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		duration time.Duration
		signKey  string
	}{
		{name: "empty issuer", issuer: "", duration: time.Hour, signKey: testSignKey},
		{name: "zero duration", issuer: testIssuer, duration: 0, signKey: testSignKey},
		{name: "empty sign key", issuer: testIssuer, duration: time.Hour, signKey: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, testUser, tt.duration, tt.signKey)
			require.Error(t, err)
		})
	}
}

func TestValidateAndParseJWTToken_RoundTrip(t *testing.T) {
	generated, err := GenerateJWTToken(testIssuer, testUser, time.Hour, testSignKey)
	require.NoError(t, err)

	parsed, err := ValidateAndParseJWTToken(generated.SignedString, testSignKey, testIssuer)
	require.NoError(t, err)

	assert.Equal(t, generated.Principal, parsed.Principal)
}

func TestValidateAndParseJWTToken_NilCarrierAccessSurvivesRoundTrip(t *testing.T) {
	user := models.User{UserID: 7, Username: "viewer1", Role: models.RoleViewer}

	generated, err := GenerateJWTToken(testIssuer, user, time.Hour, testSignKey)
	require.NoError(t, err)

	parsed, err := ValidateAndParseJWTToken(generated.SignedString, testSignKey, testIssuer)
	require.NoError(t, err)

	assert.Nil(t, parsed.Principal.CarrierAccess)
}

func TestValidateAndParseJWTToken_Failures(t *testing.T) {
	generated, err := GenerateJWTToken(testIssuer, testUser, time.Hour, testSignKey)
	require.NoError(t, err)

	expired, err := GenerateJWTToken(testIssuer, testUser, -time.Minute, testSignKey)
	require.NoError(t, err)

	tests := []struct {
		name        string
		tokenString string
		signKey     string
		issuer      string
	}{
		{name: "wrong sign key", tokenString: generated.SignedString, signKey: "other-key", issuer: testIssuer},
		{name: "wrong issuer", tokenString: generated.SignedString, signKey: testSignKey, issuer: "other-issuer"},
		{name: "expired token", tokenString: expired.SignedString, signKey: testSignKey, issuer: testIssuer},
		{name: "garbage token", tokenString: "not.a.token", signKey: testSignKey, issuer: testIssuer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAndParseJWTToken(tt.tokenString, tt.signKey, tt.issuer)
			require.Error(t, err)
		})
	}
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid bearer", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "surrounding spaces", header: "  Bearer abc.def.ghi  ", want: "abc.def.ghi"},
		{name: "missing token", header: "Bearer", wantErr: true},
		{name: "empty token", header: "Bearer ", wantErr: true},
		{name: "empty header", header: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
