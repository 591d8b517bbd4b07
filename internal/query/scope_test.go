package query

import (
	"testing"

	"github.com/ltcdata/insurance-api/models"
	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string { return &s }

func TestResolveScope_AdminIsAlwaysUnrestricted(t *testing.T) {
	tests := []struct {
		name          string
		carrierAccess *string
	}{
		{name: "nil claim", carrierAccess: nil},
		{name: "ALL claim", carrierAccess: strptr("ALL")},
		{name: "carrier list claim", carrierAccess: strptr("Acme,Globex")},
		{name: "empty claim", carrierAccess: strptr("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope := ResolveScope(models.RoleAdmin, tt.carrierAccess)
			assert.True(t, scope.Unrestricted())
			assert.False(t, scope.Denied())
			assert.Nil(t, scope.Carriers())
		})
	}
}

func TestResolveScope_AllSentinel(t *testing.T) {
	for _, role := range []models.Role{models.RoleAnalyst, models.RoleViewer} {
		t.Run(string(role), func(t *testing.T) {
			scope := ResolveScope(role, strptr("ALL"))
			assert.True(t, scope.Unrestricted())

			// sentinel is case-insensitive and whitespace-tolerant
			scope = ResolveScope(role, strptr(" all "))
			assert.True(t, scope.Unrestricted())
		})
	}
}

func TestResolveScope_CarrierList(t *testing.T) {
	scope := ResolveScope(models.RoleAnalyst, strptr("Acme, Globex ,Acme"))

	assert.False(t, scope.Unrestricted())
	assert.False(t, scope.Denied())
	assert.Equal(t, []string{"Acme", "Globex"}, scope.Carriers())
}

func TestResolveScope_FailClosed(t *testing.T) {
	tests := []struct {
		name          string
		carrierAccess *string
	}{
		{name: "nil claim", carrierAccess: nil},
		{name: "empty claim", carrierAccess: strptr("")},
		{name: "whitespace claim", carrierAccess: strptr("   ")},
		{name: "commas only", carrierAccess: strptr(",,,")},
	}

	for _, role := range []models.Role{models.RoleAnalyst, models.RoleViewer} {
		for _, tt := range tests {
			t.Run(string(role)+"/"+tt.name, func(t *testing.T) {
				scope := ResolveScope(role, tt.carrierAccess)
				assert.True(t, scope.Denied())
				assert.False(t, scope.Unrestricted())
				assert.Nil(t, scope.Carriers())
			})
		}
	}
}

func TestResolveScope_ZeroValueDenies(t *testing.T) {
	var scope ScopePredicate
	assert.True(t, scope.Denied())
	assert.False(t, scope.Unrestricted())
}

func TestScopePredicate_CarriersReturnsCopy(t *testing.T) {
	scope := ResolveScope(models.RoleViewer, strptr("Acme,Globex"))

	carriers := scope.Carriers()
	carriers[0] = "mutated"

	assert.Equal(t, []string{"Acme", "Globex"}, scope.Carriers())
}

func TestResolveScope_Deterministic(t *testing.T) {
	a := ResolveScope(models.RoleViewer, strptr("Acme,Globex"))
	b := ResolveScope(models.RoleViewer, strptr("Acme,Globex"))
	assert.Equal(t, a, b)
}
