package query

import (
	"strings"

	"github.com/ltcdata/insurance-api/models"
)

// ScopePredicate is the row-visibility condition derived from a principal's
// role and carrier_access claim. It is resolved server-side, AND-combined
// with every user filter, and can never be widened by request parameters.
//
// The zero value matches nothing: an unresolved scope denies access.
type ScopePredicate struct {
	unrestricted bool
	carriers     []string
}

// ResolveScope maps a role and carrier_access claim to a ScopePredicate.
//
//   - ADMIN is unrestricted regardless of the claim.
//   - A non-admin claim of "ALL" is unrestricted.
//   - A non-admin carrier list restricts to those carriers; a list that
//     parses to nothing matches no rows.
//   - A nil/absent claim matches no rows: absence of an explicit grant is
//     never interpreted as full access.
//
// Resolution is pure and deterministic.
func ResolveScope(role models.Role, carrierAccess *string) ScopePredicate {
	if role == models.RoleAdmin {
		return ScopePredicate{unrestricted: true}
	}

	if carrierAccess == nil {
		return ScopePredicate{}
	}

	claim := strings.TrimSpace(*carrierAccess)
	if strings.EqualFold(claim, models.CarrierAccessAll) {
		return ScopePredicate{unrestricted: true}
	}

	carriers := make([]string, 0, 4)
	seen := make(map[string]struct{})
	for _, part := range strings.Split(claim, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, dup := seen[part]; dup {
			continue
		}
		seen[part] = struct{}{}
		carriers = append(carriers, part)
	}

	return ScopePredicate{carriers: carriers}
}

// Unrestricted reports whether the predicate places no restriction on rows.
func (p ScopePredicate) Unrestricted() bool { return p.unrestricted }

// Denied reports whether the predicate matches no rows at all. Callers that
// need to distinguish "no data" from "no access" inspect this before
// executing the query.
func (p ScopePredicate) Denied() bool {
	return !p.unrestricted && len(p.carriers) == 0
}

// Carriers returns a copy of the carrier list the predicate restricts to.
// Empty for unrestricted and denied predicates.
func (p ScopePredicate) Carriers() []string {
	if len(p.carriers) == 0 {
		return nil
	}
	out := make([]string, len(p.carriers))
	copy(out, p.carriers)
	return out
}
