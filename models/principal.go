package models

// Principal is the authenticated identity attached to a request after the
// bearer token has been verified. It carries exactly the claims the scope
// resolver needs; handlers never see the raw token once a Principal exists.
type Principal struct {
	// UserID is the authenticated user's identifier (JWT "sub" claim).
	UserID int64

	// Username is the login name, carried for request logging.
	Username string

	// Role is the access level claim.
	Role Role

	// CarrierAccess is the carrier grant claim: "ALL", a comma-separated
	// carrier list, or nil when the token carried no grant.
	CarrierAccess *string
}
