package models

import "time"

// Role is the access level assigned to an API user. It is carried in the JWT
// and drives carrier-level data scoping on every read endpoint.
type Role string

const (
	// RoleAdmin sees every carrier's rows without restriction.
	RoleAdmin Role = "ADMIN"

	// RoleAnalyst sees rows for the carriers listed in the user's
	// carrier_access grant.
	RoleAnalyst Role = "ANALYST"

	// RoleViewer is the most restricted role; visibility is identical to
	// RoleAnalyst but intended for read-only consumers.
	RoleViewer Role = "VIEWER"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAnalyst, RoleViewer:
		return true
	}
	return false
}

// CarrierAccessAll is the sentinel carrier_access value granting visibility
// into every carrier's rows for non-admin roles.
const CarrierAccessAll = "ALL"

// User represents a row of the api_users table used for authentication.
// PasswordHash and CarrierAccess must never be exposed outside trusted
// boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"-"`

	// Username is the unique login identifier.
	Username string `json:"username"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized.
	PasswordHash string `json:"-"`

	// Role determines how the scope predicate is resolved for this user.
	Role Role `json:"role"`

	// CarrierAccess is the carrier-level grant: the "ALL" sentinel, a
	// comma-separated carrier list, or nil when no grant was issued.
	// A nil grant resolves to no visible rows for non-admin roles.
	CarrierAccess *string `json:"-"`

	// IsActive disables login when false without deleting the account.
	IsActive bool `json:"-"`

	// CreatedAt is the account creation timestamp.
	CreatedAt time.Time `json:"created_at"`

	// LastLogin records the most recent successful authentication.
	LastLogin *time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "api_users"
}
