package models

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT claim set issued at login. Alongside the registered
// claims it carries the username, role and carrier grant so that the scope
// resolver can work from the token alone, without a database round trip.
type Claims struct {
	jwt.RegisteredClaims

	// Username is the login name of the token's owner.
	Username string `json:"username"`

	// Role is the access level of the token's owner.
	Role Role `json:"role"`

	// CarrierAccess is the carrier grant; omitted entirely when the user
	// has no grant so that absence stays distinguishable from "".
	CarrierAccess *string `json:"carrier_access,omitempty"`
}

// Token wraps a JWT token with convenience accessors for authentication flows.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted in HTTP headers.
//
// Principal is the identity decoded from the claims, populated after a
// successful parse so that middleware does not re-read individual claims.
type Token struct {
	// Token is the underlying JWT token used for signing and claim
	// inspection. Excluded from JSON serialization.
	*jwt.Token `json:"-"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// Principal is the identity extracted from the claims.
	Principal Principal `json:"-"`
}

// PrincipalFromClaims converts a decoded claim set into a Principal.
// Returns an error if the "sub" claim is missing or not an int64.
func PrincipalFromClaims(claims *Claims) (Principal, error) {
	sub, err := claims.GetSubject()
	if err != nil {
		return Principal{}, err
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return Principal{}, err
	}

	return Principal{
		UserID:        userID,
		Username:      claims.Username,
		Role:          claims.Role,
		CarrierAccess: claims.CarrierAccess,
	}, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
