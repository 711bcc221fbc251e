// Package auth reads the login tokens issued by the stories API.
//
// Tokens are signed by the server with a key the client never sees, so
// they are only decoded here, never verified. The server stays the
// authority on whether a token is accepted.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrMalformedToken = errors.New("malformed token")

// Claims are the claims carried by a login token: the standard ones plus
// the username the token was issued to.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// IssuedAt returns the iat claim, or the zero time when it is absent.
func (c Claims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt == nil {
		return time.Time{}
	}
	return c.RegisteredClaims.IssuedAt.Time
}

// InspectToken decodes tokenString without checking its signature.
func InspectToken(tokenString string) (Claims, error) {
	claims := Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &claims); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	return claims, nil
}

// BelongsTo reports whether tokenString may be used for username. Tokens
// that cannot be decoded, or that carry no username claim, are given the
// benefit of the doubt and left for the server to judge.
func BelongsTo(tokenString, username string) bool {
	claims, err := InspectToken(tokenString)
	if err != nil || claims.Username == "" {
		return true
	}
	return claims.Username == username
}
