package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is how long a login stays valid before the cookie has to
// be renewed by logging in again.
const DefaultSessionTTL = 14 * 24 * time.Hour

// Claims are the session token claims. Only the user id and role travel in
// the token; everything else is reloaded from the database on each request.
type Claims struct {
	jwt.RegisteredClaims

	UserID int64  `json:"uid"`
	Role   string `json:"role"`
}

// NewSessionClaims builds claims for userID valid from now for ttl.
func NewSessionClaims(userID int64, role, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
		Role:   role,
	}
}
