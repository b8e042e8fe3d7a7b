package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrInvalidSig   = errors.New("jwtx: invalid signature")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
	ErrEmptySecret  = errors.New("jwtx: empty signing secret")
)

// SessionManager signs and verifies HS256 session tokens with a shared secret.
// Verification needs no database: revocation is handled by callers reloading
// the user row.
type SessionManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

type SessionOptions struct {
	Secret string
	Issuer string
	TTL    time.Duration // defaults to DefaultSessionTTL

	// Now overrides the clock, used by tests.
	Now func() time.Time
}

func NewSessionManager(opts SessionOptions) (*SessionManager, error) {
	if opts.Secret == "" {
		return nil, ErrEmptySecret
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultSessionTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &SessionManager{
		secret: []byte(opts.Secret),
		issuer: opts.Issuer,
		ttl:    opts.TTL,
		now:    opts.Now,
	}, nil
}

// TTL reports the lifetime of issued tokens, used for the cookie Max-Age.
func (m *SessionManager) TTL() time.Duration { return m.ttl }

// Issue signs a session token for the given user.
func (m *SessionManager) Issue(userID int64, role string) (string, time.Time, error) {
	claims := NewSessionClaims(userID, role, m.issuer, m.ttl, m.now())
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwtx: sign session: %w", err)
	}
	return token, claims.ExpiresAt.Time, nil
}

// Verify checks signature, algorithm, issuer and expiry and returns the claims.
func (m *SessionManager) Verify(raw string) (Claims, error) {
	if raw == "" {
		return Claims{}, ErrMalformed
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}, opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
			return Claims{}, ErrInvalidSig
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrMalformed
		default:
			return Claims{}, fmt.Errorf("%w: %v", ErrInvalidClaim, err)
		}
	}

	if claims.UserID <= 0 {
		return Claims{}, ErrInvalidClaim
	}
	return claims, nil
}
