package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/familyportal/pkg/jwtx"
	"github.com/aussiebroadwan/familyportal/pkg/slogx"
)

// ErrSessionRejected marks a token that does not belong to a live session.
// Verifiers wrap it; any other error is treated as a server failure.
var ErrSessionRejected = errors.New("session rejected")

// SessionVerifier resolves a raw session token into the live caller.
type SessionVerifier interface {
	VerifySession(ctx context.Context, token string) (Principal, error)
}

// SessionVerifierFunc adapts a function to SessionVerifier.
type SessionVerifierFunc func(ctx context.Context, token string) (Principal, error)

func (f SessionVerifierFunc) VerifySession(ctx context.Context, token string) (Principal, error) {
	return f(ctx, token)
}

// RequireSession rejects requests without a valid session with 401 and
// otherwise stores the Principal in the request context. Verifier failures
// other than ErrSessionRejected answer 500.
func RequireSession(v SessionVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			raw := jwtx.TokenFromRequest(r)
			if raw == "" {
				WriteError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "not logged in")
				return
			}

			p, err := v.VerifySession(ctx, raw)
			switch {
			case errors.Is(err, ErrSessionRejected):
				slogx.FromContext(ctx).Debug("session rejected", "err", err)
				WriteError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "not logged in")
				return
			case err != nil:
				slogx.FromContext(ctx).Error("failed to verify session", slog.Any("error", err))
				WriteError(w, http.StatusInternalServerError, ErrCodeServerError, "internal server error")
				return
			}

			ctx = WithPrincipal(ctx, p)
			ctx = slogx.WithUserID(ctx, p.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole must run after RequireSession. Callers whose role differs get 403.
func RequireRole(role string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				WriteError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "not logged in")
				return
			}
			if p.Role != role {
				WriteError(w, http.StatusForbidden, ErrCodeForbidden, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
