package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/familyportal/internal/portal/service"
	"github.com/aussiebroadwan/familyportal/pkg/httpx"
	"github.com/aussiebroadwan/familyportal/pkg/slogx"
)

// writeServiceError maps service errors onto status codes. Anything not
// recognised is logged and reported as a generic 500 with fallback as the
// description.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var quotaErr *service.QuotaExceededError
	var upstreamErr *service.UpstreamError

	switch {
	case errors.As(err, &quotaErr):
		httpx.WriteJSON(w, http.StatusTooManyRequests, httpx.ErrorResponse{
			Error:            httpx.ErrCodeQuotaExceeded,
			ErrorDescription: quotaErr.Error(),
			Quota:            string(quotaErr.Kind),
		})

	case errors.As(err, &upstreamErr):
		httpx.WriteError(w, http.StatusInternalServerError, httpx.ErrCodeUpstream, upstreamErr.Error())

	case errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInviteMissing),
		errors.Is(err, service.ErrInviteNotFound),
		errors.Is(err, service.ErrInviteRevoked),
		errors.Is(err, service.ErrInviteExpired),
		errors.Is(err, service.ErrInviteExhausted),
		errors.Is(err, service.ErrNoMessages),
		errors.Is(err, service.ErrInvalidMessageRole):
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrCodeInvalidRequest, err.Error())

	case errors.Is(err, service.ErrInvalidAccount),
		errors.Is(err, service.ErrWrongPassword),
		errors.Is(err, service.ErrUnauthorized):
		httpx.WriteError(w, http.StatusUnauthorized, httpx.ErrCodeUnauthorized, err.Error())

	case errors.Is(err, service.ErrRegistrationClosed),
		errors.Is(err, service.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, httpx.ErrCodeForbidden, err.Error())

	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrConversationNotFound):
		httpx.WriteError(w, http.StatusNotFound, httpx.ErrCodeNotFound, err.Error())

	case errors.Is(err, service.ErrBackendUnconfigured):
		httpx.WriteError(w, http.StatusInternalServerError, httpx.ErrCodeServerError, err.Error())

	default:
		slogx.FromContext(r.Context()).Error(fallback, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.ErrCodeServerError, fallback)
	}
}

func writeBadJSON(w http.ResponseWriter) {
	httpx.WriteError(w, http.StatusBadRequest, httpx.ErrCodeInvalidRequest, "Invalid JSON body")
}

// principal is only called behind RequireSession, so a missing principal is a
// wiring bug and answered like an anonymous request.
func principal(w http.ResponseWriter, r *http.Request) (httpx.Principal, bool) {
	p, ok := httpx.PrincipalFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.ErrCodeUnauthorized, "not logged in")
	}
	return p, ok
}
