package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/familyportal/internal/portal/service"
	"github.com/aussiebroadwan/familyportal/pkg/httpx"
	"github.com/aussiebroadwan/familyportal/pkg/portalsdk"
)

// maxHistoryDays caps the optional ?days= usage history.
const maxHistoryDays = 90

type MeHandler struct {
	AccountService *service.AccountService
	UsageService   *service.UsageService
	Quota          service.Quota
}

// ServeHTTP godoc
//
//	@Summary		Current user
//	@Description	The logged-in user with today's usage and the configured ceilings. ?days=N adds up to 90 days of usage history.
//	@Tags			Account
//	@Produce		json
//	@Param			days	query		int	false	"Days of usage history"
//	@Success		200		{object}	portalsdk.MeResponse
//	@Failure		401		{object}	portalsdk.ErrorResponse
//	@Security		CookieAuth
//	@Router			/api/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, ok := principal(w, r)
	if !ok {
		return
	}

	user, err := h.AccountService.GetUser(ctx, p.UserID)
	if err != nil {
		writeServiceError(w, r, err, "failed to load user")
		return
	}

	today, err := h.UsageService.GetToday(ctx, p.UserID)
	if err != nil {
		writeServiceError(w, r, err, "failed to load usage")
		return
	}

	resp := portalsdk.MeResponse{
		User:  toUser(user),
		Usage: toUsage(today),
		Limits: portalsdk.Limits{
			MaxRequestsPerDay: h.Quota.MaxRequestsPerDay,
			MaxTokensPerDay:   h.Quota.MaxTokensPerDay,
		},
	}

	if raw := r.URL.Query().Get("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 1 {
			httpx.WriteError(w, http.StatusBadRequest, httpx.ErrCodeInvalidRequest, "days must be a positive integer")
			return
		}
		hist, err := h.UsageService.History(ctx, p.UserID, min(days, maxHistoryDays))
		if err != nil {
			writeServiceError(w, r, err, "failed to load usage history")
			return
		}
		resp.History = make([]portalsdk.Usage, 0, len(hist))
		for _, u := range hist {
			resp.History = append(resp.History, toUsage(u))
		}
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}
