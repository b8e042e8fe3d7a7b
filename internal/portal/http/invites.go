package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/aussiebroadwan/familyportal/internal/portal/service"
	"github.com/aussiebroadwan/familyportal/pkg/httpx"
	"github.com/aussiebroadwan/familyportal/pkg/portalsdk"
)

// Defaults for fields omitted from an invite request.
const (
	defaultInviteMaxUses       = 1
	defaultInviteExpiresInDays = 7
)

type InvitesHandler struct {
	InviteService *service.InviteService
	Now           func() time.Time
}

// HandleList godoc
//
//	@Summary		List invites
//	@Description	Every invite, newest first, with its current status. Admin only.
//	@Tags			Invites
//	@Produce		json
//	@Success		200	{object}	portalsdk.InvitesResponse
//	@Failure		403	{object}	portalsdk.ErrorResponse
//	@Security		CookieAuth
//	@Router			/api/invites [get].
func (h *InvitesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	invites, err := h.InviteService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "failed to list invites")
		return
	}

	now := h.Now()
	out := portalsdk.InvitesResponse{Invites: make([]portalsdk.Invite, 0, len(invites))}
	for _, inv := range invites {
		out.Invites = append(out.Invites, toInvite(inv, now))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate godoc
//
//	@Summary		Create invite
//	@Description	Mint an invite code. maxUses defaults to 1 and expiresInDays to 7; expiresInDays 0 never expires. Admin only.
//	@Tags			Invites
//	@Accept			json
//	@Produce		json
//	@Param			request	body		portalsdk.CreateInviteRequest	false	"Invite options"
//	@Success		200		{object}	portalsdk.CreateInviteResponse
//	@Failure		400		{object}	portalsdk.ErrorResponse
//	@Failure		403		{object}	portalsdk.ErrorResponse
//	@Security		CookieAuth
//	@Router			/api/invites [post].
func (h *InvitesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req portalsdk.CreateInviteRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	maxUses := defaultInviteMaxUses
	if req.MaxUses != nil {
		maxUses = *req.MaxUses
	}
	expiresInDays := defaultInviteExpiresInDays
	if req.ExpiresInDays != nil {
		expiresInDays = *req.ExpiresInDays
	}
	if expiresInDays < 0 {
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrCodeInvalidRequest, "expiresInDays must not be negative")
		return
	}

	id, code, err := h.InviteService.Issue(r.Context(), req.Note, maxUses, expiresInDays, p.UserID)
	if err != nil {
		writeServiceError(w, r, err, "failed to create invite")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, portalsdk.CreateInviteResponse{ID: id, Code: code})
}

// HandleRevoke godoc
//
//	@Summary		Revoke invite
//	@Description	Deactivate an invite code. Revoking twice succeeds. Admin only.
//	@Tags			Invites
//	@Produce		json
//	@Param			code	path		string	true	"Invite code"
//	@Success		200		{object}	portalsdk.OKResponse
//	@Failure		404		{object}	portalsdk.ErrorResponse
//	@Security		CookieAuth
//	@Router			/api/invites/{code}/revoke [post].
func (h *InvitesHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	err := h.InviteService.Revoke(r.Context(), r.PathValue("code"))
	if errors.Is(err, service.ErrInviteNotFound) {
		httpx.WriteError(w, http.StatusNotFound, httpx.ErrCodeNotFound, err.Error())
		return
	}
	if err != nil {
		writeServiceError(w, r, err, "failed to revoke invite")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, portalsdk.OKResponse{OK: true})
}
