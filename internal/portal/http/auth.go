package http

import (
	"net/http"

	"github.com/aussiebroadwan/familyportal/internal/portal/service"
	"github.com/aussiebroadwan/familyportal/pkg/httpx"
	"github.com/aussiebroadwan/familyportal/pkg/jwtx"
	"github.com/aussiebroadwan/familyportal/pkg/portalsdk"
)

type AuthHandler struct {
	AccountService *service.AccountService
	SecureCookies  bool
}

// HandleRegister godoc
//
//	@Summary		Register
//	@Description	Create an account. The first account becomes admin and needs no invite; later accounts need registration to be open and redeem the invite, if given.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		portalsdk.RegisterRequest	true	"Registration"
//	@Success		200		{object}	portalsdk.UserResponse
//	@Failure		400		{object}	portalsdk.ErrorResponse	"missing fields, email taken or invite rejected"
//	@Failure		403		{object}	portalsdk.ErrorResponse	"registration closed"
//	@Failure		429		{object}	portalsdk.ErrorResponse
//	@Router			/api/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req portalsdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	user, token, err := h.AccountService.Register(r.Context(), service.RegisterInput{
		Email:      req.Email,
		Name:       req.Name,
		Password:   req.Password,
		InviteCode: req.Invite,
	})
	if err != nil {
		writeServiceError(w, r, err, "registration failed")
		return
	}

	jwtx.SetSessionCookie(w, token, h.AccountService.Sessions.TTL(), h.SecureCookies)
	httpx.WriteJSON(w, http.StatusOK, portalsdk.UserResponse{User: toUser(user)})
}

// HandleLogin godoc
//
//	@Summary		Log in
//	@Description	Check credentials and set the session cookie.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		portalsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	portalsdk.UserResponse
//	@Failure		400		{object}	portalsdk.ErrorResponse
//	@Failure		401		{object}	portalsdk.ErrorResponse	"unknown or disabled account, wrong password"
//	@Failure		429		{object}	portalsdk.ErrorResponse
//	@Router			/api/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req portalsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	user, token, err := h.AccountService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err, "login failed")
		return
	}

	jwtx.SetSessionCookie(w, token, h.AccountService.Sessions.TTL(), h.SecureCookies)
	httpx.WriteJSON(w, http.StatusOK, portalsdk.UserResponse{User: toUser(user)})
}

// HandleLogout godoc
//
//	@Summary		Log out
//	@Description	Clear the session cookie. Tokens are stateless, so a copied token stays valid until it expires.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	portalsdk.OKResponse
//	@Router			/api/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	jwtx.ClearSessionCookie(w, h.SecureCookies)
	httpx.WriteJSON(w, http.StatusOK, portalsdk.OKResponse{OK: true})
}
