package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/familyportal/internal/portal/service"
	"github.com/aussiebroadwan/familyportal/pkg/httpx"
	"github.com/aussiebroadwan/familyportal/pkg/portalsdk"
)

type UsersHandler struct {
	AccountService *service.AccountService
}

// HandleList godoc
//
//	@Summary		List users
//	@Description	Every account, newest first. Admin only.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	portalsdk.UsersResponse
//	@Failure		401	{object}	portalsdk.ErrorResponse
//	@Failure		403	{object}	portalsdk.ErrorResponse
//	@Security		CookieAuth
//	@Router			/api/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.AccountService.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "failed to list users")
		return
	}

	out := portalsdk.UsersResponse{Users: make([]portalsdk.User, 0, len(users))}
	for _, u := range users {
		out.Users = append(out.Users, toUser(u))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleUpdate godoc
//
//	@Summary		Update user
//	@Description	Partial update of role, disabled flag and password. Omitted fields are left alone. Admin only.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"User ID"
//	@Param			request	body		portalsdk.UpdateUserRequest	true	"Fields to change"
//	@Success		200		{object}	portalsdk.OKResponse
//	@Failure		400		{object}	portalsdk.ErrorResponse
//	@Failure		403		{object}	portalsdk.ErrorResponse
//	@Failure		404		{object}	portalsdk.ErrorResponse
//	@Security		CookieAuth
//	@Router			/api/users/{id} [patch].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		httpx.WriteError(w, http.StatusNotFound, httpx.ErrCodeNotFound, service.ErrUserNotFound.Error())
		return
	}

	var req portalsdk.UpdateUserRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	err = h.AccountService.UpdateUser(r.Context(), id, service.UserUpdate{
		Role:        req.Role,
		Disabled:    req.Disabled,
		NewPassword: req.ResetPassword,
	})
	if err != nil {
		writeServiceError(w, r, err, "failed to update user")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, portalsdk.OKResponse{OK: true})
}
