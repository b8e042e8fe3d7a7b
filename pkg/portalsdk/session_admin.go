package portalsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ListUsers requires the admin role.
func (s *Session) ListUsers(ctx context.Context) ([]User, error) {
	var out UsersResponse
	if err := s.do(ctx, http.MethodGet, "/api/users", nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

// UpdateUser requires the admin role.
func (s *Session) UpdateUser(ctx context.Context, id int64, req UpdateUserRequest) error {
	var out OKResponse
	return s.do(ctx, http.MethodPatch, "/api/users/"+strconv.FormatInt(id, 10), req, &out)
}

// ListInvites requires the admin role.
func (s *Session) ListInvites(ctx context.Context) ([]Invite, error) {
	var out InvitesResponse
	if err := s.do(ctx, http.MethodGet, "/api/invites", nil, &out); err != nil {
		return nil, err
	}
	return out.Invites, nil
}

// CreateInvite requires the admin role.
func (s *Session) CreateInvite(ctx context.Context, req CreateInviteRequest) (*CreateInviteResponse, error) {
	var out CreateInviteResponse
	if err := s.do(ctx, http.MethodPost, "/api/invites", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RevokeInvite requires the admin role. Revoking twice is not an error.
func (s *Session) RevokeInvite(ctx context.Context, code string) error {
	var out OKResponse
	return s.do(ctx, http.MethodPost, "/api/invites/"+url.PathEscape(code)+"/revoke", nil, &out)
}
