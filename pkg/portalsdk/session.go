package portalsdk

import (
	"context"
	"net/http"
	"strconv"
)

// Session performs requests on behalf of a logged-in user.
type Session struct {
	client *SDKClient
	token  string
	user   User
}

// Token returns the raw session token.
func (s *Session) Token() string { return s.token }

// User returns the account as reported at login or registration. It is
// empty for sessions built with NewSessionFromToken; call Me for live data.
func (s *Session) User() User { return s.user }

func (s *Session) do(ctx context.Context, method, path string, body, target any) error {
	resp, err := s.client.doRequest(ctx, method, path, s.token, body)
	if err != nil {
		return err
	}
	return decodeJSON(resp, target)
}

// Me returns the current user with today's usage. days > 0 also asks for
// that many days of usage history.
func (s *Session) Me(ctx context.Context, days int) (*MeResponse, error) {
	path := "/api/me"
	if days > 0 {
		path += "?days=" + strconv.Itoa(days)
	}

	var out MeResponse
	if err := s.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout clears the session server side and forgets the local token.
func (s *Session) Logout(ctx context.Context) error {
	var out OKResponse
	if err := s.do(ctx, http.MethodPost, "/api/auth/logout", nil, &out); err != nil {
		return err
	}
	s.token = ""
	return nil
}
