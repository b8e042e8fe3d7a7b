package portalsdk

import (
	"context"
	"errors"
	"net/http"
)

// ErrNoSessionCookie means the server accepted the credentials but did not
// set a session cookie.
var ErrNoSessionCookie = errors.New("portalsdk: response carried no session cookie")

// Register creates an account and returns a logged-in Session.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	return c.authenticate(ctx, "/api/auth/register", req)
}

// Login returns a Session for an existing account.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*Session, error) {
	return c.authenticate(ctx, "/api/auth/login", LoginRequest{Email: email, Password: password})
}

func (c *SDKClient) authenticate(ctx context.Context, path string, body any) (*Session, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, path, "", body)
	if err != nil {
		return nil, err
	}

	token := sessionCookie(resp)

	var out UserResponse
	if err := decodeJSON(resp, &out); err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrNoSessionCookie
	}

	return &Session{client: c, token: token, user: out.User}, nil
}
