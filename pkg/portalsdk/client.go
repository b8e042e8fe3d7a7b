package portalsdk

import (
	"net/http"
	"strings"
	"time"
)

// SDKClient talks to the public endpoints and creates Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient returns a client with a generous timeout: chat turns wait on
// the language model.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 90 * time.Second,
		},
	}
}

// NewSessionFromToken wraps an existing session token, for example one read
// from a stored cookie.
func (c *SDKClient) NewSessionFromToken(token string) *Session {
	return &Session{client: c, token: token}
}
