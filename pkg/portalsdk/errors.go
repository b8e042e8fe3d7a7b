package portalsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error codes returned in the "error" field.
const (
	ErrorCodeInvalidRequest = "invalid_request"
	ErrorCodeUnauthorized   = "unauthorized"
	ErrorCodeForbidden      = "forbidden"
	ErrorCodeNotFound       = "not_found"
	ErrorCodeQuotaExceeded  = "quota_exceeded"
	ErrorCodeRateLimited    = "rate_limit_exceeded"
	ErrorCodeUpstream       = "upstream_error"
	ErrorCodeServerError    = "server_error"
)

// APIError is a non-2xx response from the portal.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
	Quota       string
}

func (e *APIError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("portal: %d %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("portal: %d %s: %s", e.StatusCode, e.Code, e.Description)
}

func (e *APIError) IsUnauthorized() bool  { return e.StatusCode == http.StatusUnauthorized }
func (e *APIError) IsForbidden() bool     { return e.StatusCode == http.StatusForbidden }
func (e *APIError) IsNotFound() bool      { return e.StatusCode == http.StatusNotFound }
func (e *APIError) IsQuotaExceeded() bool { return e.Code == ErrorCodeQuotaExceeded }
func (e *APIError) IsRateLimited() bool   { return e.Code == ErrorCodeRateLimited }

// parseErrorResponse builds an APIError from a response body, tolerating
// bodies that are not JSON (proxies, panics before the JSON writer).
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var er ErrorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Error != "" {
		apiErr.Code = er.Error
		apiErr.Description = er.ErrorDescription
		apiErr.Quota = er.Quota
		return apiErr
	}

	apiErr.Code = http.StatusText(resp.StatusCode)
	apiErr.Description = string(body)
	return apiErr
}
