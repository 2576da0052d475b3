package cloudsdk

import (
	"errors"
	"fmt"

	"github.com/imroc/req/v3"
)

var (
	// ErrNotConfigured means no endpoint URL or API key has been set.
	ErrNotConfigured = errors.New("cloudsdk: endpoint not configured")
)

// APIError is an explicit rejection response from the cloud store. Unlike
// a transport failure it means the remote received and refused the
// request.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Hint    string `json:"hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cloud api error: %s - %s", e.Code, e.Message)
}

// handleAPIError folds the common request/response error pattern into a
// single wrapped error.
func handleAPIError(resp *req.Response, requestErr error, operation string) error {
	if requestErr != nil {
		return fmt.Errorf("http request error: %s: %w", operation, requestErr)
	}

	// got a response, but the api rejected the request
	if resp.IsErrorState() {
		if apiErr, ok := resp.ErrorResult().(*APIError); ok {
			return fmt.Errorf("%s: %w", operation, apiErr)
		}
		return fmt.Errorf("%s: %w", operation, &APIError{
			Code:    fmt.Sprintf("HTTP_%d", resp.StatusCode),
			Message: resp.String(),
		})
	}

	return nil
}
