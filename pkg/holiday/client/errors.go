package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCategory defines the normalized failure taxonomy
type ErrorCategory string

const (
	// ErrorTransport indicates the request never produced a response
	// (network failure, timeout)
	ErrorTransport ErrorCategory = "transport"

	// ErrorRemoteStatus indicates the API answered with a non-2xx status
	ErrorRemoteStatus ErrorCategory = "remote_status"

	// ErrorAPI indicates an undecodable body or an API-reported failure
	ErrorAPI ErrorCategory = "api"

	// ErrorInternal indicates an error outside the taxonomy
	ErrorInternal ErrorCategory = "internal"
)

// maxDisplayBody caps how many characters of a response body error messages show.
const maxDisplayBody = 500

// ErrSequenceConsumed is yielded when a holiday sequence is ranged over twice.
var ErrSequenceConsumed = errors.New("holiday client: sequence already consumed")

// TransportError wraps a failure to get any response from the API.
type TransportError struct {
	URI     string
	Timeout bool
	Err     error
}

func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("holiday client [%s]: GET %s timed out: %v", ErrorTransport, e.URI, e.Err)
	}
	return fmt.Sprintf("holiday client [%s]: GET %s: %v", ErrorTransport, e.URI, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Category() ErrorCategory {
	return ErrorTransport
}

// RemoteStatusError reports a non-success HTTP status. Body is kept whole;
// Error shows at most maxDisplayBody characters of it.
type RemoteStatusError struct {
	URI        string
	StatusCode int
	Body       string
}

func (e *RemoteStatusError) Error() string {
	return fmt.Sprintf("holiday client [%s]: GET %s returned %d: %s", ErrorRemoteStatus, e.URI, e.StatusCode, e.DisplayBody())
}

// DisplayBody returns Body truncated for logs and messages.
func (e *RemoteStatusError) DisplayBody() string {
	return truncate(e.Body, maxDisplayBody)
}

func (e *RemoteStatusError) Category() ErrorCategory {
	return ErrorRemoteStatus
}

// APIError reports a body that could not be decoded (Err is set) or a
// document whose status is "error".
type APIError struct {
	Status      string
	Description string
	Body        string
	Err         error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("holiday client [%s]: undecodable response: %v", ErrorAPI, e.Err)
	}
	return fmt.Sprintf("holiday client [%s]: status %q: %s", ErrorAPI, e.Status, e.Description)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func (e *APIError) Category() ErrorCategory {
	return ErrorAPI
}

type categorized interface {
	Category() ErrorCategory
}

// GetCategory extracts the error category from an error
func GetCategory(err error) ErrorCategory {
	var c categorized
	if errors.As(err, &c) {
		return c.Category()
	}
	return ErrorInternal
}

// IsRetryable reports whether a retry policy outside this package could
// reasonably try again. The client never retries on its own.
func IsRetryable(err error) bool {
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return true
	}
	var statusErr *RemoteStatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= http.StatusInternalServerError ||
			statusErr.StatusCode == http.StatusTooManyRequests
	}
	return false
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "... (truncated)"
}
