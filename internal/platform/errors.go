package platform

import (
	"errors"
	"fmt"
)

var (
	// no channel matched the given identifier
	ErrChannelNotFound = errors.New("channel not found")

	// the platform returned no account for the given id or token
	ErrAccountNotFound = errors.New("account not found")

	// the refresh token is no longer usable; the user must reconnect.
	// never retried automatically.
	ErrInvalidGrant = errors.New("oauth grant invalid or expired")
)

// APIError is a non-2xx response from a platform API
type APIError struct {
	Platform   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API request failed with status %d: %s", e.Platform, e.StatusCode, e.Body)
}

// reports whether the failure is worth retrying on a later staleness check
func (e *APIError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}

// reports whether an error means the account must be reconnected by the user
func IsInvalidGrant(err error) bool {
	return errors.Is(err, ErrInvalidGrant)
}

// reports whether an error is safe to retry on the next lazy staleness check
func IsTransient(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}

	// network-level failures (dial, timeout) arrive as wrapped url.Error
	return !errors.Is(err, ErrInvalidGrant) &&
		!errors.Is(err, ErrChannelNotFound) &&
		!errors.Is(err, ErrAccountNotFound)
}
