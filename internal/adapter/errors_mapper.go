package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// maxErrorBody bounds how much of a relay error body ends up in an error.
const maxErrorBody = 256

// mapRelayError converts a non-2xx relay response into an error wrapping
// ErrDelivery and a cause sentinel.
func mapRelayError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	switch code := resp.StatusCode(); {
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return fmt.Errorf("%w: %w: %s", ErrDelivery, ErrRelayUnauthorized, body)
	case code >= http.StatusInternalServerError, code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w: http %d: %s", ErrDelivery, ErrRelayUnavailable, code, body)
	default:
		return fmt.Errorf("%w: %w: http %d: %s", ErrDelivery, ErrRelayRejected, code, body)
	}
}
