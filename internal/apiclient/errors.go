package apiclient

import (
	"errors"
	"fmt"
)

// ErrUnreachable wraps every transport failure: the request never produced
// an HTTP response.
var ErrUnreachable = errors.New("could not connect to the server")

// ConnectMessage is what the pages show for ErrUnreachable.
const ConnectMessage = "Could not connect to the server."

// APIError is a non-2xx answer from the reservation API.  Message is the
// "error" field of the body, empty when the body carried none.  The string
// is opaque; callers never branch on it.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api status %d", e.StatusCode)
	}
	return fmt.Sprintf("api status %d: %s", e.StatusCode, e.Message)
}

// Message picks the text a page should show for err: the server's message
// for an APIError that carries one, ConnectMessage for transport failures
// and fallback for everything else.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, ErrUnreachable) {
		return ConnectMessage
	}
	return fallback
}
