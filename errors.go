package pomomo

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrValidationSkip marks blank user input that was dropped before any request.
var ErrValidationSkip = errors.New("empty input skipped")

// NetworkError is returned when a request could not complete.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ServerError is returned for a non-2xx response.
type ServerError struct {
	Op     string
	Status int
	Body   string
}

func (e *ServerError) Error() string {
	msg := fmt.Sprintf("%s: %d %s", e.Op, e.Status, http.StatusText(e.Status))
	if body := strings.TrimSpace(e.Body); body != "" {
		msg += ": " + body
	}
	return msg
}

// UserMessage converts a CRUD failure into the single line shown to users.
func UserMessage(action string, err error) string {
	var netErr *NetworkError
	var srvErr *ServerError
	switch {
	case errors.As(err, &netErr):
		return fmt.Sprintf("Failed to %s: could not reach the server.", action)
	case errors.As(err, &srvErr):
		return fmt.Sprintf("Failed to %s: server responded %d %s.", action, srvErr.Status, http.StatusText(srvErr.Status))
	default:
		return fmt.Sprintf("Failed to %s.", action)
	}
}
