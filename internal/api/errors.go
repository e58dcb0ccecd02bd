package api

import (
	"fmt"

	"github.com/tmattson/flix/internal/shared"
)

// Error is the uniform failure value for every backend response the gateway
// does not accept. Status is the HTTP status code, or 0 when no response was
// received at all. Body carries the raw error payload when one was available.
//
// Error wraps one of the shared sentinels so callers branch with errors.Is:
//
//	shared.ErrSessionExpired  401 / 403 on an authed call (store already cleared)
//	shared.ErrAuthFailed      401 / 403 on login or registration
//	shared.ErrConflict        409
//	shared.ErrNotFound        404
//	shared.ErrServer          5xx
//	shared.ErrNetwork         transport failure, Status == 0
//	shared.ErrAPIRequest      any other non-2xx
type Error struct {
	Status int
	Body   string
	kind   error
}

func newError(status int, body string, authed bool) *Error {
	var kind error
	switch {
	case status == 0:
		kind = shared.ErrNetwork
	case status == 401 || status == 403:
		if authed {
			kind = shared.ErrSessionExpired
		} else {
			kind = shared.ErrAuthFailed
		}
	case status == 404:
		kind = shared.ErrNotFound
	case status == 409:
		kind = shared.ErrConflict
	case status >= 500:
		kind = shared.ErrServer
	default:
		kind = shared.ErrAPIRequest
	}

	return &Error{Status: status, Body: body, kind: kind}
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return e.kind.Error()
	}
	if e.Body != "" {
		return fmt.Sprintf("%v: status %d: %s", e.kind, e.Status, e.Body)
	}
	return fmt.Sprintf("%v: status %d", e.kind, e.Status)
}

func (e *Error) Unwrap() error {
	return e.kind
}
