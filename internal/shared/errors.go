package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrSessionExpired   = fmt.Errorf("session expired, please log in again")

	// API errors
	ErrAPIRequest = fmt.Errorf("API request failed")
	ErrConflict   = fmt.Errorf("conflict")
	ErrServer     = fmt.Errorf("server error")
	ErrNetwork    = fmt.Errorf("no response from server")
	ErrNotFound   = fmt.Errorf("not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
