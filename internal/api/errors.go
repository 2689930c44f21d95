package api

import (
	"errors"
	"fmt"
	"strconv"
)

// Sentinel errors produced by the remote client. Callers match them with
// [errors.Is].
var (
	// ErrTransport marks a network/IO failure while talking to the server:
	// the request may or may not have reached it. Steady-state and
	// recoverable; pull treats it as a no-op cycle, push records it in the
	// failure ledger.
	ErrTransport = errors.New("transport failure")

	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("access forbidden")
	ErrNotFound            = errors.New("resource not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
)

// StatusError carries the raw HTTP status and body of a non-2xx response.
// It is always wrapped together with one of the status sentinels above, so
// callers can recover the numeric code via [errors.As].
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return "http " + strconv.Itoa(e.Code) + ": " + e.Body
}

func transportError(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrTransport, err)
}
