package services

import "errors"

// Sentinel errors returned by the service layer. Controllers translate them
// into HTTP status codes at the boundary; services wrap them with context
// via fmt.Errorf("%w: ...").
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalid      = errors.New("invalid")
)
