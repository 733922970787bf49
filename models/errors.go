package models

import "errors"

// Failure taxonomy shared by services and controllers. Controllers map
// these onto HTTP statuses; anything else surfaces as a generic 500.
var (
	ErrUnauthorized = errors.New("no valid identity")
	ErrForbidden    = errors.New("insufficient entitlement")
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("resource conflict")
	ErrUnavailable  = errors.New("resource not in a usable state")
	ErrInvalidInput = errors.New("invalid input")
)
