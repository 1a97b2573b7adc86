package service

import "errors"

// Business-rule rejections recovered at the HTTP boundary. Anything not
// wrapping one of these is treated as a storage failure and surfaced as
// a generic 500 without internal detail.
var (
	ErrValidation    = errors.New("validation")     // 400
	ErrUnavailable   = errors.New("unavailable")    // 400
	ErrEmptyCart     = errors.New("empty cart")     // 400
	ErrInvalidStatus = errors.New("invalid status") // 400
	ErrNotFound      = errors.New("not found")      // 404
	ErrUnauthorized  = errors.New("unauthorized")   // 401
	ErrConflict      = errors.New("conflict")       // 409
)
