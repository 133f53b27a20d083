package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrInputTooLarge   = errors.New("input too large")
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrInternal        = errors.New("internal failure")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnknownLanguage = errors.New("unknown language")
)
