package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound          = errors.New("entity not found")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrMissingParameters = errors.New("missing payment verification parameters")
	ErrSignatureMismatch = errors.New("payment signature mismatch")
	ErrGateway           = errors.New("payment gateway error")
	ErrScriptLoad        = errors.New("checkout script failed to load")
	ErrCancelled         = errors.New("checkout cancelled by buyer")
	ErrTimeout           = errors.New("checkout timed out")
)
