package services

import "errors"

// Error categories for the workflow layer. Handlers map these onto HTTP
// status codes with errors.Is; the wrapped message is what the client sees.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("not authorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

type serviceError struct {
	msg  string
	kind error
}

func (e *serviceError) Error() string { return e.msg }
func (e *serviceError) Unwrap() error { return e.kind }

func validation(msg string) error   { return &serviceError{msg: msg, kind: ErrValidation} }
func unauthorized(msg string) error { return &serviceError{msg: msg, kind: ErrUnauthorized} }
func notFound(msg string) error     { return &serviceError{msg: msg, kind: ErrNotFound} }
func conflict(msg string) error     { return &serviceError{msg: msg, kind: ErrConflict} }
