package core

import "github.com/pkg/errors"

// FieldError is used to indicate an error with a specific request field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// NotFoundError indicates that a requested or referenced entity does not exist.
// The message names the missing entity.
type NotFoundError struct {
	message string
}

func NewNotFoundError(msg string) error {
	return &NotFoundError{message: msg}
}

func (err NotFoundError) Error() string {
	return err.message
}

// ConflictError indicates that a write collided with an existing record on a
// uniqueness constraint.
type ConflictError struct {
	message string
}

func NewConflictError(msg string) error {
	return &ConflictError{message: msg}
}

func (err ConflictError) Error() string {
	return err.message
}

// InternalError wraps an unexpected infrastructure failure. Only the stage
// message may cross to callers; the cause stays in the logs.
//
// The cause accessor is Unwrap, not Cause: a Cause method would make
// errors.Cause unwrap straight through to the raw infrastructure error and the
// HTTP error handler would never see the InternalError itself.
type InternalError struct {
	stage string
	cause error
}

func NewInternalError(stage string, cause error) error {
	return &InternalError{stage: stage, cause: cause}
}

func (err InternalError) Error() string {
	if err.cause == nil {
		return err.stage
	}
	return err.stage + ": " + err.cause.Error()
}

func (err InternalError) Stage() string { return err.stage }

func (err InternalError) Unwrap() error { return err.cause }

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
