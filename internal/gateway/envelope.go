package gateway

import (
	"errors"
	"fmt"
)

// Handled failures travel inside the envelope; everything else is an error.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrTransport    = errors.New("transport failure")
	ErrTimeout      = errors.New("request timed out")
)

// Code classifies a status:false envelope.
type Code string

const (
	CodeNotFound   Code = "not_found"
	CodeValidation Code = "validation_failed"
)

// Envelope is the uniform response of every gateway operation.
type Envelope[T any] struct {
	Status  bool   `json:"status"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
	Code    Code   `json:"code,omitempty"`
}

func OK[T any](data T) Envelope[T] {
	return Envelope[T]{Status: true, Data: data}
}

func Fail[T any](code Code, message string) Envelope[T] {
	return Envelope[T]{Code: code, Message: message}
}

func NotFound[T any](what string) Envelope[T] {
	return Fail[T](CodeNotFound, what+" not found")
}

func Invalid[T any](message string) Envelope[T] {
	return Fail[T](CodeValidation, message)
}

// Err turns a handled failure into ErrNotFound or ErrValidation for callers
// that prefer plain error handling. It returns nil on success.
func (e Envelope[T]) Err() error {
	if e.Status {
		return nil
	}
	switch e.Code {
	case CodeValidation:
		return fmt.Errorf("%w: %s", ErrValidation, e.Message)
	default:
		return fmt.Errorf("%w: %s", ErrNotFound, e.Message)
	}
}

// recast moves a failure envelope to another data type.
func recast[T, U any](e Envelope[U]) Envelope[T] {
	return Envelope[T]{Status: e.Status, Message: e.Message, Code: e.Code}
}
