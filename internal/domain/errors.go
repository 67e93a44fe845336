// internal/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so the handler boundary can map each one
// to a structured {"error": ...} response.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindValidation marks a missing or invalid caller-supplied parameter.
	KindValidation
	// KindNotFound marks a reference to a non-existent item id.
	KindNotFound
	// KindInsufficientStock marks a removal exceeding current stock.
	KindInsufficientStock
	// KindModelUnavailable marks a demand model artifact that failed to load.
	KindModelUnavailable
)

// Error is the typed error used across services. Message is user-facing
// and must carry the concrete offending values.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewInsufficientStockError(current, requested int) *Error {
	return &Error{
		Kind:    KindInsufficientStock,
		Message: fmt.Sprintf("在庫不足です。現在の在庫: %d、出庫要求: %d", current, requested),
	}
}

func NewModelUnavailableError(cause error) *Error {
	return &Error{
		Kind:    KindModelUnavailable,
		Message: fmt.Sprintf("需要予測モデルを読み込めません: %v", cause),
	}
}

// KindOf extracts the ErrorKind from err, or KindUnknown for untyped errors.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}
