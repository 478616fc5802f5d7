package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure the dashboard can surface. Callers
// branch on the kind; the message is for logs and people.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindDomainRule ErrorKind = "domain_rule"
	KindStorage    ErrorKind = "storage"
)

// Error is the one error type crossing package boundaries. Op names the
// operation that failed, Field the offending input field when the kind
// is validation.
type Error struct {
	Kind    ErrorKind
	Op      string
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Field != "":
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Field, e.Message)
	case e.Err != nil && e.Message != "":
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError reports rejected input. Field names the primary
// offending field; message may cover several.
func NewValidationError(field, message string) error {
	return &Error{Kind: KindValidation, Op: "validate", Field: field, Message: message}
}

// NewNotFoundError reports a missing entity by kind and id.
func NewNotFoundError(entity, id string) error {
	return &Error{Kind: KindNotFound, Op: "find", Message: fmt.Sprintf("%s %q not found", entity, id)}
}

// NewDomainRuleError reports a business rule that blocked the operation
// even though the input itself was well formed.
func NewDomainRuleError(op, message string) error {
	return &Error{Kind: KindDomainRule, Op: op, Message: message}
}

// NewStorageError wraps a database failure.
func NewStorageError(op string, err error) error {
	return &Error{Kind: KindStorage, Op: op, Err: err}
}

// WrapStep annotates a sub-operation failure with the step that hit it,
// keeping the inner kind so callers still branch correctly.
func WrapStep(op, step string, err error) error {
	return &Error{Kind: KindOf(err), Op: op, Message: step, Err: err}
}

// KindOf extracts the kind from any error. Unclassified errors count as
// storage failures.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorage
}

// IsKind reports whether the error carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == kind
}
