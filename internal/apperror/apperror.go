// Package apperror defines the error kinds shared by the service layer and
// the API boundary that translates them into HTTP responses.
package apperror

import "errors"

type Kind int

const (
	KindNotFound Kind = iota + 1
	KindConflict
	KindValidation
)

// Machine-readable codes carried in error response bodies.
const (
	CodeNotFound        = "NOT_FOUND"
	CodeProjectHasTasks = "CONFLICT_PROJECT_HAS_TASKS"
	CodeUserEmail       = "CONFLICT_USER_EMAIL"
	CodeBusinessRule    = "CONFLICT_BUSINESS_RULE"
	CodeValidation      = "VALIDATION_ERROR"
	CodeInternal        = "INTERNAL_ERROR"
	CodeRateLimited     = "RATE_LIMITED"
)

type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Code: CodeNotFound, Message: message}
}

// Conflict builds a business-rule violation. An empty code falls back to
// CodeBusinessRule.
func Conflict(code, message string) *Error {
	if code == "" {
		code = CodeBusinessRule
	}
	return &Error{Kind: KindConflict, Code: code, Message: message}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Code: CodeValidation, Message: message}
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func IsNotFound(err error) bool {
	e, ok := As(err)
	return ok && e.Kind == KindNotFound
}

func IsConflict(err error) bool {
	e, ok := As(err)
	return ok && e.Kind == KindConflict
}

func IsValidation(err error) bool {
	e, ok := As(err)
	return ok && e.Kind == KindValidation
}
