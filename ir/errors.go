package ir

import "fmt"

// ErrorCode represents a machine-readable error code.
//
// Every engine failure is an invariant violation of this class: it aborts the
// current construction or expansion entirely, with no partial result and no
// recovery path. Callers treat any such error as malformed input declarations
// or a caller bug, not as a user-facing diagnostic.
type ErrorCode string

const (
	CodeArityMismatch           ErrorCode = "arity_mismatch"
	CodeUnresolvedClassifier    ErrorCode = "unresolved_classifier"
	CodeClassifierKindMismatch  ErrorCode = "classifier_kind_mismatch"
	CodeUnresolvedTypeParameter ErrorCode = "unresolved_type_parameter"
	CodeMalformedExpansion      ErrorCode = "malformed_expansion"
	CodeConflictingVariance     ErrorCode = "conflicting_variance"
	CodeUnsupportedTypeShape    ErrorCode = "unsupported_type_shape"
	CodeCyclicAliasExpansion    ErrorCode = "cyclic_alias_expansion"
)

// Error is the standard engine error.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError creates a new engine error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Errorf creates a new engine error with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
