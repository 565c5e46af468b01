package failure

import (
	"errors"
	"net/http"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
// Kind carries a stable machine-readable identifier for the failure; clients
// branch on it rather than on the message text. ConflictField names the
// offending field on optimistic-concurrency conflicts.
type Failure struct {
	Code          int    `json:"code"`
	Kind          string `json:"kind,omitempty"`
	Message       string `json:"message"`
	ConflictField string `json:"conflictField,omitempty"`
}

var InvalidPageParam = &Failure{Code: http.StatusBadRequest, Message: "invalid page parameter"}
var InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Message: "invalid limit parameter"}
var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}
var ResourceRestrictedError = &Failure{Code: http.StatusForbidden, Message: "You don't have permission to access this resource"}

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// Unimplemented returns a new Failure with code for unimplemented method.
func Unimplemented(methodName string) error {
	return &Failure{
		Code:    http.StatusNotImplemented,
		Message: methodName,
	}
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: msg,
	}
}

// BadRequestKind returns a bad-request Failure carrying a machine-readable kind.
func BadRequestKind(kind, msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    kind,
		Message: msg,
	}
}

// NotFoundKind returns a not-found Failure carrying a machine-readable kind.
func NotFoundKind(kind, msg string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Kind:    kind,
		Message: msg,
	}
}

// ConflictKind returns a conflict Failure carrying a machine-readable kind.
func ConflictKind(kind, msg string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    kind,
		Message: msg,
	}
}

// ConflictOnField returns a conflict Failure naming the field whose expected
// value no longer matched.
func ConflictOnField(field, msg string) error {
	return &Failure{
		Code:          http.StatusConflict,
		Kind:          "settings_conflict",
		Message:       msg,
		ConflictField: field,
	}
}

// PaymentRequiredKind returns a payment-required Failure carrying a machine-readable kind.
func PaymentRequiredKind(kind, msg string) error {
	return &Failure{
		Code:    http.StatusPaymentRequired,
		Kind:    kind,
		Message: msg,
	}
}

// InternalErrorKind returns an internal-error Failure carrying a machine-readable kind.
func InternalErrorKind(kind, msg string) error {
	return &Failure{
		Code:    http.StatusInternalServerError,
		Kind:    kind,
		Message: msg,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// KindOf returns the machine-readable kind of an error interface, or empty
// when the error carries none.
func KindOf(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Kind
	}

	return ""
}

// ConflictFieldOf returns the field named by an optimistic-concurrency
// conflict, or empty for every other error.
func ConflictFieldOf(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.ConflictField
	}

	return ""
}
