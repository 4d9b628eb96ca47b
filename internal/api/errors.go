package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// GenericErrorMessage is the body of every 500 response.
const GenericErrorMessage = "Something went wrong. Contact developer for help."

// FailureClass selects how a route reports a failed provider call.
type FailureClass int

const (
	// FailureUnexpected reports provider failures as a generic 500.
	FailureUnexpected FailureClass = iota

	// FailureLookup reports provider failures as a 404 carrying the error text.
	// It is used by routes keyed on a client supplied identifier.
	FailureLookup
)

// errInternal marks failures of the request pipeline itself. They are always
// answered with a 500, whatever the route's failure class.
var errInternal = errors.New("internal request handling error")

// ValidationError reports a request field that failed the validation gate.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is %s", e.Field, e.Reason)
}

// validationErrorFrom converts the first failing field of a validator error.
// The validator reports fields in declaration order.
func validationErrorFrom(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", errInternal, err)
	}

	fe := fieldErrs[0]
	reason := "invalid"
	if fe.Tag() == "required" {
		reason = "required"
	}
	return &ValidationError{Field: fe.Field(), Reason: reason}
}

// MapErrorToStatusCode maps a failed request to its HTTP status.
func MapErrorToStatusCode(err error, class FailureClass) int {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, errInternal):
		return http.StatusInternalServerError
	case class == FailureLookup:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the message sent to the client for a failed
// request. Only validation errors and lookup failures expose their text.
func GetSafeErrorMessage(err error, class FailureClass) string {
	if err == nil {
		return GenericErrorMessage
	}

	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Error()
	case errors.Is(err, errInternal):
		return GenericErrorMessage
	case class == FailureLookup:
		return err.Error()
	default:
		return GenericErrorMessage
	}
}
