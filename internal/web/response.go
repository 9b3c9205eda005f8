package web

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

const statusError = "Error"

// apiError is the body of non-200 JSON responses. Per-campground failures
// inside a report use the report's own error entries instead.
type apiError struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

func errorResponse(msg string) apiError {
	return apiError{
		Status: statusError,
		Error:  msg,
	}
}

func validationError(errs validator.ValidationErrors) apiError {
	var msgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("field %s needs at least %s values", err.Field(), err.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("field %s must be one of: %s", err.Field(), err.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}

	return apiError{
		Status: statusError,
		Error:  strings.Join(msgs, ", "),
	}
}
