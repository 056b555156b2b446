package errors

import (
	"fmt"
)

// ValidationErrorData contains structured data for validation errors
type ValidationErrorData struct {
	Parameter string      `json:"parameter,omitempty"`
	Value     interface{} `json:"value,omitempty"`
	Expected  string      `json:"expected,omitempty"`
	Reason    string      `json:"reason,omitempty"`
}

// MissingParameter creates an error for missing required parameters
func MissingParameter(parameter string) MCPError {
	return NewError(
		CodeMissingParameter,
		fmt.Sprintf("Required parameter missing: %s", parameter),
		CategoryValidation,
		SeverityError,
	).WithData(&ValidationErrorData{
		Parameter: parameter,
		Reason:    "parameter is required",
	})
}

// InvalidParameter creates an error for parameters with invalid values
func InvalidParameter(parameter string, value interface{}, expected string) MCPError {
	return NewError(
		CodeInvalidParameter,
		fmt.Sprintf("Invalid value for parameter %s: expected %s", parameter, expected),
		CategoryValidation,
		SeverityError,
	).WithData(&ValidationErrorData{
		Parameter: parameter,
		Value:     value,
		Expected:  expected,
	})
}

// ValidationError creates a generic validation error
func ValidationError(reason string) MCPError {
	return NewError(
		CodeValidationError,
		fmt.Sprintf("Validation failed: %s", reason),
		CategoryValidation,
		SeverityError,
	).WithData(&ValidationErrorData{
		Reason: reason,
	})
}
