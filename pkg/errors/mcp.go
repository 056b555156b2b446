package errors

import (
	"fmt"
)

// PaginationErrorData contains structured data for pagination errors
type PaginationErrorData struct {
	Collection string `json:"collection,omitempty"`
	Cursor     string `json:"cursor,omitempty"`
	Offset     int    `json:"offset,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// ResourceErrorData contains structured data for resource-related errors
type ResourceErrorData struct {
	URI       string `json:"uri,omitempty"`
	Operation string `json:"operation,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// ProviderErrorData contains structured data for provider-related errors
type ProviderErrorData struct {
	Provider  string `json:"provider"`
	Operation string `json:"operation,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// InvalidCursor creates an error for cursor tokens that cannot be decoded.
// The caller keeps its last good cursor; retrying with a decodable token
// (or no token) recovers.
func InvalidCursor(cursor, reason string) MCPError {
	return NewError(
		CodeInvalidCursor,
		fmt.Sprintf("Invalid pagination cursor: %s", reason),
		CategoryValidation,
		SeverityWarning,
	).WithData(&PaginationErrorData{
		Cursor: cursor,
		Reason: reason,
	})
}

// UnknownCollection creates an error for list requests against a collection
// that was never registered. This signals a server wiring mistake, not a
// caller mistake.
func UnknownCollection(name string) MCPError {
	return NewError(
		CodeUnknownCollection,
		fmt.Sprintf("Unknown collection: %s", name),
		CategoryNotFound,
		SeverityError,
	).WithData(&PaginationErrorData{
		Collection: name,
		Reason:     "collection not registered",
	})
}

// InvalidOffset creates an error for negative pagination offsets
func InvalidOffset(collection string, offset int) MCPError {
	return NewError(
		CodeInvalidOffset,
		fmt.Sprintf("Invalid pagination offset %d for collection %s", offset, collection),
		CategoryValidation,
		SeverityError,
	).WithData(&PaginationErrorData{
		Collection: collection,
		Offset:     offset,
		Reason:     "offset must be non-negative",
	})
}

// ResourceNotFound creates an error for missing resources
func ResourceNotFound(uri string) MCPError {
	return NewError(
		CodeResourceNotFound,
		fmt.Sprintf("Resource not found: %s", uri),
		CategoryNotFound,
		SeverityError,
	).WithData(&ResourceErrorData{
		URI:       uri,
		Operation: "read",
		Reason:    "not found",
	})
}

// PromptNotFound creates an error for missing prompts
func PromptNotFound(name string) MCPError {
	return NewError(
		CodeResourceNotFound,
		fmt.Sprintf("Prompt not found: %s", name),
		CategoryNotFound,
		SeverityError,
	).WithData(&ResourceErrorData{
		URI:       name,
		Operation: "get_prompt",
		Reason:    "not found",
	})
}

// ToolNotFound creates an error for calls to unregistered tools
func ToolNotFound(name string) MCPError {
	return NewError(
		CodeResourceNotFound,
		fmt.Sprintf("Tool not found: %s", name),
		CategoryNotFound,
		SeverityError,
	).WithData(&ResourceErrorData{
		URI:       name,
		Operation: "call_tool",
		Reason:    "not found",
	})
}

// ProviderNotConfigured creates an error for missing providers
func ProviderNotConfigured(providerType, method string) MCPError {
	return NewError(
		CodeProviderNotConfigured,
		fmt.Sprintf("%s provider not configured for method %s", providerType, method),
		CategoryProvider,
		SeverityError,
	).WithData(&ProviderErrorData{
		Provider:  providerType,
		Operation: method,
		Reason:    "not configured",
	})
}

// ProviderError creates an error for provider operation failures
func ProviderError(providerType, operation string, cause error) MCPError {
	message := fmt.Sprintf("%s provider error during %s", providerType, operation)
	if cause != nil {
		message = fmt.Sprintf("%s: %s", message, cause.Error())
	}

	data := &ProviderErrorData{
		Provider:  providerType,
		Operation: operation,
	}
	if cause != nil {
		data.Reason = cause.Error()
	}

	return WrapError(
		cause,
		CodeProviderError,
		message,
		CategoryProvider,
		SeverityError,
	).WithData(data)
}

// ServerNotReady creates an error for requests arriving before initialization
func ServerNotReady(state string) MCPError {
	return NewError(
		CodeServerNotReady,
		fmt.Sprintf("Server not ready: %s", state),
		CategoryInternal,
		SeverityError,
	)
}

// OperationCancelled creates an error for cancelled operations
func OperationCancelled(operation string) MCPError {
	return NewError(
		CodeOperationCancelled,
		fmt.Sprintf("Operation cancelled: %s", operation),
		CategoryCancelled,
		SeverityInfo,
	)
}

// OperationTimeout creates an error for timed-out operations
func OperationTimeout(operation, duration string) MCPError {
	return NewError(
		CodeOperationTimeout,
		fmt.Sprintf("Operation %s timed out after %s", operation, duration),
		CategoryTimeout,
		SeverityError,
	)
}

// IsInvalidCursor reports whether err carries the invalid-cursor code
func IsInvalidCursor(err error) bool {
	return IsCode(err, CodeInvalidCursor)
}

// IsUnknownCollection reports whether err carries the unknown-collection code
func IsUnknownCollection(err error) bool {
	return IsCode(err, CodeUnknownCollection)
}

// IsInvalidOffset reports whether err carries the invalid-offset code
func IsInvalidOffset(err error) bool {
	return IsCode(err, CodeInvalidOffset)
}
