package errors

import (
	"fmt"
	"time"
)

// TransportErrorData contains structured data for transport-related errors
type TransportErrorData struct {
	Transport string `json:"transport"`
	Operation string `json:"operation,omitempty"`
	Connected bool   `json:"connected"`
	Retryable bool   `json:"retryable"`
	Reason    string `json:"reason,omitempty"`
}

// TransportError creates a generic transport error
func TransportError(transport, operation string, cause error) MCPError {
	message := fmt.Sprintf("%s transport error", transport)
	if operation != "" {
		message = fmt.Sprintf("%s transport error during %s", transport, operation)
	}
	if cause != nil {
		message = fmt.Sprintf("%s: %s", message, cause.Error())
	}

	data := &TransportErrorData{
		Transport: transport,
		Operation: operation,
		Connected: false,
		Retryable: true,
	}
	if cause != nil {
		data.Reason = cause.Error()
	}

	return WrapError(
		cause,
		CodeTransportError,
		message,
		CategoryTransport,
		SeverityError,
	).WithData(data)
}

// StdioTransportError creates an error for stdio transport issues
func StdioTransportError(operation string, cause error) MCPError {
	message := fmt.Sprintf("Stdio transport error during %s", operation)
	if cause != nil {
		message = fmt.Sprintf("%s: %s", message, cause.Error())
	}

	data := &TransportErrorData{
		Transport: "stdio",
		Operation: operation,
		Connected: true,
		Retryable: false,
	}
	if cause != nil {
		data.Reason = cause.Error()
	}

	return WrapError(
		cause,
		CodeTransportError,
		message,
		CategoryTransport,
		SeverityError,
	).WithData(data)
}

// TransportNotInitialized creates an error for uninitialized transports
func TransportNotInitialized(transport string) MCPError {
	return NewError(
		CodeTransportError,
		fmt.Sprintf("%s transport is not initialized", transport),
		CategoryTransport,
		SeverityError,
	).WithData(&TransportErrorData{
		Transport: transport,
		Operation: "check_initialization",
		Connected: false,
		Retryable: false,
		Reason:    "not initialized",
	})
}

// TransportAlreadyRunning creates an error for transports that are already running
func TransportAlreadyRunning(transport string) MCPError {
	return NewError(
		CodeTransportError,
		fmt.Sprintf("%s transport is already running", transport),
		CategoryTransport,
		SeverityWarning,
	).WithData(&TransportErrorData{
		Transport: transport,
		Operation: "start",
		Connected: true,
		Retryable: false,
		Reason:    "already running",
	})
}

// ResponseTimeout creates an error for response timeouts
func ResponseTimeout(transport, requestID string, timeout time.Duration) MCPError {
	message := fmt.Sprintf("Response timeout for request %s via %s", requestID, transport)
	if timeout > 0 {
		message = fmt.Sprintf("%s after %v", message, timeout)
	}

	return NewError(
		CodeOperationTimeout,
		message,
		CategoryTimeout,
		SeverityError,
	).WithData(&TransportErrorData{
		Transport: transport,
		Operation: "wait_response",
		Connected: true,
		Retryable: true,
		Reason:    "response timeout",
	})
}
