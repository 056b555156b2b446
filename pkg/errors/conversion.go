package errors

import (
	"encoding/json"
	"fmt"

	"github.com/mcp-extras/pagination-server/pkg/protocol"
)

// ToJSONRPCResponse converts any error to a JSON-RPC error response
func ToJSONRPCResponse(err error, requestID interface{}) (*protocol.Response, error) {
	if err == nil {
		return nil, fmt.Errorf("cannot create error response from nil error")
	}

	if mcpErr, ok := AsMCPError(err); ok {
		return protocol.NewErrorResponse(requestID, mcpErr.Code(), mcpErr.Message(), mcpErr.Data())
	}

	// Non-MCP errors surface as internal errors
	return protocol.NewErrorResponse(requestID, CodeInternalError, err.Error(), nil)
}

// ToJSONRPCError converts any error to a JSON-RPC error object
func ToJSONRPCError(err error) *protocol.Error {
	if err == nil {
		return nil
	}

	if mcpErr, ok := AsMCPError(err); ok {
		return &protocol.Error{
			Code:    mcpErr.Code(),
			Message: mcpErr.Message(),
			Data:    mcpErr.Data(),
		}
	}

	return &protocol.Error{
		Code:    CodeInternalError,
		Message: err.Error(),
		Data:    nil,
	}
}

// FromJSONRPCError converts a JSON-RPC error object to an MCPError
func FromJSONRPCError(jsonrpcErr *protocol.Error) MCPError {
	if jsonrpcErr == nil {
		return nil
	}

	category := GetErrorCodeCategory(jsonrpcErr.Code)
	severity := GetErrorCodeSeverity(jsonrpcErr.Code)

	err := NewError(jsonrpcErr.Code, jsonrpcErr.Message, category, severity)
	if jsonrpcErr.Data != nil {
		err = err.WithData(jsonrpcErr.Data)
	}

	return err
}

// ConvertStandardError converts common Go errors to appropriate MCP errors
func ConvertStandardError(err error) MCPError {
	if err == nil {
		return nil
	}

	if mcpErr, ok := AsMCPError(err); ok {
		return mcpErr
	}

	errStr := err.Error()

	if errStr == "context canceled" {
		return OperationCancelled("request")
	}

	if errStr == "context deadline exceeded" {
		return OperationTimeout("request", "unknown")
	}

	if _, ok := err.(*json.SyntaxError); ok {
		return NewError(CodeParseError, "Invalid JSON", CategoryProtocol, SeverityError)
	}

	if _, ok := err.(*json.UnmarshalTypeError); ok {
		return NewError(CodeInvalidParams, "Invalid parameter type", CategoryValidation, SeverityError)
	}

	return WrapError(err, CodeInternalError, "Internal error", CategoryInternal, SeverityError)
}

// CreateMethodNotFoundError creates a standardized method not found error
func CreateMethodNotFoundError(method string, requestID interface{}) MCPError {
	context := &Context{
		Method:    method,
		RequestID: fmt.Sprintf("%v", requestID),
	}

	return NewError(
		CodeMethodNotFound,
		fmt.Sprintf("Method not found: %s", method),
		CategoryProtocol,
		SeverityError,
	).WithContext(context)
}

// CreateInvalidParamsError creates a standardized invalid params error
func CreateInvalidParamsError(method string, requestID interface{}, details string) MCPError {
	context := &Context{
		Method:    method,
		RequestID: fmt.Sprintf("%v", requestID),
	}

	message := "Invalid method parameters"
	if details != "" {
		message = fmt.Sprintf("Invalid method parameters: %s", details)
	}

	return NewError(
		CodeInvalidParams,
		message,
		CategoryValidation,
		SeverityError,
	).WithContext(context).WithDetail(details)
}

// CreateParseError creates a standardized parse error
func CreateParseError(details string) MCPError {
	message := "Parse error"
	if details != "" {
		message = fmt.Sprintf("Parse error: %s", details)
	}

	return NewError(
		CodeParseError,
		message,
		CategoryProtocol,
		SeverityError,
	).WithDetail(details)
}

// CreateInternalError creates a standardized internal error with optional context
func CreateInternalError(operation string, cause error) MCPError {
	message := "Internal error"
	if operation != "" {
		message = fmt.Sprintf("Internal error during %s", operation)
	}

	err := WrapError(
		cause,
		CodeInternalError,
		message,
		CategoryInternal,
		SeverityError,
	)

	if operation != "" {
		err = err.WithContext(&Context{Operation: operation})
	}

	return err
}
