package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewError(t *testing.T) {
	err := NewError(CodeInvalidCursor, "bad cursor", CategoryValidation, SeverityWarning)

	assert.Equal(t, CodeInvalidCursor, err.Code())
	assert.Equal(t, "bad cursor", err.Message())
	assert.Equal(t, CategoryValidation, err.Category())
	assert.Equal(t, SeverityWarning, err.Severity())
	require.NotNil(t, err.Context())
	assert.False(t, err.Context().Timestamp.IsZero())
}

func TestErrorStringIncludesDetails(t *testing.T) {
	err := NewError(CodeValidationError, "validation failed", CategoryValidation, SeverityError)
	assert.Equal(t, "validation failed", err.Error())

	withDetail := err.WithDetail("cursor must be numeric")
	assert.Equal(t, "validation failed: cursor must be numeric", withDetail.Error())
	// The original is unchanged
	assert.Equal(t, "validation failed", err.Error())
}

func TestWrapErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("read failed")
	err := WrapError(cause, CodeTransportError, "transport broke", CategoryTransport, SeverityError)

	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
}

func TestInvalidCursor(t *testing.T) {
	err := InvalidCursor("abc", "not a number")

	assert.Equal(t, CodeInvalidCursor, err.Code())
	assert.True(t, IsInvalidCursor(err))
	assert.False(t, IsUnknownCollection(err))

	data, ok := err.Data().(*PaginationErrorData)
	require.True(t, ok)
	assert.Equal(t, "abc", data.Cursor)
	assert.Equal(t, "not a number", data.Reason)
}

func TestUnknownCollection(t *testing.T) {
	err := UnknownCollection("widgets")

	assert.Equal(t, CodeUnknownCollection, err.Code())
	assert.Equal(t, CategoryNotFound, err.Category())
	assert.True(t, IsUnknownCollection(err))
	assert.Contains(t, err.Message(), "widgets")
}

func TestInvalidOffset(t *testing.T) {
	err := InvalidOffset("tools", -3)

	assert.Equal(t, CodeInvalidOffset, err.Code())
	assert.True(t, IsInvalidOffset(err))

	data, ok := err.Data().(*PaginationErrorData)
	require.True(t, ok)
	assert.Equal(t, "tools", data.Collection)
	assert.Equal(t, -3, data.Offset)
}

func TestAsMCPError(t *testing.T) {
	mcpErr := InvalidCursor("x", "corrupt")
	got, ok := AsMCPError(mcpErr)
	assert.True(t, ok)
	assert.Equal(t, mcpErr, got)

	_, ok = AsMCPError(fmt.Errorf("plain error"))
	assert.False(t, ok)

	_, ok = AsMCPError(nil)
	assert.False(t, ok)
}

func TestIsCategoryAndCode(t *testing.T) {
	err := UnknownCollection("resources")

	assert.True(t, IsCategory(err, CategoryNotFound))
	assert.False(t, IsCategory(err, CategoryTransport))
	assert.True(t, IsCode(err, CodeUnknownCollection))
	assert.False(t, IsCode(fmt.Errorf("plain"), CodeUnknownCollection))
}

func TestToJSONRPCResponse(t *testing.T) {
	resp, err := ToJSONRPCResponse(InvalidCursor("zzz", "not a number"), "req-1")
	require.NoError(t, err)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeInvalidCursor, resp.Error.Code)
	assert.Equal(t, "req-1", resp.ID)

	// Plain errors surface as internal errors
	resp, err = ToJSONRPCResponse(fmt.Errorf("boom"), 2)
	require.NoError(t, err)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeInternalError, resp.Error.Code)

	_, err = ToJSONRPCResponse(nil, 3)
	assert.Error(t, err)
}

func TestToJSONRPCError(t *testing.T) {
	jsonErr := ToJSONRPCError(UnknownCollection("prompts"))
	require.NotNil(t, jsonErr)
	assert.Equal(t, CodeUnknownCollection, jsonErr.Code)

	assert.Nil(t, ToJSONRPCError(nil))
}

func TestConvertStandardError(t *testing.T) {
	var syntaxErr error = &json.SyntaxError{}
	converted := ConvertStandardError(syntaxErr)
	assert.Equal(t, CodeParseError, converted.Code())

	cancelled := ConvertStandardError(fmt.Errorf("context canceled"))
	assert.Equal(t, CodeOperationCancelled, cancelled.Code())

	plain := ConvertStandardError(fmt.Errorf("something else"))
	assert.Equal(t, CodeInternalError, plain.Code())

	// MCPErrors pass through unchanged
	original := InvalidCursor("q", "corrupt")
	assert.Equal(t, original, ConvertStandardError(original))
}

func TestErrorCodeRegistry(t *testing.T) {
	info, exists := GetErrorCodeInfo(CodeInvalidCursor)
	require.True(t, exists)
	assert.Equal(t, "InvalidCursor", info.Name)
	assert.Equal(t, CategoryValidation, info.Category)

	assert.Equal(t, "UnknownCollection", GetErrorCodeName(CodeUnknownCollection))
	assert.Equal(t, "UnknownError", GetErrorCodeName(-1))
	assert.Equal(t, CategoryInternal, GetErrorCodeCategory(-1))
	assert.Equal(t, SeverityError, GetErrorCodeSeverity(-1))
}

func TestErrorJSONSerialization(t *testing.T) {
	err := InvalidCursor("bad", "not a number").WithDetail("token was 'bad'")

	payload, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, float64(CodeInvalidCursor), decoded["code"])
	assert.Equal(t, "validation", decoded["category"])
	assert.Contains(t, decoded["details"], "token was")
}
