package protocol

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestListResultCursorPresence(t *testing.T) {
	withMore := ListToolsResult{
		Tools:            []Tool{{Name: "tool_1"}},
		PaginationResult: PaginationResult{NextCursor: "5"},
	}
	data, err := json.Marshal(withMore)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"nextCursor":"5"`) {
		t.Errorf("expected nextCursor in %s", data)
	}

	lastPage := ListToolsResult{Tools: []Tool{{Name: "tool_25"}}}
	data, err = json.Marshal(lastPage)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if strings.Contains(string(data), "nextCursor") {
		t.Errorf("expected nextCursor to be omitted in %s", data)
	}
}

func TestListParamsCursorOptional(t *testing.T) {
	var params ListPromptsParams
	if err := json.Unmarshal([]byte(`{}`), &params); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if params.Cursor != "" {
		t.Errorf("expected empty cursor for first page, got %q", params.Cursor)
	}

	if err := json.Unmarshal([]byte(`{"cursor":"14"}`), &params); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if params.Cursor != "14" {
		t.Errorf("expected cursor '14', got %q", params.Cursor)
	}
}

func TestMessageClassification(t *testing.T) {
	tests := []struct {
		name         string
		data         string
		request      bool
		response     bool
		notification bool
	}{
		{
			name:    "list request",
			data:    `{"jsonrpc":"2.0","id":1,"method":"listTools","params":{"cursor":"5"}}`,
			request: true,
		},
		{
			name:     "list response",
			data:     `{"jsonrpc":"2.0","id":1,"result":{"tools":[],"nextCursor":"10"}}`,
			response: true,
		},
		{
			name:     "error response",
			data:     `{"jsonrpc":"2.0","id":2,"error":{"code":-32801,"message":"Invalid pagination cursor"}}`,
			response: true,
		},
		{
			name:         "initialized notification",
			data:         `{"jsonrpc":"2.0","method":"initialized"}`,
			notification: true,
		},
		{
			name: "wrong version",
			data: `{"jsonrpc":"1.0","id":1,"method":"listTools"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := []byte(tt.data)
			if got := IsRequest(data); got != tt.request {
				t.Errorf("IsRequest = %v, want %v", got, tt.request)
			}
			if got := IsResponse(data); got != tt.response {
				t.Errorf("IsResponse = %v, want %v", got, tt.response)
			}
			if got := IsNotification(data); got != tt.notification {
				t.Errorf("IsNotification = %v, want %v", got, tt.notification)
			}
		})
	}
}

func TestNewErrorResponse(t *testing.T) {
	resp, err := NewErrorResponse(7, -32801, "Invalid pagination cursor: not a number", map[string]string{"cursor": "not-a-number"})
	if err != nil {
		t.Fatalf("NewErrorResponse failed: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != -32801 {
		t.Fatalf("expected error code -32801, got %+v", resp.Error)
	}
	if resp.Result != nil {
		t.Error("error response must not carry a result")
	}
}
