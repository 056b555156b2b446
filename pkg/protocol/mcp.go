package protocol

import "time"

const (
	// ProtocolRevision is the protocol revision this server implements
	ProtocolRevision = "2025-03-26"

	// Methods for lifecycle management
	MethodInitialize  = "initialize"
	MethodInitialized = "initialized"

	// Methods for server features
	MethodListTools     = "listTools"
	MethodCallTool      = "callTool"
	MethodListResources = "listResources"
	MethodReadResource  = "readResource"
	MethodListPrompts   = "listPrompts"
	MethodGetPrompt     = "getPrompt"

	// Methods for utilities
	MethodPing        = "ping"
	MethodSetLogLevel = "setLogLevel"
	MethodLog         = "log"
)

// CapabilityType defines the types of capabilities the server advertises
type CapabilityType string

const (
	// CapabilityTools indicates the server supports tools
	CapabilityTools CapabilityType = "tools"

	// CapabilityResources indicates the server supports resources
	CapabilityResources CapabilityType = "resources"

	// CapabilityPrompts indicates the server supports prompts
	CapabilityPrompts CapabilityType = "prompts"

	// CapabilityLogging indicates the server supports log forwarding
	CapabilityLogging CapabilityType = "logging"

	// CapabilityPagination indicates list results are served in pages
	CapabilityPagination CapabilityType = "pagination"
)

// InitializeParams defines the parameters for the initialize request
type InitializeParams struct {
	ProtocolVersion string          `json:"protocolVersion"`
	Name            string          `json:"name"`
	Version         string          `json:"version"`
	Capabilities    map[string]bool `json:"capabilities"`
	ClientInfo      *ClientInfo     `json:"clientInfo,omitempty"`
}

// ClientInfo provides additional information about the client
type ClientInfo struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Platform string `json:"platform,omitempty"`
}

// InitializeResult defines the response for the initialize request
type InitializeResult struct {
	ProtocolVersion string          `json:"protocolVersion"`
	Name            string          `json:"name"`
	Version         string          `json:"version"`
	Capabilities    map[string]bool `json:"capabilities"`
	ServerInfo      *ServerInfo     `json:"serverInfo,omitempty"`
}

// ServerInfo provides additional information about the server
type ServerInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
}

// InitializedParams is sent as a notification once the client is ready
type InitializedParams struct {
	// Intentionally empty as per specification
}

// PingParams defines parameters for the ping request
type PingParams struct {
	// Optional timestamp from sender
	Timestamp int64 `json:"timestamp,omitempty"`
}

// PingResult is the response for ping
type PingResult struct {
	// The original timestamp if provided, otherwise the server's current timestamp
	Timestamp int64 `json:"timestamp"`
}

// LogLevel specifies the severity of log messages
type LogLevel string

const (
	// LogLevelDebug for debug information
	LogLevelDebug LogLevel = "debug"

	// LogLevelInfo for general information
	LogLevelInfo LogLevel = "info"

	// LogLevelWarn for warnings
	LogLevelWarn LogLevel = "warn"

	// LogLevelError for errors
	LogLevelError LogLevel = "error"
)

// SetLogLevelParams defines parameters for the setLogLevel request
type SetLogLevelParams struct {
	Level LogLevel `json:"level"`
}

// SetLogLevelResult is the response for setLogLevel
type SetLogLevelResult struct {
	Success bool `json:"success"`
}

// LogParams defines parameters for the log notification
type LogParams struct {
	Level   LogLevel    `json:"level"`
	Message string      `json:"message"`
	Source  string      `json:"source,omitempty"`
	Time    time.Time   `json:"time,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// PaginationParams is embedded by requests that support pagination.
// An empty Cursor requests the first page.
type PaginationParams struct {
	Cursor string `json:"cursor,omitempty"`
}

// PaginationResult is embedded by responses that support pagination.
// NextCursor is present if and only if more items remain.
type PaginationResult struct {
	NextCursor string `json:"nextCursor,omitempty"`
}
