package paginationserver

import (
	"github.com/mcp-extras/pagination-server/pkg/pagination"
	"github.com/mcp-extras/pagination-server/pkg/protocol"
	"github.com/mcp-extras/pagination-server/pkg/server"
	"github.com/mcp-extras/pagination-server/pkg/transport"
)

// Version represents the current version of the module
const Version = "1.0.0"

// These exports provide direct access to the core components
var (
	// NewServer creates a new server
	NewServer = server.New

	// NewStdioTransport creates a new stdio transport
	NewStdioTransport = transport.NewStdioTransport

	// NewStore creates a new collection store
	NewStore = pagination.NewStore

	// NewService creates a new page service
	NewService = pagination.NewService

	// NewOffsetCodec creates the default cursor codec
	NewOffsetCodec = pagination.NewOffsetCodec
)

// Protocol constants for capabilities
const (
	CapabilityTools      = protocol.CapabilityTools
	CapabilityResources  = protocol.CapabilityResources
	CapabilityPrompts    = protocol.CapabilityPrompts
	CapabilityLogging    = protocol.CapabilityLogging
	CapabilityPagination = protocol.CapabilityPagination
)

// Server options
var (
	WithServerName        = server.WithName
	WithServerVersion     = server.WithVersion
	WithServerDescription = server.WithDescription
	WithServerCapability  = server.WithCapability
	WithToolsProvider     = server.WithToolsProvider
	WithResourcesProvider = server.WithResourcesProvider
	WithPromptsProvider   = server.WithPromptsProvider
	WithLogger            = server.WithLogger
	WithMetrics           = server.WithMetrics
	WithTracing           = server.WithTracing
)

// Provider creation
var (
	NewPaginatedToolsProvider     = server.NewPaginatedToolsProvider
	NewPaginatedResourcesProvider = server.NewPaginatedResourcesProvider
	NewPaginatedPromptsProvider   = server.NewPaginatedPromptsProvider
)
