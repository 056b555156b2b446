package server

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	mcperrors "github.com/mcp-extras/pagination-server/pkg/errors"
	"github.com/mcp-extras/pagination-server/pkg/logging"
	"github.com/mcp-extras/pagination-server/pkg/observability"
	"github.com/mcp-extras/pagination-server/pkg/protocol"
	"github.com/mcp-extras/pagination-server/pkg/transport"
)

// Server exposes paginated collections over a JSON-RPC transport
type Server struct {
	transport    transport.Transport
	name         string
	version      string
	description  string
	capabilities map[string]bool

	toolsProvider     ToolsProvider
	resourcesProvider ResourcesProvider
	promptsProvider   PromptsProvider

	initialized     bool
	initializedLock sync.RWMutex
	clientInfo      *protocol.ClientInfo

	logger  logging.Logger
	metrics *observability.Metrics
	tracing *observability.TracingProvider
}

// ServerOption defines options for creating a server
type ServerOption func(*Server)

// WithName sets the server name
func WithName(name string) ServerOption {
	return func(s *Server) {
		s.name = name
	}
}

// WithVersion sets the server version
func WithVersion(version string) ServerOption {
	return func(s *Server) {
		s.version = version
	}
}

// WithDescription sets the server description
func WithDescription(description string) ServerOption {
	return func(s *Server) {
		s.description = description
	}
}

// WithCapability enables or disables a server capability
func WithCapability(capability protocol.CapabilityType, enabled bool) ServerOption {
	return func(s *Server) {
		s.capabilities[string(capability)] = enabled
	}
}

// WithToolsProvider sets the tools provider and enables the tools capability
func WithToolsProvider(provider ToolsProvider) ServerOption {
	return func(s *Server) {
		s.toolsProvider = provider
		s.capabilities[string(protocol.CapabilityTools)] = true
	}
}

// WithResourcesProvider sets the resources provider and enables the
// resources capability
func WithResourcesProvider(provider ResourcesProvider) ServerOption {
	return func(s *Server) {
		s.resourcesProvider = provider
		s.capabilities[string(protocol.CapabilityResources)] = true
	}
}

// WithPromptsProvider sets the prompts provider and enables the prompts
// capability
func WithPromptsProvider(provider PromptsProvider) ServerOption {
	return func(s *Server) {
		s.promptsProvider = provider
		s.capabilities[string(protocol.CapabilityPrompts)] = true
	}
}

// WithLogger sets the structured logger
func WithLogger(logger logging.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics attaches Prometheus metrics to request handling
func WithMetrics(metrics *observability.Metrics) ServerOption {
	return func(s *Server) {
		s.metrics = metrics
	}
}

// WithTracing attaches OpenTelemetry tracing to request handling
func WithTracing(tracing *observability.TracingProvider) ServerOption {
	return func(s *Server) {
		s.tracing = tracing
	}
}

// New creates a server over a transport and registers its handlers. Only
// methods for configured capabilities are registered, so a client calling
// an absent capability gets a method-not-found error.
func New(t transport.Transport, options ...ServerOption) *Server {
	server := &Server{
		transport:    t,
		name:         "pagination-server",
		version:      "1.0.0",
		capabilities: make(map[string]bool),
		logger:       logging.NewNop(),
	}
	server.capabilities[string(protocol.CapabilityPagination)] = true
	server.capabilities[string(protocol.CapabilityLogging)] = true

	for _, option := range options {
		option(server)
	}

	server.logger = server.logger.WithFields(logging.String("component", "server"))

	server.register(protocol.MethodInitialize, server.handleInitialize)
	t.RegisterNotificationHandler(protocol.MethodInitialized, server.handleInitialized)
	server.register(protocol.MethodPing, server.handlePing)
	server.register(protocol.MethodSetLogLevel, server.handleSetLogLevel)

	if server.capabilities[string(protocol.CapabilityTools)] {
		server.register(protocol.MethodListTools, server.handleListTools)
		server.register(protocol.MethodCallTool, server.handleCallTool)
	}

	if server.capabilities[string(protocol.CapabilityResources)] {
		server.register(protocol.MethodListResources, server.handleListResources)
		server.register(protocol.MethodReadResource, server.handleReadResource)
	}

	if server.capabilities[string(protocol.CapabilityPrompts)] {
		server.register(protocol.MethodListPrompts, server.handleListPrompts)
		server.register(protocol.MethodGetPrompt, server.handleGetPrompt)
	}

	return server
}

// register wires a handler through the observability instrumentation
func (s *Server) register(method string, handler transport.RequestHandler) {
	s.transport.RegisterRequestHandler(method, s.instrument(method, handler))
}

// instrument wraps a handler with metrics and tracing
func (s *Server) instrument(method string, handler transport.RequestHandler) transport.RequestHandler {
	if s.metrics == nil && s.tracing == nil {
		return handler
	}

	return func(ctx context.Context, params json.RawMessage) (interface{}, error) {
		start := time.Now()

		if s.tracing != nil {
			spanCtx, span := s.tracing.StartMethodSpan(ctx, method)
			ctx = spanCtx
			defer span.End()
		}

		result, err := handler(ctx, params)

		if err != nil && s.tracing != nil {
			s.tracing.RecordError(ctx, err)
		}
		if s.metrics != nil {
			s.metrics.RecordRequest(method, err, time.Since(start))
		}

		return result, err
	}
}

// Start initializes the transport and runs it until the context ends
func (s *Server) Start(ctx context.Context) error {
	if err := s.transport.Initialize(ctx); err != nil {
		return mcperrors.TransportError("server", "initialization", err).
			WithContext(&mcperrors.Context{
				Component: "Server",
				Operation: "Start",
				Timestamp: time.Now(),
			})
	}

	s.logger.Info("server starting",
		logging.String("name", s.name),
		logging.String("version", s.version),
		logging.Any("capabilities", s.capabilities),
	)

	return s.transport.Start(ctx)
}

// Stop gracefully shuts down the server
func (s *Server) Stop() error {
	return s.transport.Stop(context.Background())
}

// SendLog forwards a log message to the client as a log notification
func (s *Server) SendLog(level protocol.LogLevel, message, source string) error {
	if err := s.requireInitialized("SendLog"); err != nil {
		return err
	}

	params := &protocol.LogParams{
		Level:   level,
		Message: message,
		Source:  source,
		Time:    time.Now(),
	}

	return s.transport.SendNotification(context.Background(), protocol.MethodLog, params)
}

func (s *Server) isInitialized() bool {
	s.initializedLock.RLock()
	defer s.initializedLock.RUnlock()
	return s.initialized
}

// createRequestContext creates error context for request handling
func (s *Server) createRequestContext(method string) *mcperrors.Context {
	return &mcperrors.Context{
		Method:    method,
		Component: "Server",
		Operation: method,
		Timestamp: time.Now(),
	}
}

// validateParams parses request parameters into target with structured
// errors. Absent params are allowed when the target has no required fields;
// list and get methods all tolerate empty params.
func (s *Server) validateParams(params json.RawMessage, target interface{}, method string) error {
	if len(params) == 0 {
		return nil
	}

	if err := json.Unmarshal(params, target); err != nil {
		return mcperrors.InvalidParameter("params", string(params), fmt.Sprintf("%T", target)).
			WithContext(s.createRequestContext(method)).
			WithDetail(err.Error())
	}

	return nil
}

// requireInitialized checks if server is initialized and returns structured error
func (s *Server) requireInitialized(operation string) error {
	if !s.isInitialized() {
		return mcperrors.ServerNotReady("awaiting initialize").
			WithContext(&mcperrors.Context{
				Component: "Server",
				Operation: operation,
				Timestamp: time.Now(),
			})
	}
	return nil
}

// requireProvider checks if a provider is configured and returns structured error
func (s *Server) requireProvider(providerType string, provider interface{}, method string) error {
	if provider == nil {
		return mcperrors.ProviderNotConfigured(providerType, method).
			WithContext(s.createRequestContext(method))
	}
	return nil
}

// providerFailure passes structured errors through unchanged so their codes
// reach the wire, and wraps everything else as a provider error. Flattening
// an invalid-cursor error into a generic provider error would strip the code
// the caller needs to recover.
func (s *Server) providerFailure(providerType, operation string, err error) error {
	if mcpErr, ok := mcperrors.AsMCPError(err); ok {
		return mcpErr
	}
	return mcperrors.ProviderError(providerType, operation, err)
}

// Request handlers

func (s *Server) handleInitialize(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var initParams protocol.InitializeParams
	if err := s.validateParams(params, &initParams, protocol.MethodInitialize); err != nil {
		return nil, err
	}

	s.logger.Info("initializing connection",
		logging.String("client", initParams.Name),
		logging.String("client_version", initParams.Version),
	)

	s.initializedLock.Lock()
	s.clientInfo = initParams.ClientInfo
	s.initialized = true
	s.initializedLock.Unlock()

	return &protocol.InitializeResult{
		ProtocolVersion: protocol.ProtocolRevision,
		Name:            s.name,
		Version:         s.version,
		Capabilities:    s.capabilities,
		ServerInfo: &protocol.ServerInfo{
			Name:        s.name,
			Version:     s.version,
			Description: s.description,
		},
	}, nil
}

func (s *Server) handleInitialized(ctx context.Context, params json.RawMessage) error {
	s.initializedLock.Lock()
	s.initialized = true
	s.initializedLock.Unlock()

	s.logger.Info("connection initialized")
	return nil
}

func (s *Server) handlePing(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var pingParams protocol.PingParams
	if err := s.validateParams(params, &pingParams, protocol.MethodPing); err != nil {
		return nil, err
	}

	timestamp := pingParams.Timestamp
	if timestamp == 0 {
		timestamp = time.Now().UnixMilli()
	}

	return &protocol.PingResult{Timestamp: timestamp}, nil
}

func (s *Server) handleSetLogLevel(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var logParams protocol.SetLogLevelParams
	if err := s.validateParams(params, &logParams, protocol.MethodSetLogLevel); err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(string(logParams.Level))
	if err != nil {
		return nil, mcperrors.InvalidParameter("level", string(logParams.Level), "a log level name").
			WithContext(s.createRequestContext(protocol.MethodSetLogLevel))
	}

	s.logger.SetLevel(level)
	s.logger.Info("log level changed", logging.String("level", level.String()))

	return &protocol.SetLogLevelResult{Success: true}, nil
}

func (s *Server) handleListTools(ctx context.Context, params json.RawMessage) (interface{}, error) {
	if err := s.requireProvider("tools", s.toolsProvider, protocol.MethodListTools); err != nil {
		return nil, err
	}

	var listParams protocol.ListToolsParams
	if err := s.validateParams(params, &listParams, protocol.MethodListTools); err != nil {
		return nil, err
	}

	tools, nextCursor, err := s.toolsProvider.ListTools(ctx, listParams.Cursor)
	if err != nil {
		return nil, s.providerFailure("tools", "ListTools", err)
	}

	s.recordPage("tools", len(tools))

	return &protocol.ListToolsResult{
		Tools:            tools,
		PaginationResult: protocol.PaginationResult{NextCursor: nextCursor},
	}, nil
}

func (s *Server) handleCallTool(ctx context.Context, params json.RawMessage) (interface{}, error) {
	if err := s.requireProvider("tools", s.toolsProvider, protocol.MethodCallTool); err != nil {
		return nil, err
	}

	var callParams protocol.CallToolParams
	if err := s.validateParams(params, &callParams, protocol.MethodCallTool); err != nil {
		return nil, err
	}
	if callParams.Name == "" {
		return nil, mcperrors.MissingParameter("name").
			WithContext(s.createRequestContext(protocol.MethodCallTool))
	}

	result, err := s.toolsProvider.CallTool(ctx, callParams.Name, callParams.Arguments)
	if err != nil {
		return nil, s.providerFailure("tools", "CallTool", err)
	}

	return result, nil
}

func (s *Server) handleListResources(ctx context.Context, params json.RawMessage) (interface{}, error) {
	if err := s.requireProvider("resources", s.resourcesProvider, protocol.MethodListResources); err != nil {
		return nil, err
	}

	var listParams protocol.ListResourcesParams
	if err := s.validateParams(params, &listParams, protocol.MethodListResources); err != nil {
		return nil, err
	}

	resources, nextCursor, err := s.resourcesProvider.ListResources(ctx, listParams.Cursor)
	if err != nil {
		return nil, s.providerFailure("resources", "ListResources", err)
	}

	s.recordPage("resources", len(resources))

	return &protocol.ListResourcesResult{
		Resources:        resources,
		PaginationResult: protocol.PaginationResult{NextCursor: nextCursor},
	}, nil
}

func (s *Server) handleReadResource(ctx context.Context, params json.RawMessage) (interface{}, error) {
	if err := s.requireProvider("resources", s.resourcesProvider, protocol.MethodReadResource); err != nil {
		return nil, err
	}

	var readParams protocol.ReadResourceParams
	if err := s.validateParams(params, &readParams, protocol.MethodReadResource); err != nil {
		return nil, err
	}
	if readParams.URI == "" {
		return nil, mcperrors.MissingParameter("uri").
			WithContext(s.createRequestContext(protocol.MethodReadResource))
	}

	result, err := s.resourcesProvider.ReadResource(ctx, readParams.URI)
	if err != nil {
		return nil, s.providerFailure("resources", "ReadResource", err)
	}

	return result, nil
}

func (s *Server) handleListPrompts(ctx context.Context, params json.RawMessage) (interface{}, error) {
	if err := s.requireProvider("prompts", s.promptsProvider, protocol.MethodListPrompts); err != nil {
		return nil, err
	}

	var listParams protocol.ListPromptsParams
	if err := s.validateParams(params, &listParams, protocol.MethodListPrompts); err != nil {
		return nil, err
	}

	prompts, nextCursor, err := s.promptsProvider.ListPrompts(ctx, listParams.Cursor)
	if err != nil {
		return nil, s.providerFailure("prompts", "ListPrompts", err)
	}

	s.recordPage("prompts", len(prompts))

	return &protocol.ListPromptsResult{
		Prompts:          prompts,
		PaginationResult: protocol.PaginationResult{NextCursor: nextCursor},
	}, nil
}

func (s *Server) handleGetPrompt(ctx context.Context, params json.RawMessage) (interface{}, error) {
	if err := s.requireProvider("prompts", s.promptsProvider, protocol.MethodGetPrompt); err != nil {
		return nil, err
	}

	var getParams protocol.GetPromptParams
	if err := s.validateParams(params, &getParams, protocol.MethodGetPrompt); err != nil {
		return nil, err
	}
	if getParams.Name == "" {
		return nil, mcperrors.MissingParameter("name").
			WithContext(s.createRequestContext(protocol.MethodGetPrompt))
	}

	result, err := s.promptsProvider.GetPrompt(ctx, getParams.Name, getParams.Arguments)
	if err != nil {
		return nil, s.providerFailure("prompts", "GetPrompt", err)
	}

	return result, nil
}

// recordPage forwards page sizes to the metrics collector if one is attached
func (s *Server) recordPage(collection string, items int) {
	if s.metrics != nil {
		s.metrics.RecordPage(collection, items)
	}
}
