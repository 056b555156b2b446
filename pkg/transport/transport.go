// Package transport carries JSON-RPC messages between the server and its
// peer. The stdio transport is the reference deployment: one JSON message
// per line on stdin/stdout.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	mcperrors "github.com/mcp-extras/pagination-server/pkg/errors"
	"github.com/mcp-extras/pagination-server/pkg/logging"
	"github.com/mcp-extras/pagination-server/pkg/protocol"
)

// RequestHandler handles incoming requests
type RequestHandler func(ctx context.Context, params json.RawMessage) (interface{}, error)

// NotificationHandler handles incoming notifications
type NotificationHandler func(ctx context.Context, params json.RawMessage) error

// ErrorHandler handles transport-level errors
type ErrorHandler func(err error)

// ErrUnsupportedMethod is returned when no handler is registered for a method
var ErrUnsupportedMethod = errors.New("unsupported method")

// Transport defines the interface for JSON-RPC transport mechanisms
type Transport interface {
	// Initialize prepares the transport for use
	Initialize(ctx context.Context) error

	// Start runs the receive loop. It blocks until the context is cancelled,
	// the peer closes the stream, or Stop is called.
	Start(ctx context.Context) error

	// Stop halts the transport and releases its resources
	Stop(ctx context.Context) error

	// SendRequest sends a request and waits for the matching response
	SendRequest(ctx context.Context, method string, params interface{}) (*protocol.Response, error)

	// SendNotification sends a one-way message
	SendNotification(ctx context.Context, method string, params interface{}) error

	// RegisterRequestHandler registers a handler for incoming requests
	RegisterRequestHandler(method string, handler RequestHandler)

	// RegisterNotificationHandler registers a handler for incoming notifications
	RegisterNotificationHandler(method string, handler NotificationHandler)

	// SetErrorHandler sets the handler for transport errors
	SetErrorHandler(handler ErrorHandler)
}

// BaseTransport provides the transport-independent half of a Transport:
// handler registration, request/response correlation and ID generation.
// Concrete transports embed it and add the wire.
type BaseTransport struct {
	sync.RWMutex
	requestHandlers      map[string]RequestHandler
	notificationHandlers map[string]NotificationHandler
	pendingRequests      map[string]chan *protocol.Response
	logger               logging.Logger
}

// NewBaseTransport creates a BaseTransport. A nil logger discards output.
func NewBaseTransport(logger logging.Logger) *BaseTransport {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &BaseTransport{
		requestHandlers:      make(map[string]RequestHandler),
		notificationHandlers: make(map[string]NotificationHandler),
		pendingRequests:      make(map[string]chan *protocol.Response),
		logger:               logger.WithFields(logging.String("component", "transport")),
	}
}

// Logger returns the transport's logger
func (t *BaseTransport) Logger() logging.Logger {
	return t.logger
}

// GenerateID generates a unique request ID
func (t *BaseTransport) GenerateID() string {
	return uuid.NewString()
}

// RegisterRequestHandler registers a handler for incoming requests
func (t *BaseTransport) RegisterRequestHandler(method string, handler RequestHandler) {
	t.Lock()
	defer t.Unlock()
	t.requestHandlers[method] = handler
}

// RegisterNotificationHandler registers a handler for incoming notifications
func (t *BaseTransport) RegisterNotificationHandler(method string, handler NotificationHandler) {
	t.Lock()
	defer t.Unlock()
	t.notificationHandlers[method] = handler
}

// HandleRequest dispatches an incoming request to its handler and builds the
// response. Handler errors become JSON-RPC error objects, preserving the
// structured code when the error is an MCPError; a panic in a handler becomes
// an internal error response rather than killing the receive loop.
func (t *BaseTransport) HandleRequest(ctx context.Context, request *protocol.Request) (resp *protocol.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			t.logger.Error("panic in request handler",
				logging.String("method", request.Method),
				logging.Any("panic", r),
			)
			resp, err = protocol.NewErrorResponse(request.ID, mcperrors.CodeInternalError,
				fmt.Sprintf("Internal error processing %s", request.Method), nil)
		}
	}()

	t.RLock()
	handler, ok := t.requestHandlers[request.Method]
	t.RUnlock()

	if !ok {
		mcpErr := mcperrors.CreateMethodNotFoundError(request.Method, request.ID)
		return mcperrors.ToJSONRPCResponse(mcpErr, request.ID)
	}

	result, handlerErr := handler(ctx, request.Params)
	if handlerErr != nil {
		return mcperrors.ToJSONRPCResponse(handlerErr, request.ID)
	}

	return protocol.NewResponse(request.ID, result)
}

// HandleNotification dispatches an incoming notification to its handler
func (t *BaseTransport) HandleNotification(ctx context.Context, notification *protocol.Notification) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error processing notification %s: %v", notification.Method, r)
		}
	}()

	t.RLock()
	handler, ok := t.notificationHandlers[notification.Method]
	t.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedMethod, notification.Method)
	}

	return handler(ctx, notification.Params)
}

// HandleResponse delivers an incoming response to the request waiting on it
func (t *BaseTransport) HandleResponse(response *protocol.Response) {
	key := fmt.Sprintf("%v", response.ID)

	t.Lock()
	ch, ok := t.pendingRequests[key]
	if ok {
		delete(t.pendingRequests, key)
	}
	t.Unlock()

	if ok {
		ch <- response
	} else {
		t.logger.Warn("response for unknown request", logging.String("id", key))
	}
}

// WaitForResponse blocks until the response with the given ID arrives or the
// context is done
func (t *BaseTransport) WaitForResponse(ctx context.Context, id string) (*protocol.Response, error) {
	ch := make(chan *protocol.Response, 1)

	t.Lock()
	t.pendingRequests[id] = ch
	t.Unlock()

	select {
	case response := <-ch:
		return response, nil
	case <-ctx.Done():
		t.Lock()
		delete(t.pendingRequests, id)
		t.Unlock()
		return nil, ctx.Err()
	}
}

// Cleanup releases pending request channels
func (t *BaseTransport) Cleanup() {
	t.Lock()
	defer t.Unlock()

	for _, ch := range t.pendingRequests {
		close(ch)
	}
	t.pendingRequests = make(map[string]chan *protocol.Response)
}
