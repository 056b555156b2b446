package transport

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"golang.org/x/sync/errgroup"

	mcperrors "github.com/mcp-extras/pagination-server/pkg/errors"
	"github.com/mcp-extras/pagination-server/pkg/logging"
	"github.com/mcp-extras/pagination-server/pkg/protocol"
)

// StdioTransport carries newline-delimited JSON-RPC messages over a reader
// and writer pair, stdin/stdout by default. Log output never touches the
// writer; it goes through the structured logger on stderr.
type StdioTransport struct {
	*BaseTransport
	reader       io.Reader
	writer       *bufio.Writer
	errorHandler ErrorHandler
	mutex        sync.RWMutex
	done         chan struct{}
	stopOnce     sync.Once
}

// StdioOption configures a StdioTransport
type StdioOption func(*stdioConfig)

type stdioConfig struct {
	reader io.Reader
	writer io.Writer
	logger logging.Logger
}

// WithReader replaces stdin, mainly for tests
func WithReader(r io.Reader) StdioOption {
	return func(c *stdioConfig) { c.reader = r }
}

// WithWriter replaces stdout, mainly for tests
func WithWriter(w io.Writer) StdioOption {
	return func(c *stdioConfig) { c.writer = w }
}

// WithLogger sets the transport logger
func WithLogger(logger logging.Logger) StdioOption {
	return func(c *stdioConfig) { c.logger = logger }
}

// NewStdioTransport creates a stdio transport over stdin/stdout unless
// options replace them
func NewStdioTransport(opts ...StdioOption) *StdioTransport {
	cfg := &stdioConfig{
		reader: os.Stdin,
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &StdioTransport{
		BaseTransport: NewBaseTransport(cfg.logger),
		reader:        cfg.reader,
		writer:        bufio.NewWriter(cfg.writer),
		done:          make(chan struct{}),
	}
}

// Initialize prepares the transport for use. Stdio needs no setup.
func (t *StdioTransport) Initialize(ctx context.Context) error {
	return nil
}

// Start reads messages line by line and dispatches them. It blocks until the
// context is cancelled, the input stream ends, or Stop is called.
func (t *StdioTransport) Start(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	scanner := bufio.NewScanner(t.reader)
	scannerDone := make(chan struct{})

	g.Go(func() error {
		defer close(scannerDone)

		for scanner.Scan() {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-t.done:
				return nil
			default:
			}

			// Copy the line; the scanner reuses its buffer on the next Scan
			line := scanner.Bytes()
			data := make([]byte, len(line))
			copy(data, line)

			t.processMessage(gctx, data)
		}

		if err := scanner.Err(); err != nil && err != io.EOF {
			return mcperrors.StdioTransportError("read_input", err).
				WithContext(&mcperrors.Context{
					Component: "StdioTransport",
					Operation: "scan_input",
				})
		}
		return nil
	})

	g.Go(func() error {
		select {
		case <-gctx.Done():
			t.closeReader()
			return gctx.Err()
		case <-t.done:
			t.closeReader()
			return nil
		case <-scannerDone:
			return nil
		}
	})

	return g.Wait()
}

// closeReader unblocks scanner.Scan when the reader supports closing
func (t *StdioTransport) closeReader() {
	if closer, ok := t.reader.(io.Closer); ok {
		_ = closer.Close()
	}
}

// Stop halts the transport and flushes buffered output
func (t *StdioTransport) Stop(ctx context.Context) error {
	var flushErr error

	t.stopOnce.Do(func() {
		close(t.done)

		t.mutex.Lock()
		if t.writer != nil {
			flushErr = t.writer.Flush()
		}
		t.errorHandler = nil
		t.mutex.Unlock()

		t.BaseTransport.Cleanup()
	})

	if flushErr != nil {
		return mcperrors.StdioTransportError("stop", flushErr).
			WithContext(&mcperrors.Context{
				Component: "StdioTransport",
				Operation: "flush_on_stop",
			})
	}
	return nil
}

// Send writes one message followed by a newline and flushes
func (t *StdioTransport) Send(data []byte) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.writer == nil {
		return mcperrors.TransportNotInitialized("stdio")
	}

	if _, err := t.writer.Write(data); err != nil {
		return mcperrors.StdioTransportError("send_message", err)
	}
	if err := t.writer.WriteByte('\n'); err != nil {
		return mcperrors.StdioTransportError("send_message", err)
	}
	if err := t.writer.Flush(); err != nil {
		return mcperrors.StdioTransportError("send_message", err)
	}

	return nil
}

// SendRequest sends a request and waits for the matching response. A
// JSON-RPC error in the response is returned as the error.
func (t *StdioTransport) SendRequest(ctx context.Context, method string, params interface{}) (*protocol.Response, error) {
	id := t.GenerateID()

	req, err := protocol.NewRequest(id, method, params)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("error marshalling request: %w", err)
	}

	t.Logger().Debug("sending request",
		logging.String("method", method),
		logging.String("id", id),
	)

	if err := t.Send(data); err != nil {
		return nil, err
	}

	resp, err := t.WaitForResponse(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error waiting for response: %w", err)
	}

	if resp.Error != nil {
		return nil, mcperrors.FromJSONRPCError(resp.Error)
	}

	return resp, nil
}

// SendNotification sends a one-way message
func (t *StdioTransport) SendNotification(ctx context.Context, method string, params interface{}) error {
	notification, err := protocol.NewNotification(method, params)
	if err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}

	data, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("error marshalling notification: %w", err)
	}

	return t.Send(data)
}

// SetErrorHandler sets the handler for transport errors
func (t *StdioTransport) SetErrorHandler(handler ErrorHandler) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.errorHandler = handler
}

// processMessage classifies one incoming line and dispatches it
func (t *StdioTransport) processMessage(ctx context.Context, data []byte) {
	defer func() {
		if r := recover(); r != nil {
			t.Logger().Error("panic processing message",
				logging.Any("panic", r),
				logging.String("stack", string(debug.Stack())),
			)
			t.handleError(fmt.Errorf("panic processing message: %v", r))
		}
	}()

	t.Logger().Debug("received message", logging.Int("bytes", len(data)))

	switch {
	case protocol.IsRequest(data):
		var req protocol.Request
		if err := json.Unmarshal(data, &req); err != nil {
			t.handleError(fmt.Errorf("error unmarshalling request: %w", err))
			return
		}

		resp, err := t.HandleRequest(ctx, &req)
		if err != nil {
			t.handleError(fmt.Errorf("error handling request %v: %w", req.ID, err))
			return
		}
		if resp == nil {
			return
		}

		respData, err := json.Marshal(resp)
		if err != nil {
			t.handleError(fmt.Errorf("error marshalling response for request %v: %w", req.ID, err))
			return
		}
		if err := t.Send(respData); err != nil {
			t.handleError(fmt.Errorf("error sending response for request %v: %w", req.ID, err))
		}

	case protocol.IsResponse(data):
		var resp protocol.Response
		if err := json.Unmarshal(data, &resp); err != nil {
			t.handleError(fmt.Errorf("error unmarshalling response: %w", err))
			return
		}
		t.HandleResponse(&resp)

	case protocol.IsNotification(data):
		var notif protocol.Notification
		if err := json.Unmarshal(data, &notif); err != nil {
			t.handleError(fmt.Errorf("error unmarshalling notification: %w", err))
			return
		}
		if err := t.HandleNotification(ctx, &notif); err != nil {
			// Notifications are fire-and-forget; an unregistered method is
			// not worth surfacing to the error handler
			if errors.Is(err, ErrUnsupportedMethod) {
				t.Logger().Debug("ignoring notification for unregistered method",
					logging.String("method", notif.Method))
			} else {
				t.handleError(fmt.Errorf("error handling notification %s: %w", notif.Method, err))
			}
		}

	default:
		// Malformed or non-JSON input gets a parse error response when it
		// carries no usable ID we could address
		t.handleError(fmt.Errorf("unrecognized message: %s", string(data)))
	}
}

// handleError passes an error to the registered error handler if any
func (t *StdioTransport) handleError(err error) {
	t.mutex.RLock()
	handler := t.errorHandler
	t.mutex.RUnlock()

	if handler != nil {
		handler(err)
	} else {
		t.Logger().Error("transport error", logging.ErrorField(err))
	}
}
