package transport

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcp-extras/pagination-server/pkg/protocol"
)

func TestBaseTransportGenerateIDUnique(t *testing.T) {
	base := NewBaseTransport(nil)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := base.GenerateID()
		assert.NotEmpty(t, id)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestBaseTransportResponseCorrelation(t *testing.T) {
	base := NewBaseTransport(nil)

	resp, err := protocol.NewResponse("abc", map[string]string{"ok": "yes"})
	require.NoError(t, err)

	done := make(chan *protocol.Response, 1)
	go func() {
		got, waitErr := base.WaitForResponse(context.Background(), "abc")
		require.NoError(t, waitErr)
		done <- got
	}()

	// Give the waiter time to register its channel
	time.Sleep(10 * time.Millisecond)
	base.HandleResponse(resp)

	select {
	case got := <-done:
		assert.Equal(t, resp, got)
	case <-time.After(2 * time.Second):
		t.Fatal("WaitForResponse did not return")
	}
}

func TestBaseTransportWaitForResponseContextCancel(t *testing.T) {
	base := NewBaseTransport(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := base.WaitForResponse(ctx, "never")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBaseTransportUnknownNotification(t *testing.T) {
	base := NewBaseTransport(nil)

	notif, err := protocol.NewNotification("nobody/home", nil)
	require.NoError(t, err)

	err = base.HandleNotification(context.Background(), notif)
	assert.ErrorIs(t, err, ErrUnsupportedMethod)
}

func TestBaseTransportHandlerResultMarshalled(t *testing.T) {
	base := NewBaseTransport(nil)
	base.RegisterRequestHandler("ping", func(ctx context.Context, params json.RawMessage) (interface{}, error) {
		return protocol.PingResult{}, nil
	})

	req, err := protocol.NewRequest(1, "ping", nil)
	require.NoError(t, err)

	resp, err := base.HandleRequest(context.Background(), req)
	require.NoError(t, err)
	require.Nil(t, resp.Error)
	assert.JSONEq(t, `{}`, string(resp.Result))
}
