package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcperrors "github.com/mcp-extras/pagination-server/pkg/errors"
)

func newTestMetrics(t *testing.T) *Metrics {
	t.Helper()
	m, err := NewMetrics(MetricsConfig{
		ServiceName: "test",
		Registry:    prometheus.NewRegistry(),
	})
	require.NoError(t, err)
	return m
}

func TestRecordRequestStatusLabels(t *testing.T) {
	m := newTestMetrics(t)

	m.RecordRequest("listTools", nil, 5*time.Millisecond)
	m.RecordRequest("listTools", mcperrors.InvalidCursor("x", "corrupt"), time.Millisecond)
	m.RecordRequest("listTools", assert.AnError, time.Millisecond)

	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.requestTotal.WithLabelValues("listTools", "success")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.requestTotal.WithLabelValues("listTools", "InvalidCursor")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.requestTotal.WithLabelValues("listTools", "error")))
}

func TestRecordRequestCountsInvalidCursors(t *testing.T) {
	m := newTestMetrics(t)

	m.RecordRequest("listPrompts", mcperrors.InvalidCursor("zzz", "corrupt"), time.Millisecond)
	m.RecordRequest("listPrompts", mcperrors.UnknownCollection("prompts"), time.Millisecond)

	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.invalidCursors.WithLabelValues("listPrompts")))
}

func TestRecordPage(t *testing.T) {
	m := newTestMetrics(t)

	m.RecordPage("tools", 5)
	m.RecordPage("tools", 5)
	m.RecordPage("tools", 0)

	assert.Equal(t, float64(3),
		testutil.ToFloat64(m.pagesServed.WithLabelValues("tools")))
}

func TestSeparateRegistriesDoNotCollide(t *testing.T) {
	first := newTestMetrics(t)
	second := newTestMetrics(t)

	first.RecordPage("tools", 5)

	assert.Equal(t, float64(0),
		testutil.ToFloat64(second.pagesServed.WithLabelValues("tools")))
}
