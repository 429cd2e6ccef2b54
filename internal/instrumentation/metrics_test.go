package instrumentation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) map[string]bool {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	seen := make(map[string]bool)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			seen[m.Name] = true
		}
	}
	return seen
}

func TestMetricsRecording(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	m, err := NewMetrics(provider.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordHTTPRequest(ctx, "POST", "/chat", 200, 120*time.Millisecond)
	m.RecordChatRequest(ctx, StatusSuccess)
	m.RecordModelCall(ctx, "mistral", StatusSuccess, 2*time.Second)
	m.RecordToolInvocation(ctx, "get_availability", StatusSuccess, 80*time.Millisecond)
	m.RecordCalendarOperation(ctx, "freebusy", StatusSuccess, 50*time.Millisecond)
	m.RecordOAuthAuth(ctx, OAuthResultSuccess)

	seen := collectMetrics(t, reader)
	assert.True(t, seen["http_requests_total"])
	assert.True(t, seen["http_request_duration_seconds"])
	assert.True(t, seen["chat_requests_total"])
	assert.True(t, seen["model_calls_total"])
	assert.True(t, seen["model_call_duration_seconds"])
	assert.True(t, seen["tool_invocations_total"])
	assert.True(t, seen["tool_duration_seconds"])
	assert.True(t, seen["calendar_operations_total"])
	assert.True(t, seen["calendar_operation_duration_seconds"])
	assert.True(t, seen["oauth_auth_total"])
}

func TestZeroValueMetricsAreNoOps(t *testing.T) {
	m := &Metrics{}
	ctx := context.Background()

	// Must not panic when instrumentation was never initialized.
	m.RecordHTTPRequest(ctx, "POST", "/chat", 500, time.Second)
	m.RecordChatRequest(ctx, StatusError)
	m.RecordModelCall(ctx, "mistral", StatusTimeout, time.Minute)
	m.RecordToolInvocation(ctx, "create_event", StatusError, time.Second)
	m.RecordCalendarOperation(ctx, "insert_event", StatusError, time.Second)
	m.RecordOAuthAuth(ctx, OAuthResultFailure)
}
