package server

import (
	"context"
	"errors"
	"time"

	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/instrumentation"
	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/llm"
)

// instrumentedModel wraps the LLM client to record call counts and
// latencies per outcome.
type instrumentedModel struct {
	inner   *llm.Client
	metrics *instrumentation.Metrics
}

// InstrumentModel wraps a model client with metrics recording. With nil
// metrics the client is returned untouched behavior-wise.
func InstrumentModel(client *llm.Client, metrics *instrumentation.Metrics) *instrumentedModel {
	if metrics == nil {
		metrics = &instrumentation.Metrics{}
	}
	return &instrumentedModel{inner: client, metrics: metrics}
}

func (m *instrumentedModel) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	start := time.Now()
	reply, err := m.inner.Complete(ctx, messages)

	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
		var unavailable *llm.ModelUnavailableError
		if errors.As(err, &unavailable) && unavailable.Timeout {
			status = instrumentation.StatusTimeout
		}
	}
	m.metrics.RecordModelCall(ctx, m.inner.Model(), status, time.Since(start))

	return reply, err
}

func (m *instrumentedModel) Model() string {
	return m.inner.Model()
}
