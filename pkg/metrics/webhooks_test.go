package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, vec *prometheus.CounterVec, label string) float64 {
	t.Helper()
	m := &dto.Metric{}
	c, err := vec.GetMetricWithLabelValues(label)
	if err != nil {
		t.Fatalf("get metric: %v", err)
	}
	if err := c.Write(m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestWebhookMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWebhookMetrics(reg)

	m.IncReceived("payment_intent.succeeded")
	m.IncReceived("payment_intent.succeeded")
	m.IncFailed("payment_intent.succeeded")
	m.ObserveDuration("payment_intent.succeeded", 25*time.Millisecond)

	if got := counterValue(t, m.received, "payment_intent.succeeded"); got != 2 {
		t.Fatalf("received = %v, want 2", got)
	}
	if got := counterValue(t, m.failed, "payment_intent.succeeded"); got != 1 {
		t.Fatalf("failed = %v, want 1", got)
	}
}

func TestWebhookMetricsNilSafe(t *testing.T) {
	var m *WebhookMetrics
	m.IncReceived("x")
	m.IncFailed("x")
	m.ObserveDuration("x", time.Second)

	empty := NewWebhookMetrics(nil)
	empty.IncReceived("")
}
