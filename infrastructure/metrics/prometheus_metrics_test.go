package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/azrealign/canvass/internal/ports"
)

// testPrometheusMetrics provides a single instance shared across tests
// in this package. Prometheus panics on duplicate metric registration,
// so NewPrometheusMetrics must run exactly once per process.
var testPrometheusMetrics *PrometheusMetrics

func init() {
	testPrometheusMetrics = NewPrometheusMetrics()
}

func TestNewPrometheusMetrics(t *testing.T) {
	pm := testPrometheusMetrics

	assert.NotNil(t, pm, "PrometheusMetrics instance should not be nil")
	assert.NotNil(t, pm.batchesTotal, "batchesTotal should be initialized")
	assert.NotNil(t, pm.operationLatency, "operationLatency should be initialized")
	assert.NotNil(t, pm.systemGauges, "systemGauges should be initialized")

	var _ ports.MetricsCollector = pm
}

func TestPrometheusMetrics_Record(t *testing.T) {
	pm := testPrometheusMetrics

	// These must not panic regardless of label content; values are
	// asserted against the Prometheus registry in integration setups.
	pm.RecordCounter("batches_processed", 1, map[string]string{"source": "a.csv"})
	pm.RecordCounter("batches_skipped", 1, nil)
	pm.RecordCounter("custom_counter", 2, nil)
	pm.RecordLatency("process_batch", 100*time.Millisecond, nil)
	pm.RecordGauge("years_covered", 13, nil)
}
