package metrics_test

import (
	"testing"

	"hubflow/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCountersAreRegisteredAndCount(t *testing.T) {
	before := testutil.ToFloat64(metrics.DistrictFallbacksTotal.WithLabelValues("buyer"))

	metrics.DistrictFallbacksTotal.WithLabelValues("buyer").Inc()

	assert.InDelta(t, before+1, testutil.ToFloat64(metrics.DistrictFallbacksTotal.WithLabelValues("buyer")), 0.0001)
	assert.Positive(t, testutil.CollectAndCount(metrics.DistrictFallbacksTotal))
}
