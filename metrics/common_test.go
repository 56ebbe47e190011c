package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func gather(t *testing.T, name string) *dto.MetricFamily {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() == name {
			return family
		}
	}
	require.FailNow(t, "metric not found", name)
	return nil
}

func TestCounter(t *testing.T) {
	counter := NewCounter("test_events", "metrics", "events in test", []string{"kind"})
	counter.WithLabelValues("a").Add(2)
	counter.WithLabelValues("b").Inc()

	family := gather(t, "multiuser_metrics_test_events")
	require.Equal(t, dto.MetricType_COUNTER, family.GetType())
	require.Len(t, family.GetMetric(), 2)
	total := 0.0
	for _, m := range family.GetMetric() {
		total += m.GetCounter().GetValue()
	}
	require.Equal(t, 3.0, total)
}

func TestGauge(t *testing.T) {
	NewGauge("test_level", "metrics", "level in test", []string{}).WithLabelValues().Set(7)

	family := gather(t, "multiuser_metrics_test_level")
	require.Equal(t, dto.MetricType_GAUGE, family.GetType())
	require.Equal(t, 7.0, family.GetMetric()[0].GetGauge().GetValue())
}

func TestHistogram(t *testing.T) {
	hist := NewHistogramWithBuckets("test_sizes", "metrics", "sizes in test", []string{}, []float64{10, 100})
	hist.WithLabelValues().Observe(5)
	hist.WithLabelValues().Observe(50)
	hist.WithLabelValues().Observe(500)

	family := gather(t, "multiuser_metrics_test_sizes")
	h := family.GetMetric()[0].GetHistogram()
	require.EqualValues(t, 3, h.GetSampleCount())
	require.EqualValues(t, 1, h.GetBucket()[0].GetCumulativeCount())
	require.EqualValues(t, 2, h.GetBucket()[1].GetCumulativeCount())
}
