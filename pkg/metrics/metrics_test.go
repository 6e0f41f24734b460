package metrics_test

import (
	"testing"

	"domainguard/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestPromSink_CounterAccumulates(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink := metrics.NewPromSink(reg)

	sink.Record("scans_completed", map[string]string{"status": "COMPLETED"}, 1)
	sink.Record("scans_completed", map[string]string{"status": "COMPLETED"}, 1)
	sink.Record("scans_completed", map[string]string{"status": "FAILED"}, 1)

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	require.Equal(t, "scans_completed", families[0].GetName())
	require.Len(t, families[0].GetMetric(), 2)
}

func TestPromSink_SecondsSuffixBecomesHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink := metrics.NewPromSink(reg)

	sink.Record("scan_duration_seconds", map[string]string{"type": "full"}, 1.5)
	sink.Record("scan_duration_seconds", map[string]string{"type": "full"}, 0.2)

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	require.Equal(t, dto.MetricType_HISTOGRAM, families[0].GetType())
	require.Equal(t, uint64(2), families[0].GetMetric()[0].GetHistogram().GetSampleCount())
}

func TestNopSink_Discards(t *testing.T) {
	var sink metrics.Sink = metrics.NopSink{}
	sink.Record("anything", nil, 42)
}
