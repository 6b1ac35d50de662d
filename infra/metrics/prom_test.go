package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/kilianp07/co2path/core/metrics"
)

func TestPromSink_RecordScenarios(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	rec := sampleRecord(time.Now())
	require.NoError(t, sink.RecordScenarios([]coremetrics.ScenarioRecord{rec}))

	assert.InDelta(t, -17000.5, testutil.ToFloat64(sink.npv.WithLabelValues("B1", "heating_gas_to_hp")), 1e-9)
	assert.InDelta(t, 42.5, testutil.ToFloat64(sink.score.WithLabelValues("B1", "heating_gas_to_hp")), 1e-9)
	assert.Equal(t, 1, testutil.CollectAndCount(sink.co2))
}

func TestPromSink_RunAndPortfolio(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordRun(coremetrics.RunEvent{Advisory: 2, Blocking: 1, Duration: time.Second}))
	require.NoError(t, sink.RecordRun(coremetrics.RunEvent{Advisory: 1}))
	require.NoError(t, sink.RecordPortfolio(coremetrics.PortfolioEvent{TotalT: 99.5, SelectedCHF: 120000}))

	assert.Equal(t, 2.0, testutil.ToFloat64(sink.runs))
	assert.Equal(t, 3.0, testutil.ToFloat64(sink.issues.WithLabelValues("advisory")))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.issues.WithLabelValues("blocking")))
	assert.Equal(t, 99.5, testutil.ToFloat64(sink.emissions))
	assert.Equal(t, 120000.0, testutil.ToFloat64(sink.selected))
}

func TestPromSink_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	second, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, second.RecordRun(coremetrics.RunEvent{}))
	assert.Equal(t, 1.0, testutil.ToFloat64(first.runs))
}
