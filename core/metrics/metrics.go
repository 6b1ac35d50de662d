package metrics

import (
	"time"

	"github.com/kilianp07/co2path/core/model"
)

// ScenarioRecord is one evaluated scenario of an analysis run.
type ScenarioRecord struct {
	RunID     string
	Evaluated model.EvaluatedScenario
	Time      time.Time
}

// AnalysisSink records evaluated scenarios for observability purposes.
type AnalysisSink interface {
	RecordScenarios(recs []ScenarioRecord) error
}

// RunEvent summarises a finished analysis run.
type RunEvent struct {
	RunID     string
	Buildings int
	Scenarios int
	Advisory  int
	Blocking  int
	Duration  time.Duration
	Time      time.Time
}

// RunRecorder records run summaries.
type RunRecorder interface {
	RecordRun(ev RunEvent) error
}

// PortfolioEvent carries the portfolio totals of a run.
type PortfolioEvent struct {
	RunID         string
	Buildings     int
	TotalT        float64
	MeanKgPerM2   float64
	SelectedCHF   float64
	CO2ReductionT float64
	Time          time.Time
}

// PortfolioRecorder records portfolio totals.
type PortfolioRecorder interface {
	RecordPortfolio(ev PortfolioEvent) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordScenarios([]ScenarioRecord) error { return nil }
func (NopSink) RecordRun(RunEvent) error               { return nil }
func (NopSink) RecordPortfolio(PortfolioEvent) error   { return nil }
