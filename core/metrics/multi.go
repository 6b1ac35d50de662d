package metrics

import "errors"

// MultiSink fans records out to several sinks. Optional recorders are only
// forwarded to sinks implementing them.
type MultiSink struct {
	Sinks []AnalysisSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...AnalysisSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordScenarios forwards to all sinks and joins their errors.
func (m *MultiSink) RecordScenarios(recs []ScenarioRecord) error {
	var errs []error
	for _, s := range m.Sinks {
		errs = append(errs, s.RecordScenarios(recs))
	}
	return errors.Join(errs...)
}

// RecordRun forwards run summaries.
func (m *MultiSink) RecordRun(ev RunEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if r, ok := s.(RunRecorder); ok {
			errs = append(errs, r.RecordRun(ev))
		}
	}
	return errors.Join(errs...)
}

// RecordPortfolio forwards portfolio totals.
func (m *MultiSink) RecordPortfolio(ev PortfolioEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if r, ok := s.(PortfolioRecorder); ok {
			errs = append(errs, r.RecordPortfolio(ev))
		}
	}
	return errors.Join(errs...)
}
