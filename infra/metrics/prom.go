package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/co2path/core/metrics"
)

// PromSink exposes scenario KPIs and run statistics as Prometheus metrics.
type PromSink struct {
	npv          *prometheus.GaugeVec
	amortization *prometheus.GaugeVec
	co2          *prometheus.GaugeVec
	score        *prometheus.GaugeVec
	runs         prometheus.Counter
	duration     prometheus.Histogram
	issues       *prometheus.CounterVec
	emissions    prometheus.Gauge
	selected     prometheus.Gauge
}

var scenarioLabels = []string{"building_id", "renovation_id"}

// NewPromSink registers the metrics on the default Prometheus registerer.
// The /metrics endpoint is served separately by StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers the metrics on reg. A nil registerer
// defaults to the global one. Metrics already registered by an earlier sink
// are reused.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{}
	var err error
	gauge := func(name, help string) *prometheus.GaugeVec {
		g, e := register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: help}, scenarioLabels))
		err = errors.Join(err, e)
		return g
	}
	s.npv = gauge("co2path_scenario_npv_chf", "Net present value of a renovation scenario")
	s.amortization = gauge("co2path_scenario_amortization_years", "Payback period of a renovation scenario, +Inf if it never pays back")
	s.co2 = gauge("co2path_scenario_co2_savings_kg", "Yearly CO2 savings of a renovation scenario")
	s.score = gauge("co2path_scenario_priority_score", "Composite priority score of a renovation scenario")

	var e error
	s.runs, e = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "co2path_analysis_runs_total",
		Help: "Number of completed analysis runs",
	}))
	err = errors.Join(err, e)
	s.duration, e = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "co2path_analysis_duration_seconds",
		Help:    "Duration of analysis runs",
		Buckets: prometheus.DefBuckets,
	}))
	err = errors.Join(err, e)
	s.issues, e = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "co2path_validation_issues_total",
		Help: "Validation issues found in input datasets",
	}, []string{"severity"}))
	err = errors.Join(err, e)
	s.emissions, e = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "co2path_portfolio_emissions_tonnes",
		Help: "Yearly emissions of the analysed portfolio",
	}))
	err = errors.Join(err, e)
	s.selected, e = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "co2path_portfolio_selected_investment_chf",
		Help: "Net investment of the measures selected within the budget",
	}))
	err = errors.Join(err, e)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordScenarios sets the scenario gauges.
func (s *PromSink) RecordScenarios(recs []coremetrics.ScenarioRecord) error {
	for _, r := range recs {
		e := r.Evaluated
		s.npv.WithLabelValues(e.BuildingID, e.RenovationID).Set(e.NPVCHF)
		s.amortization.WithLabelValues(e.BuildingID, e.RenovationID).Set(e.AmortizationYears)
		s.co2.WithLabelValues(e.BuildingID, e.RenovationID).Set(e.CO2SavingsKg)
		s.score.WithLabelValues(e.BuildingID, e.RenovationID).Set(e.PriorityScore)
	}
	return nil
}

// RecordRun counts the run and its validation issues.
func (s *PromSink) RecordRun(ev coremetrics.RunEvent) error {
	s.runs.Inc()
	s.duration.Observe(ev.Duration.Seconds())
	s.issues.WithLabelValues("advisory").Add(float64(ev.Advisory))
	s.issues.WithLabelValues("blocking").Add(float64(ev.Blocking))
	return nil
}

// RecordPortfolio sets the portfolio gauges.
func (s *PromSink) RecordPortfolio(ev coremetrics.PortfolioEvent) error {
	s.emissions.Set(ev.TotalT)
	s.selected.Set(ev.SelectedCHF)
	return nil
}
