package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/co2path/config"
	"github.com/kilianp07/co2path/core/catalog"
	"github.com/kilianp07/co2path/core/emissions"
	"github.com/kilianp07/co2path/core/finance"
	coremetrics "github.com/kilianp07/co2path/core/metrics"
	"github.com/kilianp07/co2path/core/model"
	"github.com/kilianp07/co2path/core/ranking"
	"github.com/kilianp07/co2path/infra/logger"
	"github.com/kilianp07/co2path/infra/store"
)

// Service runs analyses with a fixed set of assumptions and reports the
// results to the configured sinks and store.
type Service struct {
	factors     emissions.FactorTable
	assumptions finance.Assumptions
	generator   *catalog.Generator
	weights     ranking.Weights
	sensitivity config.SensitivityConfig

	sink  coremetrics.AnalysisSink
	store store.ResultStore
	log   logger.Logger

	parallelism int
	now         func() time.Time
	newRunID    func() string
}

// Option customises a Service.
type Option func(*Service)

// WithSink reports results to sink instead of a NopSink.
func WithSink(sink coremetrics.AnalysisSink) Option {
	return func(s *Service) { s.sink = sink }
}

// WithStore persists evaluated scenarios to st.
func WithStore(st store.ResultStore) Option {
	return func(s *Service) { s.store = st }
}

// WithLogger replaces the component logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithParallelism bounds the number of buildings evaluated concurrently.
func WithParallelism(n int) Option {
	return func(s *Service) { s.parallelism = n }
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a Service from the configuration.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	factors, err := cfg.Emissions.Table()
	if err != nil {
		return nil, fmt.Errorf("emission factors: %w", err)
	}
	assumptions, err := cfg.Assumptions.Assumptions()
	if err != nil {
		return nil, fmt.Errorf("assumptions: %w", err)
	}
	s := &Service{
		factors:     factors,
		assumptions: assumptions,
		generator:   catalog.NewGenerator(factors, cfg.Subsidies, cfg.Catalog),
		weights:     cfg.Ranking,
		sensitivity: cfg.Sensitivity,
		sink:        coremetrics.NopSink{},
		log:         logger.New("service"),
		parallelism: 8,
		now:         time.Now,
		newRunID:    uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	if s.parallelism <= 0 {
		s.parallelism = 1
	}
	return s, nil
}

// Assumptions returns the economic assumptions in use.
func (s *Service) Assumptions() finance.Assumptions { return s.assumptions }

// Factors returns the emission factor table in use.
func (s *Service) Factors() emissions.FactorTable { return s.factors }

// Generator returns the catalog generator in use.
func (s *Service) Generator() *catalog.Generator { return s.generator }

// Scenario returns the scenario with the given renovation id for b,
// combinations included.
func (s *Service) Scenario(b model.Building, id string) (model.Scenario, error) {
	for _, sc := range s.generator.All(b) {
		if sc.RenovationID == id {
			return sc, nil
		}
	}
	if id != model.RenovationHeatPumpPV && id != model.RenovationFullRetrofit {
		if _, err := s.generator.Build(id, b); err != nil {
			return model.Scenario{}, err
		}
	}
	return model.Scenario{}, fmt.Errorf("%w: %s for building %s", catalog.ErrNotApplicable, id, b.ID)
}

// Sensitivity sweeps p over multipliers for one scenario. Nil multipliers
// select the configured defaults.
func (s *Service) Sensitivity(sc model.Scenario, b model.Building, p finance.Parameter, multipliers []float64) ([]finance.SensitivityRow, error) {
	if multipliers == nil {
		multipliers = s.sensitivity.Multipliers
	}
	return finance.Sweep(sc, b, s.assumptions, p, multipliers)
}

// CO2Prices evaluates the scenario at the configured CO2 price points.
func (s *Service) CO2Prices(sc model.Scenario, b model.Building) []finance.SensitivityRow {
	return finance.CO2PriceScenarios(sc, b, s.assumptions, s.sensitivity.CO2Prices)
}

// Close releases the store.
func (s *Service) Close() error {
	var errs []error
	if s.store != nil {
		errs = append(errs, s.store.Close())
	}
	if c, ok := s.sink.(interface{ Close() }); ok {
		c.Close()
	}
	return errors.Join(errs...)
}
