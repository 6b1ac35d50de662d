package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

type captureSink struct {
	mu        sync.Mutex
	scenarios []coremetrics.ScenarioRecord
	runs      []coremetrics.RunEvent
	portfolio []coremetrics.PortfolioEvent
}

func (c *captureSink) RecordScenarios(recs []coremetrics.ScenarioRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scenarios = append(c.scenarios, recs...)
	return nil
}

func (c *captureSink) RecordRun(ev coremetrics.RunEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runs = append(c.runs, ev)
	return nil
}

func (c *captureSink) RecordPortfolio(ev coremetrics.PortfolioEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.portfolio = append(c.portfolio, ev)
	return nil
}

type captureLogger struct {
	logger.NopLogger
	mu    sync.Mutex
	warns []string
	errs  []string
}

func (l *captureLogger) Warnf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
}

func (l *captureLogger) Errorf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errs = append(l.errs, fmt.Sprintf(format, args...))
}

func buildings() []model.Building {
	return []model.Building{
		{ID: "B1", Year: 2023, Heating: model.HeatingGas, HeatingKWh: 20000, ElectricityKWh: 5000, FloorAreaM2: 200},
		{ID: "B1", Year: 2024, Heating: model.HeatingGas, HeatingKWh: 18000, ElectricityKWh: 5000, FloorAreaM2: 200},
		{ID: "B2", Year: 2024, Heating: model.HeatingHeatPump, HeatingKWh: 8000, ElectricityKWh: 3000},
		{ID: "B3", Year: 2024, Heating: model.HeatingOil, HeatingKWh: 30000, ElectricityKWh: 6000, FloorAreaM2: 300},
	}
}

func newService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	cfg := config.Default()
	cfg.SetDefaults()
	base := []Option{
		WithLogger(logger.NopLogger{}),
		WithClock(func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }),
	}
	svc, err := New(&cfg, append(base, opts...)...)
	require.NoError(t, err)
	return svc
}

func TestAnalyze(t *testing.T) {
	sink := &captureSink{}
	st, err := store.NewJSONLStore(filepath.Join(t.TempDir(), "results.jsonl"))
	require.NoError(t, err)
	svc := newService(t, WithSink(sink), WithStore(st))
	defer func() { _ = svc.Close() }()

	rep, err := svc.Analyze(context.Background(), buildings(), Options{BudgetCHF: 100000, PlanYears: 3, BudgetPerYearCHF: 60000})
	require.NoError(t, err)

	assert.NotEmpty(t, rep.RunID)
	assert.Empty(t, rep.Issues)
	assert.Len(t, rep.Records, 4)
	assert.Len(t, rep.Yearly, 4)
	require.Len(t, rep.Latest, 3)

	// B1 and B3: six measures and two combinations each; B2: PV and solar thermal.
	require.Len(t, rep.Scenarios, 18)
	for i, e := range rep.Scenarios {
		assert.Equal(t, i+1, e.Rank)
		if i > 0 {
			assert.GreaterOrEqual(t, rep.Scenarios[i-1].PriorityScore, e.PriorityScore)
		}
	}

	assert.Equal(t, 3, rep.Stats.Buildings)
	assert.LessOrEqual(t, rep.Selection.TotalInvestmentCHF, 100000.0)
	require.NotNil(t, rep.Plan)
	assert.LessOrEqual(t, len(rep.Plan.YearPlans), 3)
	assert.Len(t, rep.HeatPump.Measures, 2)

	assert.Len(t, sink.scenarios, 18)
	require.Len(t, sink.runs, 1)
	assert.Equal(t, 18, sink.runs[0].Scenarios)
	require.Len(t, sink.portfolio, 1)
	assert.InDelta(t, rep.Stats.TotalT, sink.portfolio[0].TotalT, 1e-9)

	stored, err := st.Query(context.Background(), store.Query{RunID: rep.RunID})
	require.NoError(t, err)
	assert.Len(t, stored, 18)
}

func TestAnalyzeUnsetBudgetIsUnlimited(t *testing.T) {
	svc := newService(t)
	defer func() { _ = svc.Close() }()

	rep, err := svc.Analyze(context.Background(), buildings(), Options{})
	require.NoError(t, err)
	assert.True(t, math.IsInf(rep.Selection.BudgetCHF, 1))
	assert.Len(t, rep.Selection.Selected, len(rep.Scenarios))
}

func TestAnalyze_DeterministicAcrossParallelism(t *testing.T) {
	ids := func(list []model.EvaluatedScenario) []string {
		out := make([]string, len(list))
		for i, e := range list {
			out[i] = e.BuildingID + "/" + e.RenovationID
		}
		return out
	}
	serial, err := newService(t, WithParallelism(1)).Analyze(context.Background(), buildings(), Options{Criterion: ranking.ByCO2})
	require.NoError(t, err)
	parallel, err := newService(t, WithParallelism(8)).Analyze(context.Background(), buildings(), Options{Criterion: ranking.ByCO2})
	require.NoError(t, err)
	assert.Equal(t, ids(serial.Scenarios), ids(parallel.Scenarios))
}

func TestAnalyze_BlockingIssues(t *testing.T) {
	log := &captureLogger{}
	sink := &captureSink{}
	svc := newService(t, WithLogger(log), WithSink(sink))
	in := buildings()
	in[2].HeatingKWh = -1

	rep, err := svc.Analyze(context.Background(), in, Options{})
	require.ErrorIs(t, err, ErrBlockingIssues)
	assert.True(t, emissions.HasBlocking(rep.Issues))
	assert.Empty(t, rep.Scenarios)
	assert.NotEmpty(t, log.errs)
	assert.Empty(t, sink.scenarios)
}

func TestAnalyze_AdvisoryIssuesAreLogged(t *testing.T) {
	log := &captureLogger{}
	svc := newService(t, WithLogger(log))
	in := buildings()
	in[2].Heating = model.HeatingUnknown
	in[2].HeatingLabel = "Coal"

	rep, err := svc.Analyze(context.Background(), in, Options{})
	require.NoError(t, err)
	require.Len(t, rep.Issues, 1)
	assert.Equal(t, emissions.SeverityAdvisory, rep.Issues[0].Severity)
	require.Len(t, log.warns, 1)
	assert.Contains(t, log.warns[0], "Coal")
}

func TestAnalyze_UnknownCriterion(t *testing.T) {
	_, err := newService(t).Analyze(context.Background(), buildings(), Options{Criterion: "colour"})
	assert.True(t, errors.Is(err, ranking.ErrUnknownCriterion))
}

func TestAnalyze_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newService(t).Analyze(ctx, buildings(), Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScenarioAndSensitivity(t *testing.T) {
	svc := newService(t)
	b := buildings()[1]

	sc, err := svc.Scenario(b, model.RenovationHeatPumpPV)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryCombination, sc.Category)

	rows, err := svc.Sensitivity(sc, b, finance.ParamEnergyPrice, nil)
	require.NoError(t, err)
	assert.Len(t, rows, len(finance.DefaultMultipliers()))

	co2 := svc.CO2Prices(sc, b)
	assert.Len(t, co2, len(finance.DefaultCO2Prices()))

	_, err = svc.Scenario(buildings()[2], model.RenovationHeatingGasToHP)
	assert.ErrorIs(t, err, catalog.ErrNotApplicable)
	_, err = svc.Scenario(buildings()[2], model.RenovationFacade)
	var missing *catalog.MissingAttributeError
	assert.ErrorAs(t, err, &missing)
	_, err = svc.Scenario(b, "geothermal")
	assert.ErrorIs(t, err, catalog.ErrUnknownRenovation)
}
