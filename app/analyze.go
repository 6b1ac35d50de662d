package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kilianp07/co2path/core/emissions"
	"github.com/kilianp07/co2path/core/finance"
	coremetrics "github.com/kilianp07/co2path/core/metrics"
	"github.com/kilianp07/co2path/core/model"
	"github.com/kilianp07/co2path/core/portfolio"
	"github.com/kilianp07/co2path/core/ranking"
	"github.com/kilianp07/co2path/infra/store"
	"github.com/kilianp07/co2path/pkg/export"
)

// ErrBlockingIssues is returned when the dataset fails validation.
var ErrBlockingIssues = errors.New("dataset has blocking validation issues")

// Options select the ranking and budget of an analysis.
type Options struct {
	Criterion ranking.Criterion
	// BudgetCHF limits the portfolio selection; zero or less means the flag
	// was not set and the selection is unlimited.
	BudgetCHF float64
	// PlanYears and BudgetPerYearCHF enable the multi-year plan when both are positive.
	PlanYears        int
	BudgetPerYearCHF float64
}

func (o Options) budget() float64 {
	if o.BudgetCHF <= 0 {
		return math.Inf(1)
	}
	return o.BudgetCHF
}

// Report is the outcome of one analysis run.
type Report struct {
	RunID   string
	Issues  []emissions.Issue
	Records []emissions.Record
	Yearly  []emissions.CumulativeTotal
	// Latest holds the rows of the most recent year, the basis of every
	// scenario below.
	Latest    []emissions.Record
	Scenarios []model.EvaluatedScenario
	Stats     portfolio.Stats
	Selection portfolio.Selection
	Plan      *portfolio.Plan
	HeatPump  portfolio.ScenarioResult
}

// Analyze validates the buildings, computes their emissions and evaluates
// every applicable scenario of the most recent year. Scenarios are scored,
// ranked and rolled up into portfolio figures. On blocking validation issues
// the report carries the issues and ErrBlockingIssues is returned.
func (s *Service) Analyze(ctx context.Context, buildings []model.Building, opts Options) (*Report, error) {
	start := s.now()
	rep := &Report{RunID: s.newRunID()}
	if opts.Criterion == "" {
		opts.Criterion = ranking.ByScore
	}

	rep.Issues = emissions.Validate(buildings, s.factors)
	advisory, blocking := s.logIssues(rep.Issues)
	if blocking > 0 {
		return rep, ErrBlockingIssues
	}

	rep.Records = emissions.ComputeAll(buildings, s.factors)
	rep.Yearly = emissions.Cumulative(emissions.AggregateYearly(rep.Records))
	rep.Latest = emissions.Latest(rep.Records)

	evaluated, err := s.evaluate(ctx, rep.Latest)
	if err != nil {
		return rep, err
	}
	scored := ranking.ScoreAll(evaluated, s.weights)
	rep.Scenarios, err = ranking.Rank(scored, opts.Criterion)
	if err != nil {
		return rep, err
	}

	rep.Stats = portfolio.Analyze(rep.Latest)
	rep.Selection = portfolio.SelectWithinBudget(rep.Scenarios, opts.budget())
	if opts.PlanYears > 0 && opts.BudgetPerYearCHF > 0 {
		plan := portfolio.PlanYears(rep.Scenarios, opts.BudgetPerYearCHF, opts.PlanYears)
		rep.Plan = &plan
	}
	rep.HeatPump, err = portfolio.FossilToHeatPump(rep.Latest, s.generator)
	if err != nil {
		return rep, fmt.Errorf("heat pump scenario: %w", err)
	}

	s.log.Infow("analysis finished", map[string]any{
		"run_id":    rep.RunID,
		"buildings": rep.Stats.Buildings,
		"scenarios": len(rep.Scenarios),
		"total_t":   rep.Stats.TotalT,
	})
	s.report(ctx, rep, advisory, blocking, s.now().Sub(start))
	return rep, nil
}

// evaluate runs the catalog and the financial evaluation per building. The
// output keeps the input building order.
func (s *Service) evaluate(ctx context.Context, records []emissions.Record) ([]model.EvaluatedScenario, error) {
	perBuilding := make([][]model.EvaluatedScenario, len(records))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)
	for i, r := range records {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			perBuilding[i] = finance.EvaluateAll(s.generator.All(r.Building), r.Building, s.assumptions)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return slices.Concat(perBuilding...), nil
}

func (s *Service) logIssues(issues []emissions.Issue) (advisory, blocking int) {
	for _, is := range issues {
		if is.Severity == emissions.SeverityBlocking {
			blocking++
			s.log.Errorf("validation %s: %s", is.Field, is.Message)
			continue
		}
		advisory++
		s.log.Warnf("validation %s: %s", is.Field, is.Message)
	}
	return advisory, blocking
}

// report forwards the run to the sinks and the store. Failures are logged;
// they never fail the analysis.
func (s *Service) report(ctx context.Context, rep *Report, advisory, blocking int, took time.Duration) {
	now := s.now()
	recs := make([]coremetrics.ScenarioRecord, len(rep.Scenarios))
	for i, e := range rep.Scenarios {
		recs[i] = coremetrics.ScenarioRecord{RunID: rep.RunID, Evaluated: e, Time: now}
	}
	if err := s.sink.RecordScenarios(recs); err != nil {
		s.log.Errorf("record scenarios: %v", err)
	}
	if r, ok := s.sink.(coremetrics.RunRecorder); ok {
		ev := coremetrics.RunEvent{
			RunID:     rep.RunID,
			Buildings: rep.Stats.Buildings,
			Scenarios: len(rep.Scenarios),
			Advisory:  advisory,
			Blocking:  blocking,
			Duration:  took,
			Time:      now,
		}
		if err := r.RecordRun(ev); err != nil {
			s.log.Errorf("record run: %v", err)
		}
	}
	if r, ok := s.sink.(coremetrics.PortfolioRecorder); ok {
		ev := coremetrics.PortfolioEvent{
			RunID:         rep.RunID,
			Buildings:     rep.Stats.Buildings,
			TotalT:        rep.Stats.TotalT,
			MeanKgPerM2:   rep.Stats.MeanKgPerM2,
			SelectedCHF:   rep.Selection.TotalInvestmentCHF,
			CO2ReductionT: rep.Selection.CO2ReductionT,
			Time:          now,
		}
		if err := r.RecordPortfolio(ev); err != nil {
			s.log.Errorf("record portfolio: %v", err)
		}
	}
	if s.store == nil {
		return
	}
	rows := export.Scenarios(rep.Scenarios)
	stored := make([]store.Record, len(rows))
	for i, row := range rows {
		stored[i] = store.Record{RunID: rep.RunID, Timestamp: now, Scenario: row}
	}
	if err := s.store.Append(ctx, stored...); err != nil {
		s.log.Errorf("store results: %v", err)
	}
}
