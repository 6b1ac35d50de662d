// Package backfill replays stored analysis results into the metrics sinks,
// for instance after a new InfluxDB bucket has been configured.
package backfill

import (
	"context"
	"fmt"
	"math"

	coremetrics "github.com/kilianp07/co2path/core/metrics"
	"github.com/kilianp07/co2path/core/model"
	"github.com/kilianp07/co2path/infra/store"
)

// Backfill reads the records matching q and forwards them to sink grouped by
// run, preserving the stored order. It returns the number of records sent.
func Backfill(ctx context.Context, st store.ResultStore, sink coremetrics.AnalysisSink, q store.Query) (int, error) {
	recs, err := st.Query(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("query store: %w", err)
	}
	sent := 0
	for len(recs) > 0 {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		run := recs[0].RunID
		n := 1
		for n < len(recs) && recs[n].RunID == run {
			n++
		}
		batch := make([]coremetrics.ScenarioRecord, n)
		for i, r := range recs[:n] {
			batch[i] = coremetrics.ScenarioRecord{RunID: r.RunID, Evaluated: Evaluated(r), Time: r.Timestamp}
		}
		if err := sink.RecordScenarios(batch); err != nil {
			return sent, fmt.Errorf("run %s: %w", run, err)
		}
		sent += n
		recs = recs[n:]
	}
	return sent, nil
}

// Evaluated rebuilds the KPI part of an evaluated scenario from a stored
// record. Cash flows and the technical effect are not stored and stay empty.
func Evaluated(r store.Record) model.EvaluatedScenario {
	e := model.EvaluatedScenario{
		Scenario: model.Scenario{
			RenovationID:       r.RenovationID,
			Name:               r.Name,
			Category:           category(r.Category),
			GrossInvestmentCHF: r.GrossInvestmentCHF,
			SubsidyCHF:         r.SubsidyCHF,
			NetInvestmentCHF:   r.NetInvestmentCHF,
			CO2SavingsKg:       r.CO2SavingsKg,
			CO2SavingsPercent:  r.CO2SavingsPercent,
			LifetimeYears:      r.LifetimeYears,
		},
		BuildingID:         r.BuildingID,
		Savings:            model.AnnualSavings{TotalCHF: r.AnnualSavingsCHF},
		AmortizationYears:  math.Inf(1),
		NPVCHF:             r.NPVCHF,
		ROIPercent:         r.ROIPercent,
		LifetimeROIPercent: r.LifetimeROIPercent,
		PriorityScore:      r.PriorityScore,
		Rank:               r.Rank,
	}
	if r.AmortizationYears != nil {
		e.AmortizationYears = *r.AmortizationYears
	}
	return e
}

var categories = []model.Category{
	model.CategoryHeating,
	model.CategoryEnvelope,
	model.CategoryGeneration,
	model.CategoryHotWater,
	model.CategoryCombination,
}

func category(s string) model.Category {
	for _, c := range categories {
		if c.String() == s {
			return c
		}
	}
	return model.Category(-1)
}
