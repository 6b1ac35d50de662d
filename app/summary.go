package app

import (
	"math"

	"github.com/kilianp07/co2path/core/benchmark"
	"github.com/kilianp07/co2path/core/emissions"
	"github.com/kilianp07/co2path/core/portfolio"
	"github.com/kilianp07/co2path/pkg/export"
)

// PortfolioSummary is the exported portfolio view of a report.
type PortfolioSummary struct {
	RunID       string              `json:"run_id" yaml:"run_id"`
	Buildings   int                 `json:"buildings" yaml:"buildings"`
	TotalT      float64             `json:"total_t" yaml:"total_t"`
	MeanT       float64             `json:"mean_t" yaml:"mean_t"`
	StdDevT     float64             `json:"std_dev_t" yaml:"std_dev_t"`
	TotalAreaM2 float64             `json:"total_area_m2,omitempty" yaml:"total_area_m2,omitempty"`
	MeanKgPerM2 float64             `json:"mean_kg_per_m2,omitempty" yaml:"mean_kg_per_m2,omitempty"`
	Heating     map[string]int      `json:"heating_distribution" yaml:"heating_distribution"`
	TopEmitters []EmitterSummary    `json:"top_emitters" yaml:"top_emitters"`
	Priorities  []PrioritySummary   `json:"priorities" yaml:"priorities"`
	Selection   SelectionSummary    `json:"selection" yaml:"selection"`
	Plan        []YearPlanSummary   `json:"plan,omitempty" yaml:"plan,omitempty"`
	HeatPump    HeatPumpSummary     `json:"fossil_to_heat_pump" yaml:"fossil_to_heat_pump"`
	Trajectory  []TrajectorySummary `json:"trajectory" yaml:"trajectory"`
}

type EmitterSummary struct {
	BuildingID string  `json:"building_id" yaml:"building_id"`
	TotalT     float64 `json:"total_t" yaml:"total_t"`
}

type PrioritySummary struct {
	Rank           int     `json:"rank" yaml:"rank"`
	BuildingID     string  `json:"building_id" yaml:"building_id"`
	Heating        string  `json:"heating" yaml:"heating"`
	TotalT         float64 `json:"total_t" yaml:"total_t"`
	KgPerM2        float64 `json:"kg_per_m2,omitempty" yaml:"kg_per_m2,omitempty"`
	PotentialScore float64 `json:"potential_score,omitempty" yaml:"potential_score,omitempty"`
}

type SelectionSummary struct {
	BudgetCHF          *float64          `json:"budget_chf" yaml:"budget_chf"`
	TotalInvestmentCHF float64           `json:"total_investment_chf" yaml:"total_investment_chf"`
	CO2ReductionT      float64           `json:"co2_reduction_t" yaml:"co2_reduction_t"`
	UtilizationPct     float64           `json:"utilization_pct" yaml:"utilization_pct"`
	Measures           []export.Scenario `json:"measures" yaml:"measures"`
}

type YearPlanSummary struct {
	Year               int      `json:"year" yaml:"year"`
	TotalInvestmentCHF float64  `json:"total_investment_chf" yaml:"total_investment_chf"`
	CO2ReductionT      float64  `json:"co2_reduction_t" yaml:"co2_reduction_t"`
	Measures           []string `json:"measures" yaml:"measures"`
}

type HeatPumpSummary struct {
	BeforeT          float64 `json:"before_t" yaml:"before_t"`
	AfterT           float64 `json:"after_t" yaml:"after_t"`
	SavingsPct       float64 `json:"savings_pct" yaml:"savings_pct"`
	NetInvestmentCHF float64 `json:"net_investment_chf" yaml:"net_investment_chf"`
	Buildings        int     `json:"buildings" yaml:"buildings"`
}

type TrajectorySummary struct {
	BuildingID  string  `json:"building_id" yaml:"building_id"`
	Year        int     `json:"year" yaml:"year"`
	TotalT      float64 `json:"total_t" yaml:"total_t"`
	CumulativeT float64 `json:"cumulative_t" yaml:"cumulative_t"`
}

// Summary builds the portfolio view. Buildings are ordered by criterion.
func (r *Report) Summary(criterion portfolio.BuildingCriterion) (PortfolioSummary, error) {
	prio, err := portfolio.PrioritizeBuildings(r.Latest, criterion)
	if err != nil {
		return PortfolioSummary{}, err
	}
	st := r.Stats
	out := PortfolioSummary{
		RunID:     r.RunID,
		Buildings: st.Buildings,
		TotalT:    export.Round(st.TotalT, 3),
		MeanT:     export.Round(st.MeanT, 3),
		StdDevT:   export.Round(st.StdDevT, 3),
		Heating:   st.HeatingDistribution,
	}
	if st.HasArea {
		out.TotalAreaM2 = export.Round(st.TotalAreaM2, 1)
		out.MeanKgPerM2 = export.Round(st.MeanKgPerM2, 2)
	}
	for _, e := range st.TopEmitters {
		out.TopEmitters = append(out.TopEmitters, EmitterSummary{BuildingID: e.BuildingID, TotalT: export.Round(e.TotalT, 3)})
	}
	for _, p := range prio {
		out.Priorities = append(out.Priorities, PrioritySummary{
			Rank:           p.Rank,
			BuildingID:     p.Building.ID,
			Heating:        p.Building.HeatingName(),
			TotalT:         export.Round(p.TotalT, 3),
			KgPerM2:        export.Round(p.KgPerM2, 2),
			PotentialScore: export.Round(p.PotentialScore, 1),
		})
	}
	out.Selection = selectionSummary(r.Selection, len(r.Scenarios))
	if r.Plan != nil {
		for _, yp := range r.Plan.YearPlans {
			y := YearPlanSummary{
				Year:               yp.Year,
				TotalInvestmentCHF: export.Round(yp.TotalInvestmentCHF, 2),
				CO2ReductionT:      export.Round(yp.CO2ReductionT, 3),
			}
			for _, s := range yp.Selected {
				y.Measures = append(y.Measures, s.BuildingID+"/"+s.RenovationID)
			}
			out.Plan = append(out.Plan, y)
		}
	}
	out.HeatPump = HeatPumpSummary{
		BeforeT:          export.Round(r.HeatPump.BeforeT, 3),
		AfterT:           export.Round(r.HeatPump.AfterT, 3),
		SavingsPct:       export.Round(r.HeatPump.SavingsPct, 1),
		NetInvestmentCHF: export.Round(r.HeatPump.NetInvestmentCHF, 2),
		Buildings:        len(r.HeatPump.Measures),
	}
	for _, y := range r.Yearly {
		out.Trajectory = append(out.Trajectory, TrajectorySummary{
			BuildingID:  y.BuildingID,
			Year:        y.Year,
			TotalT:      export.Round(y.TotalT, 3),
			CumulativeT: export.Round(y.CumulativeT, 3),
		})
	}
	return out, nil
}

func selectionSummary(sel portfolio.Selection, total int) SelectionSummary {
	out := SelectionSummary{
		TotalInvestmentCHF: export.Round(sel.TotalInvestmentCHF, 2),
		CO2ReductionT:      export.Round(sel.CO2ReductionT, 3),
		UtilizationPct:     export.Round(sel.UtilizationPct, 1),
	}
	if !math.IsInf(sel.BudgetCHF, 1) {
		b := sel.BudgetCHF
		out.BudgetCHF = &b
	}
	for _, e := range sel.Selected {
		out.Measures = append(out.Measures, export.NewScenario(e, total))
	}
	return out
}

// BuildingBenchmark compares one building with standards and climate targets.
type BuildingBenchmark struct {
	BuildingID      string               `json:"building_id" yaml:"building_id"`
	Year            int                  `json:"year" yaml:"year"`
	EmissionsT      float64              `json:"emissions_t" yaml:"emissions_t"`
	HeatKWhM2       *float64             `json:"heat_kwh_m2" yaml:"heat_kwh_m2"`
	CO2KgM2         *float64             `json:"co2_kg_m2" yaml:"co2_kg_m2"`
	EfficiencyClass string               `json:"efficiency_class,omitempty" yaml:"efficiency_class,omitempty"`
	Standards       []ComparisonSummary  `json:"standards,omitempty" yaml:"standards,omitempty"`
	ClimateTargets  []ComparisonSummary  `json:"climate_targets,omitempty" yaml:"climate_targets,omitempty"`
	Potential       *benchmark.Potential `json:"potential,omitempty" yaml:"potential,omitempty"`
}

type ComparisonSummary struct {
	Key     string           `json:"key" yaml:"key"`
	Target  float64          `json:"target" yaml:"target"`
	Actual  float64          `json:"actual" yaml:"actual"`
	DiffPct float64          `json:"diff_pct" yaml:"diff_pct"`
	Status  benchmark.Status `json:"status" yaml:"status"`
}

// Benchmark compares every record with the Swiss standards. standard selects
// the reference of the savings potential.
func (s *Service) Benchmark(records []emissions.Record, standard string) []BuildingBenchmark {
	out := make([]BuildingBenchmark, 0, len(records))
	for _, r := range records {
		bb := BuildingBenchmark{
			BuildingID: r.Building.ID,
			Year:       r.Building.Year,
			EmissionsT: export.Round(r.TotalT, 3),
		}
		if in := benchmark.PerArea(r.Building, r.TotalKg); in != nil {
			heat, co2 := export.Round(in.HeatKWhM2, 1), export.Round(in.CO2KgM2, 2)
			bb.HeatKWhM2, bb.CO2KgM2 = &heat, &co2
			bb.EfficiencyClass = benchmark.EfficiencyClass(in.HeatKWhM2)
		}
		bb.Standards = comparisons(benchmark.CompareStandards(r.Building, r.TotalKg))
		bb.ClimateTargets = comparisons(benchmark.CompareClimateTargets(r.Building, r.TotalKg))
		if p, ok := benchmark.PotentialTo(r.Building, r.TotalKg, standard, s.factors); ok {
			bb.Potential = &p
		}
		out = append(out, bb)
	}
	return out
}

func comparisons(cs []benchmark.Comparison) []ComparisonSummary {
	if cs == nil {
		return nil
	}
	out := make([]ComparisonSummary, len(cs))
	for i, c := range cs {
		out[i] = ComparisonSummary{
			Key:     c.Key,
			Target:  c.Target,
			Actual:  export.Round(c.Actual, 1),
			DiffPct: export.Round(c.DiffPct, 1),
			Status:  c.Status,
		}
	}
	return out
}
