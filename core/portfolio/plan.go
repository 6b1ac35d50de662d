package portfolio

import "github.com/kilianp07/co2path/core/model"

// YearPlan is the selection made in one planning year (1-based).
type YearPlan struct {
	Year int
	Selection
}

// Plan is a multi-year renovation schedule.
type Plan struct {
	Years              int
	BudgetPerYearCHF   float64
	YearPlans          []YearPlan
	TotalInvestmentCHF float64
	CO2ReductionT      float64
	Renovated          int
	Remaining          int
}

// PlanYears repeats SelectWithinBudget once per year. A building that receives
// any measure leaves the pool, so later years only consider the others.
// Planning stops early when no option fits or every building is renovated.
func PlanYears(options []model.EvaluatedScenario, budgetPerYear float64, years int) Plan {
	pool := options
	total := countBuildings(options)
	plan := Plan{Years: years}
	for year := 1; year <= years && len(pool) > 0; year++ {
		sel := SelectWithinBudget(pool, budgetPerYear)
		plan.BudgetPerYearCHF = sel.BudgetCHF
		if len(sel.Selected) == 0 {
			break
		}
		done := map[string]struct{}{}
		for _, s := range sel.Selected {
			done[s.BuildingID] = struct{}{}
		}
		var rest []model.EvaluatedScenario
		for _, o := range pool {
			if _, ok := done[o.BuildingID]; !ok {
				rest = append(rest, o)
			}
		}
		pool = rest
		plan.YearPlans = append(plan.YearPlans, YearPlan{Year: year, Selection: sel})
		plan.TotalInvestmentCHF += sel.TotalInvestmentCHF
		plan.CO2ReductionT += sel.CO2ReductionT
	}
	plan.Remaining = countBuildings(pool)
	plan.Renovated = total - plan.Remaining
	return plan
}

func countBuildings(options []model.EvaluatedScenario) int {
	ids := map[string]struct{}{}
	for _, o := range options {
		ids[o.BuildingID] = struct{}{}
	}
	return len(ids)
}
