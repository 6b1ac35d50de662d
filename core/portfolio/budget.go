package portfolio

import (
	"cmp"
	"math"
	"slices"

	"github.com/kilianp07/co2path/core/model"
)

// Selection is the outcome of a greedy budget allocation.
type Selection struct {
	BudgetCHF          float64
	Selected           []model.EvaluatedScenario
	TotalInvestmentCHF float64
	RemainingCHF       float64
	CO2ReductionT      float64 // per year
	UtilizationPct     float64 // zero for an unlimited budget
}

// SelectWithinBudget walks all options in descending priority score and takes
// every option whose net investment fits the budget still remaining at that
// point. An option that does not fit is skipped and cheaper options further
// down are still considered. A budget of zero only admits zero-cost options;
// pass math.Inf(1) for no limit.
func SelectWithinBudget(options []model.EvaluatedScenario, budget float64) Selection {
	sorted := slices.Clone(options)
	slices.SortStableFunc(sorted, func(a, b model.EvaluatedScenario) int {
		return cmp.Compare(b.PriorityScore, a.PriorityScore)
	})

	sel := Selection{BudgetCHF: budget, RemainingCHF: budget}
	for _, o := range sorted {
		if o.NetInvestmentCHF > sel.RemainingCHF {
			continue
		}
		sel.Selected = append(sel.Selected, o)
		sel.RemainingCHF -= o.NetInvestmentCHF
		sel.TotalInvestmentCHF += o.NetInvestmentCHF
		sel.CO2ReductionT += o.CO2SavingsKg / 1000
	}
	if !math.IsInf(budget, 1) {
		sel.UtilizationPct = sel.TotalInvestmentCHF / budget * 100
	}
	return sel
}
