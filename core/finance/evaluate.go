// Package finance evaluates the economics of renovation scenarios:
// annual savings, payback, NPV, ROI, cash flows and sensitivity sweeps.
//
// Every function is pure. Economic parameters travel as explicit
// Assumptions values so concurrent evaluations never share mutable state.
package finance

import "github.com/kilianp07/co2path/core/model"

// CashFlows returns the undiscounted cash-flow table. Year 0 carries the
// negative net investment, years 1..years the escalated savings.
func CashFlows(netInvestment, annualSavings float64, years int, escalationPct float64) []model.CashFlow {
	out := make([]model.CashFlow, 0, max(years, 0)+1)
	cum := -netInvestment
	out = append(out, model.CashFlow{Year: 0, CashFlowCHF: -netInvestment, CumulativeCHF: cum})
	for i, v := range escalated(annualSavings, max(years, 0), escalationPct) {
		cum += v
		out = append(out, model.CashFlow{Year: i + 1, CashFlowCHF: v, CumulativeCHF: cum})
	}
	return out
}

// Evaluate computes every financial KPI of the scenario for building b.
func Evaluate(s model.Scenario, b model.Building, a Assumptions) model.EvaluatedScenario {
	savings := AnnualSavings(s, b, a)
	years := a.horizon(s.LifetimeYears)
	net := s.NetInvestmentCHF
	total := TotalReturn(savings.TotalCHF, years, a.EscalationPct)
	return model.EvaluatedScenario{
		Scenario:           s,
		BuildingID:         b.ID,
		Savings:            savings,
		AmortizationYears:  Amortization(net, savings.TotalCHF),
		NPVCHF:             NPV(net, savings.TotalCHF, years, a.DiscountRatePct, a.EscalationPct),
		HorizonYears:       years,
		DiscountRatePct:    a.DiscountRatePct,
		EscalationPct:      a.EscalationPct,
		ROIPercent:         ROI(net, savings.TotalCHF),
		LifetimeROIPercent: LifetimeROI(net, total),
		TotalReturnCHF:     total,
		NetGainCHF:         total - net,
		CashFlows:          CashFlows(net, savings.TotalCHF, years, a.EscalationPct),
	}
}

// EvaluateAll evaluates each scenario against the same building, preserving
// order.
func EvaluateAll(scenarios []model.Scenario, b model.Building, a Assumptions) []model.EvaluatedScenario {
	out := make([]model.EvaluatedScenario, len(scenarios))
	for i, s := range scenarios {
		out[i] = Evaluate(s, b, a)
	}
	return out
}
