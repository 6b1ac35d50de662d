package model

import "math"

// AnnualSavings breaks down the first-year savings of a scenario.
type AnnualSavings struct {
	OldEnergyCostCHF     float64
	NewEnergyCostCHF     float64
	EnergyCostSavingsCHF float64
	CO2TaxSavingsCHF     float64
	TotalCHF             float64
}

// CashFlow is one row of the undiscounted cash-flow table. Year 0 holds the
// negative net investment.
type CashFlow struct {
	Year          int
	CashFlowCHF   float64
	CumulativeCHF float64
}

// EvaluatedScenario is a scenario together with its financial KPIs for a
// specific building.
type EvaluatedScenario struct {
	Scenario
	BuildingID string
	Savings    AnnualSavings

	// AmortizationYears is +Inf when the scenario never pays back.
	AmortizationYears float64
	NPVCHF            float64
	HorizonYears      int
	DiscountRatePct   float64
	EscalationPct     float64

	// ROIPercent is the static first-year return: annual savings / net investment.
	ROIPercent float64
	// LifetimeROIPercent is (total undiscounted return - net investment) / net
	// investment over the horizon. Not comparable with ROIPercent.
	LifetimeROIPercent float64

	TotalReturnCHF float64
	NetGainCHF     float64
	CashFlows      []CashFlow

	PriorityScore float64
	Rank          int
}

// PaysBack reports whether the amortization period is finite.
func (e EvaluatedScenario) PaysBack() bool {
	return !math.IsInf(e.AmortizationYears, 1)
}

// AnnualSavingsCHF returns the total first-year savings.
func (e EvaluatedScenario) AnnualSavingsCHF() float64 {
	return e.Savings.TotalCHF
}
