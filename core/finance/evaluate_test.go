package finance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/co2path/core/model"
)

var gasBuilding = model.Building{
	ID:             "B1",
	Heating:        model.HeatingGas,
	HeatingKWh:     10000,
	ElectricityKWh: 5000,
	FloorAreaM2:    200,
}

func heatPumpScenario() model.Scenario {
	s := model.Scenario{
		RenovationID:       model.RenovationHeatingGasToHP,
		Category:           model.CategoryHeating,
		GrossInvestmentCHF: 50000,
		CO2SavingsKg:       2280 - 10000/3.5*0.05,
		LifetimeYears:      25,
		Effect: model.HeatingReplacement{
			NewHeating:        model.HeatingHeatPump,
			COP:               3.5,
			NewConsumptionKWh: 10000 / 3.5,
		},
	}
	return s.WithSubsidy(11000)
}

func facadeScenario() model.Scenario {
	s := model.Scenario{
		RenovationID:       model.RenovationFacade,
		Category:           model.CategoryEnvelope,
		GrossInvestmentCHF: 140000,
		CO2SavingsKg:       570,
		LifetimeYears:      50,
		Effect:             model.EnergySavings{SavingsPercent: 25, EnergySavingsKWh: 2500, AreaM2: 500},
	}
	return s.WithSubsidy(20000)
}

func pvScenario() model.Scenario {
	s := model.Scenario{
		RenovationID:       model.RenovationSolarPV,
		Category:           model.CategoryGeneration,
		GrossInvestmentCHF: 18000,
		CO2SavingsKg:       3000 * 0.122,
		LifetimeYears:      25,
		Effect:             model.GenerationAsset{CapacityKWp: 10, YieldKWh: 10000, SelfConsumedKWh: 3000},
	}
	return s.WithSubsidy(3800)
}

func TestAnnualSavingsHeatingReplacement(t *testing.T) {
	got := AnnualSavings(heatPumpScenario(), gasBuilding, DefaultAssumptions())
	assert.InDelta(t, 1200, got.OldEnergyCostCHF, 1e-9)
	assert.InDelta(t, 571.428571, got.NewEnergyCostCHF, 1e-6)
	assert.InDelta(t, 628.571429, got.EnergyCostSavingsCHF, 1e-6)
	assert.InDelta(t, 256.457143, got.CO2TaxSavingsCHF, 1e-6)
	assert.InDelta(t, 885.028571, got.TotalCHF, 1e-6)
}

func TestAnnualSavingsEnvelope(t *testing.T) {
	got := AnnualSavings(facadeScenario(), gasBuilding, DefaultAssumptions())
	assert.InDelta(t, 300, got.EnergyCostSavingsCHF, 1e-9)
	assert.InDelta(t, 68.4, got.CO2TaxSavingsCHF, 1e-9)
	assert.InDelta(t, 368.4, got.TotalCHF, 1e-9)
}

func TestAnnualSavingsGenerationHasNoCO2Tax(t *testing.T) {
	got := AnnualSavings(pvScenario(), gasBuilding, DefaultAssumptions())
	assert.InDelta(t, 750, got.EnergyCostSavingsCHF, 1e-9)
	assert.Zero(t, got.CO2TaxSavingsCHF)
	assert.InDelta(t, 750, got.TotalCHF, 1e-9)
}

func TestAnnualSavingsCombinationSumsMeasures(t *testing.T) {
	a := DefaultAssumptions()
	hp, pv := heatPumpScenario(), pvScenario()
	combo := model.Scenario{
		Category:         model.CategoryCombination,
		NetInvestmentCHF: hp.NetInvestmentCHF + pv.NetInvestmentCHF,
		CO2SavingsKg:     hp.CO2SavingsKg + pv.CO2SavingsKg,
		LifetimeYears:    20,
		Effect:           model.Combination{Measures: []model.Scenario{hp, pv}},
	}
	got := AnnualSavings(combo, gasBuilding, a)
	want := AnnualSavings(hp, gasBuilding, a).TotalCHF + AnnualSavings(pv, gasBuilding, a).TotalCHF
	assert.InDelta(t, want, got.TotalCHF, 1e-9)
	assert.InDelta(t, got.OldEnergyCostCHF-got.EnergyCostSavingsCHF, got.NewEnergyCostCHF, 1e-9)
}

func TestEvaluate(t *testing.T) {
	e := Evaluate(heatPumpScenario(), gasBuilding, DefaultAssumptions())
	assert.Equal(t, "B1", e.BuildingID)
	assert.Equal(t, 25, e.HorizonYears)
	assert.InDelta(t, 39000/885.028571, e.AmortizationYears, 1e-6)
	assert.InDelta(t, 885.028571/39000*100, e.ROIPercent, 1e-6)
	require.Len(t, e.CashFlows, 26)
	assert.InDelta(t, e.CashFlows[25].CumulativeCHF, e.NetGainCHF, 1e-6)
	assert.InDelta(t, e.TotalReturnCHF-39000, e.NetGainCHF, 1e-9)
	assert.True(t, e.PaysBack())
}

func TestEvaluateZeroSavings(t *testing.T) {
	s := model.Scenario{GrossInvestmentCHF: 10000, NetInvestmentCHF: 10000}
	e := Evaluate(s, gasBuilding, DefaultAssumptions())
	assert.True(t, math.IsInf(e.AmortizationYears, 1))
	assert.Zero(t, e.ROIPercent)
	assert.Equal(t, DefaultHorizonYears, e.HorizonYears)
	assert.Equal(t, -10000.0, e.NPVCHF)
	assert.False(t, e.PaysBack())
}

func TestEvaluateAllKeepsOrder(t *testing.T) {
	got := EvaluateAll([]model.Scenario{pvScenario(), heatPumpScenario()}, gasBuilding, DefaultAssumptions())
	require.Len(t, got, 2)
	assert.Equal(t, model.RenovationSolarPV, got[0].RenovationID)
	assert.Equal(t, model.RenovationHeatingGasToHP, got[1].RenovationID)
}

func TestPriceTableScaledDoesNotMutate(t *testing.T) {
	p := DefaultPriceTable()
	q := p.Scaled(2)
	assert.Equal(t, 0.12, p.Price(model.HeatingGas))
	assert.Equal(t, 0.24, q.Price(model.HeatingGas))
	assert.Equal(t, 0.5, q.Electricity())
	assert.Equal(t, 0.24, q.Price(model.HeatingPellets))
	assert.Equal(t, DefaultFallbackPrice, p.Price(model.HeatingPellets))
}
