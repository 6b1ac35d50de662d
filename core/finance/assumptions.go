package finance

import (
	"maps"

	"github.com/kilianp07/co2path/core/model"
)

// Default economic assumptions, Swiss context 2024/2025.
const (
	DefaultDiscountRatePct = 2.0
	DefaultEscalationPct   = 2.5
	DefaultCO2TaxCHFPerT   = 120
	DefaultHorizonYears    = 25

	DefaultElectricityPrice = 0.25
	DefaultFallbackPrice    = 0.12
)

// DefaultFuelPrices returns energy prices in CHF/kWh per heating type.
func DefaultFuelPrices() map[model.HeatingType]float64 {
	return map[model.HeatingType]float64{
		model.HeatingGas:          0.12,
		model.HeatingOil:          0.13,
		model.HeatingDistrictHeat: 0.14,
		model.HeatingHeatPump:     0.20,
	}
}

// PriceTable holds energy prices in CHF/kWh. It is immutable: Scaled returns
// a new table and never touches the receiver.
type PriceTable struct {
	fuel        map[model.HeatingType]float64
	electricity float64
	fallback    float64
}

// NewPriceTable copies fuel into a new table.
func NewPriceTable(fuel map[model.HeatingType]float64, electricity, fallback float64) PriceTable {
	return PriceTable{fuel: maps.Clone(fuel), electricity: electricity, fallback: fallback}
}

// DefaultPriceTable returns the default Swiss energy prices.
func DefaultPriceTable() PriceTable {
	return NewPriceTable(DefaultFuelPrices(), DefaultElectricityPrice, DefaultFallbackPrice)
}

// Price returns the price of the energy carrier used by h, or the fallback
// price when h has no entry.
func (p PriceTable) Price(h model.HeatingType) float64 {
	if v, ok := p.fuel[h]; ok {
		return v
	}
	return p.fallback
}

// Electricity returns the grid electricity price.
func (p PriceTable) Electricity() float64 { return p.electricity }

// Fallback returns the price used for heating types without an entry.
func (p PriceTable) Fallback() float64 { return p.fallback }

// Prices returns a copy of the per-type prices.
func (p PriceTable) Prices() map[model.HeatingType]float64 { return maps.Clone(p.fuel) }

// Scaled returns a copy of the table with every price multiplied by m.
func (p PriceTable) Scaled(m float64) PriceTable {
	fuel := make(map[model.HeatingType]float64, len(p.fuel))
	for h, v := range p.fuel {
		fuel[h] = v * m
	}
	return PriceTable{fuel: fuel, electricity: p.electricity * m, fallback: p.fallback * m}
}

// Assumptions is the full set of economic inputs of an evaluation. It is
// passed by value; sensitivity sweeps derive modified copies.
type Assumptions struct {
	Prices          PriceTable
	DiscountRatePct float64
	EscalationPct   float64
	CO2TaxCHFPerT   float64
	HorizonYears    int
}

// DefaultAssumptions returns the default Swiss assumptions.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		Prices:          DefaultPriceTable(),
		DiscountRatePct: DefaultDiscountRatePct,
		EscalationPct:   DefaultEscalationPct,
		CO2TaxCHFPerT:   DefaultCO2TaxCHFPerT,
		HorizonYears:    DefaultHorizonYears,
	}
}

// horizon returns the evaluation horizon for a scenario: its lifetime when
// set, the configured horizon otherwise.
func (a Assumptions) horizon(lifetime int) int {
	if lifetime > 0 {
		return lifetime
	}
	if a.HorizonYears > 0 {
		return a.HorizonYears
	}
	return DefaultHorizonYears
}
