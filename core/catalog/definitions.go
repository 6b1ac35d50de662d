// Package catalog turns the static renovation definitions into priced
// scenarios for a concrete building.
package catalog

import (
	"slices"

	"github.com/kilianp07/co2path/core/model"
)

// CostModel describes how the gross investment of a measure is derived.
type CostModel int

const (
	CostFlat   CostModel = iota // fixed CHF amount
	CostPerM2                   // CHF per treated m²
	CostPerKWp                  // CHF per installed kWp
)

// Definition is a static catalog entry.
type Definition struct {
	ID            string
	Name          string
	Category      model.Category
	Description   string
	Cost          CostModel
	UnitCostCHF   float64
	LifetimeYears int

	// NewHeating is set for heating replacements.
	NewHeating model.HeatingType
	// SavingsPercent is the reduction of heating energy for envelope measures.
	SavingsPercent float64
	// AreaFactor converts floor area to the treated area of an envelope measure.
	AreaFactor float64
}

// Swiss 2025 market prices.
var definitions = []Definition{
	{
		ID:            model.RenovationHeatingGasToHP,
		Name:          "Heating replacement gas to heat pump",
		Category:      model.CategoryHeating,
		Description:   "Replace the gas boiler with an air/water heat pump incl. buffer tank",
		Cost:          CostFlat,
		UnitCostCHF:   50000,
		LifetimeYears: 25,
		NewHeating:    model.HeatingHeatPump,
	},
	{
		ID:            model.RenovationHeatingOilToHP,
		Name:          "Heating replacement oil to heat pump",
		Category:      model.CategoryHeating,
		Description:   "Replace the oil boiler with a heat pump incl. tank removal",
		Cost:          CostFlat,
		UnitCostCHF:   50000,
		LifetimeYears: 25,
		NewHeating:    model.HeatingHeatPump,
	},
	{
		ID:             model.RenovationFacade,
		Name:           "Facade insulation",
		Category:       model.CategoryEnvelope,
		Description:    "Full facade insulation 20cm, U-value < 0.20",
		Cost:           CostPerM2,
		UnitCostCHF:    280,
		LifetimeYears:  50,
		SavingsPercent: 25,
		AreaFactor:     2.5, // three to four storeys
	},
	{
		ID:             model.RenovationRoof,
		Name:           "Roof insulation",
		Category:       model.CategoryEnvelope,
		Description:    "Above-rafter insulation 20cm, U-value < 0.15",
		Cost:           CostPerM2,
		UnitCostCHF:    220,
		LifetimeYears:  50,
		SavingsPercent: 15,
		AreaFactor:     1.2, // roof pitch
	},
	{
		ID:             model.RenovationWindows,
		Name:           "Window replacement",
		Category:       model.CategoryEnvelope,
		Description:    "Triple glazing, U-value < 0.8",
		Cost:           CostPerM2,
		UnitCostCHF:    850,
		LifetimeYears:  50,
		SavingsPercent: 12,
		AreaFactor:     1.0,
	},
	{
		ID:            model.RenovationSolarPV,
		Name:          "Photovoltaic system",
		Category:      model.CategoryGeneration,
		Description:   "Rooftop PV system incl. inverter",
		Cost:          CostPerKWp,
		UnitCostCHF:   1800,
		LifetimeYears: 25,
	},
	{
		ID:            model.RenovationSolarThermal,
		Name:          "Solar thermal hot water",
		Category:      model.CategoryHotWater,
		Description:   "Solar collectors for domestic hot water (6 m²)",
		Cost:          CostFlat,
		UnitCostCHF:   10000,
		LifetimeYears: 25,
	},
}

// Definitions returns a copy of the catalog in display order.
func Definitions() []Definition {
	return slices.Clone(definitions)
}

// Lookup returns the definition with the given id.
func Lookup(id string) (Definition, bool) {
	i := slices.IndexFunc(definitions, func(d Definition) bool { return d.ID == id })
	if i < 0 {
		return Definition{}, false
	}
	return definitions[i], true
}

// Parameters are the technical assumptions used when sizing measures.
type Parameters struct {
	HeatPumpCOP          float64 `json:"heat_pump_cop"`
	PVYieldKWhPerKWp     float64 `json:"pv_yield_kwh_per_kwp"`
	PVSelfConsumptionPct float64 `json:"pv_self_consumption_pct"`
	PVKWpPer100M2        float64 `json:"pv_kwp_per_100m2"`
	PVDefaultKWp         float64 `json:"pv_default_kwp"`
	RoofAreaFactor       float64 `json:"roof_area_factor"`
	HotWaterSharePct     float64 `json:"hot_water_share_pct"`
	SolarThermalCoverPct float64 `json:"solar_thermal_coverage_pct"`
}

// DefaultParameters returns typical Swiss values.
func DefaultParameters() Parameters {
	return Parameters{
		HeatPumpCOP:          3.5,
		PVYieldKWhPerKWp:     1000,
		PVSelfConsumptionPct: 30, // without battery
		PVKWpPer100M2:        6,
		PVDefaultKWp:         10,
		RoofAreaFactor:       1.2,
		HotWaterSharePct:     15,
		SolarThermalCoverPct: 60,
	}
}
