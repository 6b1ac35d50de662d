package config

import (
	"fmt"
	"slices"

	"github.com/kilianp07/co2path/core/catalog"
	"github.com/kilianp07/co2path/core/emissions"
	"github.com/kilianp07/co2path/core/finance"
	"github.com/kilianp07/co2path/core/model"
	"github.com/kilianp07/co2path/core/ranking"
	"github.com/kilianp07/co2path/core/subsidy"
)

// EmissionsConfig holds emission factors in kg CO2e/kWh keyed by heating
// type (gas, oil, district_heat, heat_pump, pellets, solar).
type EmissionsConfig struct {
	Factors        map[string]float64 `json:"factors"`
	FallbackFactor float64            `json:"fallback_factor"`
	GridFactor     float64            `json:"grid_factor"`
}

// DefaultEmissions returns the KBOB factors.
func DefaultEmissions() EmissionsConfig {
	return EmissionsConfig{
		Factors:        byKey(emissions.DefaultFactors()),
		FallbackFactor: emissions.DefaultFallbackFactor,
		GridFactor:     emissions.DefaultGridFactor,
	}
}

// Validate rejects unknown heating keys and negative factors.
func (c EmissionsConfig) Validate() error {
	if _, err := byType(c.Factors); err != nil {
		return err
	}
	if c.FallbackFactor < 0 || c.GridFactor < 0 {
		return fmt.Errorf("factors must not be negative")
	}
	return nil
}

// Table converts the section into an emission factor table.
func (c EmissionsConfig) Table() (emissions.FactorTable, error) {
	f, err := byType(c.Factors)
	if err != nil {
		return emissions.FactorTable{}, err
	}
	return emissions.NewFactorTable(f, c.FallbackFactor, c.GridFactor), nil
}

// AssumptionsConfig holds the economic assumptions. Prices are in CHF/kWh
// keyed like EmissionsConfig.Factors.
type AssumptionsConfig struct {
	Prices           map[string]float64 `json:"prices"`
	ElectricityPrice float64            `json:"electricity_price"`
	FallbackPrice    float64            `json:"fallback_price"`
	DiscountRatePct  float64            `json:"discount_rate_pct"`
	EscalationPct    float64            `json:"escalation_pct"`
	CO2TaxCHFPerT    float64            `json:"co2_tax_chf_per_t"`
	HorizonYears     int                `json:"horizon_years"`
}

// DefaultAssumptions returns the Swiss 2024/2025 figures.
func DefaultAssumptions() AssumptionsConfig {
	return AssumptionsConfig{
		Prices:           byKey(finance.DefaultFuelPrices()),
		ElectricityPrice: finance.DefaultElectricityPrice,
		FallbackPrice:    finance.DefaultFallbackPrice,
		DiscountRatePct:  finance.DefaultDiscountRatePct,
		EscalationPct:    finance.DefaultEscalationPct,
		CO2TaxCHFPerT:    finance.DefaultCO2TaxCHFPerT,
		HorizonYears:     finance.DefaultHorizonYears,
	}
}

func (c AssumptionsConfig) Validate() error {
	prices, err := byType(c.Prices)
	if err != nil {
		return err
	}
	for h, p := range prices {
		if p < 0 {
			return fmt.Errorf("negative price for %s", h.Key())
		}
	}
	if c.ElectricityPrice < 0 || c.FallbackPrice < 0 {
		return fmt.Errorf("prices must not be negative")
	}
	if c.DiscountRatePct <= -100 {
		return fmt.Errorf("discount_rate_pct must be greater than -100")
	}
	if c.CO2TaxCHFPerT < 0 {
		return fmt.Errorf("co2_tax_chf_per_t must not be negative")
	}
	if c.HorizonYears < 0 {
		return fmt.Errorf("horizon_years must not be negative")
	}
	return nil
}

// Assumptions converts the section into finance assumptions.
func (c AssumptionsConfig) Assumptions() (finance.Assumptions, error) {
	prices, err := byType(c.Prices)
	if err != nil {
		return finance.Assumptions{}, err
	}
	return finance.Assumptions{
		Prices:          finance.NewPriceTable(prices, c.ElectricityPrice, c.FallbackPrice),
		DiscountRatePct: c.DiscountRatePct,
		EscalationPct:   c.EscalationPct,
		CO2TaxCHFPerT:   c.CO2TaxCHFPerT,
		HorizonYears:    c.HorizonYears,
	}, nil
}

// SensitivityConfig lists the default sweep points.
type SensitivityConfig struct {
	Multipliers []float64 `json:"multipliers"`
	CO2Prices   []float64 `json:"co2_prices"`
}

// DefaultSensitivity returns the default sweep points.
func DefaultSensitivity() SensitivityConfig {
	return SensitivityConfig{
		Multipliers: finance.DefaultMultipliers(),
		CO2Prices:   finance.DefaultCO2Prices(),
	}
}

func (c SensitivityConfig) Validate() error {
	if slices.ContainsFunc(c.Multipliers, func(m float64) bool { return m < 0 }) {
		return fmt.Errorf("multipliers must not be negative")
	}
	if slices.ContainsFunc(c.CO2Prices, func(p float64) bool { return p < 0 }) {
		return fmt.Errorf("co2_prices must not be negative")
	}
	return nil
}

func validateCatalog(p catalog.Parameters) error {
	if p.HeatPumpCOP <= 0 {
		return fmt.Errorf("heat_pump_cop must be positive")
	}
	if p.PVSelfConsumptionPct < 0 || p.PVSelfConsumptionPct > 100 {
		return fmt.Errorf("pv_self_consumption_pct must be within 0..100")
	}
	if p.HotWaterSharePct < 0 || p.HotWaterSharePct > 100 ||
		p.SolarThermalCoverPct < 0 || p.SolarThermalCoverPct > 100 {
		return fmt.Errorf("hot water shares must be within 0..100")
	}
	if p.PVYieldKWhPerKWp < 0 || p.PVKWpPer100M2 < 0 || p.PVDefaultKWp < 0 || p.RoofAreaFactor < 0 {
		return fmt.Errorf("pv sizing parameters must not be negative")
	}
	return nil
}

func validateSubsidies(r subsidy.Rules) error {
	for id, rule := range r {
		if _, ok := catalog.Lookup(id); !ok {
			return fmt.Errorf("%w: %s", catalog.ErrUnknownRenovation, id)
		}
		if rule.FlatCHF < 0 || rule.PerM2CHF < 0 || rule.PerKWpCHF < 0 || rule.Percent < 0 || rule.MaxCHF < 0 {
			return fmt.Errorf("rule %s: terms must not be negative", id)
		}
	}
	return nil
}

func validateWeights(w ranking.Weights) error {
	if w.CO2Efficiency < 0 || w.Amortization < 0 || w.NPV < 0 || w.AbsoluteCO2 < 0 {
		return fmt.Errorf("weights must not be negative")
	}
	if w.CO2Efficiency+w.Amortization+w.NPV+w.AbsoluteCO2 == 0 {
		return fmt.Errorf("at least one weight must be positive")
	}
	return nil
}

func byKey(m map[model.HeatingType]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for h, v := range m {
		out[h.Key()] = v
	}
	return out
}

func byType(m map[string]float64) (map[model.HeatingType]float64, error) {
	out := make(map[model.HeatingType]float64, len(m))
	for k, v := range m {
		h, ok := model.ParseHeatingType(k)
		if !ok {
			return nil, fmt.Errorf("unknown heating type %q", k)
		}
		out[h] = v
	}
	return out, nil
}
