package finance

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/kilianp07/co2path/core/model"
)

// Parameter names an input varied by a sensitivity sweep.
type Parameter string

const (
	ParamEnergyPrice Parameter = "energy_price"
	ParamCO2Tax      Parameter = "co2_tax"
	ParamSubsidy     Parameter = "subsidy"
)

// Parameters lists the supported sweep parameters.
var Parameters = []Parameter{ParamEnergyPrice, ParamCO2Tax, ParamSubsidy}

// ErrUnknownParameter is returned for parameters outside Parameters.
var ErrUnknownParameter = errors.New("unknown sensitivity parameter")

// ParseParameter validates a parameter name.
func ParseParameter(s string) (Parameter, error) {
	p := Parameter(s)
	if !slices.Contains(Parameters, p) {
		return "", fmt.Errorf("%w: %q", ErrUnknownParameter, s)
	}
	return p, nil
}

// DefaultMultipliers is used when a sweep is requested without multipliers.
func DefaultMultipliers() []float64 {
	return []float64{0.8, 0.9, 1.0, 1.1, 1.2, 1.5, 2.0}
}

// DefaultCO2Prices are the CO2 tax levels in CHF/t of CO2PriceScenarios.
func DefaultCO2Prices() []float64 {
	return []float64{0, 120, 200, 300, 500}
}

// SensitivityRow is one point of a sensitivity sweep.
type SensitivityRow struct {
	Parameter         Parameter
	Multiplier        float64
	Label             string
	AmortizationYears float64
	NPVCHF            float64
	ROIPercent        float64
	AnnualSavingsCHF  float64
}

// Sweep re-evaluates the scenario once per multiplier with the named parameter
// scaled and everything else fixed. Rows follow the multiplier order. The
// inputs are never modified; each point works on its own copy.
func Sweep(s model.Scenario, b model.Building, a Assumptions, p Parameter, multipliers []float64) ([]SensitivityRow, error) {
	if !slices.Contains(Parameters, p) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownParameter, p)
	}
	if len(multipliers) == 0 {
		multipliers = DefaultMultipliers()
	}
	rows := make([]SensitivityRow, 0, len(multipliers))
	for _, m := range multipliers {
		sc, as := s, a
		var label string
		switch p {
		case ParamEnergyPrice:
			as.Prices = a.Prices.Scaled(m)
			label = "energy price " + formatFactor(m) + "x"
		case ParamCO2Tax:
			as.CO2TaxCHFPerT = a.CO2TaxCHFPerT * m
			label = "CO2 tax " + strconv.FormatFloat(as.CO2TaxCHFPerT, 'f', 0, 64) + " CHF/t"
		case ParamSubsidy:
			sc = s.WithSubsidy(s.SubsidyCHF * m)
			label = "subsidy " + formatFactor(m) + "x"
		}
		rows = append(rows, row(p, m, label, Evaluate(sc, b, as)))
	}
	return rows, nil
}

// CO2PriceScenarios evaluates the scenario at absolute CO2 tax levels in
// CHF/t. The row multiplier is relative to the baseline tax, or zero when
// the baseline is zero.
func CO2PriceScenarios(s model.Scenario, b model.Building, a Assumptions, prices []float64) []SensitivityRow {
	if len(prices) == 0 {
		prices = DefaultCO2Prices()
	}
	rows := make([]SensitivityRow, 0, len(prices))
	for _, price := range prices {
		as := a
		as.CO2TaxCHFPerT = price
		var m float64
		if a.CO2TaxCHFPerT != 0 {
			m = price / a.CO2TaxCHFPerT
		}
		label := "CO2 tax " + strconv.FormatFloat(price, 'f', 0, 64) + " CHF/t"
		rows = append(rows, row(ParamCO2Tax, m, label, Evaluate(s, b, as)))
	}
	return rows
}

func row(p Parameter, m float64, label string, e model.EvaluatedScenario) SensitivityRow {
	return SensitivityRow{
		Parameter:         p,
		Multiplier:        m,
		Label:             label,
		AmortizationYears: e.AmortizationYears,
		NPVCHF:            e.NPVCHF,
		ROIPercent:        e.ROIPercent,
		AnnualSavingsCHF:  e.Savings.TotalCHF,
	}
}

func formatFactor(m float64) string {
	return strconv.FormatFloat(m, 'f', -1, 64)
}
