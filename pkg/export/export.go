// Package export renders analysis results as JSON, CSV or YAML. Monetary
// values are rounded to two decimals and CO2 figures to three; an infinite
// amortization period is written as null (JSON, YAML) or "inf" (CSV).
package export

import (
	"encoding/json"
	"io"
	"math"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/kilianp07/co2path/core/finance"
	"github.com/kilianp07/co2path/core/model"
	"github.com/kilianp07/co2path/core/ranking"
)

// Scenario is the exported form of an evaluated scenario.
type Scenario struct {
	BuildingID         string   `json:"building_id" yaml:"building_id"`
	RenovationID       string   `json:"renovation_id" yaml:"renovation_id"`
	Name               string   `json:"name" yaml:"name"`
	Category           string   `json:"category" yaml:"category"`
	GrossInvestmentCHF float64  `json:"gross_investment_chf" yaml:"gross_investment_chf"`
	SubsidyCHF         float64  `json:"subsidy_chf" yaml:"subsidy_chf"`
	NetInvestmentCHF   float64  `json:"net_investment_chf" yaml:"net_investment_chf"`
	CO2SavingsKg       float64  `json:"co2_savings_kg" yaml:"co2_savings_kg"`
	CO2SavingsPercent  float64  `json:"co2_savings_percent" yaml:"co2_savings_percent"`
	LifetimeYears      int      `json:"lifetime_years" yaml:"lifetime_years"`
	AnnualSavingsCHF   float64  `json:"annual_savings_chf" yaml:"annual_savings_chf"`
	AmortizationYears  *float64 `json:"amortization_years" yaml:"amortization_years"`
	NPVCHF             float64  `json:"npv_chf" yaml:"npv_chf"`
	ROIPercent         float64  `json:"roi_percent" yaml:"roi_percent"`
	LifetimeROIPercent float64  `json:"lifetime_roi_percent" yaml:"lifetime_roi_percent"`
	PriorityScore      float64  `json:"priority_score" yaml:"priority_score"`
	Rank               int      `json:"rank" yaml:"rank"`
	Tier               string   `json:"tier,omitempty" yaml:"tier,omitempty"`
}

// NewScenario converts e. total is the length of the ranked list and is
// used for the tier; pass 0 to leave the tier empty.
func NewScenario(e model.EvaluatedScenario, total int) Scenario {
	s := Scenario{
		BuildingID:         e.BuildingID,
		RenovationID:       e.RenovationID,
		Name:               e.Name,
		Category:           e.Category.String(),
		GrossInvestmentCHF: Round(e.GrossInvestmentCHF, 2),
		SubsidyCHF:         Round(e.SubsidyCHF, 2),
		NetInvestmentCHF:   Round(e.NetInvestmentCHF, 2),
		CO2SavingsKg:       Round(e.CO2SavingsKg, 3),
		CO2SavingsPercent:  Round(e.CO2SavingsPercent, 2),
		LifetimeYears:      e.LifetimeYears,
		AnnualSavingsCHF:   Round(e.AnnualSavingsCHF(), 2),
		AmortizationYears:  years(e.AmortizationYears),
		NPVCHF:             Round(e.NPVCHF, 2),
		ROIPercent:         Round(e.ROIPercent, 2),
		LifetimeROIPercent: Round(e.LifetimeROIPercent, 2),
		PriorityScore:      Round(e.PriorityScore, 2),
		Rank:               e.Rank,
	}
	if total > 0 && e.Rank > 0 {
		s.Tier = string(ranking.Tier(e.Rank, total))
	}
	return s
}

// Scenarios converts a ranked list.
func Scenarios(list []model.EvaluatedScenario) []Scenario {
	out := make([]Scenario, len(list))
	for i, e := range list {
		out[i] = NewScenario(e, len(list))
	}
	return out
}

// Sensitivity is the exported form of a sensitivity row.
type Sensitivity struct {
	Parameter         string   `json:"parameter" yaml:"parameter"`
	Multiplier        float64  `json:"multiplier" yaml:"multiplier"`
	Label             string   `json:"label" yaml:"label"`
	AnnualSavingsCHF  float64  `json:"annual_savings_chf" yaml:"annual_savings_chf"`
	AmortizationYears *float64 `json:"amortization_years" yaml:"amortization_years"`
	NPVCHF            float64  `json:"npv_chf" yaml:"npv_chf"`
	ROIPercent        float64  `json:"roi_percent" yaml:"roi_percent"`
}

// SensitivityRows converts sweep results.
func SensitivityRows(rows []finance.SensitivityRow) []Sensitivity {
	out := make([]Sensitivity, len(rows))
	for i, r := range rows {
		out[i] = Sensitivity{
			Parameter:         string(r.Parameter),
			Multiplier:        Round(r.Multiplier, 4),
			Label:             r.Label,
			AnnualSavingsCHF:  Round(r.AnnualSavingsCHF, 2),
			AmortizationYears: years(r.AmortizationYears),
			NPVCHF:            Round(r.NPVCHF, 2),
			ROIPercent:        Round(r.ROIPercent, 2),
		}
	}
	return out
}

// Round rounds v half away from zero to the given number of decimals.
// Non-finite values are returned unchanged.
func Round(v float64, places int32) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

func years(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	r := Round(v, 2)
	return &r
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteYAML writes v as YAML.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
