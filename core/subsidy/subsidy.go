// Package subsidy computes the public funding a renovation measure receives.
package subsidy

import (
	"maps"

	"github.com/kilianp07/co2path/core/model"
)

// Rule describes the subsidy terms of one renovation type. All configured
// terms are summed, then capped by MaxCHF. A zero MaxCHF means no cap.
type Rule struct {
	FlatCHF   float64 `json:"flat_chf"`
	PerM2CHF  float64 `json:"per_m2_chf"`
	PerKWpCHF float64 `json:"per_kwp_chf"`
	Percent   float64 `json:"percent"` // of the gross investment
	MaxCHF    float64 `json:"max_chf"`
}

// Rules maps renovation ids to their subsidy rule.
type Rules map[string]Rule

// DefaultRules returns the Swiss programme figures (Gebäudeprogramm, cantonal
// heat-pump funding, Pronovo one-time payment).
func DefaultRules() Rules {
	return Rules{
		model.RenovationHeatingGasToHP: {FlatCHF: 1000, Percent: 20, MaxCHF: 25000},
		model.RenovationHeatingOilToHP: {FlatCHF: 1000, Percent: 20, MaxCHF: 30000},
		model.RenovationFacade:         {PerM2CHF: 40, MaxCHF: 50000},
		model.RenovationRoof:           {PerM2CHF: 35, MaxCHF: 40000},
		model.RenovationWindows:        {PerM2CHF: 70, MaxCHF: 30000},
		model.RenovationSolarPV:        {PerKWpCHF: 380, MaxCHF: 15000},
	}
}

// Clone returns an independent copy of the rules.
func (r Rules) Clone() Rules { return maps.Clone(r) }

// Request carries the quantities a rule may scale with. AreaM2 and
// CapacityKWp are zero when not applicable.
type Request struct {
	RenovationID       string
	GrossInvestmentCHF float64
	AreaM2             float64
	CapacityKWp        float64
}

// Compute returns the subsidy for the request. The result is always within
// [0, min(gross investment, rule cap)]; unknown renovation ids yield 0.
func (r Rules) Compute(req Request) float64 {
	rule, ok := r[req.RenovationID]
	if !ok || req.GrossInvestmentCHF <= 0 {
		return 0
	}
	s := rule.FlatCHF
	s += rule.PerM2CHF * max(0, req.AreaM2)
	s += rule.PerKWpCHF * max(0, req.CapacityKWp)
	s += req.GrossInvestmentCHF * rule.Percent / 100
	if rule.MaxCHF > 0 {
		s = min(s, rule.MaxCHF)
	}
	return max(0, min(s, req.GrossInvestmentCHF))
}
