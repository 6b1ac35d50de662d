// Package ranking scores evaluated scenarios and orders them.
package ranking

import (
	"math"

	"github.com/kilianp07/co2path/core/model"
)

// co2EfficiencyScale maps kg CO2 saved over the lifetime per CHF invested
// onto the 0..100 range.
const co2EfficiencyScale = 10

const fallbackLifetime = 20

// Weights of the four sub-scores in the composite priority score.
type Weights struct {
	CO2Efficiency float64 `json:"co2_efficiency"`
	Amortization  float64 `json:"amortization"`
	NPV           float64 `json:"npv"`
	AbsoluteCO2   float64 `json:"absolute_co2"`
}

// DefaultWeights returns 35/25/20/20.
func DefaultWeights() Weights {
	return Weights{CO2Efficiency: 0.35, Amortization: 0.25, NPV: 0.20, AbsoluteCO2: 0.20}
}

// SubScores are the individual components of the priority score, each in
// [0,100].
type SubScores struct {
	CO2Efficiency float64
	Amortization  float64
	NPV           float64
	AbsoluteCO2   float64
}

// Breakdown computes the sub-scores of e.
func Breakdown(e model.EvaluatedScenario) SubScores {
	return SubScores{
		CO2Efficiency: co2Efficiency(e),
		Amortization:  amortization(e.AmortizationYears),
		NPV:           npvRatio(e.NPVCHF, e.NetInvestmentCHF),
		AbsoluteCO2:   clamp(e.CO2SavingsKg/1000*5, 0, 100),
	}
}

// Score returns the weighted composite score in [0,100].
func Score(e model.EvaluatedScenario, w Weights) float64 {
	s := Breakdown(e)
	total := s.CO2Efficiency*w.CO2Efficiency +
		s.Amortization*w.Amortization +
		s.NPV*w.NPV +
		s.AbsoluteCO2*w.AbsoluteCO2
	return clamp(total, 0, 100)
}

// ScoreAll returns a copy of list with PriorityScore set on every entry.
func ScoreAll(list []model.EvaluatedScenario, w Weights) []model.EvaluatedScenario {
	out := make([]model.EvaluatedScenario, len(list))
	for i, e := range list {
		e.PriorityScore = Score(e, w)
		out[i] = e
	}
	return out
}

// co2Efficiency and npvRatio are zero without a positive net investment.
func co2Efficiency(e model.EvaluatedScenario) float64 {
	if e.NetInvestmentCHF <= 0 {
		return 0
	}
	lifetime := e.LifetimeYears
	if lifetime <= 0 {
		lifetime = fallbackLifetime
	}
	saved := e.CO2SavingsKg * float64(lifetime)
	return clamp(saved/e.NetInvestmentCHF*co2EfficiencyScale, 0, 100)
}

// amortization decays linearly from 100 at 5 years to 0 at 30 years.
func amortization(years float64) float64 {
	if math.IsInf(years, 1) {
		return 0
	}
	return clamp(100-(years-5)*4, 0, 100)
}

func npvRatio(npv, net float64) float64 {
	if net <= 0 {
		return 0
	}
	return clamp(npv/net*100, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
