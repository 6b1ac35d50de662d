package finance

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Amortization returns the simple payback period in years. Non-positive
// savings never pay back and yield +Inf.
func Amortization(netInvestment, annualSavings float64) float64 {
	if annualSavings <= 0 {
		return math.Inf(1)
	}
	return netInvestment / annualSavings
}

// escalated returns the undiscounted savings of years 1..years.
func escalated(annualSavings float64, years int, escalationPct float64) []float64 {
	out := make([]float64, years)
	g := 1 + escalationPct/100
	f := 1.0
	for i := range out {
		f *= g
		out[i] = annualSavings * f
	}
	return out
}

// discountFactors returns 1/(1+r)^y for y in 1..years.
func discountFactors(years int, discountPct float64) []float64 {
	out := make([]float64, years)
	d := 1 + discountPct/100
	f := 1.0
	for i := range out {
		f /= d
		out[i] = f
	}
	return out
}

// NPV returns the net present value over a finite horizon:
//
//	-net + Σ_{y=1..years} savings·(1+e)^y / (1+d)^y
func NPV(netInvestment, annualSavings float64, years int, discountPct, escalationPct float64) float64 {
	if years <= 0 {
		return -netInvestment
	}
	return -netInvestment + floats.Dot(escalated(annualSavings, years, escalationPct), discountFactors(years, discountPct))
}

// ROI is the static first-year return in percent. It is zero when there is
// no net investment to relate the savings to.
func ROI(netInvestment, annualSavings float64) float64 {
	if netInvestment <= 0 {
		return 0
	}
	return annualSavings / netInvestment * 100
}

// LifetimeROI relates the undiscounted return over the whole horizon to the
// net investment, in percent.
func LifetimeROI(netInvestment, totalReturn float64) float64 {
	if netInvestment <= 0 {
		return 0
	}
	return (totalReturn - netInvestment) / netInvestment * 100
}

// TotalReturn is the sum of the undiscounted escalated savings over the horizon.
func TotalReturn(annualSavings float64, years int, escalationPct float64) float64 {
	if years <= 0 {
		return 0
	}
	return floats.Sum(escalated(annualSavings, years, escalationPct))
}
