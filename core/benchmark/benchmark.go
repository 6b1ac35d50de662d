// Package benchmark compares building performance with Swiss standards and
// climate targets.
package benchmark

import (
	"fmt"

	"github.com/kilianp07/co2path/core/emissions"
	"github.com/kilianp07/co2path/core/model"
)

// Standard is a heating demand reference in kWh/m² and year.
type Standard struct {
	Key         string
	Description string
	HeatKWhM2   float64
	TotalKWhM2  float64
}

// Standards are the reference values of SIA 380/1, Minergie and MuKEn.
var Standards = []Standard{
	{Key: "sia_2024", Description: "SIA 380/1:2024 limit for new buildings", HeatKWhM2: 30, TotalKWhM2: 45},
	{Key: "minergie", Description: "Minergie", HeatKWhM2: 38, TotalKWhM2: 55},
	{Key: "minergie_p", Description: "Minergie-P (passive house)", HeatKWhM2: 15, TotalKWhM2: 30},
	{Key: "muken_2014", Description: "MuKEn 2014 model regulations", HeatKWhM2: 35, TotalKWhM2: 50},
}

type era struct {
	until       int // inclusive upper construction year
	key         string
	description string
	heatKWhM2   float64
}

// Swiss average heating demand by construction period.
var eras = []era{
	{1919, "before_1920", "historic, unrenovated", 180},
	{1945, "1920_1945", "historic", 160},
	{1975, "1946_1975", "post-war", 140},
	{1990, "1976_1990", "1970s/80s", 120},
	{2000, "1991_2000", "1990s", 100},
	{2010, "2001_2010", "2000s", 70},
	{2020, "2011_2020", "2010s", 50},
	{1 << 30, "from_2021", "current new build", 35},
}

// Target is a CO2 intensity goal in kg/m² and year.
type Target struct {
	Key         string
	Description string
	KgM2        float64
}

// ClimateTargets are the Swiss building sector targets.
var ClimateTargets = []Target{
	{Key: "today_2025", Description: "current Swiss average", KgM2: 25},
	{Key: "target_2030", Description: "climate target 2030", KgM2: 12},
	{Key: "target_2040", Description: "climate target 2040", KgM2: 6},
	{Key: "net_zero_2050", Description: "net zero 2050", KgM2: 0},
}

// Intensity holds area-specific key figures.
type Intensity struct {
	HeatKWhM2        float64
	ElectricityKWhM2 float64
	CO2KgM2          float64
}

// PerArea returns the area-specific figures, or nil without floor area.
func PerArea(b model.Building, emissionsKg float64) *Intensity {
	if !b.HasFloorArea() {
		return nil
	}
	return &Intensity{
		HeatKWhM2:        b.HeatingKWh / b.FloorAreaM2,
		ElectricityKWhM2: b.ElectricityKWh / b.FloorAreaM2,
		CO2KgM2:          emissionsKg / b.FloorAreaM2,
	}
}

// EfficiencyClass maps heating demand to a label from A (best) to G.
func EfficiencyClass(heatKWhM2 float64) string {
	switch {
	case heatKWhM2 < 30:
		return "A"
	case heatKWhM2 < 50:
		return "B"
	case heatKWhM2 < 80:
		return "C"
	case heatKWhM2 < 120:
		return "D"
	case heatKWhM2 < 160:
		return "E"
	case heatKWhM2 < 200:
		return "F"
	default:
		return "G"
	}
}

// Status of a comparison.
type Status string

const (
	StatusMet     Status = "met"
	StatusMissed  Status = "missed"
	StatusBetter  Status = "better"
	StatusAverage Status = "average"
	StatusWorse   Status = "worse"
)

// Comparison relates an actual value to a reference.
type Comparison struct {
	Key         string
	Description string
	Target      float64
	Actual      float64
	Diff        float64
	DiffPct     float64
	Status      Status
}

func compare(key, desc string, target, actual float64) Comparison {
	c := Comparison{Key: key, Description: desc, Target: target, Actual: actual, Diff: actual - target}
	if target > 0 {
		c.DiffPct = c.Diff / target * 100
	}
	c.Status = StatusMissed
	if c.Diff <= 0 {
		c.Status = StatusMet
	}
	return c
}

// CompareStandards compares the heating demand with every standard and, if
// the construction year is known, with the average of its period. It returns
// nil without floor area.
func CompareStandards(b model.Building, emissionsKg float64) []Comparison {
	in := PerArea(b, emissionsKg)
	if in == nil {
		return nil
	}
	out := make([]Comparison, 0, len(Standards)+1)
	for _, s := range Standards {
		out = append(out, compare(s.Key, s.Description, s.HeatKWhM2, in.HeatKWhM2))
	}
	if b.HasConstructionYear() {
		e := eraOf(b.ConstructionYear)
		c := compare("average_"+e.key, fmt.Sprintf("Swiss average, %s", e.description), e.heatKWhM2, in.HeatKWhM2)
		switch {
		case c.Diff < 0:
			c.Status = StatusBetter
		case c.Diff < 20:
			c.Status = StatusAverage
		default:
			c.Status = StatusWorse
		}
		out = append(out, c)
	}
	return out
}

func eraOf(year int) era {
	for _, e := range eras {
		if year <= e.until {
			return e
		}
	}
	return eras[len(eras)-1]
}

// CompareClimateTargets compares the CO2 intensity with the climate targets.
// It returns nil without floor area.
func CompareClimateTargets(b model.Building, emissionsKg float64) []Comparison {
	in := PerArea(b, emissionsKg)
	if in == nil {
		return nil
	}
	out := make([]Comparison, 0, len(ClimateTargets))
	for _, t := range ClimateTargets {
		out = append(out, compare(t.Key, t.Description, t.KgM2, in.CO2KgM2))
	}
	return out
}

// Potential is the saving needed to reach a standard.
type Potential struct {
	Standard     string
	Reached      bool
	ActualKWhM2  float64
	TargetKWhM2  float64
	SavingsKWhM2 float64
	SavingsPct   float64
	SavingsKWh   float64
	CO2SavingsKg float64
}

// PotentialTo computes the savings needed to reach the standard with the
// given key; unknown keys fall back to Minergie. ok is false without floor
// area.
func PotentialTo(b model.Building, emissionsKg float64, standard string, factors emissions.FactorTable) (Potential, bool) {
	in := PerArea(b, emissionsKg)
	if in == nil {
		return Potential{}, false
	}
	std := Standards[1]
	for _, s := range Standards {
		if s.Key == standard {
			std = s
		}
	}
	p := Potential{Standard: std.Key, ActualKWhM2: in.HeatKWhM2, TargetKWhM2: std.HeatKWhM2}
	if in.HeatKWhM2 <= std.HeatKWhM2 {
		p.Reached = true
		return p, true
	}
	p.SavingsKWhM2 = in.HeatKWhM2 - std.HeatKWhM2
	p.SavingsPct = p.SavingsKWhM2 / in.HeatKWhM2 * 100
	p.SavingsKWh = p.SavingsKWhM2 * b.FloorAreaM2
	p.CO2SavingsKg = p.SavingsKWh * factors.HeatingFactor(b.Heating)
	return p, true
}
