package portfolio

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/kilianp07/co2path/core/emissions"
)

// BuildingCriterion orders buildings for renovation.
type BuildingCriterion string

const (
	// ByEmissions puts the highest absolute emitters first.
	ByEmissions BuildingCriterion = "emissions"
	// ByEfficiency puts the highest kg/m² first. Without any floor area it
	// behaves like ByEmissions.
	ByEfficiency BuildingCriterion = "efficiency"
	// ByPotential scores fossil heating with 100 points plus the emissions
	// normalised to 0..100.
	ByPotential BuildingCriterion = "potential"
)

// ErrUnknownCriterion is returned for unsupported building criteria.
var ErrUnknownCriterion = errors.New("unknown building criterion")

// BuildingPriority is one building in a prioritised list.
type BuildingPriority struct {
	emissions.Record
	KgPerM2        float64
	KWhPerM2       float64
	PotentialScore float64
	Rank           int
}

// PrioritizeBuildings returns the records ordered by the criterion with
// 1-based ranks. Ties keep their input order.
func PrioritizeBuildings(records []emissions.Record, c BuildingCriterion) ([]BuildingPriority, error) {
	out := make([]BuildingPriority, len(records))
	var maxT float64
	hasArea := false
	for i, r := range records {
		p := BuildingPriority{Record: r}
		if r.Building.HasFloorArea() {
			hasArea = true
			p.KgPerM2 = r.TotalKg / r.Building.FloorAreaM2
			p.KWhPerM2 = r.Building.HeatingKWh / r.Building.FloorAreaM2
		}
		maxT = max(maxT, r.TotalT)
		out[i] = p
	}

	var key func(BuildingPriority) float64
	switch c {
	case ByEmissions:
		key = func(p BuildingPriority) float64 { return p.TotalT }
	case ByEfficiency:
		key = func(p BuildingPriority) float64 { return p.TotalT }
		if hasArea {
			key = func(p BuildingPriority) float64 { return p.KgPerM2 }
		}
	case ByPotential:
		for i := range out {
			if out[i].Building.Heating.IsFossil() {
				out[i].PotentialScore += 100
			}
			if maxT > 0 {
				out[i].PotentialScore += out[i].TotalT / maxT * 100
			}
		}
		key = func(p BuildingPriority) float64 { return p.PotentialScore }
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCriterion, c)
	}

	slices.SortStableFunc(out, func(a, b BuildingPriority) int { return cmp.Compare(key(b), key(a)) })
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}
