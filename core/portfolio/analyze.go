// Package portfolio rolls per-building results up to the portfolio level and
// selects renovation measures under a budget.
package portfolio

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/co2path/core/emissions"
)

// TopEmitterCount is the length of Stats.TopEmitters.
const TopEmitterCount = 5

// Emitter is one entry of the top emitters list.
type Emitter struct {
	BuildingID string
	Year       int
	TotalT     float64
}

// Stats summarises the emissions of a set of records.
type Stats struct {
	Buildings int // unique building ids
	Records   int
	TotalT    float64
	MeanT     float64 // per building
	StdDevT   float64 // across records

	// TotalAreaM2 and MeanKgPerM2 are only meaningful when HasArea is set.
	HasArea     bool
	TotalAreaM2 float64
	MeanKgPerM2 float64

	// HeatingDistribution counts unique buildings per heating type name.
	HeatingDistribution map[string]int
	TopEmitters         []Emitter
}

// Analyze computes portfolio statistics. Records usually come from a single
// year, see emissions.Latest.
func Analyze(records []emissions.Record) Stats {
	st := Stats{Records: len(records), HeatingDistribution: map[string]int{}}
	if len(records) == 0 {
		return st
	}

	totals := make([]float64, len(records))
	areas := make([]float64, len(records))
	ids := map[string]struct{}{}
	perHeating := map[string]map[string]struct{}{}
	for i, r := range records {
		totals[i] = r.TotalT
		areas[i] = r.Building.FloorAreaM2
		if r.Building.HasFloorArea() {
			st.HasArea = true
		}
		ids[r.Building.ID] = struct{}{}
		name := r.Building.Heating.String()
		if perHeating[name] == nil {
			perHeating[name] = map[string]struct{}{}
		}
		perHeating[name][r.Building.ID] = struct{}{}
	}
	for name, set := range perHeating {
		st.HeatingDistribution[name] = len(set)
	}

	st.Buildings = len(ids)
	st.TotalT = floats.Sum(totals)
	st.MeanT = st.TotalT / float64(st.Buildings)
	if len(totals) > 1 {
		st.StdDevT = stat.StdDev(totals, nil)
	}
	if st.HasArea {
		st.TotalAreaM2 = floats.Sum(areas)
		if st.TotalAreaM2 > 0 {
			st.MeanKgPerM2 = st.TotalT * 1000 / st.TotalAreaM2
		}
	}

	order := make([]int, len(records))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int { return cmp.Compare(totals[b], totals[a]) })
	for _, i := range order[:min(TopEmitterCount, len(order))] {
		b := records[i].Building
		st.TopEmitters = append(st.TopEmitters, Emitter{BuildingID: b.ID, Year: b.Year, TotalT: totals[i]})
	}
	return st
}
