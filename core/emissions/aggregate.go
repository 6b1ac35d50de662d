package emissions

import (
	"cmp"
	"slices"
)

// YearlyTotal is the emission sum of one building in one year.
type YearlyTotal struct {
	BuildingID string
	Year       int
	TotalKg    float64
	TotalT     float64
}

// CumulativeTotal extends YearlyTotal with the running sum per building.
type CumulativeTotal struct {
	YearlyTotal
	CumulativeKg float64
	CumulativeT  float64
}

type yearKey struct {
	id   string
	year int
}

// AggregateYearly sums records per building and year, sorted by building id
// then year.
func AggregateYearly(records []Record) []YearlyTotal {
	idx := map[yearKey]int{}
	var out []YearlyTotal
	for _, r := range records {
		k := yearKey{r.Building.ID, r.Building.Year}
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, YearlyTotal{BuildingID: k.id, Year: k.year})
		}
		out[i].TotalKg += r.TotalKg
		out[i].TotalT += r.TotalT
	}
	slices.SortFunc(out, func(a, b YearlyTotal) int {
		if c := cmp.Compare(a.BuildingID, b.BuildingID); c != 0 {
			return c
		}
		return cmp.Compare(a.Year, b.Year)
	})
	return out
}

// Cumulative computes running emission totals per building. The input is
// expected in the order produced by AggregateYearly.
func Cumulative(yearly []YearlyTotal) []CumulativeTotal {
	out := make([]CumulativeTotal, len(yearly))
	running := map[string]float64{}
	for i, y := range yearly {
		running[y.BuildingID] += y.TotalKg
		kg := running[y.BuildingID]
		out[i] = CumulativeTotal{YearlyTotal: y, CumulativeKg: kg, CumulativeT: kg / 1000}
	}
	return out
}

// Latest returns the records of the most recent year found in the dataset.
func Latest(records []Record) []Record {
	if len(records) == 0 {
		return nil
	}
	maxYear := records[0].Building.Year
	for _, r := range records[1:] {
		maxYear = max(maxYear, r.Building.Year)
	}
	var out []Record
	for _, r := range records {
		if r.Building.Year == maxYear {
			out = append(out, r)
		}
	}
	return out
}
