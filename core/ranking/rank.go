package ranking

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/kilianp07/co2path/core/model"
)

// Criterion selects the sort key of Rank.
type Criterion string

const (
	ByScore        Criterion = "score"        // descending
	ByCO2          Criterion = "co2"          // descending
	ByROI          Criterion = "roi"          // descending
	ByAmortization Criterion = "amortization" // ascending
	ByNPV          Criterion = "npv"          // descending
)

// Criteria lists the supported criteria.
var Criteria = []Criterion{ByScore, ByCO2, ByROI, ByAmortization, ByNPV}

// ErrUnknownCriterion is returned for criteria outside Criteria.
var ErrUnknownCriterion = errors.New("unknown ranking criterion")

// ParseCriterion validates a criterion name.
func ParseCriterion(s string) (Criterion, error) {
	c := Criterion(s)
	if !slices.Contains(Criteria, c) {
		return "", fmt.Errorf("%w: %q", ErrUnknownCriterion, s)
	}
	return c, nil
}

func (c Criterion) compare() (func(a, b model.EvaluatedScenario) int, error) {
	desc := func(key func(model.EvaluatedScenario) float64) func(a, b model.EvaluatedScenario) int {
		return func(a, b model.EvaluatedScenario) int { return cmp.Compare(key(b), key(a)) }
	}
	switch c {
	case ByScore:
		return desc(func(e model.EvaluatedScenario) float64 { return e.PriorityScore }), nil
	case ByCO2:
		return desc(func(e model.EvaluatedScenario) float64 { return e.CO2SavingsKg }), nil
	case ByROI:
		return desc(func(e model.EvaluatedScenario) float64 { return e.ROIPercent }), nil
	case ByNPV:
		return desc(func(e model.EvaluatedScenario) float64 { return e.NPVCHF }), nil
	case ByAmortization:
		return func(a, b model.EvaluatedScenario) int {
			return cmp.Compare(a.AmortizationYears, b.AmortizationYears)
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCriterion, c)
}

// Rank returns a sorted copy of list with 1-based ranks. Ties keep their
// input order, so ranking an already ranked list again is a no-op.
func Rank(list []model.EvaluatedScenario, c Criterion) ([]model.EvaluatedScenario, error) {
	less, err := c.compare()
	if err != nil {
		return nil, err
	}
	out := slices.Clone(list)
	slices.SortStableFunc(out, less)
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}

// TierLevel is a coarse priority class derived from the rank.
type TierLevel string

const (
	TierHighest TierLevel = "highest"
	TierHigh    TierLevel = "high"
	TierMedium  TierLevel = "medium"
	TierLow     TierLevel = "low"
)

// Tier classifies a rank: the first entry is highest, the top 30 % high,
// up to 70 % medium, the rest low.
func Tier(rank, total int) TierLevel {
	if rank <= 1 {
		return TierHighest
	}
	if total <= 0 {
		return TierLow
	}
	pos := float64(rank) / float64(total)
	switch {
	case pos <= 0.3:
		return TierHigh
	case pos <= 0.7:
		return TierMedium
	default:
		return TierLow
	}
}

// ComparisonRow is a rounded, report-ready summary of one scenario.
type ComparisonRow struct {
	Rank              int
	BuildingID        string
	RenovationID      string
	Name              string
	NetInvestmentCHF  float64
	CO2SavingsT       float64
	AnnualSavingsCHF  float64
	AmortizationYears float64
	ROIPercent        float64
	NPVCHF            float64
	PriorityScore     float64
	Tier              TierLevel
}

// Compare builds comparison rows in list order.
func Compare(list []model.EvaluatedScenario) []ComparisonRow {
	out := make([]ComparisonRow, len(list))
	for i, e := range list {
		rank := e.Rank
		if rank == 0 {
			rank = i + 1
		}
		out[i] = ComparisonRow{
			Rank:              rank,
			BuildingID:        e.BuildingID,
			RenovationID:      e.RenovationID,
			Name:              e.Name,
			NetInvestmentCHF:  math.Round(e.NetInvestmentCHF),
			CO2SavingsT:       round(e.CO2SavingsKg/1000, 2),
			AnnualSavingsCHF:  math.Round(e.Savings.TotalCHF),
			AmortizationYears: round(e.AmortizationYears, 1),
			ROIPercent:        round(e.ROIPercent, 1),
			NPVCHF:            math.Round(e.NPVCHF),
			PriorityScore:     round(e.PriorityScore, 1),
			Tier:              Tier(rank, len(list)),
		}
	}
	return out
}

func round(v float64, places int) float64 {
	if math.IsInf(v, 0) {
		return v
	}
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
