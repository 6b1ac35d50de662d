package emissions

import (
	"testing"

	"github.com/kilianp07/co2path/core/model"
)

func TestAggregateYearlyAndCumulative(t *testing.T) {
	tbl := DefaultFactorTable()
	recs := ComputeAll([]model.Building{
		{ID: "b", Year: 2023, Heating: model.HeatingGas, HeatingKWh: 1000},
		{ID: "a", Year: 2024, Heating: model.HeatingGas, HeatingKWh: 1000},
		{ID: "a", Year: 2023, Heating: model.HeatingGas, HeatingKWh: 2000},
		{ID: "a", Year: 2023, Heating: model.HeatingGas, HeatingKWh: 1000},
	}, tbl)

	yearly := AggregateYearly(recs)
	if len(yearly) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(yearly))
	}
	if yearly[0].BuildingID != "a" || yearly[0].Year != 2023 || !approx(yearly[0].TotalKg, 684, 1e-9) {
		t.Fatalf("unexpected first group %+v", yearly[0])
	}

	cum := Cumulative(yearly)
	if !approx(cum[1].CumulativeKg, 684+228, 1e-9) {
		t.Fatalf("cumulative for a/2024: %v", cum[1].CumulativeKg)
	}
	if !approx(cum[2].CumulativeKg, 228, 1e-9) {
		t.Fatalf("cumulative restarts per building, got %v", cum[2].CumulativeKg)
	}
}

func TestLatest(t *testing.T) {
	recs := ComputeAll([]model.Building{
		{ID: "a", Year: 2022},
		{ID: "a", Year: 2024},
		{ID: "b", Year: 2024},
	}, DefaultFactorTable())
	got := Latest(recs)
	if len(got) != 2 || got[0].Building.Year != 2024 {
		t.Fatalf("unexpected latest %+v", got)
	}
	if Latest(nil) != nil {
		t.Fatal("expected nil for empty input")
	}
}
