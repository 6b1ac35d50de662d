package subsidy

import (
	"testing"

	"github.com/kilianp07/co2path/core/model"
)

func TestCompute(t *testing.T) {
	rules := DefaultRules()
	tests := []struct {
		name string
		req  Request
		want float64
	}{
		{"gas heat pump", Request{RenovationID: model.RenovationHeatingGasToHP, GrossInvestmentCHF: 50000}, 11000},
		{"oil heat pump capped", Request{RenovationID: model.RenovationHeatingOilToHP, GrossInvestmentCHF: 200000}, 30000},
		{"facade per m2", Request{RenovationID: model.RenovationFacade, GrossInvestmentCHF: 70000, AreaM2: 250}, 10000},
		{"roof capped", Request{RenovationID: model.RenovationRoof, GrossInvestmentCHF: 1e6, AreaM2: 5000}, 40000},
		{"pv per kWp", Request{RenovationID: model.RenovationSolarPV, GrossInvestmentCHF: 18000, CapacityKWp: 10}, 3800},
		{"no rule", Request{RenovationID: model.RenovationSolarThermal, GrossInvestmentCHF: 10000}, 0},
		{"limited by investment", Request{RenovationID: model.RenovationWindows, GrossInvestmentCHF: 500, AreaM2: 100}, 500},
		{"zero investment", Request{RenovationID: model.RenovationHeatingGasToHP}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rules.Compute(tt.req); got != tt.want {
				t.Fatalf("got %v want %v", got, tt.want)
			}
		})
	}
}

func TestComputeBounded(t *testing.T) {
	rules := DefaultRules()
	for id, rule := range rules {
		for _, gross := range []float64{0, 1, 999, 5000, 50000, 1e6} {
			for _, qty := range []float64{0, 1, 10, 100, 10000} {
				s := rules.Compute(Request{RenovationID: id, GrossInvestmentCHF: gross, AreaM2: qty, CapacityKWp: qty})
				if s < 0 || s > gross || s > rule.MaxCHF {
					t.Fatalf("%s gross=%v qty=%v: subsidy %v out of bounds", id, gross, qty, s)
				}
			}
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a := DefaultRules()
	b := a.Clone()
	b[model.RenovationSolarPV] = Rule{}
	if a[model.RenovationSolarPV].PerKWpCHF != 380 {
		t.Fatal("clone shares storage with the original")
	}
}
