package portfolio

import (
	"github.com/kilianp07/co2path/core/emissions"
	"github.com/kilianp07/co2path/core/model"
)

// ScenarioBuilder prices one catalog measure for a building.
type ScenarioBuilder interface {
	Build(id string, b model.Building) (model.Scenario, error)
}

// Measure is one building's contribution to a portfolio scenario.
type Measure struct {
	BuildingID       string
	Name             string
	NetInvestmentCHF float64
	CO2SavingsKg     float64
}

// ScenarioResult compares the portfolio before and after a portfolio-wide
// measure.
type ScenarioResult struct {
	Name               string
	Measures           []Measure
	BeforeT            float64
	AfterT             float64
	SavingsT           float64
	SavingsPct         float64
	GrossInvestmentCHF float64
	SubsidyCHF         float64
	NetInvestmentCHF   float64
}

// FossilToHeatPump replaces every gas and oil heating by a heat pump.
// Buildings with other heating types keep their emissions.
func FossilToHeatPump(records []emissions.Record, b ScenarioBuilder) (ScenarioResult, error) {
	res := ScenarioResult{Name: "fossil_to_heat_pump"}
	var afterKg float64
	for _, r := range records {
		res.BeforeT += r.TotalT
		if !r.Building.Heating.IsFossil() {
			afterKg += r.TotalKg
			continue
		}
		id := model.RenovationHeatingGasToHP
		if r.Building.Heating == model.HeatingOil {
			id = model.RenovationHeatingOilToHP
		}
		s, err := b.Build(id, r.Building)
		if err != nil {
			return ScenarioResult{}, err
		}
		res.Measures = append(res.Measures, Measure{
			BuildingID:       r.Building.ID,
			Name:             s.Name,
			NetInvestmentCHF: s.NetInvestmentCHF,
			CO2SavingsKg:     s.CO2SavingsKg,
		})
		res.GrossInvestmentCHF += s.GrossInvestmentCHF
		res.SubsidyCHF += s.SubsidyCHF
		afterKg += r.TotalKg - s.CO2SavingsKg
	}
	res.NetInvestmentCHF = res.GrossInvestmentCHF - res.SubsidyCHF
	res.AfterT = afterKg / 1000
	res.SavingsT = res.BeforeT - res.AfterT
	if res.BeforeT > 0 {
		res.SavingsPct = res.SavingsT / res.BeforeT * 100
	}
	return res, nil
}
