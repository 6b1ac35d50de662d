package catalog

import (
	"strings"

	"github.com/kilianp07/co2path/core/model"
)

// Combine sums the investment and CO2 fields of the given measures into one
// combination scenario. The lifetime is not derived from the measures; the
// caller picks a representative value.
func Combine(id, name string, lifetimeYears int, measures ...model.Scenario) model.Scenario {
	s := model.Scenario{
		RenovationID:  id,
		Name:          name,
		Category:      model.CategoryCombination,
		LifetimeYears: lifetimeYears,
	}
	names := make([]string, 0, len(measures))
	for _, m := range measures {
		s.GrossInvestmentCHF += m.GrossInvestmentCHF
		s.SubsidyCHF += m.SubsidyCHF
		s.NetInvestmentCHF += m.NetInvestmentCHF
		s.CO2SavingsKg += m.CO2SavingsKg
		names = append(names, m.Name)
	}
	s.Description = strings.Join(names, " + ")
	s.Effect = model.Combination{Measures: append([]model.Scenario(nil), measures...)}
	return s
}

// Combinations returns the predefined bundles applicable to the building:
// heat pump + PV for fossil heating, and a full retrofit (heat pump, facade,
// roof, PV) when the floor area is known as well.
func (g *Generator) Combinations(b model.Building) []model.Scenario {
	if !b.Heating.IsFossil() {
		return nil
	}
	hpID := model.RenovationHeatingGasToHP
	if b.Heating == model.HeatingOil {
		hpID = model.RenovationHeatingOilToHP
	}
	hp := g.mustBuild(hpID, b)
	pv := g.PV(b, 0)
	out := []model.Scenario{Combine(model.RenovationHeatPumpPV, "Combination: heat pump + PV", 20, hp, pv)}
	if b.HasFloorArea() {
		full := Combine(model.RenovationFullRetrofit, "Combination: full retrofit", 30,
			hp, g.mustBuild(model.RenovationFacade, b), g.mustBuild(model.RenovationRoof, b), pv)
		full.Description = "Complete energy retrofit: heat pump + insulation + PV"
		out = append(out, full)
	}
	return out
}

// All returns the single measures followed by the combinations.
func (g *Generator) All(b model.Building) []model.Scenario {
	return append(g.Scenarios(b), g.Combinations(b)...)
}
