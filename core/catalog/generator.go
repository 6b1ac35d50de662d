package catalog

import (
	"fmt"

	"github.com/kilianp07/co2path/core/emissions"
	"github.com/kilianp07/co2path/core/model"
	"github.com/kilianp07/co2path/core/subsidy"
)

// Generator prices catalog measures for buildings. It holds no mutable state
// and is safe for concurrent use.
type Generator struct {
	factors   emissions.FactorTable
	subsidies subsidy.Rules
	params    Parameters
}

// NewGenerator returns a generator using the given factor table, subsidy rules
// and sizing parameters. A zero Parameters value selects DefaultParameters.
func NewGenerator(factors emissions.FactorTable, rules subsidy.Rules, params Parameters) *Generator {
	if params == (Parameters{}) {
		params = DefaultParameters()
	}
	if params.HeatPumpCOP <= 0 {
		params.HeatPumpCOP = DefaultParameters().HeatPumpCOP
	}
	return &Generator{factors: factors, subsidies: rules.Clone(), params: params}
}

// Parameters returns the sizing parameters in use.
func (g *Generator) Parameters() Parameters { return g.params }

// Scenarios returns every measure applicable to the building. Measures whose
// preconditions are not met are skipped silently.
func (g *Generator) Scenarios(b model.Building) []model.Scenario {
	var out []model.Scenario
	switch b.Heating {
	case model.HeatingGas:
		out = append(out, g.mustBuild(model.RenovationHeatingGasToHP, b))
	case model.HeatingOil:
		out = append(out, g.mustBuild(model.RenovationHeatingOilToHP, b))
	}
	if b.HasFloorArea() {
		for _, id := range []string{model.RenovationFacade, model.RenovationRoof, model.RenovationWindows} {
			out = append(out, g.mustBuild(id, b))
		}
	}
	out = append(out, g.PV(b, 0))
	if b.Heating != model.HeatingSolar && b.HeatingKWh > 0 {
		out = append(out, g.mustBuild(model.RenovationSolarThermal, b))
	}
	return out
}

func (g *Generator) mustBuild(id string, b model.Building) model.Scenario {
	s, err := g.Build(id, b)
	if err != nil {
		// preconditions are checked by the caller
		panic(err)
	}
	return s
}

// Build prices one measure for the building. It fails with
// ErrUnknownRenovation, ErrNotApplicable or a *MissingAttributeError.
func (g *Generator) Build(id string, b model.Building) (model.Scenario, error) {
	def, ok := Lookup(id)
	if !ok {
		return model.Scenario{}, fmt.Errorf("%w: %q", ErrUnknownRenovation, id)
	}
	switch def.Category {
	case model.CategoryHeating:
		return g.heatingReplacement(def, b)
	case model.CategoryEnvelope:
		return g.envelope(def, b)
	case model.CategoryGeneration:
		return g.PV(b, 0), nil
	case model.CategoryHotWater:
		return g.solarThermal(def, b)
	}
	return model.Scenario{}, fmt.Errorf("%w: %q", ErrUnknownRenovation, id)
}

func (g *Generator) heatingReplacement(def Definition, b model.Building) (model.Scenario, error) {
	want := model.HeatingGas
	if def.ID == model.RenovationHeatingOilToHP {
		want = model.HeatingOil
	}
	if b.Heating != want {
		return model.Scenario{}, fmt.Errorf("%w: %s on %s heating", ErrNotApplicable, def.ID, b.HeatingName())
	}
	newKWh := b.HeatingKWh / g.params.HeatPumpCOP
	oldKg := b.HeatingKWh * g.factors.HeatingFactor(b.Heating)
	newKg := newKWh * g.factors.HeatingFactor(def.NewHeating)
	saved := oldKg - newKg
	var pct float64
	if oldKg > 0 {
		pct = saved / oldKg * 100
	}
	s := g.base(def, def.UnitCostCHF)
	s.CO2SavingsKg = saved
	s.CO2SavingsPercent = pct
	s.Effect = model.HeatingReplacement{
		NewHeating:        def.NewHeating,
		COP:               g.params.HeatPumpCOP,
		NewConsumptionKWh: newKWh,
	}
	return g.subsidize(s, 0, 0), nil
}

func (g *Generator) envelope(def Definition, b model.Building) (model.Scenario, error) {
	if !b.HasFloorArea() {
		return model.Scenario{}, &MissingAttributeError{BuildingID: b.ID, RenovationID: def.ID, Attribute: "floor area"}
	}
	area := b.FloorAreaM2 * def.AreaFactor
	savedKWh := b.HeatingKWh * def.SavingsPercent / 100
	s := g.base(def, def.UnitCostCHF*area)
	s.CO2SavingsKg = savedKWh * g.factors.HeatingFactor(b.Heating)
	s.CO2SavingsPercent = def.SavingsPercent
	s.Effect = model.EnergySavings{
		SavingsPercent:   def.SavingsPercent,
		EnergySavingsKWh: savedKWh,
		AreaM2:           area,
	}
	return g.subsidize(s, area, 0), nil
}

// PV prices a photovoltaic system. A non-positive kwp sizes the system from
// the roof area (floor area × roof factor) or uses the default size when the
// floor area is unknown.
func (g *Generator) PV(b model.Building, kwp float64) model.Scenario {
	def, _ := Lookup(model.RenovationSolarPV)
	if kwp <= 0 {
		kwp = g.params.PVDefaultKWp
		if b.HasFloorArea() {
			kwp = b.FloorAreaM2 * g.params.RoofAreaFactor / 100 * g.params.PVKWpPer100M2
		}
	}
	yield := kwp * g.params.PVYieldKWhPerKWp
	self := yield * g.params.PVSelfConsumptionPct / 100
	s := g.base(def, def.UnitCostCHF*kwp)
	s.CO2SavingsKg = self * g.factors.GridFactor()
	if total := emissions.ComputeBuilding(b, g.factors).TotalKg; total > 0 {
		s.CO2SavingsPercent = s.CO2SavingsKg / total * 100
	}
	s.Effect = model.GenerationAsset{CapacityKWp: kwp, YieldKWh: yield, SelfConsumedKWh: self}
	return g.subsidize(s, 0, kwp)
}

func (g *Generator) solarThermal(def Definition, b model.Building) (model.Scenario, error) {
	if b.Heating == model.HeatingSolar {
		return model.Scenario{}, fmt.Errorf("%w: %s on solar heating", ErrNotApplicable, def.ID)
	}
	pct := g.params.HotWaterSharePct * g.params.SolarThermalCoverPct / 100
	savedKWh := b.HeatingKWh * pct / 100
	s := g.base(def, def.UnitCostCHF)
	s.CO2SavingsKg = savedKWh * g.factors.HeatingFactor(b.Heating)
	s.CO2SavingsPercent = pct
	s.Effect = model.EnergySavings{SavingsPercent: pct, EnergySavingsKWh: savedKWh}
	return g.subsidize(s, 0, 0), nil
}

func (g *Generator) base(def Definition, gross float64) model.Scenario {
	return model.Scenario{
		RenovationID:       def.ID,
		Name:               def.Name,
		Category:           def.Category,
		Description:        def.Description,
		GrossInvestmentCHF: gross,
		NetInvestmentCHF:   gross,
		LifetimeYears:      def.LifetimeYears,
	}
}

func (g *Generator) subsidize(s model.Scenario, area, kwp float64) model.Scenario {
	return s.WithSubsidy(g.subsidies.Compute(subsidy.Request{
		RenovationID:       s.RenovationID,
		GrossInvestmentCHF: s.GrossInvestmentCHF,
		AreaM2:             area,
		CapacityKWp:        kwp,
	}))
}
