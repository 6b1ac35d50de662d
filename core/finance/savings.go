package finance

import "github.com/kilianp07/co2path/core/model"

// AnnualSavings returns the first-year savings of a scenario for the building
// it was generated for.
//
// Heating replacements and energy savings are priced against the current
// fuel and earn CO2 tax savings. Generation assets only avoid purchased
// electricity and earn no CO2 tax savings, since the tax applies to heating
// fuels. Combinations sum the savings of their measures.
func AnnualSavings(s model.Scenario, b model.Building, a Assumptions) model.AnnualSavings {
	oldCost := b.HeatingKWh * a.Prices.Price(b.Heating)
	co2Tax := s.CO2SavingsKg / 1000 * a.CO2TaxCHFPerT

	var out model.AnnualSavings
	switch eff := s.Effect.(type) {
	case model.HeatingReplacement:
		newCost := eff.NewConsumptionKWh * a.Prices.Price(eff.NewHeating)
		out = model.AnnualSavings{
			OldEnergyCostCHF:     oldCost,
			NewEnergyCostCHF:     newCost,
			EnergyCostSavingsCHF: oldCost - newCost,
			CO2TaxSavingsCHF:     co2Tax,
		}
	case model.EnergySavings:
		newCost := (b.HeatingKWh - eff.EnergySavingsKWh) * a.Prices.Price(b.Heating)
		out = model.AnnualSavings{
			OldEnergyCostCHF:     oldCost,
			NewEnergyCostCHF:     newCost,
			EnergyCostSavingsCHF: oldCost - newCost,
			CO2TaxSavingsCHF:     co2Tax,
		}
	case model.GenerationAsset:
		out = model.AnnualSavings{EnergyCostSavingsCHF: eff.SelfConsumedKWh * a.Prices.Electricity()}
	case model.Combination:
		for _, m := range eff.Measures {
			part := AnnualSavings(m, b, a)
			out.EnergyCostSavingsCHF += part.EnergyCostSavingsCHF
			out.CO2TaxSavingsCHF += part.CO2TaxSavingsCHF
		}
		out.OldEnergyCostCHF = oldCost
		out.NewEnergyCostCHF = oldCost - out.EnergyCostSavingsCHF
	default:
		out = model.AnnualSavings{CO2TaxSavingsCHF: co2Tax}
	}
	out.TotalCHF = out.EnergyCostSavingsCHF + out.CO2TaxSavingsCHF
	return out
}
