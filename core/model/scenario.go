package model

// Category groups renovation measures by the part of the building they touch.
type Category int

const (
	CategoryHeating Category = iota
	CategoryEnvelope
	CategoryGeneration
	CategoryHotWater
	CategoryCombination
)

// String returns a human-readable representation of the category.
func (c Category) String() string {
	switch c {
	case CategoryHeating:
		return "Heating"
	case CategoryEnvelope:
		return "Envelope"
	case CategoryGeneration:
		return "Generation"
	case CategoryHotWater:
		return "HotWater"
	case CategoryCombination:
		return "Combination"
	default:
		return "unknown"
	}
}

// Effect is the technical effect of a scenario on the building's energy use.
// It is one of HeatingReplacement, EnergySavings, GenerationAsset or
// Combination.
type Effect interface {
	isEffect()
}

// HeatingReplacement swaps the heating system. NewConsumptionKWh is the energy
// the new system draws per year (for a heat pump: old heat demand / COP).
type HeatingReplacement struct {
	NewHeating        HeatingType
	COP               float64
	NewConsumptionKWh float64
}

// EnergySavings reduces the consumption of the building's current fuel by a
// fixed share. Envelope measures and solar thermal collectors use this shape.
type EnergySavings struct {
	SavingsPercent   float64
	EnergySavingsKWh float64
	AreaM2           float64 // treated area, zero when not area based
}

// GenerationAsset produces electricity on site. Only SelfConsumedKWh offsets
// purchased grid electricity.
type GenerationAsset struct {
	CapacityKWp     float64
	YieldKWh        float64
	SelfConsumedKWh float64
}

// Combination bundles several individually computed measures.
type Combination struct {
	Measures []Scenario
}

func (HeatingReplacement) isEffect() {}
func (EnergySavings) isEffect()      {}
func (GenerationAsset) isEffect()    {}
func (Combination) isEffect()        {}

// Scenario is one renovation option for one building with its costs and
// yearly CO2 savings.
type Scenario struct {
	RenovationID       string
	Name               string
	Category           Category
	Description        string
	GrossInvestmentCHF float64
	SubsidyCHF         float64
	NetInvestmentCHF   float64
	CO2SavingsKg       float64 // per year
	CO2SavingsPercent  float64
	LifetimeYears      int
	Effect             Effect
}

// WithSubsidy returns a copy of the scenario carrying the given subsidy. The
// net investment is recomputed as gross - subsidy and never drops below zero.
func (s Scenario) WithSubsidy(subsidy float64) Scenario {
	s.SubsidyCHF = subsidy
	s.NetInvestmentCHF = max(0, s.GrossInvestmentCHF-subsidy)
	return s
}

// Measures returns the constituent scenarios of a combination, or the
// scenario itself otherwise.
func (s Scenario) Measures() []Scenario {
	if c, ok := s.Effect.(Combination); ok {
		return c.Measures
	}
	return []Scenario{s}
}
