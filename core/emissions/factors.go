package emissions

import (
	"maps"

	"github.com/kilianp07/co2path/core/model"
)

// KBOB 2022/1 emission factors in kg CO2e per kWh, upstream chain included.
const (
	DefaultFallbackFactor = 0.050 // Swiss electricity mix
	DefaultGridFactor     = 0.122 // Swiss consumer mix
)

// FactorTable maps heating types to emission factors. It is immutable once
// built; accessors return copies.
type FactorTable struct {
	factors  map[model.HeatingType]float64
	fallback float64
	grid     float64
}

// DefaultFactors returns the KBOB factors per heating type.
func DefaultFactors() map[model.HeatingType]float64 {
	return map[model.HeatingType]float64{
		model.HeatingGas:          0.228,
		model.HeatingOil:          0.302,
		model.HeatingDistrictHeat: 0.095,
		model.HeatingHeatPump:     0.050,
		model.HeatingPellets:      0.026,
		model.HeatingSolar:        0.000,
	}
}

// NewFactorTable builds a table from the given factors. The map is copied.
func NewFactorTable(factors map[model.HeatingType]float64, fallback, grid float64) FactorTable {
	return FactorTable{factors: maps.Clone(factors), fallback: fallback, grid: grid}
}

// DefaultFactorTable returns the table with the KBOB defaults.
func DefaultFactorTable() FactorTable {
	return NewFactorTable(DefaultFactors(), DefaultFallbackFactor, DefaultGridFactor)
}

// Lookup returns the factor configured for h and whether one was configured.
func (t FactorTable) Lookup(h model.HeatingType) (float64, bool) {
	f, ok := t.factors[h]
	return f, ok
}

// HeatingFactor returns the factor for h, or the fallback factor when h has
// no entry.
func (t FactorTable) HeatingFactor(h model.HeatingType) float64 {
	if f, ok := t.factors[h]; ok {
		return f
	}
	return t.fallback
}

// FallbackFactor is used for heating types without an entry.
func (t FactorTable) FallbackFactor() float64 { return t.fallback }

// GridFactor is the factor of purchased grid electricity.
func (t FactorTable) GridFactor() float64 { return t.grid }

// Factors returns a copy of the per-type factors.
func (t FactorTable) Factors() map[model.HeatingType]float64 {
	return maps.Clone(t.factors)
}
