package emissions

import "github.com/kilianp07/co2path/core/model"

// Result holds the yearly emissions of one building.
type Result struct {
	HeatingKg     float64
	ElectricityKg float64
	TotalKg       float64
	TotalT        float64
}

// Compute returns the emissions caused by the given heating and electricity
// consumption. Heating types without a factor use the table's fallback.
func Compute(heatingKWh, electricityKWh float64, heating model.HeatingType, t FactorTable) Result {
	heat := heatingKWh * t.HeatingFactor(heating)
	elec := electricityKWh * t.GridFactor()
	total := heat + elec
	return Result{
		HeatingKg:     heat,
		ElectricityKg: elec,
		TotalKg:       total,
		TotalT:        total / 1000,
	}
}

// ComputeBuilding is Compute applied to a building record.
func ComputeBuilding(b model.Building, t FactorTable) Result {
	return Compute(b.HeatingKWh, b.ElectricityKWh, b.Heating, t)
}

// Record pairs a building row with its emissions.
type Record struct {
	Building model.Building
	Result
}

// ComputeAll computes emissions for every row, preserving input order.
func ComputeAll(buildings []model.Building, t FactorTable) []Record {
	out := make([]Record, len(buildings))
	for i, b := range buildings {
		out[i] = Record{Building: b, Result: ComputeBuilding(b, t)}
	}
	return out
}
