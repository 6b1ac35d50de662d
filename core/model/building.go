package model

import (
	"strings"
)

// HeatingType identifies the fuel or system used for space heating.
type HeatingType int

const (
	HeatingUnknown HeatingType = iota
	HeatingGas
	HeatingOil
	HeatingDistrictHeat
	HeatingHeatPump
	HeatingPellets
	HeatingSolar
)

// HeatingTypes lists every known heating type in display order.
var HeatingTypes = []HeatingType{
	HeatingGas,
	HeatingOil,
	HeatingDistrictHeat,
	HeatingHeatPump,
	HeatingPellets,
	HeatingSolar,
}

// String returns a human-readable representation of the heating type.
func (t HeatingType) String() string {
	switch t {
	case HeatingGas:
		return "Gas"
	case HeatingOil:
		return "Oil"
	case HeatingDistrictHeat:
		return "DistrictHeat"
	case HeatingHeatPump:
		return "HeatPump"
	case HeatingPellets:
		return "Pellets"
	case HeatingSolar:
		return "Solar"
	default:
		return "Unknown"
	}
}

// Key returns the snake_case identifier used in configuration files.
func (t HeatingType) Key() string {
	switch t {
	case HeatingGas:
		return "gas"
	case HeatingOil:
		return "oil"
	case HeatingDistrictHeat:
		return "district_heat"
	case HeatingHeatPump:
		return "heat_pump"
	case HeatingPellets:
		return "pellets"
	case HeatingSolar:
		return "solar"
	default:
		return "unknown"
	}
}

// IsFossil reports whether the heating burns gas or oil.
func (t HeatingType) IsFossil() bool {
	return t == HeatingGas || t == HeatingOil
}

var heatingAliases = map[string]HeatingType{
	"gas":           HeatingGas,
	"erdgas":        HeatingGas,
	"oil":           HeatingOil,
	"öl":            HeatingOil,
	"oel":           HeatingOil,
	"heizöl":        HeatingOil,
	"districtheat":  HeatingDistrictHeat,
	"district_heat": HeatingDistrictHeat,
	"district heat": HeatingDistrictHeat,
	"fernwärme":     HeatingDistrictHeat,
	"fernwaerme":    HeatingDistrictHeat,
	"heatpump":      HeatingHeatPump,
	"heat_pump":     HeatingHeatPump,
	"heat pump":     HeatingHeatPump,
	"wärmepumpe":    HeatingHeatPump,
	"waermepumpe":   HeatingHeatPump,
	"pellets":       HeatingPellets,
	"holzpellets":   HeatingPellets,
	"solar":         HeatingSolar,
	"solarthermie":  HeatingSolar,
}

// ParseHeatingType maps a label to a HeatingType. English labels, config keys
// and the German labels of legacy datasets are accepted. Unrecognised labels
// yield HeatingUnknown and false.
func ParseHeatingType(s string) (HeatingType, bool) {
	t, ok := heatingAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return HeatingUnknown, false
	}
	return t, true
}

// Building is one row of the input dataset: the energy use of a building in a
// given year. FloorAreaM2 and ConstructionYear are optional; zero means absent.
type Building struct {
	ID               string
	Year             int
	Heating          HeatingType
	HeatingLabel     string  // label as found in the input, kept for diagnostics
	HeatingKWh       float64 // annual heating energy consumption
	ElectricityKWh   float64 // annual electricity consumption
	FloorAreaM2      float64
	ConstructionYear int
}

// HasFloorArea reports whether a positive floor area is known.
func (b Building) HasFloorArea() bool {
	return b.FloorAreaM2 > 0
}

// HasConstructionYear reports whether the construction year is known.
func (b Building) HasConstructionYear() bool {
	return b.ConstructionYear > 0
}

// HeatingName returns the input label when present, the canonical name otherwise.
func (b Building) HeatingName() string {
	if b.HeatingLabel != "" {
		return b.HeatingLabel
	}
	return b.Heating.String()
}
