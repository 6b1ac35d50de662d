package model

// Catalog identifiers of the renovation measures.
const (
	RenovationHeatingGasToHP = "heating_gas_to_hp"
	RenovationHeatingOilToHP = "heating_oil_to_hp"
	RenovationFacade         = "insulation_facade"
	RenovationRoof           = "insulation_roof"
	RenovationWindows        = "windows"
	RenovationSolarPV        = "solar_pv"
	RenovationSolarThermal   = "solar_thermal"
	RenovationHeatPumpPV     = "combo_hp_pv"
	RenovationFullRetrofit   = "combo_full_retrofit"
)
