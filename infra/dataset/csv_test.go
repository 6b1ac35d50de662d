package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/co2path/core/emissions"
	"github.com/kilianp07/co2path/core/model"
)

func TestReadCSV(t *testing.T) {
	data := `building_id,year,heating_type,heating_kwh,electricity_kwh,floor_area_m2,construction_year
B1,2024,Gas,10000,5000,200,1975
B2,2024,Fernwärme,8000,3000,,
B3,2024,Coal,1000,100,50,2001
`
	got, issues, err := ReadCSV(strings.NewReader(data))
	require.NoError(t, err)
	assert.Empty(t, issues)
	require.Len(t, got, 3)

	assert.Equal(t, model.Building{
		ID: "B1", Year: 2024, Heating: model.HeatingGas, HeatingLabel: "Gas",
		HeatingKWh: 10000, ElectricityKWh: 5000, FloorAreaM2: 200, ConstructionYear: 1975,
	}, got[0])
	assert.Equal(t, model.HeatingDistrictHeat, got[1].Heating)
	assert.False(t, got[1].HasFloorArea())
	assert.False(t, got[1].HasConstructionYear())
	assert.Equal(t, model.HeatingUnknown, got[2].Heating)
	assert.Equal(t, "Coal", got[2].HeatingLabel)
}

func TestReadCSV_GermanHeaders(t *testing.T) {
	data := "gebaeude_id,jahr,heizung_typ,jahresverbrauch_kwh,strom_kwh_jahr,flaeche_m2,baujahr\nA,2023,Öl,20000,4000,150,1960\n"
	got, _, err := ReadCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].ID)
	assert.Equal(t, model.HeatingOil, got[0].Heating)
	assert.Equal(t, 150.0, got[0].FloorAreaM2)
	assert.Equal(t, 1960, got[0].ConstructionYear)
}

func TestReadCSV_MissingColumns(t *testing.T) {
	data := "building_id,year,heating_type\nB1,2024,Gas\n"
	got, issues, err := ReadCSV(strings.NewReader(data))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumns))
	assert.Nil(t, got)
	require.Len(t, issues, 1)
	assert.Equal(t, emissions.SeverityBlocking, issues[0].Severity)
	assert.Contains(t, issues[0].Message, "heating_kwh, electricity_kwh")
}

func TestReadCSV_BadValues(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"non numeric", "B1,2024,Gas,lots,100"},
		{"empty id", ",2024,Gas,100,100"},
		{"empty required", "B1,2024,Gas,,100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := "building_id,year,heating_type,heating_kwh,electricity_kwh\n" + tt.row + "\n"
			_, _, err := ReadCSV(strings.NewReader(data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "line 2")
		})
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "buildings.csv")
	require.NoError(t, os.WriteFile(path, []byte("building_id,year,heating_type,heating_kwh,electricity_kwh\nB1,2024,Oil,1,2\n"), 0o644))
	got, _, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, got, 1)

	_, _, err = ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
