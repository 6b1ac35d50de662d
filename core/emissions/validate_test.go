package emissions

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/co2path/core/model"
)

func TestValidate(t *testing.T) {
	tbl := DefaultFactorTable()
	tests := []struct {
		name      string
		rows      []model.Building
		blocking  bool
		wantField []string
	}{
		{
			name: "clean",
			rows: []model.Building{{ID: "a", Heating: model.HeatingGas, HeatingKWh: 1000, ElectricityKWh: 100}},
		},
		{
			name:      "negative heating",
			rows:      []model.Building{{ID: "a", Heating: model.HeatingGas, HeatingKWh: -1}},
			blocking:  true,
			wantField: []string{"heating_kwh"},
		},
		{
			name:      "negative electricity",
			rows:      []model.Building{{ID: "a", Heating: model.HeatingGas, ElectricityKWh: -5}},
			blocking:  true,
			wantField: []string{"electricity_kwh"},
		},
		{
			name:      "very high consumption",
			rows:      []model.Building{{ID: "a", Heating: model.HeatingOil, HeatingKWh: 600_000}},
			wantField: []string{"heating_kwh"},
		},
		{
			name:      "unknown heating",
			rows:      []model.Building{{ID: "a", HeatingLabel: "Kohle", HeatingKWh: 10}},
			wantField: []string{"heating_type"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := Validate(tt.rows, tbl)
			assert.Equal(t, tt.blocking, HasBlocking(issues))
			require.Len(t, issues, len(tt.wantField))
			for i, f := range tt.wantField {
				assert.Equal(t, f, issues[i].Field)
			}
		})
	}
}

func TestValidateUnknownMentionsLabelAndFallback(t *testing.T) {
	issues := Validate([]model.Building{{ID: "x", HeatingLabel: "Kohle"}}, DefaultFactorTable())
	require.Len(t, issues, 1)
	assert.Equal(t, SeverityAdvisory, issues[0].Severity)
	assert.True(t, strings.Contains(issues[0].Message, "Kohle"))
	assert.True(t, strings.Contains(issues[0].Message, "0.050"))
}
