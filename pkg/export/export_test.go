package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/kilianp07/co2path/core/finance"
	"github.com/kilianp07/co2path/core/model"
)

func evaluated() []model.EvaluatedScenario {
	return []model.EvaluatedScenario{
		{
			Scenario: model.Scenario{
				RenovationID:       model.RenovationHeatingGasToHP,
				Name:               "Heating replacement gas to heat pump",
				Category:           model.CategoryHeating,
				GrossInvestmentCHF: 50000,
				SubsidyCHF:         11000,
				NetInvestmentCHF:   39000,
				CO2SavingsKg:       2137.1428571,
			},
			BuildingID:        "B1",
			Savings:           model.AnnualSavings{TotalCHF: 885.0285714},
			AmortizationYears: 44.066614,
			NPVCHF:            -19012.345,
			ROIPercent:        2.26930,
			PriorityScore:     30.555,
			Rank:              1,
		},
		{
			Scenario: model.Scenario{
				RenovationID:     model.RenovationWindows,
				Name:             "Window replacement",
				Category:         model.CategoryEnvelope,
				NetInvestmentCHF: 10000,
			},
			BuildingID:        "B2",
			AmortizationYears: math.Inf(1),
			Rank:              2,
		},
	}
}

func TestNewScenario(t *testing.T) {
	rows := Scenarios(evaluated())
	require.Len(t, rows, 2)
	assert.Equal(t, 2137.143, rows[0].CO2SavingsKg)
	assert.Equal(t, 885.03, rows[0].AnnualSavingsCHF)
	require.NotNil(t, rows[0].AmortizationYears)
	assert.Equal(t, 44.07, *rows[0].AmortizationYears)
	assert.Equal(t, "highest", rows[0].Tier)
	assert.Nil(t, rows[1].AmortizationYears)
	assert.Equal(t, "low", rows[1].Tier)
}

func TestWriteJSON_InfiniteAmortizationIsNull(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, Scenarios(evaluated())))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, 44.07, decoded[0]["amortization_years"])
	v, ok := decoded[1]["amortization_years"]
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestWriteScenariosCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteScenariosCSV(&buf, Scenarios(evaluated())))

	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, scenarioHeader, recs[0])
	assert.Equal(t, "39000.00", recs[1][7])
	assert.Equal(t, "2137.143", recs[1][8])
	assert.Equal(t, "44.07", recs[1][10])
	assert.Equal(t, "-19012.35", recs[1][11])
	assert.Equal(t, "inf", recs[2][10])
}

func TestWriteSensitivity(t *testing.T) {
	rows := SensitivityRows([]finance.SensitivityRow{
		{Parameter: finance.ParamEnergyPrice, Multiplier: 1.5, Label: "energy price 1.5x", AmortizationYears: 20.123, NPVCHF: 1000, AnnualSavingsCHF: 1500},
		{Parameter: finance.ParamSubsidy, Multiplier: 0, Label: "subsidy 0x", AmortizationYears: math.Inf(1)},
	})
	var buf bytes.Buffer
	require.NoError(t, WriteSensitivityCSV(&buf, rows))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "parameter,multiplier,label"))
	assert.Contains(t, out, "energy_price,1.5,energy price 1.5x,1500.00,20.12,1000.00,0.00")
	assert.Contains(t, out, "subsidy,0,subsidy 0x,0.00,inf,0.00,0.00")
}

func TestWriteCashFlowsCSV(t *testing.T) {
	var buf bytes.Buffer
	flows := []model.CashFlow{{Year: 0, CashFlowCHF: -1000, CumulativeCHF: -1000}, {Year: 1, CashFlowCHF: 250.5, CumulativeCHF: -749.5}}
	require.NoError(t, WriteCashFlowsCSV(&buf, flows))
	assert.Equal(t, "year,cash_flow_chf,cumulative_chf\n0,-1000.00,-1000.00\n1,250.50,-749.50\n", buf.String())
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, Scenarios(evaluated())[1:]))

	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "B2", decoded[0]["building_id"])
	assert.Nil(t, decoded[0]["amortization_years"])
}

func TestRound(t *testing.T) {
	assert.Equal(t, 1.24, Round(1.235, 2))
	assert.Equal(t, -1.24, Round(-1.235, 2))
	assert.True(t, math.IsInf(Round(math.Inf(1), 2), 1))
}
