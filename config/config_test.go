package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/co2path/core/model"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "config.yaml", `emissions:
  factors:
    gas: 0.25
assumptions:
  co2_tax_chf_per_t: 200
  prices:
    oil: 0.15
catalog:
  heat_pump_cop: 4
subsidies:
  solar_pv:
    per_kwp_chf: 400
    max_chf: 20000
ranking:
  co2_efficiency: 1
  amortization: 0
  npv: 0
  absolute_co2: 0
store:
  backend: sqlite
metrics:
  sinks:
    - type: "nop"
api:
  addr: ":9000"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"emissions.factors.gas", cfg.Emissions.Factors["gas"], 0.25},
		{"emissions.factors.oil kept", cfg.Emissions.Factors["oil"], 0.302},
		{"emissions.grid_factor", cfg.Emissions.GridFactor, 0.122},
		{"assumptions.co2_tax", cfg.Assumptions.CO2TaxCHFPerT, 200.0},
		{"assumptions.prices.oil", cfg.Assumptions.Prices["oil"], 0.15},
		{"assumptions.discount kept", cfg.Assumptions.DiscountRatePct, 2.0},
		{"catalog.heat_pump_cop", cfg.Catalog.HeatPumpCOP, 4.0},
		{"catalog.pv_yield kept", cfg.Catalog.PVYieldKWhPerKWp, 1000.0},
		{"subsidies.solar_pv", cfg.Subsidies[model.RenovationSolarPV].PerKWpCHF, 400.0},
		{"subsidies.facade kept", cfg.Subsidies[model.RenovationFacade].PerM2CHF, 40.0},
		{"ranking.co2_efficiency", cfg.Ranking.CO2Efficiency, 1.0},
		{"store.backend", cfg.Store.Backend, "sqlite"},
		{"store.path", cfg.Store.Path, "co2path.db"},
		{"metrics_sink", len(cfg.Metrics.Sinks) == 1 && cfg.Metrics.Sinks[0].Type == "nop", true},
		{"api.addr", cfg.API.Addr, ":9000"},
		{"prometheus.addr", cfg.Prometheus.Addr, ":9100"},
		{"log.level", cfg.Log.Level, "info"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "jsonl", cfg.Store.Backend)
	assert.Equal(t, "co2path-results.jsonl", cfg.Store.Path)
	assert.Equal(t, Default().Sensitivity, cfg.Sensitivity)

	table, err := cfg.Emissions.Table()
	require.NoError(t, err)
	assert.Equal(t, 0.228, table.HeatingFactor(model.HeatingGas))

	a, err := cfg.Assumptions.Assumptions()
	require.NoError(t, err)
	assert.Equal(t, 0.13, a.Prices.Price(model.HeatingOil))
	assert.Equal(t, 25, a.HorizonYears)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CO2_ASSUMPTIONS__CO2_TAX_CHF_PER_T", "300")
	t.Setenv("CO2_STORE__PATH", "/tmp/results.jsonl")
	path := writeFile(t, "config.json", `{"assumptions": {"co2_tax_chf_per_t": 150}}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 300.0, cfg.Assumptions.CO2TaxCHFPerT)
	assert.Equal(t, "/tmp/results.jsonl", cfg.Store.Path)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		data string
	}{
		{"format", "config.toml", "x = 1"},
		{"heating key", "c.yaml", "emissions:\n  factors:\n    coal: 0.4\n"},
		{"renovation id", "c.yaml", "subsidies:\n  geothermal:\n    flat_chf: 10\n"},
		{"store backend", "c.yaml", "store:\n  backend: postgres\n"},
		{"weights", "c.yaml", "ranking:\n  co2_efficiency: -1\n"},
		{"cop", "c.yaml", "catalog:\n  heat_pump_cop: 0\n"},
		{"log level", "c.yaml", "log:\n  level: loud\n"},
		{"tax", "c.yaml", "assumptions:\n  co2_tax_chf_per_t: -5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.data)
			if _, err := Load(path); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestStoreConfig(t *testing.T) {
	var c StoreConfig
	c.SetDefaults()
	require.NoError(t, c.Validate())
	assert.Equal(t, "jsonl", c.Backend)

	c = StoreConfig{Backend: "sqlite"}
	require.Error(t, c.Validate())
	c.SetDefaults()
	require.NoError(t, c.Validate())
}
