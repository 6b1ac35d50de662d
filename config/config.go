package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/co2path/core/catalog"
	"github.com/kilianp07/co2path/core/metrics"
	"github.com/kilianp07/co2path/core/ranking"
	"github.com/kilianp07/co2path/core/subsidy"
)

// EnvPrefix is the prefix of environment overrides. Nested keys are separated
// by a double underscore: CO2_ASSUMPTIONS__CO2_TAX_CHF_PER_T=200.
const EnvPrefix = "CO2_"

type Config struct {
	Emissions   EmissionsConfig    `json:"emissions"`
	Assumptions AssumptionsConfig  `json:"assumptions"`
	Catalog     catalog.Parameters `json:"catalog"`
	Subsidies   subsidy.Rules      `json:"subsidies"`
	Ranking     ranking.Weights    `json:"ranking"`
	Sensitivity SensitivityConfig  `json:"sensitivity"`
	Store       StoreConfig        `json:"store"`
	Metrics     metrics.Config     `json:"metrics"`
	API         ServerConfig       `json:"api"`
	Prometheus  ServerConfig       `json:"prometheus"`
	Log         LogConfig          `json:"log"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Emissions:   DefaultEmissions(),
		Assumptions: DefaultAssumptions(),
		Catalog:     catalog.DefaultParameters(),
		Subsidies:   subsidy.DefaultRules(),
		Ranking:     ranking.DefaultWeights(),
		Sensitivity: DefaultSensitivity(),
	}
}

// Load reads the configuration file at path and applies environment
// overrides on top of the defaults. An empty path skips the file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}
	// Optional environment overrides
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults fills the sections whose zero value is unusable.
func (c *Config) SetDefaults() {
	c.Store.SetDefaults()
	c.API.SetDefaults(":8080")
	c.Prometheus.SetDefaults(":9100")
	c.Log.SetDefaults()
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Emissions.Validate(); err != nil {
		return fmt.Errorf("emissions: %w", err)
	}
	if err := c.Assumptions.Validate(); err != nil {
		return fmt.Errorf("assumptions: %w", err)
	}
	if err := validateCatalog(c.Catalog); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	if err := validateSubsidies(c.Subsidies); err != nil {
		return fmt.Errorf("subsidies: %w", err)
	}
	if err := validateWeights(c.Ranking); err != nil {
		return fmt.Errorf("ranking: %w", err)
	}
	if err := c.Sensitivity.Validate(); err != nil {
		return fmt.Errorf("sensitivity: %w", err)
	}
	if err := c.Store.Validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}
