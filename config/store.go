package config

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/kilianp07/co2path/infra/store"
)

// StoreConfig defines where analysis results are persisted.
type StoreConfig struct {
	// Backend selects the store type: "jsonl" or "sqlite".
	Backend string `json:"backend"`
	// Path is the file location of the store.
	Path string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *StoreConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "jsonl"
	}
	if c.Path == "" {
		if c.Backend == "sqlite" {
			c.Path = "co2path.db"
		} else {
			c.Path = "co2path-results.jsonl"
		}
	}
}

// Validate checks mandatory fields.
func (c StoreConfig) Validate() error {
	if !slices.Contains(store.Backends(), c.Backend) {
		return fmt.Errorf("unknown backend %s (known: %v)", c.Backend, store.Backends())
	}
	if c.Path == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}

// ServerConfig holds a listen address.
type ServerConfig struct {
	Addr string `json:"addr"`
}

func (c *ServerConfig) SetDefaults(addr string) {
	if c.Addr == "" {
		c.Addr = addr
	}
}

// LogConfig sets the global log level.
type LogConfig struct {
	Level string `json:"level"`
}

func (c *LogConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
}

func (c LogConfig) Validate() error {
	_, err := zerolog.ParseLevel(c.Level)
	return err
}
