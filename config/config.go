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

	"github.com/aquatherm/poolsim/core/metrics"
	"github.com/aquatherm/poolsim/core/model"
)

// Config is the full service configuration.
type Config struct {
	Pool       model.PoolConfig `json:"pool"`
	Calendar   CalendarConfig   `json:"calendar"`
	Simulation SimulationConfig `json:"simulation"`
	Weather    WeatherConfig    `json:"weather"`
	Metrics    metrics.Config   `json:"metrics"`
	Store      StoreConfig      `json:"store"`
}

// Load reads a YAML or JSON configuration file, applies PS_ environment
// overrides and validates every section.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
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
		return nil, err
	}
	// Optional environment overrides: PS_POOL__VOLUME_M3=600.
	if err := k.Load(env.Provider("PS_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "ps_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Pool.SetDefaults()
	cfg.Calendar.SetDefaults()
	cfg.Simulation.SetDefaults()
	cfg.Store.SetDefaults()
	if err := cfg.Pool.Validate(); err != nil {
		return nil, fmt.Errorf("pool: %w", err)
	}
	if err := cfg.Calendar.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Simulation.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Weather.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
