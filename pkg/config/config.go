// Package config loads the simulator's YAML tuning file
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"signalbox/pkg/block"
)

// Config is the full tuning file
type Config struct {
	Signals SignalsConfig `yaml:"signals"`
	Sim     SimConfig     `yaml:"sim"`
}

// SignalsConfig tunes the block engine
type SignalsConfig struct {
	PathProtectedCrossings bool `yaml:"path_protected_crossings"`
	MaxSignalEvaluations   uint `yaml:"max_signal_evaluations"`
}

// SimConfig tunes the simulator loop
type SimConfig struct {
	Steps       int `yaml:"steps"`
	StepDelayMS int `yaml:"step_delay_ms"`
}

// Default returns the stock configuration
func Default() Config {
	stock := block.DefaultSettings()
	return Config{
		Signals: SignalsConfig{
			PathProtectedCrossings: stock.PathProtectedCrossings,
			MaxSignalEvaluations:   stock.MaxSignalEvaluations,
		},
		Sim: SimConfig{
			Steps:       50,
			StepDelayMS: 200,
		},
	}
}

// Load reads a YAML tuning file over the defaults. A missing path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// BlockSettings converts the signals section to engine settings
func (c Config) BlockSettings() block.Settings {
	return block.Settings{
		PathProtectedCrossings: c.Signals.PathProtectedCrossings,
		MaxSignalEvaluations:   c.Signals.MaxSignalEvaluations,
	}
}
