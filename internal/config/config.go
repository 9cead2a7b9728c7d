package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt                   = 0.016
	DefaultDuration             = 30.0
	DefaultFrameRate            = 60
	DefaultHalfWidth            = 400.0
	DefaultHalfHeight           = 300.0
	DefaultConstraintIterations = 4
	DefaultCellSize             = 50.0
)

type Config struct {
	Scene                string      `yaml:"scene"`
	Dt                   float64     `yaml:"dt"`
	Duration             float64     `yaml:"duration"`
	FrameRate            int         `yaml:"frame_rate"`
	ConstraintIterations int         `yaml:"constraint_iterations"`
	CellSize             float64     `yaml:"cell_size"`
	World                WorldConfig `yaml:"world"`
}

type WorldConfig struct {
	HalfWidth  float64 `yaml:"half_width"`
	HalfHeight float64 `yaml:"half_height"`
}

func DefaultConfig() *Config {
	return &Config{
		Scene:                "snake",
		Dt:                   DefaultDt,
		Duration:             DefaultDuration,
		FrameRate:            DefaultFrameRate,
		ConstraintIterations: DefaultConstraintIterations,
		CellSize:             DefaultCellSize,
		World: WorldConfig{
			HalfWidth:  DefaultHalfWidth,
			HalfHeight: DefaultHalfHeight,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
