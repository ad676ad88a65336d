// Package config provides configuration loading for the cuisine engine.
// Values come from the embedded defaults, an optional YAML file and then
// CUISINE_* environment variables, in that order.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all engine configuration.
type Config struct {
	Log       LogConfig       `yaml:"log"`
	Builder   BuilderConfig   `yaml:"builder"`
	Nutrition NutritionConfig `yaml:"nutrition"`
	Hardcore  HardcoreConfig  `yaml:"hardcore"`
}

// LogConfig selects the logger verbosity.
type LogConfig struct {
	Level string `yaml:"level"`
}

// BuilderConfig tunes admission and the trait pass.
type BuilderConfig struct {
	MaxIngredients    int     `yaml:"max_ingredients"`
	UnskilledRatio    float64 `yaml:"unskilled_ratio"`
	DefaultServes     int     `yaml:"default_serves"`
	MinServes         int     `yaml:"min_serves"`
	DistinctMaterials int     `yaml:"distinct_materials"`
	UndercookStep     float32 `yaml:"undercook_step"`
}

// NutritionConfig seeds the nutrition pass.
type NutritionConfig struct {
	BaseHunger     int                `yaml:"base_hunger"`
	BaseSaturation float32            `yaml:"base_saturation"`
	VesselWeights  map[string]float32 `yaml:"vessel_weights"`
}

// HardcoreConfig enables the punishing rules.
type HardcoreConfig struct {
	Enable                  bool     `yaml:"enable"`
	BadSkillPunishment      bool     `yaml:"bad_skill_punishment"`
	LowerFoodLevel          bool     `yaml:"lower_food_level"`
	FoodLevelRetainRatio    float64  `yaml:"food_level_retain_ratio"`
	LowerFoodLevelBlacklist []string `yaml:"lower_food_level_blacklist"`
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load reads the embedded defaults, overlays the file at path (if any) and
// then the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	ApplyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the engine cannot work with.
func (c *Config) Validate() error {
	switch {
	case c.Builder.MaxIngredients <= 0:
		return fmt.Errorf("builder.max_ingredients must be positive, got %d", c.Builder.MaxIngredients)
	case c.Builder.UnskilledRatio <= 0 || c.Builder.UnskilledRatio > 1:
		return fmt.Errorf("builder.unskilled_ratio must be in (0, 1], got %v", c.Builder.UnskilledRatio)
	case c.Builder.MinServes < 1:
		return fmt.Errorf("builder.min_serves must be at least 1, got %d", c.Builder.MinServes)
	case c.Builder.DefaultServes < c.Builder.MinServes:
		return fmt.Errorf("builder.default_serves (%d) below min_serves (%d)", c.Builder.DefaultServes, c.Builder.MinServes)
	case c.Hardcore.FoodLevelRetainRatio < 0 || c.Hardcore.FoodLevelRetainRatio > 1:
		return fmt.Errorf("hardcore.food_level_retain_ratio must be in [0, 1], got %v", c.Hardcore.FoodLevelRetainRatio)
	}
	for kind, w := range c.Nutrition.VesselWeights {
		if w <= 0 {
			return fmt.Errorf("nutrition.vessel_weights.%s must be positive, got %v", kind, w)
		}
	}
	return nil
}

// WriteYAML saves the configuration to path.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
