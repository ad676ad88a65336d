package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variable names.
const (
	EnvLogLevel        = "CUISINE_LOG_LEVEL"
	EnvMaxIngredients  = "CUISINE_MAX_INGREDIENTS"
	EnvDefaultServes   = "CUISINE_DEFAULT_SERVES"
	EnvBaseSaturation  = "CUISINE_BASE_SATURATION"
	EnvHardcore        = "CUISINE_HARDCORE"
	EnvRetainRatio     = "CUISINE_RETAIN_RATIO"
	EnvRetainBlacklist = "CUISINE_RETAIN_BLACKLIST"
)

// ApplyEnv overrides cfg with any CUISINE_* variables that are set.
// Malformed values are ignored.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v, ok := getEnvInt(EnvMaxIngredients); ok && v > 0 {
		cfg.Builder.MaxIngredients = v
	}
	if v, ok := getEnvInt(EnvDefaultServes); ok && v > 0 {
		cfg.Builder.DefaultServes = v
	}
	if v, ok := getEnvFloat(EnvBaseSaturation); ok && v >= 0 {
		cfg.Nutrition.BaseSaturation = float32(v)
	}
	if v, ok := getEnvBool(EnvHardcore); ok {
		cfg.Hardcore.Enable = v
	}
	if v, ok := getEnvFloat(EnvRetainRatio); ok {
		cfg.Hardcore.FoodLevelRetainRatio = v
	}
	if v := os.Getenv(EnvRetainBlacklist); v != "" {
		var ids []string
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
		cfg.Hardcore.LowerFoodLevelBlacklist = ids
	}
}

func getEnvInt(key string) (int, bool) {
	val := os.Getenv(key)
	if val == "" {
		return 0, false
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return n, true
}

func getEnvFloat(key string) (float64, bool) {
	val := os.Getenv(key)
	if val == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func getEnvBool(key string) (bool, bool) {
	val := os.Getenv(key)
	if val == "" {
		return false, false
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, false
	}
	return b, true
}
