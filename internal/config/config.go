package config

import (
	"os"
	"strconv"

	"trialsim/domain/trial"
	"trialsim/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Scenario trial.Scenario
	Server   ServerConfig
	// Workers bounds concurrent replications; zero means one per CPU.
	Workers int
}

// ServerConfig holds HTTP surface settings
type ServerConfig struct {
	Port string
}

// Load reads configuration from environment variables, applies defaults and
// validates the scenario before anything runs.
func Load() (*Config, error) {
	cfg := &Config{
		Scenario: DefaultScenario(),
		Server:   ServerConfig{Port: getEnv("PORT", "8080")},
		Workers:  getEnvInt("TRIAL_WORKERS", 0),
	}

	cfg.Scenario.Prevalence = getEnvFloat("TRIAL_PREVALENCE", cfg.Scenario.Prevalence)
	cfg.Scenario.AccrualRate = getEnvFloat("TRIAL_ACCRUAL_RATE", cfg.Scenario.AccrualRate)
	cfg.Scenario.MedianPositiveExperimental = getEnvFloat("TRIAL_MEDIAN_POS_EXP", cfg.Scenario.MedianPositiveExperimental)
	cfg.Scenario.MedianNegativeExperimental = getEnvFloat("TRIAL_MEDIAN_NEG_EXP", cfg.Scenario.MedianNegativeExperimental)
	cfg.Scenario.MedianPositiveControl = getEnvFloat("TRIAL_MEDIAN_POS_CTRL", cfg.Scenario.MedianPositiveControl)
	cfg.Scenario.MedianNegativeControl = getEnvFloat("TRIAL_MEDIAN_NEG_CTRL", cfg.Scenario.MedianNegativeControl)
	cfg.Scenario.SampleSizePositive = getEnvInt("TRIAL_SAMPLE_SIZE_POS", cfg.Scenario.SampleSizePositive)
	cfg.Scenario.SampleSizePositiveMax = getEnvInt("TRIAL_SAMPLE_SIZE_POS_MAX", cfg.Scenario.SampleSizePositiveMax)
	cfg.Scenario.SampleSizeNegative = getEnvInt("TRIAL_SAMPLE_SIZE_NEG", cfg.Scenario.SampleSizeNegative)
	cfg.Scenario.AlphaNegative = getEnvFloat("TRIAL_ALPHA_NEG", cfg.Scenario.AlphaNegative)
	cfg.Scenario.AlphaPositive = getEnvFloat("TRIAL_ALPHA_POS", cfg.Scenario.AlphaPositive)
	cfg.Scenario.Replications = getEnvInt("TRIAL_REPLICATIONS", cfg.Scenario.Replications)
	cfg.Scenario.Seed = int64(getEnvInt("TRIAL_SEED", int(cfg.Scenario.Seed)))

	if err := cfg.Scenario.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	if cfg.Workers < 0 {
		return nil, errors.ConfigInvalid("TRIAL_WORKERS must be non-negative")
	}
	return cfg, nil
}

// DefaultScenario is the validated reference scenario: a predictive-marker
// assumption (7 vs 4 months in the positive stratum, 6 vs 4 in the
// negative) at 50% prevalence.
func DefaultScenario() trial.Scenario {
	return trial.Scenario{
		Prevalence:                 0.5,
		AccrualRate:                20,
		MedianPositiveExperimental: 7,
		MedianNegativeExperimental: 6,
		MedianPositiveControl:      4,
		MedianNegativeControl:      4,
		SampleSizePositive:         80,
		SampleSizePositiveMax:      200,
		SampleSizeNegative:         160,
		AlphaNegative:              0.05,
		AlphaPositive:              0.05,
		Replications:               10000,
		Seed:                       42,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
