package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"benchlab/internal/errors"
	"benchlab/ports"
)

// Config represents the complete engine configuration
type Config struct {
	Analysis AnalysisConfig
	Sampling SamplingConfig
	Output   OutputConfig
	Logging  LoggingConfig
}

// AnalysisConfig holds the statistical settings of the pipeline
type AnalysisConfig struct {
	// ConfidenceLevel is the percentile width of every confidence
	// interval, in (0, 1).
	ConfidenceLevel float64
	// NResamples is the number of bootstrap iterations.
	NResamples int
	// NoiseThreshold is the dimensionless band around zero relative
	// change inside which the comparator reports "within noise".
	NoiseThreshold float64
	// SignificanceLevel is the t-test cutoff, in (0, 1).
	SignificanceLevel float64
	// Workers partitions bootstrap resamples; zero means GOMAXPROCS.
	Workers int
	// Seed, when set, makes every bootstrap invocation deterministic.
	// Unset, each invocation draws a fresh entropy seed.
	Seed *int64
}

// SamplingConfig holds the measurement-loop settings
type SamplingConfig struct {
	SampleSize      int
	WarmUpTime      time.Duration
	MeasurementTime time.Duration
}

// OutputConfig holds artifact and plotting settings
type OutputConfig struct {
	// Dir is the artifact root.
	Dir string
	// Plotting enables plot rendering; disabled skips all plot calls.
	Plotting bool
}

// LoggingConfig holds diagnostic logging settings
type LoggingConfig struct {
	Level string
	File  string
}

// Default returns the documented defaults.
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			ConfidenceLevel:   0.95,
			NResamples:        100_000,
			NoiseThreshold:    0.01,
			SignificanceLevel: 0.05,
		},
		Sampling: SamplingConfig{
			SampleSize:      100,
			WarmUpTime:      1 * time.Second,
			MeasurementTime: 5 * time.Second,
		},
		Output: OutputConfig{
			Dir: ".benchlab",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the environment (optionally seeded
// from a .env file) over the defaults, then validates it.
func Load() (*Config, error) {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := Default()

	var err error
	if cfg.Analysis.ConfidenceLevel, err = envFloat("BENCHLAB_CONFIDENCE_LEVEL", cfg.Analysis.ConfidenceLevel); err != nil {
		return nil, err
	}
	if cfg.Analysis.NResamples, err = envInt("BENCHLAB_NRESAMPLES", cfg.Analysis.NResamples); err != nil {
		return nil, err
	}
	if cfg.Analysis.NoiseThreshold, err = envFloat("BENCHLAB_NOISE_THRESHOLD", cfg.Analysis.NoiseThreshold); err != nil {
		return nil, err
	}
	if cfg.Analysis.SignificanceLevel, err = envFloat("BENCHLAB_SIGNIFICANCE_LEVEL", cfg.Analysis.SignificanceLevel); err != nil {
		return nil, err
	}
	if cfg.Analysis.Workers, err = envInt("BENCHLAB_WORKERS", cfg.Analysis.Workers); err != nil {
		return nil, err
	}
	if raw := os.Getenv("BENCHLAB_SEED"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errors.ConfigInvalid("BENCHLAB_SEED must be an integer")
		}
		cfg.Analysis.Seed = &seed
	}

	if cfg.Sampling.SampleSize, err = envInt("BENCHLAB_SAMPLE_SIZE", cfg.Sampling.SampleSize); err != nil {
		return nil, err
	}
	if cfg.Sampling.WarmUpTime, err = envDuration("BENCHLAB_WARM_UP_TIME", cfg.Sampling.WarmUpTime); err != nil {
		return nil, err
	}
	if cfg.Sampling.MeasurementTime, err = envDuration("BENCHLAB_MEASUREMENT_TIME", cfg.Sampling.MeasurementTime); err != nil {
		return nil, err
	}

	if dir := os.Getenv("BENCHLAB_OUTPUT_DIR"); dir != "" {
		cfg.Output.Dir = dir
	}
	if raw := os.Getenv("BENCHLAB_PLOTTING"); raw != "" {
		cfg.Output.Plotting = raw == "true" || raw == "enabled" || raw == "1"
	}

	if level := os.Getenv("BENCHLAB_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	cfg.Logging.File = os.Getenv("BENCHLAB_LOG_FILE")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fails fast on misuse.
func (c *Config) Validate() error {
	a := c.Analysis
	if a.ConfidenceLevel <= 0 || a.ConfidenceLevel >= 1 {
		return errors.ConfigInvalid("confidence level must be in (0, 1)")
	}
	if a.NResamples <= 0 {
		return errors.ConfigInvalid("nresamples must be positive")
	}
	if a.NoiseThreshold < 0 {
		return errors.ConfigInvalid("noise threshold cannot be negative")
	}
	if a.SignificanceLevel <= 0 || a.SignificanceLevel >= 1 {
		return errors.ConfigInvalid("significance level must be in (0, 1)")
	}
	if a.Workers < 0 {
		return errors.ConfigInvalid("workers cannot be negative")
	}
	s := c.Sampling
	if s.SampleSize < 2 {
		return errors.ConfigInvalid("sample size must be at least 2")
	}
	if s.WarmUpTime <= 0 || s.MeasurementTime <= 0 {
		return errors.ConfigInvalid("warm-up and measurement times must be positive")
	}
	if c.Output.Dir == "" {
		return errors.ConfigInvalid("output directory cannot be empty")
	}
	return nil
}

// Plan derives the sampling plan routines consume.
func (c *Config) Plan() ports.SamplingPlan {
	return ports.SamplingPlan{
		SampleSize:      c.Sampling.SampleSize,
		WarmUpTime:      c.Sampling.WarmUpTime,
		MeasurementTime: c.Sampling.MeasurementTime,
	}
}

func envFloat(key string, def float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " must be a number")
	}
	return v, nil
}

func envInt(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " must be an integer")
	}
	return v, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " must be a duration like 5s or 500ms")
	}
	return v, nil
}
