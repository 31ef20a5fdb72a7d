// Package config provides the configuration of a colprof run.
//
// The configuration is organized into logical sections:
//   - Model: where the scaler and classifier artifacts live
//   - Profiling: concurrency and reclassification behaviour
//   - Storage: credentials and endpoints for remote model directories
//   - Observability: logging, metrics and tracing
//
// Example usage:
//
//	cfg := config.NewDefault()
//	cfg.Model.Dir = "s3://models/colprof/v3"
//	cfg.Profiling.Workers = 8
//
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config

import (
	"runtime"
	"strings"

	"github.com/ajitpratap0/colprof/pkg/colerrors"
	"github.com/ajitpratap0/colprof/pkg/compression"
)

// Config is the complete configuration of a profiling run.
type Config struct {
	// Model locates the classifier artifacts
	Model ModelConfig `yaml:"model" json:"model" mapstructure:"model"`

	// Profiling controls how columns are profiled
	Profiling ProfilingConfig `yaml:"profiling" json:"profiling" mapstructure:"profiling"`

	// Storage configures remote model directories
	Storage StorageConfig `yaml:"storage" json:"storage" mapstructure:"storage"`

	// Observability settings for monitoring and debugging
	Observability ObservabilityConfig `yaml:"observability" json:"observability" mapstructure:"observability"`
}

// ModelConfig locates the scaler and classifier artifacts.
type ModelConfig struct {
	// Dir is a local path or a file://, s3:// or gs:// URI
	Dir string `yaml:"dir" json:"dir" mapstructure:"dir"`
	// ScalerFile is the scaler artifact name inside Dir
	ScalerFile string `yaml:"scaler_file" json:"scaler_file" mapstructure:"scaler_file"`
	// ClassifierFile is the classifier artifact name inside Dir
	ClassifierFile string `yaml:"classifier_file" json:"classifier_file" mapstructure:"classifier_file"`
}

// ProfilingConfig controls column profiling.
type ProfilingConfig struct {
	// Workers bounds how many columns are profiled at once (0 = NumCPU)
	Workers int `yaml:"workers" json:"workers" mapstructure:"workers"`
	// RecomputeOnReclassify rebuilds features and the storage category after
	// a type override
	RecomputeOnReclassify bool `yaml:"recompute_on_reclassify" json:"recompute_on_reclassify" mapstructure:"recompute_on_reclassify"`
	// PosteriorTolerance is the allowed drift of a type posterior sum from 1
	PosteriorTolerance float64 `yaml:"posterior_tolerance" json:"posterior_tolerance" mapstructure:"posterior_tolerance"`
}

// StorageConfig configures access to remote model directories.
type StorageConfig struct {
	S3Region           string `yaml:"s3_region" json:"s3_region" mapstructure:"s3_region"`
	S3Endpoint         string `yaml:"s3_endpoint" json:"s3_endpoint" mapstructure:"s3_endpoint"`
	S3UsePathStyle     bool   `yaml:"s3_use_path_style" json:"s3_use_path_style" mapstructure:"s3_use_path_style"`
	GCSCredentialsFile string `yaml:"gcs_credentials_file" json:"gcs_credentials_file" mapstructure:"gcs_credentials_file"`
}

// ObservabilityConfig contains monitoring and observability settings.
type ObservabilityConfig struct {
	// LogLevel sets logging verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level" json:"log_level" mapstructure:"log_level"`
	// LogEncoding is json or console
	LogEncoding string `yaml:"log_encoding" json:"log_encoding" mapstructure:"log_encoding"`
	// EnableMetrics activates metrics collection
	EnableMetrics bool `yaml:"enable_metrics" json:"enable_metrics" mapstructure:"enable_metrics"`
	// MetricsFile receives the Prometheus text exposition after a run
	MetricsFile string `yaml:"metrics_file" json:"metrics_file" mapstructure:"metrics_file"`
	// EnableTracing activates tracing
	EnableTracing bool `yaml:"enable_tracing" json:"enable_tracing" mapstructure:"enable_tracing"`
	// TracingSampleRate controls trace sampling (0.0-1.0)
	TracingSampleRate float64 `yaml:"tracing_sample_rate" json:"tracing_sample_rate" mapstructure:"tracing_sample_rate"`
}

// NewDefault creates a Config with sensible defaults.
func NewDefault() *Config {
	return &Config{
		Model: ModelConfig{
			Dir:            "./models",
			ScalerFile:     "scaler.json",
			ClassifierFile: "classifier.json",
		},
		Profiling: ProfilingConfig{
			Workers:               0,
			RecomputeOnReclassify: false,
			PosteriorTolerance:    1e-6,
		},
		Storage: StorageConfig{
			S3Region: "us-east-1",
		},
		Observability: ObservabilityConfig{
			LogLevel:          "info",
			LogEncoding:       "json",
			EnableMetrics:     true,
			EnableTracing:     false,
			TracingSampleRate: 1.0,
		},
	}
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	if c.Model.Dir == "" {
		return invalid("model.dir is required")
	}
	if c.Model.ScalerFile == "" {
		return invalid("model.scaler_file is required")
	}
	if c.Model.ClassifierFile == "" {
		return invalid("model.classifier_file is required")
	}
	for _, name := range []string{c.Model.ScalerFile, c.Model.ClassifierFile} {
		if !strings.HasSuffix(compression.TrimExtension(name), ".json") {
			return invalid("model artifacts must be .json files, optionally compressed").
				WithDetail("file", name)
		}
	}
	if c.Profiling.Workers < 0 {
		return invalid("profiling.workers cannot be negative")
	}
	if c.Profiling.PosteriorTolerance <= 0 {
		return invalid("profiling.posterior_tolerance must be positive")
	}
	switch strings.ToLower(c.Observability.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return invalid("observability.log_level must be debug, info, warn or error").
			WithDetail("log_level", c.Observability.LogLevel)
	}
	switch c.Observability.LogEncoding {
	case "json", "console":
	default:
		return invalid("observability.log_encoding must be json or console").
			WithDetail("log_encoding", c.Observability.LogEncoding)
	}
	if c.Observability.TracingSampleRate < 0 || c.Observability.TracingSampleRate > 1 {
		return invalid("observability.tracing_sample_rate must be between 0 and 1")
	}
	return nil
}

func invalid(msg string) *colerrors.Error {
	return colerrors.New(colerrors.ErrorTypeConfig, msg)
}

// GetWorkers returns the number of workers, ensuring it's at least 1
func (p *ProfilingConfig) GetWorkers() int {
	if p.Workers <= 0 {
		return runtime.NumCPU()
	}
	return p.Workers
}

// IsRemote returns true if the model directory is an object store
func (m *ModelConfig) IsRemote() bool {
	return strings.HasPrefix(m.Dir, "s3://") || strings.HasPrefix(m.Dir, "gs://")
}
