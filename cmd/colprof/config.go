package main

import (
	"github.com/spf13/viper"

	"github.com/ajitpratap0/colprof/pkg/config"
)

// flagKeys maps configuration keys to the command line flags that
// override them.
var flagKeys = map[string]string{
	"model.dir":                         "model-dir",
	"profiling.workers":                 "workers",
	"profiling.recompute_on_reclassify": "recompute-on-reclassify",
	"observability.log_level":           "log-level",
	"observability.log_encoding":        "log-encoding",
	"observability.metrics_file":        "metrics-file",
	"observability.enable_tracing":      "enable-tracing",
}

type override struct {
	key   string
	apply func(v *viper.Viper, key string)
}

func stringVar(p *string) func(*viper.Viper, string) {
	return func(v *viper.Viper, key string) { *p = v.GetString(key) }
}

func intVar(p *int) func(*viper.Viper, string) {
	return func(v *viper.Viper, key string) { *p = v.GetInt(key) }
}

func boolVar(p *bool) func(*viper.Viper, string) {
	return func(v *viper.Viper, key string) { *p = v.GetBool(key) }
}

func floatVar(p *float64) func(*viper.Viper, string) {
	return func(v *viper.Viper, key string) { *p = v.GetFloat64(key) }
}

func overrides(cfg *config.Config) []override {
	return []override{
		{"model.dir", stringVar(&cfg.Model.Dir)},
		{"model.scaler_file", stringVar(&cfg.Model.ScalerFile)},
		{"model.classifier_file", stringVar(&cfg.Model.ClassifierFile)},
		{"profiling.workers", intVar(&cfg.Profiling.Workers)},
		{"profiling.recompute_on_reclassify", boolVar(&cfg.Profiling.RecomputeOnReclassify)},
		{"profiling.posterior_tolerance", floatVar(&cfg.Profiling.PosteriorTolerance)},
		{"storage.s3_region", stringVar(&cfg.Storage.S3Region)},
		{"storage.s3_endpoint", stringVar(&cfg.Storage.S3Endpoint)},
		{"storage.s3_use_path_style", boolVar(&cfg.Storage.S3UsePathStyle)},
		{"storage.gcs_credentials_file", stringVar(&cfg.Storage.GCSCredentialsFile)},
		{"observability.log_level", stringVar(&cfg.Observability.LogLevel)},
		{"observability.log_encoding", stringVar(&cfg.Observability.LogEncoding)},
		{"observability.enable_metrics", boolVar(&cfg.Observability.EnableMetrics)},
		{"observability.metrics_file", stringVar(&cfg.Observability.MetricsFile)},
		{"observability.enable_tracing", boolVar(&cfg.Observability.EnableTracing)},
		{"observability.tracing_sample_rate", floatVar(&cfg.Observability.TracingSampleRate)},
	}
}

// resolveConfig layers, from lowest to highest precedence: defaults, the
// YAML file at path, COLPROF_* environment variables and changed flags.
func resolveConfig(v *viper.Viper, path string) (*config.Config, error) {
	cfg := config.NewDefault()
	if path != "" {
		if err := config.Load(path, cfg); err != nil {
			return nil, err
		}
	}

	for _, o := range overrides(cfg) {
		if v.IsSet(o.key) {
			o.apply(v, o.key)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
