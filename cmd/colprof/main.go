// Command colprof profiles table columns: it splits each column's values
// into type-conforming, missing and anomalous, and assigns the column an
// ARFF storage category with a trained classifier.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ajitpratap0/colprof/pkg/config"
	"github.com/ajitpratap0/colprof/pkg/logger"
	"github.com/ajitpratap0/colprof/pkg/metrics"
	"github.com/ajitpratap0/colprof/pkg/observability"
)

var version = "0.1.0"

// app holds what every subcommand shares once flags, environment and the
// config file are resolved.
type app struct {
	v          *viper.Viper
	configFile string

	cfg       *config.Config
	logger    *zap.Logger
	collector *metrics.Collector
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	a := &app{v: newViper()}

	root := &cobra.Command{
		Use:   "colprof",
		Short: "colprof - column profiling and ARFF type inference",
		Long: `colprof profiles the columns of a table from their type posteriors.
Each column's distinct values are split into type-conforming, missing and
anomalous values, and a trained classifier assigns the column a storage
category (nominal, numeric, date, ...).`,
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configFile, "config", "c", "", "Path to a YAML configuration file")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-encoding", "json", "Log encoding (json, console)")
	flags.String("metrics-file", "", "Write Prometheus metrics to this file when the command ends")
	flags.Bool("enable-tracing", false, "Export trace spans to stderr")

	root.AddCommand(
		newVersionCommand(),
		newProfileCommand(a),
		newReclassifyCommand(a),
		newModelCommand(a),
	)
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Annotations: map[string]string{
			skipSetup: "true",
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "colprof v%s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "Go version: %s\n", runtime.Version())
			fmt.Fprintf(cmd.OutOrStdout(), "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

const skipSetup = "colprof.skip-setup"

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("COLPROF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// setup resolves the configuration and starts logging, metrics and tracing.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Annotations[skipSetup] == "true" {
		return nil
	}

	// Bind flags to viper. Several subcommands define the same flag, so
	// binding waits until the command being run is known.
	for key, name := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := a.v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}

	cfg, err := resolveConfig(a.v, a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	log, err := logger.New(logger.Config{
		Level:    cfg.Observability.LogLevel,
		Encoding: cfg.Observability.LogEncoding,
		// stdout carries reports
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		return err
	}
	logger.Set(log)
	a.logger = log.With(zap.String("command", cmd.Name()))

	if cfg.Observability.EnableMetrics {
		a.collector = metrics.NewCollector("colprof")
	}

	if cfg.Observability.EnableTracing {
		tc := observability.DefaultTracingConfig()
		tc.ServiceVersion = version
		tc.SamplingRate = cfg.Observability.TracingSampleRate
		if err := observability.InitTracing(tc); err != nil {
			return err
		}
	}
	return nil
}

// teardown flushes metrics, spans and logs.
func (a *app) teardown(cmd *cobra.Command, _ []string) error {
	if a.cfg == nil {
		return nil
	}

	if err := a.collector.WriteTextfile(a.cfg.Observability.MetricsFile); err != nil {
		a.logger.Warn("failed to write metrics", zap.Error(err))
	}
	if err := observability.Shutdown(cmd.Context()); err != nil {
		a.logger.Warn("failed to flush traces", zap.Error(err))
	}
	_ = logger.Sync()
	return nil
}
