package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/colprof/internal/pipeline"
	"github.com/ajitpratap0/colprof/pkg/colerrors"
	"github.com/ajitpratap0/colprof/pkg/compression"
	"github.com/ajitpratap0/colprof/pkg/json"
)

func newModelCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Inspect and package classifier artifacts",
	}
	cmd.AddCommand(newModelInspectCommand(a), newModelPackCommand(a))
	return cmd
}

// modelInfo is printed by model inspect.
type modelInfo struct {
	Dir          string    `json:"dir"`
	Classes      []string  `json:"classes"`
	Width        int       `json:"width"`
	Families     int       `json:"families"`
	MultiClass   string    `json:"multi_class"`
	ScalerCenter []float64 `json:"scaler_center"`
	ScalerScale  []float64 `json:"scaler_scale"`
}

func newModelInspectCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Load the model and print its classes, feature width and scaler",
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := pipeline.LoadModel(cmd.Context(), a.cfg, a.logger, a.collector)
			if err != nil {
				return err
			}
			scaler := model.Scaler()
			return json.WriteIndented(cmd.OutOrStdout(), modelInfo{
				Dir:          a.cfg.Model.Dir,
				Classes:      model.Classes(),
				Width:        model.Width(),
				Families:     model.Families(),
				MultiClass:   model.MultiClass(),
				ScalerCenter: scaler.Center,
				ScalerScale:  scaler.Scale,
			})
		},
	}
	cmd.Flags().String("model-dir", "./models", "Model directory (path, file://, s3:// or gs://)")
	return cmd
}

func newModelPackCommand(a *app) *cobra.Command {
	var src, algorithm string
	var level int

	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Write a compressed copy of a local artifact next to it",
		Long: `Write a compressed copy of a local model artifact next to the source,
named after the codec (scaler.json -> scaler.json.zst).

Example:
  colprof model pack --src models/classifier.json --algorithm zstd`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dst, err := packArtifact(src, algorithm, compression.Level(level))
			if err != nil {
				return err
			}
			a.logger.Info("packed artifact", zap.String("src", src), zap.String("dst", dst))
			cmd.Println(dst)
			return nil
		},
	}
	cmd.Flags().StringVar(&src, "src", "", "Path to the artifact (required)")
	cmd.Flags().StringVar(&algorithm, "algorithm", string(compression.Zstd), "Compression algorithm (gzip, snappy, lz4, zstd, s2)")
	cmd.Flags().IntVar(&level, "level", int(compression.Default), "Compression level (1 fastest, 5 default, 9 best)")
	_ = cmd.MarkFlagRequired("src")
	return cmd
}

// packArtifact compresses src and returns the path of the copy. The copy is
// decompressed once more to make sure it round-trips.
func packArtifact(src, algorithm string, level compression.Level) (string, error) {
	algo, err := compression.ParseAlgorithm(algorithm)
	if err != nil {
		return "", err
	}
	if algo == compression.None {
		return "", colerrors.New(colerrors.ErrorTypeConfig, "pack needs a compression algorithm")
	}
	if compression.AlgorithmFromPath(src) != compression.None {
		return "", colerrors.New(colerrors.ErrorTypeConfig, "artifact is already compressed").
			WithDetail("src", src)
	}

	data, err := os.ReadFile(src) //nolint:gosec // G304: path comes from the operator
	if err != nil {
		return "", colerrors.Wrap(err, colerrors.ErrorTypeFile, "failed to read artifact").
			WithDetail("src", src)
	}

	comp, err := compression.NewCompressor(&compression.Config{Algorithm: algo, Level: level})
	if err != nil {
		return "", err
	}
	packed, err := comp.Compress(data)
	if err != nil {
		return "", colerrors.Wrap(err, colerrors.ErrorTypeInternal, "failed to compress artifact")
	}

	dst := src + compression.Extension(algo)
	if check, err := compression.DecompressPath(dst, packed); err != nil || len(check) != len(data) {
		return "", colerrors.New(colerrors.ErrorTypeInternal, "compressed artifact does not round-trip").
			WithDetail("algorithm", string(algo))
	}

	if err := os.WriteFile(dst, packed, 0o600); err != nil {
		return "", colerrors.Wrap(err, colerrors.ErrorTypeFile, "failed to write artifact").
			WithDetail("dst", dst)
	}
	return dst, nil
}
