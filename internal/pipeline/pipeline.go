// Package pipeline profiles every column of a document against a shared
// classifier.
//
// # Overview
//
// Columns are independent, so a run fans out over a bounded errgroup: each
// column is owned by exactly one goroutine for its whole life and the
// classifier is the only shared state. Results are collected in input
// order.
//
// A column whose override type is unknown is reported with an error and the
// run goes on. Any other failure (malformed posteriors, a classifier width
// mismatch) aborts the run.
//
// # Basic Usage
//
//	model, err := pipeline.LoadModel(ctx, cfg, logger, collector)
//	p := pipeline.New(cfg, model, logger, collector)
//
//	doc, err := pipeline.ReadDocument(ctx, "columns.json.zst")
//	report, err := p.Run(ctx, doc)
//	err = pipeline.WriteReport("report.json", report)
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ajitpratap0/colprof/pkg/arff"
	"github.com/ajitpratap0/colprof/pkg/colerrors"
	"github.com/ajitpratap0/colprof/pkg/column"
	"github.com/ajitpratap0/colprof/pkg/config"
	"github.com/ajitpratap0/colprof/pkg/logger"
	"github.com/ajitpratap0/colprof/pkg/metrics"
	"github.com/ajitpratap0/colprof/pkg/modelstore"
	"github.com/ajitpratap0/colprof/pkg/observability"
)

// Pipeline profiles documents. It is safe to Run concurrently.
type Pipeline struct {
	cfg        *config.Config
	classifier arff.Classifier
	logger     *zap.Logger
	collector  *metrics.Collector
}

// New creates a pipeline. A nil collector disables metrics.
func New(cfg *config.Config, classifier arff.Classifier, log *zap.Logger, collector *metrics.Collector) *Pipeline {
	if cfg == nil {
		cfg = config.NewDefault()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		cfg:        cfg,
		classifier: classifier,
		logger:     log,
		collector:  collector,
	}
}

// LoadModel opens the configured model directory and loads the classifier.
func LoadModel(ctx context.Context, cfg *config.Config, log *zap.Logger, collector *metrics.Collector) (*arff.Model, error) {
	ctx, span := observability.StartSpan(ctx, "model.load",
		attribute.String("model.dir", cfg.Model.Dir))
	timer := metrics.NewTimer("model_load")

	model, err := loadModel(ctx, cfg, log)

	collector.ObserveModelLoad(err, timer.Stop())
	observability.EndSpan(span, err)
	return model, err
}

func loadModel(ctx context.Context, cfg *config.Config, log *zap.Logger) (*arff.Model, error) {
	store, err := modelstore.Open(ctx, cfg.Model.Dir, modelstore.Options{
		S3Region:           cfg.Storage.S3Region,
		S3Endpoint:         cfg.Storage.S3Endpoint,
		S3UsePathStyle:     cfg.Storage.S3UsePathStyle,
		GCSCredentialsFile: cfg.Storage.GCSCredentialsFile,
	})
	if err != nil {
		return nil, colerrors.Wrap(err, colerrors.ErrorTypeModelLoad, "failed to open model directory").
			WithDetail("dir", cfg.Model.Dir)
	}
	return arff.Load(ctx, store, arff.Files{
		Scaler:     cfg.Model.ScalerFile,
		Classifier: cfg.Model.ClassifierFile,
	}, log)
}

// ColumnOptions returns the column options implied by the configuration.
func (p *Pipeline) ColumnOptions(log *zap.Logger) []column.Option {
	return []column.Option{
		column.WithLogger(log),
		column.WithRecomputeOnReclassify(p.cfg.Profiling.RecomputeOnReclassify),
		column.WithPosteriorTolerance(p.cfg.Profiling.PosteriorTolerance),
	}
}

// Run profiles every column of doc.
func (p *Pipeline) Run(ctx context.Context, doc Document) (*Report, error) {
	if p.classifier == nil {
		return nil, colerrors.New(colerrors.ErrorTypeInternal, "pipeline has no classifier")
	}

	start := time.Now()
	runID := uuid.NewString()
	ctx = context.WithValue(ctx, logger.RunIDKey, runID)
	log := logger.FromContext(ctx, p.logger)

	ctx, span := observability.StartSpan(ctx, "pipeline.run",
		attribute.String("run.id", runID),
		attribute.Int("columns", len(doc.Columns)))

	workers := p.cfg.Profiling.GetWorkers()
	log.Info("starting profiling run",
		zap.Int("columns", len(doc.Columns)),
		zap.Int("workers", workers))

	summaries := make([]column.Summary, len(doc.Columns))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range doc.Columns {
		in := doc.Columns[i]
		g.Go(func() error {
			s, err := p.profile(gctx, in)
			if err != nil {
				return err
			}
			summaries[i] = s
			return nil
		})
	}

	err := g.Wait()
	observability.EndSpan(span, err)
	if err != nil {
		log.Error("profiling run failed", zap.Error(err))
		return nil, err
	}

	report := &Report{
		RunID:   runID,
		Columns: summaries,
		Stats: Stats{
			Columns:        len(summaries),
			ElapsedSeconds: time.Since(start).Seconds(),
		},
	}
	for i, s := range summaries {
		switch {
		case s.Error != "":
			report.Stats.Failed++
		case doc.Columns[i].OverrideType != "":
			report.Stats.Reclassified++
		}
	}

	log.Info("profiling run completed",
		zap.Int("columns", report.Stats.Columns),
		zap.Int("reclassified", report.Stats.Reclassified),
		zap.Int("failed", report.Stats.Failed),
		zap.Duration("duration", time.Since(start)))

	return report, nil
}

// Profile profiles a single column, applying its override type. When the
// override fails the profiled column is returned along with the error.
func (p *Pipeline) Profile(ctx context.Context, in ColumnInput) (*column.Column, error) {
	ctx = context.WithValue(ctx, logger.ColumnKey, in.Name)
	log := logger.FromContext(ctx, p.logger)

	col, err := p.newColumn(ctx, in, log)
	if err != nil {
		return nil, err
	}
	if in.OverrideType == "" {
		return col, nil
	}
	return col, p.reclassify(ctx, col, in.OverrideType, log)
}

func (p *Pipeline) profile(ctx context.Context, in ColumnInput) (column.Summary, error) {
	if err := ctx.Err(); err != nil {
		return column.Summary{}, err
	}

	col, err := p.Profile(ctx, in)
	if err != nil && (col == nil || colerrors.IsFatal(err)) {
		return column.Summary{}, err
	}

	p.collector.ObserveColumn(col.ArffType(), col.RatioNormal(), col.RatioMissing(), col.RatioAnomalous())
	s := col.Summary()
	if err != nil {
		s.Error = err.Error()
	}
	return s, nil
}

func (p *Pipeline) newColumn(ctx context.Context, in ColumnInput, log *zap.Logger) (*column.Column, error) {
	_, span := observability.StartSpan(ctx, "column.profile",
		attribute.String("column.name", in.Name),
		attribute.Int("column.rows", len(in.Values)))
	timer := metrics.NewTimer("profile")

	col, err := column.New(in.Input(), p.classifier, p.ColumnOptions(log)...)

	p.collector.ObserveStage(timer.Name(), timer.Stop())
	if err == nil {
		span.SetAttributes(
			attribute.String("column.type", col.Type()),
			attribute.String("column.arff_type", col.ArffType()))
	}
	observability.EndSpan(span, err)

	if err != nil {
		log.Error("failed to profile column", zap.Error(err))
		return nil, err
	}
	return col, nil
}

func (p *Pipeline) reclassify(ctx context.Context, col *column.Column, typ string, log *zap.Logger) error {
	_, span := observability.StartSpan(ctx, "column.reclassify",
		attribute.String("column.name", col.Name()),
		attribute.String("column.type", typ))
	timer := metrics.NewTimer("reclassify")

	from := col.Type()
	err := col.Reclassify(typ)

	p.collector.ObserveStage(timer.Name(), timer.Stop())
	p.collector.ObserveReclassify(err)
	observability.EndSpan(span, err)

	if err != nil {
		log.Warn("failed to reclassify column",
			zap.String("type", typ),
			zap.Strings("known_types", col.KnownTypes()),
			zap.Error(err))
		return err
	}
	log.Debug("reclassified column",
		zap.String("from", from),
		zap.String("to", typ),
		zap.Float64("ratio_normal", col.RatioNormal()))
	return nil
}
