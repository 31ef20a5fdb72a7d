// Package colprof profiles the columns of a tabular dataset whose cell types
// have already been inferred by a probabilistic type inference step.
//
// For every column colprof takes the distinct values together with the
// posterior distribution over candidate types and a per-value posterior over
// three statuses (normal, missing, anomalous). From these it derives the
// column's inferred type, partitions the distinct values, reports the
// normal/missing/anomalous ratios and classifies the column into an ARFF
// attribute kind (nominal, numeric or date) with a pretrained logistic
// regression model.
//
// # Architecture
//
// The library is split into small packages under pkg/:
//
//   - values: unique sorted values of a column with their counts
//   - posterior: type posteriors, row posteriors and the three-way partition
//   - features: the feature vector consumed by the ARFF classifier
//   - arff: robust scaler, logistic regression and model loading
//   - column: the column profile and its re-classification
//   - modelstore: model artifacts on local disk, S3 or GCS
//
// The ambient stack lives next to them: config (YAML with environment
// substitution), logger (zap), metrics (Prometheus), observability
// (OpenTelemetry tracing), compression and json.
//
// # Quick Start
//
// Profile a single column with a model stored on disk:
//
//	store, err := modelstore.Open(ctx, "./model", modelstore.Options{})
//	if err != nil {
//	    return err
//	}
//	model, err := arff.Load(ctx, store, arff.DefaultFiles(), log)
//	if err != nil {
//	    return err
//	}
//	col, err := column.New(column.Input{
//	    Name:          "age",
//	    Values:        []interface{}{"1", "2", "NA"},
//	    TypePosterior: map[string]float64{"integer": 0.9, "string": 0.1},
//	    RowPosteriors: rows,
//	}, model, column.WithLogger(log))
//
// Whole documents are profiled concurrently by the colprof command:
//
//	colprof profile --input columns.json --model-dir s3://models/arff --workers 8
package colprof
