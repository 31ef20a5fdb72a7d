// Package arff assigns an ARFF storage category (nominal, numeric, date, ...)
// to a column from its feature vector.
//
// A Model pairs a robust scaler, applied only to the U and U_clean features,
// with a linear (logistic regression) classifier. Models are loaded once from
// a model directory and are immutable afterwards, so one *Model can be shared
// by any number of goroutines:
//
//	store, _ := modelstore.Open(ctx, "./models", modelstore.Options{})
//	model, err := arff.Load(ctx, store, arff.DefaultFiles(), logger)
//	if err != nil {
//	    return err // fatal: no profiling without a classifier
//	}
//	outcome, err := model.Classify(f)
//
// The classifier's "categorical" label is reported as "nominal".
package arff
