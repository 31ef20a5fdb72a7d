// Package column profiles a single column of raw values.
//
// A Column combines the external type posterior and per-value row
// posteriors of a column with its distinct values. It selects the most
// likely type, partitions the distinct values into type-conforming, missing
// and anomalous, and asks an arff.Classifier for the column's storage
// category. The type can later be overridden with Reclassify, which
// re-partitions the values under the new type.
//
// A Column is not safe for concurrent mutation; classifiers are shared.
package column
