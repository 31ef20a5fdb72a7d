// Package posterior holds the inference outputs a column is profiled from
// and the partition derived from them.
//
// The upstream type detector produces two things per column:
//
//   - a TypePosterior: the probability of every candidate type, and
//   - for each candidate type, RowPosteriors: for every distinct value, the
//     probability that it conforms to the type, is a missing-data marker, or
//     is anomalous.
//
// PartitionRows turns the row posteriors of the selected type into a
// Partition by taking the most probable Status of every distinct value.
package posterior
