// Package values builds the canonical index of distinct values in a column.
//
// Every raw cell is stringified with strings.ValueToString; the distinct
// strings are sorted byte-wise and their positions become the index space
// shared by row posteriors, partitions and features.
package values

import (
	"slices"

	stringpool "github.com/ajitpratap0/colprof/pkg/strings"
)

// Index holds the sorted distinct values of a column and how often each
// occurs. Values and counts are parallel slices.
type Index struct {
	values []string
	counts []int
	total  int
}

// NewIndex stringifies raw and counts distinct values.
func NewIndex(raw []interface{}) *Index {
	seen := make(map[string]int, len(raw))
	for _, v := range raw {
		seen[stringpool.ValueToString(v)]++
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	slices.Sort(values)

	counts := make([]int, len(values))
	for i, v := range values {
		counts[i] = seen[v]
	}

	return &Index{
		values: values,
		counts: counts,
		total:  len(raw),
	}
}

// Len returns the number of distinct values.
func (x *Index) Len() int {
	return len(x.values)
}

// Total returns the number of rows the index was built from.
func (x *Index) Total() int {
	return x.total
}

// Values returns a copy of the sorted distinct values.
func (x *Index) Values() []string {
	return slices.Clone(x.values)
}

// Counts returns a copy of the occurrence counts, parallel to Values.
func (x *Index) Counts() []int {
	return slices.Clone(x.counts)
}

// Value returns the distinct value at position i.
func (x *Index) Value(i int) string {
	return x.values[i]
}

// Count returns the occurrence count of the value at position i.
func (x *Index) Count(i int) int {
	return x.counts[i]
}

// Lookup returns the position of value, if present.
func (x *Index) Lookup(value string) (int, bool) {
	return slices.BinarySearch(x.values, value)
}

// Select returns the values at the given positions, in the order given.
func (x *Index) Select(indices []int) []string {
	out := make([]string, len(indices))
	for i, idx := range indices {
		out[i] = x.values[idx]
	}
	return out
}

// SumCounts returns the total occurrences of the values at the given positions.
func (x *Index) SumCounts(indices []int) int {
	sum := 0
	for _, idx := range indices {
		sum += x.counts[idx]
	}
	return sum
}

// Distinct counts distinct stringified values in raw without building an
// index.
func Distinct(raw []interface{}) int {
	seen := make(map[string]struct{}, len(raw))
	for _, v := range raw {
		seen[stringpool.ValueToString(v)] = struct{}{}
	}
	return len(seen)
}
