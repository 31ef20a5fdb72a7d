package posterior

import (
	"math"
	"slices"
	"strings"

	stringpool "github.com/ajitpratap0/colprof/pkg/strings"
)

// Entry is one candidate type and its probability.
type Entry struct {
	Type        string  `json:"type"`
	Probability float64 `json:"probability"`
}

// Family is the summed probability of all types sharing a family prefix.
type Family struct {
	Name        string  `json:"name"`
	Probability float64 `json:"probability"`
}

// TypePosterior is an ordered mapping from type name to probability. Entries
// are kept sorted by type name so iteration, aggregation and tie-breaking are
// deterministic.
type TypePosterior struct {
	entries []Entry
}

// NewTypePosterior builds a TypePosterior from an unordered map.
func NewTypePosterior(probs map[string]float64) TypePosterior {
	entries := make([]Entry, 0, len(probs))
	for t, p := range probs {
		entries = append(entries, Entry{Type: t, Probability: p})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Type, b.Type)
	})
	return TypePosterior{entries: entries}
}

// Len returns the number of candidate types.
func (tp TypePosterior) Len() int {
	return len(tp.entries)
}

// Entries returns a copy of the entries in type-name order.
func (tp TypePosterior) Entries() []Entry {
	return slices.Clone(tp.entries)
}

// Types returns the candidate type names in order.
func (tp TypePosterior) Types() []string {
	out := make([]string, len(tp.entries))
	for i, e := range tp.entries {
		out[i] = e.Type
	}
	return out
}

// Get returns the probability of typeName.
func (tp TypePosterior) Get(typeName string) (float64, bool) {
	i, ok := slices.BinarySearchFunc(tp.entries, typeName, func(e Entry, t string) int {
		return strings.Compare(e.Type, t)
	})
	if !ok {
		return 0, false
	}
	return tp.entries[i].Probability, true
}

// Sum returns the total probability mass.
func (tp TypePosterior) Sum() float64 {
	sum := 0.0
	for _, e := range tp.entries {
		sum += e.Probability
	}
	return sum
}

// Normalized reports whether the probabilities sum to 1 within tolerance.
func (tp TypePosterior) Normalized(tolerance float64) bool {
	return math.Abs(tp.Sum()-1) <= tolerance
}

// MostLikely returns the type with the highest probability. Ties go to the
// type that sorts first. It returns false for an empty posterior.
func (tp TypePosterior) MostLikely() (string, bool) {
	if len(tp.entries) == 0 {
		return "", false
	}
	best := tp.entries[0]
	for _, e := range tp.entries[1:] {
		if e.Probability > best.Probability {
			best = e
		}
	}
	return best.Type, true
}

// Families sums probabilities of types sharing the prefix before the first
// "-" (e.g. all date subtypes) and returns them ordered by family name.
func (tp TypePosterior) Families() []Family {
	sums := make(map[string]float64, len(tp.entries))
	names := make([]string, 0, len(tp.entries))
	for _, e := range tp.entries {
		name := stringpool.Family(e.Type)
		if _, ok := sums[name]; !ok {
			names = append(names, name)
		}
		sums[name] += e.Probability
	}
	slices.Sort(names)

	families := make([]Family, len(names))
	for i, name := range names {
		families[i] = Family{Name: name, Probability: sums[name]}
	}
	return families
}

// Map returns the posterior as a plain map.
func (tp TypePosterior) Map() map[string]float64 {
	out := make(map[string]float64, len(tp.entries))
	for _, e := range tp.entries {
		out[e.Type] = e.Probability
	}
	return out
}
