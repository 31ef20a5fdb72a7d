package arff

import "github.com/ajitpratap0/colprof/pkg/features"

// Storage categories produced by the bundled models.
const (
	LabelNominal     = "nominal"
	LabelCategorical = "categorical"
	LabelNumeric     = "numeric"
	LabelDate        = "date"
)

// Classifier assigns a storage category to a feature vector.
type Classifier interface {
	Classify(f features.Features) (Outcome, error)
}

// Outcome is a storage category and the posterior over all categories.
type Outcome struct {
	Label     string    `json:"label"`
	Classes   []string  `json:"classes"`
	Posterior []float64 `json:"posterior"`
}

// RenameLabel maps the classifier's raw label to the reported category.
func RenameLabel(label string) string {
	if label == LabelCategorical {
		return LabelNominal
	}
	return label
}

// Probability returns the posterior probability of label, or 0.
func (o Outcome) Probability(label string) float64 {
	for i, c := range o.Classes {
		if c == label && i < len(o.Posterior) {
			return o.Posterior[i]
		}
	}
	return 0
}

// Map returns the posterior keyed by category.
func (o Outcome) Map() map[string]float64 {
	out := make(map[string]float64, len(o.Classes))
	for i, c := range o.Classes {
		if i < len(o.Posterior) {
			out[c] = o.Posterior[i]
		}
	}
	return out
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(f features.Features) (Outcome, error)

// Classify calls fn(f).
func (fn ClassifierFunc) Classify(f features.Features) (Outcome, error) {
	return fn(f)
}
