package arff

import (
	"slices"

	"github.com/ajitpratap0/colprof/pkg/colerrors"
	"github.com/ajitpratap0/colprof/pkg/features"
)

// Model is a loaded scaler and classifier. It is immutable and safe for
// concurrent use.
type Model struct {
	scaler     Scaler
	classifier *LogisticRegression
	classes    []string
}

// NewModel validates the artifacts and assembles a model.
func NewModel(scaler Scaler, classifier *LogisticRegression) (*Model, error) {
	if err := scaler.Validate(); err != nil {
		return nil, err
	}
	if classifier == nil {
		return nil, colerrors.New(colerrors.ErrorTypeModelLoad, "classifier is missing")
	}
	if err := classifier.Prepare(); err != nil {
		return nil, err
	}

	classes := make([]string, len(classifier.Classes))
	for i, c := range classifier.Classes {
		classes[i] = RenameLabel(c)
	}

	return &Model{
		scaler:     scaler,
		classifier: classifier,
		classes:    classes,
	}, nil
}

// Classify scales the U and U_clean positions of the feature vector and
// runs the classifier on the full vector. f itself is not modified.
func (m *Model) Classify(f features.Features) (Outcome, error) {
	x := f.Vector()
	if err := m.classifier.checkWidth(x); err != nil {
		return Outcome{}, err
	}

	x[f.PosU()], x[f.PosUClean()] = m.scaler.Transform(x[f.PosU()], x[f.PosUClean()])

	label, err := m.classifier.Predict(x)
	if err != nil {
		return Outcome{}, err
	}
	proba, err := m.classifier.PredictProba(x)
	if err != nil {
		return Outcome{}, err
	}

	return Outcome{
		Label:     RenameLabel(label),
		Classes:   slices.Clone(m.classes),
		Posterior: proba,
	}, nil
}

// Classes returns the reported categories in posterior order.
func (m *Model) Classes() []string {
	return slices.Clone(m.classes)
}

// Width returns the feature vector length the model expects.
func (m *Model) Width() int {
	return m.classifier.Width()
}

// Families returns how many type families the model was trained with.
func (m *Model) Families() int {
	return m.Width() - features.NumShapeFeatures
}

// Scaler returns the scaler parameters.
func (m *Model) Scaler() Scaler {
	return Scaler{
		Center: slices.Clone(m.scaler.Center),
		Scale:  slices.Clone(m.scaler.Scale),
	}
}

// MultiClass returns the classifier's multi-class strategy, or "binary".
func (m *Model) MultiClass() string {
	if m.classifier.binary() {
		return "binary"
	}
	return m.classifier.MultiClass
}
