package arff

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/ajitpratap0/colprof/pkg/colerrors"
)

// Multi-class strategies of a LogisticRegression.
const (
	MultiClassMultinomial = "multinomial"
	MultiClassOvR         = "ovr"
)

// LogisticRegression is a fitted linear classifier. Binary models have a
// single coefficient row scoring Classes[1] against Classes[0].
type LogisticRegression struct {
	Classes    []string    `json:"classes"`
	Coef       [][]float64 `json:"coef"`
	Intercept  []float64   `json:"intercept"`
	MultiClass string      `json:"multi_class"`

	coef      *mat.Dense
	intercept *mat.VecDense
}

// Prepare validates the parameters and builds the matrices used for
// prediction. It must be called before any prediction.
func (lr *LogisticRegression) Prepare() error {
	if len(lr.Classes) < 2 {
		return colerrors.New(colerrors.ErrorTypeModelLoad, "classifier needs at least two classes").
			WithDetail("classes", len(lr.Classes))
	}

	rows := len(lr.Classes)
	if len(lr.Classes) == 2 && len(lr.Coef) == 1 {
		rows = 1
	}
	if len(lr.Coef) != rows || len(lr.Intercept) != rows {
		return colerrors.New(colerrors.ErrorTypeModelLoad, "classifier coefficients do not match its classes").
			WithDetail("classes", len(lr.Classes)).
			WithDetail("coef_rows", len(lr.Coef)).
			WithDetail("intercepts", len(lr.Intercept))
	}

	width := len(lr.Coef[0])
	if width == 0 {
		return colerrors.New(colerrors.ErrorTypeModelLoad, "classifier has no coefficients")
	}
	data := make([]float64, 0, rows*width)
	for i, row := range lr.Coef {
		if len(row) != width {
			return colerrors.New(colerrors.ErrorTypeModelLoad, "classifier coefficient rows differ in width").
				WithDetail("row", i).
				WithDetail("width", len(row)).
				WithDetail("expected", width)
		}
		data = append(data, row...)
	}
	for _, v := range append(append([]float64{}, data...), lr.Intercept...) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return colerrors.New(colerrors.ErrorTypeModelLoad, "classifier parameters must be finite")
		}
	}

	switch lr.MultiClass {
	case "", "auto":
		lr.MultiClass = MultiClassMultinomial
	case MultiClassMultinomial, MultiClassOvR:
	default:
		return colerrors.Newf(colerrors.ErrorTypeModelLoad, "unsupported multi_class %q", lr.MultiClass)
	}

	lr.coef = mat.NewDense(rows, width, data)
	lr.intercept = mat.NewVecDense(rows, append([]float64{}, lr.Intercept...))
	return nil
}

// Width returns the feature vector length the classifier expects.
func (lr *LogisticRegression) Width() int {
	_, c := lr.coef.Dims()
	return c
}

func (lr *LogisticRegression) binary() bool {
	r, _ := lr.coef.Dims()
	return r == 1
}

func (lr *LogisticRegression) checkWidth(x []float64) error {
	if len(x) != lr.Width() {
		return colerrors.New(colerrors.ErrorTypeDimension, "feature vector width does not match the classifier").
			WithDetail("features", len(x)).
			WithDetail("expected", lr.Width())
	}
	return nil
}

// DecisionFunction returns the linear scores coef·x + intercept.
func (lr *LogisticRegression) DecisionFunction(x []float64) ([]float64, error) {
	if err := lr.checkWidth(x); err != nil {
		return nil, err
	}
	r, _ := lr.coef.Dims()
	z := mat.NewVecDense(r, nil)
	z.MulVec(lr.coef, mat.NewVecDense(len(x), append([]float64{}, x...)))
	z.AddVec(z, lr.intercept)
	return z.RawVector().Data, nil
}

// Predict returns the raw class label with the highest score.
func (lr *LogisticRegression) Predict(x []float64) (string, error) {
	z, err := lr.DecisionFunction(x)
	if err != nil {
		return "", err
	}
	if lr.binary() {
		if z[0] > 0 {
			return lr.Classes[1], nil
		}
		return lr.Classes[0], nil
	}
	return lr.Classes[floats.MaxIdx(z)], nil
}

// PredictProba returns the class probabilities, aligned with Classes.
func (lr *LogisticRegression) PredictProba(x []float64) ([]float64, error) {
	z, err := lr.DecisionFunction(x)
	if err != nil {
		return nil, err
	}

	if lr.binary() {
		p := sigmoid(z[0])
		return []float64{1 - p, p}, nil
	}

	proba := make([]float64, len(z))
	switch lr.MultiClass {
	case MultiClassOvR:
		for i, v := range z {
			proba[i] = sigmoid(v)
		}
		if sum := floats.Sum(proba); sum > 0 {
			floats.Scale(1/sum, proba)
		}
	default:
		lse := floats.LogSumExp(z)
		for i, v := range z {
			proba[i] = math.Exp(v - lse)
		}
	}
	return proba, nil
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
