package arff

import (
	"math"

	"github.com/ajitpratap0/colprof/pkg/colerrors"
)

// Scaler is a robust scaler fitted on the (U, U_clean) feature pair:
// x' = (x - center) / scale.
type Scaler struct {
	Center []float64 `json:"center"`
	Scale  []float64 `json:"scale"`
}

// Validate checks that the scaler covers exactly two features.
func (s Scaler) Validate() error {
	if len(s.Center) != 2 || len(s.Scale) != 2 {
		return colerrors.New(colerrors.ErrorTypeModelLoad, "scaler must have two centers and two scales").
			WithDetail("centers", len(s.Center)).
			WithDetail("scales", len(s.Scale))
	}
	for _, v := range append(append([]float64{}, s.Center...), s.Scale...) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return colerrors.New(colerrors.ErrorTypeModelLoad, "scaler parameters must be finite")
		}
	}
	return nil
}

// Transform scales u and uClean. A zero scale leaves the centered value
// unscaled.
func (s Scaler) Transform(u, uClean float64) (float64, float64) {
	return scale(u, s.Center[0], s.Scale[0]), scale(uClean, s.Center[1], s.Scale[1])
}

func scale(x, center, scale float64) float64 {
	if scale == 0 {
		scale = 1
	}
	return (x - center) / scale
}
