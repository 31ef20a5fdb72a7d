// Package features builds the numeric summary of a column that the ARFF
// classifier consumes.
//
// The vector layout is the aggregated type-family probabilities in family
// order followed by four shape features at fixed offsets from the end:
//
//	[p(family_0) ... p(family_k-1), u_ratio, u_ratio_clean, U, U_clean]
//
// Consumers address the shape features through the Pos* methods instead of
// hard-coded indices.
package features

import (
	"github.com/ajitpratap0/colprof/pkg/colerrors"
	"github.com/ajitpratap0/colprof/pkg/posterior"
	"github.com/ajitpratap0/colprof/pkg/values"
)

// NumShapeFeatures is the number of trailing features after the family
// probabilities.
const NumShapeFeatures = 4

// Features is the named form of a column's feature vector.
type Features struct {
	// Families are the type probabilities aggregated by family prefix
	Families []posterior.Family `json:"families"`
	// URatio is U/N
	URatio float64 `json:"u_ratio"`
	// URatioClean is UClean/NClean, or 0 when both are zero
	URatioClean float64 `json:"u_ratio_clean"`
	// U is the number of distinct values
	U int `json:"u"`
	// UClean is the number of distinct type-conforming values
	UClean int `json:"u_clean"`
	// N is the number of rows
	N int `json:"n"`
	// NClean is the number of rows holding a type-conforming value
	NClean int `json:"n_clean"`
}

// Build derives the features of a column from its type posterior, its
// partition, the occurrence counts of its distinct values and the raw cells.
func Build(tp posterior.TypePosterior, p posterior.Partition, counts []int, raw []interface{}) (Features, error) {
	n := len(raw)
	if n == 0 {
		return Features{}, colerrors.New(colerrors.ErrorTypeData, "cannot build features of an empty column")
	}

	nClean := 0
	for _, i := range p.Normal {
		if i < 0 || i >= len(counts) {
			return Features{}, colerrors.New(colerrors.ErrorTypeData, "partition index out of range").
				WithDetail("index", i).
				WithDetail("unique_values", len(counts))
		}
		nClean += counts[i]
	}

	f := Features{
		Families: tp.Families(),
		U:        values.Distinct(raw),
		UClean:   len(p.Normal),
		N:        n,
		NClean:   nClean,
	}
	f.URatio = float64(f.U) / float64(f.N)
	if f.UClean == 0 && f.NClean == 0 {
		f.URatioClean = 0.0
	} else {
		f.URatioClean = float64(f.UClean) / float64(f.NClean)
	}

	return f, nil
}

// Len returns the length of the vector.
func (f Features) Len() int {
	return len(f.Families) + NumShapeFeatures
}

// PosURatio returns the vector position of u_ratio.
func (f Features) PosURatio() int { return len(f.Families) }

// PosURatioClean returns the vector position of u_ratio_clean.
func (f Features) PosURatioClean() int { return len(f.Families) + 1 }

// PosU returns the vector position of U.
func (f Features) PosU() int { return len(f.Families) + 2 }

// PosUClean returns the vector position of U_clean.
func (f Features) PosUClean() int { return len(f.Families) + 3 }

// Vector assembles the feature vector. The result is a fresh slice.
func (f Features) Vector() []float64 {
	v := make([]float64, 0, f.Len())
	for _, fam := range f.Families {
		v = append(v, fam.Probability)
	}
	return append(v, f.URatio, f.URatioClean, float64(f.U), float64(f.UClean))
}

// FamilyNames returns the family names in vector order.
func (f Features) FamilyNames() []string {
	names := make([]string, len(f.Families))
	for i, fam := range f.Families {
		names[i] = fam.Name
	}
	return names
}
