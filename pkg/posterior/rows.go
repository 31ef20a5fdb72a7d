package posterior

import (
	"math"

	"github.com/ajitpratap0/colprof/pkg/colerrors"
	"github.com/ajitpratap0/colprof/pkg/json"
)

// RowPosteriors holds, for every distinct value of a column under one type,
// the probabilities of [type-conforming, missing, anomalous].
type RowPosteriors [][NumStatuses]float64

// UnmarshalJSON decodes a matrix with exactly NumStatuses columns per row.
func (rp *RowPosteriors) UnmarshalJSON(data []byte) error {
	var raw [][]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*rp = nil
		return nil
	}

	rows := make(RowPosteriors, len(raw))
	for i, row := range raw {
		if len(row) != NumStatuses {
			return colerrors.New(colerrors.ErrorTypeData, "row posterior must have one probability per status").
				WithDetail("row", i).
				WithDetail("width", len(row)).
				WithDetail("expected", NumStatuses)
		}
		copy(rows[i][:], row)
	}
	*rp = rows
	return nil
}

// Validate checks that there is exactly one row per distinct value and that
// every probability is a finite non-negative number.
func (rp RowPosteriors) Validate(uniqueValues int) error {
	if len(rp) != uniqueValues {
		return colerrors.New(colerrors.ErrorTypeData, "row posteriors do not match the unique values").
			WithDetail("rows", len(rp)).
			WithDetail("unique_values", uniqueValues)
	}
	for i, row := range rp {
		for j, p := range row {
			if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
				return colerrors.New(colerrors.ErrorTypeData, "invalid row posterior").
					WithDetail("row", i).
					WithDetail("status", Status(j).String()).
					WithDetail("value", p)
			}
		}
	}
	return nil
}

// ArgMax returns the most probable status of row i. Ties go to the status
// listed first in Statuses.
func (rp RowPosteriors) ArgMax(i int) Status {
	row := rp[i]
	best := StatusTypeConforming
	for _, s := range Statuses[1:] {
		if row[s] > row[best] {
			best = s
		}
	}
	return best
}
