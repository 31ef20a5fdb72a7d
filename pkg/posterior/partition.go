package posterior

import "slices"

// Partition splits the positions of a column's distinct values into three
// disjoint sets, each in ascending order. Their union covers every position.
type Partition struct {
	Normal    []int `json:"normal"`
	Missing   []int `json:"missing"`
	Anomalous []int `json:"anomalous"`
}

// PartitionRows assigns every distinct value to its most probable status.
func PartitionRows(rows RowPosteriors) Partition {
	p := Partition{
		Normal:    []int{},
		Missing:   []int{},
		Anomalous: []int{},
	}
	for i := range rows {
		switch rows.ArgMax(i) {
		case StatusTypeConforming:
			p.Normal = append(p.Normal, i)
		case StatusMissing:
			p.Missing = append(p.Missing, i)
		case StatusAnomalous:
			p.Anomalous = append(p.Anomalous, i)
		}
	}
	return p
}

// Indices returns the positions assigned to s.
func (p Partition) Indices(s Status) []int {
	switch s {
	case StatusTypeConforming:
		return p.Normal
	case StatusMissing:
		return p.Missing
	case StatusAnomalous:
		return p.Anomalous
	default:
		return nil
	}
}

// StatusOf returns the status of position i, or false if i is not in the
// partition.
func (p Partition) StatusOf(i int) (Status, bool) {
	for _, s := range Statuses {
		if _, ok := slices.BinarySearch(p.Indices(s), i); ok {
			return s, true
		}
	}
	return 0, false
}

// Len returns the number of positions covered.
func (p Partition) Len() int {
	return len(p.Normal) + len(p.Missing) + len(p.Anomalous)
}

// Equal reports whether both partitions assign every position identically.
func (p Partition) Equal(other Partition) bool {
	return slices.Equal(p.Normal, other.Normal) &&
		slices.Equal(p.Missing, other.Missing) &&
		slices.Equal(p.Anomalous, other.Anomalous)
}

// Clone returns a deep copy.
func (p Partition) Clone() Partition {
	return Partition{
		Normal:    slices.Clone(p.Normal),
		Missing:   slices.Clone(p.Missing),
		Anomalous: slices.Clone(p.Anomalous),
	}
}
