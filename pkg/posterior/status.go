package posterior

// Status is the interpretation of a distinct value under a type. Its integer
// value is the column of that status in RowPosteriors.
type Status int

const (
	// StatusTypeConforming marks a value consistent with the type
	StatusTypeConforming Status = iota
	// StatusMissing marks a placeholder for absent data
	StatusMissing
	// StatusAnomalous marks a value that is neither conforming nor missing
	StatusAnomalous
)

// NumStatuses is the number of columns in a RowPosteriors row.
const NumStatuses = 3

// Statuses lists every status in tie-breaking order.
var Statuses = [NumStatuses]Status{StatusTypeConforming, StatusMissing, StatusAnomalous}

// String returns the status name used in reports and metric labels.
func (s Status) String() string {
	switch s {
	case StatusTypeConforming:
		return "normal"
	case StatusMissing:
		return "missing"
	case StatusAnomalous:
		return "anomalous"
	default:
		return "unknown"
	}
}
