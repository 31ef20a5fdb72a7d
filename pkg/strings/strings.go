// Package strings provides the cell stringification and type-name helpers
// shared by the column profiling packages.
package strings

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	gojson "github.com/goccy/go-json"
)

// FamilySeparator splits a type name into its family prefix and subtype,
// e.g. "date-iso-8601" belongs to the "date" family.
const FamilySeparator = "-"

// ValueToString converts a raw cell value to the string form used as its
// identity when counting distinct values. nil becomes the empty string.
func ValueToString(value interface{}) string {
	if value == nil {
		return ""
	}

	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case []byte:
		return string(v)
	case gojson.Number:
		return v.String()
	case time.Time:
		return v.Format(time.RFC3339Nano)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", value)
	}
}

// Family returns the part of a type name before the first FamilySeparator.
// Names without a separator are their own family.
func Family(typeName string) string {
	if i := strings.Index(typeName, FamilySeparator); i >= 0 {
		return typeName[:i]
	}
	return typeName
}
