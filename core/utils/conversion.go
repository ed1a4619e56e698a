package utils

import (
	"fmt"
	"strconv"
	"time"
)

// ToString converts a database or decoded value to its text form.
// Byte slices are taken as text, floats use the shortest representation and
// times are formatted as RFC 3339. nil becomes "".
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", v)
	}
}
