package rows

import (
	"strconv"
	"strings"
)

// ParseApprovalPercent tolerates the three forms the source difficulty
// tables use for an approval percentage: "78%", "78,5" and a plain 78.5.
// A blank or unparseable cell is "unknown difficulty", not an error —
// the original (src/excel/porcentajes.rs) treats it the same way, and
// priority scoring falls back to a neutral default when nil.
func ParseApprovalPercent(raw string) (value float64, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, "%", "")
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.TrimSpace(s)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if v < 0 {
		return 0, false
	}
	if v > 100 {
		v = 100
	}
	return v, true
}
