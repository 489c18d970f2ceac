package transformer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseID casts an identifier cell to int64. An empty cell is missing and
// yields 0. Integral floats such as "12.0" are accepted, since a column with
// gaps is often written out as floats.
func ParseID(raw string) (v int64, missing bool, err error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, true, nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, false, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) ||
		f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false, fmt.Errorf("%q is not an integer identifier", raw)
	}
	return int64(f), false, nil
}
