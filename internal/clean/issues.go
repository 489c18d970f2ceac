package clean

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/jvportella/dataset-financial-transactions/internal/parser/csv"
)

// Kind is the expected shape of a column's values.
type Kind string

const (
	// Numeric columns must parse as a number.
	Numeric Kind = "numeric"
	// Categorical columns must be present and non-empty.
	Categorical Kind = "categorical"
)

// Issues maps a column name (or an issue kind, for transactions) to the raw
// offending values, in row order. It is informational only.
type Issues map[string][]string

// Keys returns the report keys in sorted order, for stable printing.
func (is Issues) Keys() []string {
	keys := make([]string, 0, len(is))
	for k := range is {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Total is the number of offending values across all keys.
func (is Issues) Total() int {
	n := 0
	for _, v := range is {
		n += len(v)
	}
	return n
}

// DetectIssues checks every column listed in kinds against t. A numeric
// column reports each cell that does not parse as a number (an empty cell is
// null and is reported too); a categorical column reports each empty cell.
// Columns missing from t are skipped without an entry. Every present column
// gets an entry, possibly empty. No row is modified or dropped.
func DetectIssues(t csv.Table, kinds map[string]Kind) Issues {
	issues := make(Issues, len(kinds))
	for col, kind := range kinds {
		cells, ok := t.Column(col)
		if !ok {
			continue
		}
		bad := []string{}
		for _, v := range cells {
			switch kind {
			case Numeric:
				if !IsNumeric(v) {
					bad = append(bad, v)
				}
			case Categorical:
				if IsNull(v) {
					bad = append(bad, v)
				}
			}
		}
		issues[col] = bad
	}
	return issues
}

// CleanTable removes exact duplicates from t and reports kind violations on
// the deduplicated rows. Flagged rows stay in the returned table.
func CleanTable(t csv.Table, kinds map[string]Kind) (csv.Table, Issues) {
	cleaned := Dedup(t)
	return cleaned, DetectIssues(cleaned, kinds)
}

// IsNumeric reports whether v parses as a number, ignoring surrounding
// spaces. NaN counts as missing. Currency symbols and thousands separators
// make a value non-numeric.
func IsNumeric(v string) bool {
	s := strings.TrimSpace(v)
	if s == "" {
		return false
	}
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && !math.IsNaN(f)
}

// IsNull reports whether v is the null/empty cell.
func IsNull(v string) bool { return v == "" }
