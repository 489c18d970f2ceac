package clean

import (
	"strings"
	"time"

	"github.com/jvportella/dataset-financial-transactions/internal/parser/csv"
)

// Issue keys reported by CleanTransactions.
const (
	IssueDuplicateIDs   = "duplicate_ids"
	IssueInvalidAmounts = "invalid_amounts"
	IssueInvalidUseChip = "invalid_use_chip"
	IssueInvalidDates   = "invalid_dates"
)

// DroppedTransactionColumns are removed from the cleaned transactions file.
// errors is almost always null; use_chip holds "NO" for every retained row.
var DroppedTransactionColumns = []string{"errors", "use_chip"}

// dateLayouts are tried in order when checking a transaction date.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04",
	"01/02/2006",
}

// CleanTransactions removes exact duplicate rows, reports duplicate ids,
// non-numeric amounts, use_chip values outside {YES, NO} and unparseable
// dates, then drops the errors and use_chip columns. Each check only runs
// when its column exists. Nothing is corrected.
func CleanTransactions(t csv.Table) (csv.Table, Issues) {
	cleaned := Dedup(t)
	issues := Issues{}

	if ids, ok := cleaned.Column("id"); ok {
		issues[IssueDuplicateIDs] = duplicateValues(ids)
	}
	if amounts, ok := cleaned.Column("amount"); ok {
		issues[IssueInvalidAmounts] = filter(amounts, func(v string) bool { return !IsNumeric(v) })
	}
	if flags, ok := cleaned.Column("use_chip"); ok {
		issues[IssueInvalidUseChip] = filter(flags, func(v string) bool { return v != "YES" && v != "NO" })
	}
	if dates, ok := cleaned.Column("date"); ok {
		issues[IssueInvalidDates] = filter(dates, func(v string) bool { return !IsDate(v) })
	}

	return cleaned.Drop(DroppedTransactionColumns...), issues
}

// IsDate reports whether v parses under one of the accepted date layouts.
func IsDate(v string) bool {
	s := strings.TrimSpace(v)
	if s == "" {
		return false
	}
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// duplicateValues returns every occurrence of each value that appears more
// than once, in row order.
func duplicateValues(cells []string) []string {
	counts := make(map[string]int, len(cells))
	for _, v := range cells {
		counts[v]++
	}
	return filter(cells, func(v string) bool { return counts[v] > 1 })
}

func filter(cells []string, bad func(string) bool) []string {
	out := []string{}
	for _, v := range cells {
		if bad(v) {
			out = append(out, v)
		}
	}
	return out
}
