// Package clean implements the cleaning stage: exact-duplicate removal and
// detection of values that do not match a column's expected kind.
//
// Nothing here corrects data. Detected problems are returned as an Issues
// report for the caller to print; rows are only ever removed when they are
// byte-for-byte copies of an earlier row.
package clean

import (
	"strings"

	"github.com/zeebo/xxh3"

	"github.com/jvportella/dataset-financial-transactions/internal/parser/csv"
)

// Dedup returns a new table without rows that exactly repeat an earlier row.
// Survivors keep their first-seen order. Rows that differ in any single cell
// are all kept.
//
// Rows are bucketed by a 128-bit xxh3 hash of their cells and compared cell
// by cell inside a bucket, so a hash collision can never merge two distinct
// rows.
func Dedup(t csv.Table) csv.Table {
	out := csv.Table{
		Header: t.Header,
		Rows:   make([][]string, 0, len(t.Rows)),
	}
	seen := make(map[xxh3.Uint128][]int, len(t.Rows))

	for _, row := range t.Rows {
		h := hashRow(row)
		dup := false
		for _, idx := range seen[h] {
			if equalRows(out.Rows[idx], row) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		seen[h] = append(seen[h], len(out.Rows))
		out.Rows = append(out.Rows, row)
	}
	return out
}

// unitSep cannot appear in well-formed CSV text cells, so joined rows with
// different cell boundaries never produce the same input to the hash.
const unitSep = "\x1f"

func hashRow(row []string) xxh3.Uint128 {
	return xxh3.HashString128(strings.Join(row, unitSep))
}

func equalRows(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
