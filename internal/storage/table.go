package storage

import (
	"fmt"
	"strings"
)

// TableSpec describes one destination table: its name, the ordered columns
// every row is aligned to, and the column that identifies a row for conflict
// resolution.
type TableSpec struct {
	Name        string
	Columns     []string
	ConflictKey string
}

// Validate checks that the spec can be turned into an INSERT statement.
func (s TableSpec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("table spec: name must not be empty")
	}
	if len(s.Columns) == 0 {
		return fmt.Errorf("table spec %s: columns must not be empty", s.Name)
	}
	seen := make(map[string]struct{}, len(s.Columns))
	for _, c := range s.Columns {
		if strings.TrimSpace(c) == "" {
			return fmt.Errorf("table spec %s: empty column name", s.Name)
		}
		if _, dup := seen[c]; dup {
			return fmt.Errorf("table spec %s: duplicate column %q", s.Name, c)
		}
		seen[c] = struct{}{}
	}
	if s.KeyIndex() < 0 {
		return fmt.Errorf("table spec %s: conflict key %q is not one of the columns", s.Name, s.ConflictKey)
	}
	return nil
}

// KeyIndex returns the position of ConflictKey in Columns, or -1.
func (s TableSpec) KeyIndex() int {
	for i, c := range s.Columns {
		if c == s.ConflictKey {
			return i
		}
	}
	return -1
}

// Placeholders returns n placeholders built by ph(i) for i in 1..n, joined
// with ", ".
func Placeholders(n int, ph func(i int) string) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = ph(i + 1)
	}
	return strings.Join(parts, ", ")
}

// QuoteWith quotes every name with quote and joins them with ", ".
func QuoteWith(names []string, quote func(string) string) string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = quote(n)
	}
	return strings.Join(out, ", ")
}

// QuoteANSI quotes an identifier with double quotes, as Postgres and SQLite
// expect. A schema-qualified name such as "public.users" becomes
// "public"."users".
func QuoteANSI(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = `"` + strings.ReplaceAll(p, `"`, `""`) + `"`
	}
	return strings.Join(parts, ".")
}
