// Package ddl renders CREATE TABLE statements for the financial schema in
// each supported SQL dialect. finetl never executes them; operators apply
// the printed statements, and tests use them to build throwaway databases.
package ddl

import (
	"fmt"
	"strings"
)

// Dialect maps portable types to SQL and quotes identifiers.
type Dialect struct {
	Name  string
	Quote func(string) string
	Types map[Type]string
}

func quoteWith(open, close string) func(string) string {
	return func(s string) string {
		return open + strings.ReplaceAll(s, close, close+close) + close
	}
}

var dialects = map[string]Dialect{
	"postgres": {
		Name:  "postgres",
		Quote: quoteWith(`"`, `"`),
		Types: map[Type]string{Integer: "INTEGER", BigInt: "BIGINT", Real: "DOUBLE PRECISION", Text: "TEXT", Timestamp: "TIMESTAMP"},
	},
	"sqlite": {
		Name:  "sqlite",
		Quote: quoteWith(`"`, `"`),
		Types: map[Type]string{Integer: "INTEGER", BigInt: "INTEGER", Real: "REAL", Text: "TEXT", Timestamp: "TEXT"},
	},
	"mysql": {
		Name:  "mysql",
		Quote: quoteWith("`", "`"),
		Types: map[Type]string{Integer: "INT", BigInt: "BIGINT", Real: "DOUBLE", Text: "VARCHAR(255)", Timestamp: "DATETIME"},
	},
	"mssql": {
		Name:  "mssql",
		Quote: quoteWith("[", "]"),
		Types: map[Type]string{Integer: "INT", BigInt: "BIGINT", Real: "FLOAT", Text: "NVARCHAR(255)", Timestamp: "DATETIME2"},
	},
}

// DialectFor returns the dialect for a storage kind.
func DialectFor(kind string) (Dialect, error) {
	d, ok := dialects[kind]
	if !ok {
		return Dialect{}, fmt.Errorf("ddl: no dialect for %q", kind)
	}
	return d, nil
}

// BuildCreateTableSQL renders t as
//
//	CREATE TABLE <name> (
//	  <col> <type> [NOT NULL] [REFERENCES <table>(<col>)],
//	  ...,
//	  PRIMARY KEY (<pk cols>)
//	);
func BuildCreateTableSQL(d Dialect, t TableDef) (string, error) {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return "", fmt.Errorf("ddl: table name must not be empty")
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("ddl: table %s: at least one column is required", name)
	}

	cols := make([]string, 0, len(t.Columns)+1)
	var pks []string
	for _, c := range t.Columns {
		if strings.TrimSpace(c.Name) == "" {
			return "", fmt.Errorf("ddl: table %s: column with empty name", name)
		}
		typ, ok := d.Types[c.Type]
		if !ok {
			return "", fmt.Errorf("ddl: %s has no type for column %s", d.Name, c.Name)
		}

		var sb strings.Builder
		sb.WriteString(d.Quote(c.Name))
		sb.WriteByte(' ')
		sb.WriteString(typ)
		if !c.Nullable || c.PrimaryKey {
			sb.WriteString(" NOT NULL")
		}
		if c.References != "" {
			table, col, ok := strings.Cut(strings.TrimSuffix(c.References, ")"), "(")
			if !ok {
				return "", fmt.Errorf("ddl: column %s: malformed reference %q", c.Name, c.References)
			}
			fmt.Fprintf(&sb, " REFERENCES %s(%s)", d.Quote(table), d.Quote(col))
		}
		cols = append(cols, sb.String())

		if c.PrimaryKey {
			pks = append(pks, d.Quote(c.Name))
		}
	}
	if len(pks) > 0 {
		cols = append(cols, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(pks, ", ")))
	}

	return fmt.Sprintf("CREATE TABLE %s (\n  %s\n);", d.Quote(name), strings.Join(cols, ",\n  ")), nil
}

// BuildAll renders every table in order.
func BuildAll(d Dialect, tables []TableDef) ([]string, error) {
	out := make([]string, 0, len(tables))
	for _, t := range tables {
		stmt, err := BuildCreateTableSQL(d, t)
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}
	return out, nil
}
