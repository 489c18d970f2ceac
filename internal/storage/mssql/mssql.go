// Package mssql registers the "mssql" storage backend
// (github.com/microsoft/go-mssqldb). SQL Server has no ON CONFLICT clause, so
// each row is inserted only when no row with the same key exists.
package mssql

import (
	"context"
	"fmt"
	"strings"

	_ "github.com/microsoft/go-mssqldb"
	"github.com/microsoft/go-mssqldb/msdsn"

	"github.com/jvportella/dataset-financial-transactions/internal/storage"
	"github.com/jvportella/dataset-financial-transactions/internal/storage/sqldb"
)

// Dialect renders T-SQL statements with @pN placeholders.
type Dialect struct{}

// Name implements sqldb.Dialect.
func (Dialect) Name() string { return "mssql" }

// InsertIgnore implements sqldb.Dialect. The key placeholder is reused in the
// NOT EXISTS probe, so rows are bound exactly as for the other backends.
func (Dialect) InsertIgnore(spec storage.TableSpec) string {
	table := quote(spec.Name)
	return fmt.Sprintf(
		"INSERT INTO %s (%s) SELECT %s WHERE NOT EXISTS (SELECT 1 FROM %s WITH (UPDLOCK, HOLDLOCK) WHERE %s = @p%d)",
		table,
		storage.QuoteWith(spec.Columns, quote),
		storage.Placeholders(len(spec.Columns), func(i int) string { return fmt.Sprintf("@p%d", i) }),
		table,
		quote(spec.ConflictKey),
		spec.KeyIndex()+1,
	)
}

func quote(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = "[" + strings.ReplaceAll(p, "]", "]]") + "]"
	}
	return strings.Join(parts, ".")
}

// Open validates dsn before dialing so a malformed connection string is
// reported as such rather than as a network failure.
func Open(ctx context.Context, dsn string) (*sqldb.Conn, error) {
	if _, err := msdsn.Parse(dsn); err != nil {
		return nil, fmt.Errorf("%w: mssql: parse dsn: %w", storage.ErrConnect, err)
	}
	return sqldb.Open(ctx, "sqlserver", dsn, Dialect{})
}

func init() {
	storage.Register("mssql", func(ctx context.Context, cfg storage.Config) (storage.Conn, error) {
		return Open(ctx, cfg.DSN)
	})
}
