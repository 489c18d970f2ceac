// Package sqlite registers the "sqlite" storage backend (modernc.org/sqlite,
// pure Go). Inserts use INSERT ... ON CONFLICT (key) DO NOTHING, which needs
// SQLite 3.24 or newer.
package sqlite

import (
	"context"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/jvportella/dataset-financial-transactions/internal/storage"
	"github.com/jvportella/dataset-financial-transactions/internal/storage/sqldb"
)

// Dialect renders SQLite statements.
type Dialect struct{}

// Name implements sqldb.Dialect.
func (Dialect) Name() string { return "sqlite" }

// InsertIgnore implements sqldb.Dialect.
func (Dialect) InsertIgnore(spec storage.TableSpec) string {
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO NOTHING",
		storage.QuoteANSI(spec.Name),
		storage.QuoteWith(spec.Columns, storage.QuoteANSI),
		storage.Placeholders(len(spec.Columns), func(int) string { return "?" }),
		storage.QuoteANSI(spec.ConflictKey),
	)
}

// Open connects to dsn, e.g. "financial.db" or "file:financial.db?_pragma=foreign_keys(1)".
// Foreign keys are switched on so referential errors surface at insert time.
func Open(ctx context.Context, dsn string) (*sqldb.Conn, error) {
	c, err := sqldb.Open(ctx, "sqlite", dsn, Dialect{})
	if err != nil {
		return nil, err
	}
	if _, err := c.DB().ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		c.Close(ctx)
		return nil, fmt.Errorf("%w: sqlite: enable foreign keys: %w", storage.ErrConnect, err)
	}
	return c, nil
}

func init() {
	storage.Register("sqlite", func(ctx context.Context, cfg storage.Config) (storage.Conn, error) {
		return Open(ctx, cfg.DSN)
	})
}
