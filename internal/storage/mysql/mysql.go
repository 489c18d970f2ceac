// Package mysql registers the "mysql" storage backend
// (github.com/go-sql-driver/mysql).
package mysql

import (
	"context"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"

	"github.com/jvportella/dataset-financial-transactions/internal/storage"
	"github.com/jvportella/dataset-financial-transactions/internal/storage/sqldb"
)

// Dialect renders MySQL statements.
type Dialect struct{}

// Name implements sqldb.Dialect.
func (Dialect) Name() string { return "mysql" }

// InsertIgnore implements sqldb.Dialect. INSERT IGNORE would also swallow
// type and foreign-key errors, so a no-op update of the key is used instead;
// MySQL reports zero affected rows for it.
func (Dialect) InsertIgnore(spec storage.TableSpec) string {
	key := quote(spec.ConflictKey)
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON DUPLICATE KEY UPDATE %s = %s",
		quote(spec.Name),
		storage.QuoteWith(spec.Columns, quote),
		storage.Placeholders(len(spec.Columns), func(int) string { return "?" }),
		key, key,
	)
}

func quote(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = "`" + strings.ReplaceAll(p, "`", "``") + "`"
	}
	return strings.Join(parts, ".")
}

func init() {
	storage.Register("mysql", func(ctx context.Context, cfg storage.Config) (storage.Conn, error) {
		return sqldb.Open(ctx, "mysql", cfg.DSN, Dialect{})
	})
}
