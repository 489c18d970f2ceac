// Package sqldb implements storage.Conn on top of database/sql for the
// backends that do not have a native client here (sqlite, mysql, mssql).
// Each backend supplies a Dialect that knows how to spell an insert that
// skips rows whose key already exists.
package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jvportella/dataset-financial-transactions/internal/storage"
)

// Dialect renders backend-specific SQL.
type Dialect interface {
	// Name is used in error messages, e.g. "sqlite".
	Name() string
	// InsertIgnore returns a parameterized statement inserting one row of
	// spec.Columns that does nothing when spec.ConflictKey already exists.
	InsertIgnore(spec storage.TableSpec) string
}

// Conn is a storage.Conn backed by a *sql.DB pinned to one connection.
type Conn struct {
	db      *sql.DB
	dialect Dialect
}

var _ storage.Conn = (*Conn)(nil)

// Open opens driverName/dsn, limits the pool to a single connection and
// pings it. Failures are wrapped with storage.ErrConnect.
func Open(ctx context.Context, driverName, dsn string, d Dialect) (*Conn, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: open: %w", storage.ErrConnect, d.Name(), err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %s: ping: %w", storage.ErrConnect, d.Name(), err)
	}
	return New(db, d), nil
}

// New wraps an already open *sql.DB.
func New(db *sql.DB, d Dialect) *Conn { return &Conn{db: db, dialect: d} }

// DB exposes the underlying handle, mainly for tests and schema setup.
func (c *Conn) DB() *sql.DB { return c.db }

// InsertIgnore prepares the dialect's statement once and executes it per row
// inside one transaction. Any failure rolls everything back.
func (c *Conn) InsertIgnore(ctx context.Context, spec storage.TableSpec, rows [][]any) (storage.Result, error) {
	res := storage.Result{}
	if len(rows) == 0 {
		return res, nil
	}
	name := c.dialect.Name()

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("%s: begin tx: %w", name, err)
	}
	defer tx.Rollback() // no-op after Commit

	stmt, err := tx.PrepareContext(ctx, c.dialect.InsertIgnore(spec))
	if err != nil {
		return res, fmt.Errorf("%s: prepare insert into %s: %w", name, spec.Name, err)
	}
	defer stmt.Close()

	for i, row := range rows {
		if len(row) != len(spec.Columns) {
			return storage.Result{}, fmt.Errorf("%s: row %d has %d values, want %d", name, i+1, len(row), len(spec.Columns))
		}
		r, err := stmt.ExecContext(ctx, row...)
		if err != nil {
			return storage.Result{}, fmt.Errorf("%s: insert into %s (row %d): %w", name, spec.Name, i+1, err)
		}
		n, err := r.RowsAffected()
		if err != nil {
			return storage.Result{}, fmt.Errorf("%s: insert into %s (row %d): rows affected: %w", name, spec.Name, i+1, err)
		}
		res.Attempted++
		res.Inserted += n
	}

	if err := tx.Commit(); err != nil {
		return storage.Result{}, fmt.Errorf("%s: commit %s: %w", name, spec.Name, err)
	}
	return res, nil
}

// Close closes the database handle.
func (c *Conn) Close(context.Context) error { return c.db.Close() }
