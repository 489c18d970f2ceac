// Package loader pushes cleaned files into the database: users, cards,
// merchants derived from transactions, then transactions, over one
// connection, one transaction per table.
package loader

import (
	"context"
	"fmt"
	"time"

	"github.com/jvportella/dataset-financial-transactions/internal/logger"
	"github.com/jvportella/dataset-financial-transactions/internal/metrics"
	"github.com/jvportella/dataset-financial-transactions/internal/storage"
)

// LoadError reports the table whose load failed.
type LoadError struct {
	Table string
	Err   error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load %s: %v", e.Table, e.Err) }

func (e *LoadError) Unwrap() error { return e.Err }

// Loader inserts prepared rows into one table at a time.
type Loader struct {
	// Job labels metrics.
	Job string
}

// Load inserts rows into spec's table, skipping rows whose key exists. With
// no rows it only logs; no transaction is opened.
func (l Loader) Load(ctx context.Context, conn storage.Conn, spec storage.TableSpec, rows [][]any) (storage.Result, error) {
	log := logger.FromContext(ctx).With().Str("table", spec.Name).Logger()

	if len(rows) == 0 {
		log.Info().Msg("nothing to insert")
		return storage.Result{}, nil
	}
	log.Info().Int("records", len(rows)).Msg("inserting")

	start := time.Now()
	res, err := conn.InsertIgnore(ctx, spec, rows)
	metrics.RecordStep(l.Job, "load_"+spec.Name, err, time.Since(start))
	if err != nil {
		log.Error().Err(err).Msg("insert failed, table rolled back")
		return storage.Result{}, &LoadError{Table: spec.Name, Err: err}
	}

	metrics.RecordRows(l.Job, spec.Name, metrics.KindInserted, res.Inserted)
	metrics.RecordRows(l.Job, spec.Name, metrics.KindIgnored, res.Ignored())
	log.Info().
		Int64("inserted", res.Inserted).
		Int64("ignored", res.Ignored()).
		Dur("took", time.Since(start)).
		Msg("table loaded, duplicates ignored")
	return res, nil
}

// Rows converts records into insert rows.
func Rows[T interface{ Row() []any }](recs []T) [][]any {
	out := make([][]any, len(recs))
	for i, r := range recs {
		out[i] = r.Row()
	}
	return out
}
