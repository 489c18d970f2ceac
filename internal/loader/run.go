package loader

import (
	"context"
	"fmt"

	"github.com/jvportella/dataset-financial-transactions/internal/datasource"
	"github.com/jvportella/dataset-financial-transactions/internal/logger"
	pcsv "github.com/jvportella/dataset-financial-transactions/internal/parser/csv"
	"github.com/jvportella/dataset-financial-transactions/internal/schema"
	"github.com/jvportella/dataset-financial-transactions/internal/storage"
	"github.com/jvportella/dataset-financial-transactions/internal/transformer"
)

// Deps is everything Run needs.
type Deps struct {
	Job     string
	Storage storage.Config

	Users        datasource.Source
	Cards        datasource.Source
	Transactions datasource.Source

	AmountPolicy transformer.AmountPolicy

	// Open defaults to storage.Open.
	Open func(ctx context.Context, cfg storage.Config) (*storage.Session, error)
}

// TableResult is the outcome for one loaded table.
type TableResult struct {
	Table  string
	Result storage.Result
}

// Summary lists the tables loaded by Run, in load order.
type Summary struct {
	Tables []TableResult
	// Flags are malformed amounts loaded as 0.0 under AmountDefault.
	Flags []transformer.Flag
}

// Run connects once, then loads users, cards, merchants and transactions in
// that order. The first failure stops the run; tables already loaded stay
// committed. The connection is closed on every path.
//
// A connection failure is returned wrapped in storage.ErrConnect and nothing
// is loaded.
func Run(ctx context.Context, d Deps) (sum Summary, err error) {
	log := logger.FromContext(ctx)
	open := d.Open
	if open == nil {
		open = storage.Open
	}

	sess, err := open(ctx, d.Storage)
	if err != nil {
		return sum, err
	}
	defer func() {
		if cerr := sess.Close(ctx); cerr != nil {
			log.Warn().Err(cerr).Msg("close connection")
		}
		log.Debug().Msg("connection closed")
	}()
	log.Info().Str("kind", d.Storage.Kind).Msg("connected")

	l := Loader{Job: d.Job}
	load := func(spec storage.TableSpec, rows [][]any) error {
		res, err := l.Load(ctx, sess, spec, rows)
		if err != nil {
			return err
		}
		sum.Tables = append(sum.Tables, TableResult{Table: spec.Name, Result: res})
		return nil
	}

	users, err := pcsv.DecodeSource[schema.User](ctx, d.Users)
	if err != nil {
		return sum, &LoadError{Table: schema.UsersTable.Name, Err: err}
	}
	if err := load(schema.UsersTable, Rows(users)); err != nil {
		return sum, err
	}

	cards, err := pcsv.DecodeSource[schema.Card](ctx, d.Cards)
	if err != nil {
		return sum, &LoadError{Table: schema.CardsTable.Name, Err: err}
	}
	if err := load(schema.CardsTable, Rows(cards)); err != nil {
		return sum, err
	}

	txRecs, err := pcsv.DecodeSource[schema.TransactionRecord](ctx, d.Transactions)
	if err != nil {
		return sum, &LoadError{Table: schema.MerchantsTable.Name, Err: err}
	}
	if err := load(schema.MerchantsTable, Rows(transformer.DeriveMerchants(txRecs))); err != nil {
		return sum, err
	}

	txs, flags, err := transformer.NormalizeTransactions(txRecs, d.AmountPolicy)
	sum.Flags = flags
	for _, f := range flags {
		log.Warn().Str("table", schema.TransactionsTable.Name).Str("id", f.ID).
			Str("column", f.Column).Str("raw", f.Raw).Str("reason", f.Reason).
			Msg("malformed value loaded as 0")
	}
	if err != nil {
		return sum, &LoadError{Table: schema.TransactionsTable.Name, Err: fmt.Errorf("normalize: %w", err)}
	}
	if err := load(schema.TransactionsTable, Rows(txs)); err != nil {
		return sum, err
	}
	return sum, nil
}
