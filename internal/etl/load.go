package etl

import (
	"context"

	"github.com/jvportella/dataset-financial-transactions/internal/config"
	"github.com/jvportella/dataset-financial-transactions/internal/datasource"
	"github.com/jvportella/dataset-financial-transactions/internal/loader"
	"github.com/jvportella/dataset-financial-transactions/internal/storage"
	"github.com/jvportella/dataset-financial-transactions/internal/transformer"
)

// LoadDeps builds the loader's inputs from cfg: the cleaned files written by
// Clean and the configured database.
func LoadDeps(cfg config.Config) (loader.Deps, error) {
	policy, err := transformer.ParseAmountPolicy(cfg.Load.AmountPolicy)
	if err != nil {
		return loader.Deps{}, err
	}
	d := cfg.Data
	return loader.Deps{
		Job:          cfg.Job,
		Storage:      storage.Config{Kind: cfg.Database.Kind, DSN: cfg.Database.DSN},
		Users:        datasource.NewFile(d.Cleaned(d.Users)),
		Cards:        datasource.NewFile(d.Cleaned(d.Cards)),
		Transactions: datasource.NewFile(d.Cleaned(d.Transactions)),
		AmountPolicy: policy,
	}, nil
}

// Load runs the load stage for cfg.
func Load(ctx context.Context, cfg config.Config) (loader.Summary, error) {
	deps, err := LoadDeps(cfg)
	if err != nil {
		return loader.Summary{}, err
	}
	return loader.Run(ctx, deps)
}
