// Package etl wires the two finetl stages to configuration: Clean turns the
// raw files into cleaned files and prints what it found, Load hands the
// cleaned files to the loader.
package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jvportella/dataset-financial-transactions/internal/clean"
	"github.com/jvportella/dataset-financial-transactions/internal/config"
	"github.com/jvportella/dataset-financial-transactions/internal/datasource"
	"github.com/jvportella/dataset-financial-transactions/internal/logger"
	"github.com/jvportella/dataset-financial-transactions/internal/metrics"
	pcsv "github.com/jvportella/dataset-financial-transactions/internal/parser/csv"
)

// Dataset is one raw file and how to clean it.
type Dataset struct {
	Name    string
	Raw     datasource.Source
	Cleaned string
	// Clean produces the cleaned table and its issue report.
	Clean func(pcsv.Table) (pcsv.Table, clean.Issues)
}

// CleanResult summarizes one cleaned dataset.
type CleanResult struct {
	Name       string
	Path       string
	Rows       int
	Duplicates int
	Issues     clean.Issues
}

// Datasets returns users, cards and transactions, in cleaning order.
func Datasets(d config.Data) []Dataset {
	byKinds := func(kinds map[string]clean.Kind) func(pcsv.Table) (pcsv.Table, clean.Issues) {
		return func(t pcsv.Table) (pcsv.Table, clean.Issues) { return clean.CleanTable(t, kinds) }
	}
	return []Dataset{
		{Name: "users", Raw: datasource.NewFile(d.Raw(d.Users)), Cleaned: d.Cleaned(d.Users), Clean: byKinds(clean.UserKinds)},
		{Name: "cards", Raw: datasource.NewFile(d.Raw(d.Cards)), Cleaned: d.Cleaned(d.Cards), Clean: byKinds(clean.CardKinds)},
		{Name: "transactions", Raw: datasource.NewFile(d.Raw(d.Transactions)), Cleaned: d.Cleaned(d.Transactions), Clean: clean.CleanTransactions},
	}
}

// Clean cleans every dataset in order, writes the cleaned files and reports
// issues, printing at most sampleLimit values per key (0 prints all). It stops
// at the first dataset that cannot be read or written.
func Clean(ctx context.Context, job string, sets []Dataset, sampleLimit int) ([]CleanResult, error) {
	log := logger.FromContext(ctx)
	out := make([]CleanResult, 0, len(sets))

	for _, ds := range sets {
		start := time.Now()
		res, err := cleanOne(ctx, ds)
		metrics.RecordStep(job, "clean_"+ds.Name, err, time.Since(start))
		if err != nil {
			return out, fmt.Errorf("clean %s: %w", ds.Name, err)
		}

		metrics.RecordRows(job, ds.Name, metrics.KindCleaned, int64(res.Rows))
		metrics.RecordRows(job, ds.Name, metrics.KindDuplicatesRemoved, int64(res.Duplicates))
		metrics.RecordRows(job, ds.Name, metrics.KindIssues, int64(res.Issues.Total()))

		log.Info().
			Str("dataset", ds.Name).
			Int("rows", res.Rows).
			Int("duplicates_removed", res.Duplicates).
			Str("output", res.Path).
			Msg("cleaned")
		ReportIssues(log, ds.Name, res.Issues, sampleLimit)
		out = append(out, res)
	}
	return out, nil
}

func cleanOne(ctx context.Context, ds Dataset) (CleanResult, error) {
	raw, err := pcsv.ReadSource(ctx, ds.Raw)
	if err != nil {
		return CleanResult{}, err
	}
	cleaned, issues := ds.Clean(raw)
	if err := pcsv.WriteFile(ds.Cleaned, cleaned); err != nil {
		return CleanResult{}, err
	}
	return CleanResult{
		Name:       ds.Name,
		Path:       ds.Cleaned,
		Rows:       cleaned.Len(),
		Duplicates: raw.Len() - cleaned.Len(),
		Issues:     issues,
	}, nil
}

// ReportIssues logs one line per issue key with its count and up to limit
// offending values.
func ReportIssues(log zerolog.Logger, dataset string, issues clean.Issues, limit int) {
	for _, key := range issues.Keys() {
		vals := issues[key]
		if len(vals) == 0 {
			continue
		}
		sample := vals
		if limit > 0 && len(sample) > limit {
			sample = sample[:limit]
		}
		log.Warn().
			Str("dataset", dataset).
			Str("key", key).
			Int("count", len(vals)).
			Strs("sample", sample).
			Msg("issue")
	}
	if issues.Total() == 0 {
		log.Info().Str("dataset", dataset).Msg("no issues")
	}
}
