package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jvportella/dataset-financial-transactions/internal/etl"
	"github.com/jvportella/dataset-financial-transactions/internal/schema"
)

func (a *app) cleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Deduplicate the raw files, report issues and write *_cleaned.csv",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withMetrics(func() error { return a.clean(cmd.Context()) })
		},
	}
}

func (a *app) loadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Load the cleaned files into users, cards, merchants and transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withMetrics(func() error { return a.load(cmd.Context()) })
		},
	}
}

func (a *app) runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Clean, then load",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withMetrics(func() error {
				if err := a.clean(cmd.Context()); err != nil {
					return err
				}
				return a.load(cmd.Context())
			})
		},
	}
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration and exit",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			a.log.Info().Str("config", a.cfgPath).Msg("configuration is valid")
			return nil
		},
	}
}

func (a *app) ddlCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "ddl",
		Short: "Print CREATE TABLE statements for the target database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if kind == "" {
				kind = a.cfg.Database.Kind
			}
			stmts, err := schema.CreateStatements(kind)
			if err != nil {
				return err
			}
			for _, s := range stmts {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n", s)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "dialect (postgres, sqlite, mysql, mssql); defaults to database.kind")
	return cmd
}

func (a *app) clean(ctx context.Context) error {
	start := time.Now()
	res, err := etl.Clean(ctx, a.cfg.Job, etl.Datasets(a.cfg.Data), a.cfg.Report.SampleLimit)
	if err != nil {
		return err
	}
	a.log.Info().Int("datasets", len(res)).Dur("took", time.Since(start)).Msg("clean finished")
	return nil
}

func (a *app) load(ctx context.Context) error {
	start := time.Now()
	sum, err := etl.Load(ctx, a.cfg)
	if err != nil {
		return err
	}
	var inserted, ignored int64
	for _, t := range sum.Tables {
		inserted += t.Result.Inserted
		ignored += t.Result.Ignored()
	}
	a.log.Info().
		Int64("inserted", inserted).
		Int64("ignored", ignored).
		Int("flagged", len(sum.Flags)).
		Dur("took", time.Since(start)).
		Msg("load finished")
	return nil
}
