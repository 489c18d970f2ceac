// Command finetl cleans the users, cards and transactions CSV files and
// loads the cleaned files into the financial database.
//
//	finetl clean      write *_cleaned.csv and print issues
//	finetl load       load cleaned files into users, cards, merchants, transactions
//	finetl run        clean, then load
//	finetl validate   lint the configuration and exit
//	finetl ddl        print CREATE TABLE statements for database.kind
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jvportella/dataset-financial-transactions/internal/config"
	"github.com/jvportella/dataset-financial-transactions/internal/logger"
	"github.com/jvportella/dataset-financial-transactions/internal/storage"

	// register every storage backend; database.kind picks one at runtime.
	_ "github.com/jvportella/dataset-financial-transactions/internal/storage/all"
)

// errInvalidConfig is returned when validation finds error-severity issues.
var errInvalidConfig = errors.New("configuration is invalid")

type app struct {
	cfgPath string
	verbose bool
	stderr  io.Writer

	cfg config.Config
	log zerolog.Logger
}

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the CLI and maps the outcome to a process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stderr: stderr, log: zerolog.New(stderr)}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	code := exitCode(err)
	switch {
	case err == nil:
	case code == 0:
		a.log.Error().Err(err).Msg("database unreachable, nothing loaded")
	default:
		a.log.Error().Err(err).Msg("finetl failed")
	}
	return code
}

// exitCode is 0 on success and when the database could not be reached,
// 1 otherwise.
func exitCode(err error) int {
	if err == nil || errors.Is(err, storage.ErrConnect) {
		return 0
	}
	return 1
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "finetl",
		Short:             "Clean and load the financial transactions dataset",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "config file (JSON or YAML); FINETL_* env vars override it")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(a.cleanCmd(), a.loadCmd(), a.runCmd(), a.validateCmd(), a.ddlCmd())
	return root
}

// setup loads and lints the configuration, then installs the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}

	issues := config.Validate(cfg)
	for _, iss := range issues {
		fmt.Fprintf(a.stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		return fmt.Errorf("%w: %d issue(s)", errInvalidConfig, len(issues))
	}

	l, err := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Out: a.stderr})
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = l.With().Str("job", cfg.Job).Str("run_id", uuid.NewString()).Logger()
	cmd.SetContext(logger.WithContext(cmd.Context(), a.log))
	return nil
}
