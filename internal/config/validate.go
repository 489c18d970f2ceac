package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jvportella/dataset-financial-transactions/internal/transformer"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError blocks execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning is surfaced but does not block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue is a single validation finding. Path is the dotted config key.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// DatabaseKinds lists the backends finetl ships.
var DatabaseKinds = []string{"mssql", "mysql", "postgres", "sqlite"}

// Validate lints cfg without mutating it.
func Validate(cfg Config) []Issue {
	var issues []Issue
	add := func(sev IssueSeverity, path, format string, args ...any) {
		issues = append(issues, Issue{Severity: sev, Path: path, Message: fmt.Sprintf(format, args...)})
	}

	if strings.TrimSpace(cfg.Job) == "" {
		add(SeverityError, "job", "job must not be empty; it labels logs and metrics")
	}

	for path, name := range map[string]string{
		"data.users":        cfg.Data.Users,
		"data.cards":        cfg.Data.Cards,
		"data.transactions": cfg.Data.Transactions,
	} {
		if strings.TrimSpace(name) == "" {
			add(SeverityError, path, "file name must not be empty")
		}
	}

	if !slices.Contains(DatabaseKinds, cfg.Database.Kind) {
		add(SeverityError, "database.kind", "unsupported kind %q (want one of %s)", cfg.Database.Kind, strings.Join(DatabaseKinds, ", "))
	}
	switch dsn := strings.TrimSpace(cfg.Database.DSN); {
	case dsn == "":
		add(SeverityError, "database.dsn", "dsn must not be empty")
	case cfg.Database.Kind == "sqlite" && strings.Contains(dsn, ":memory:"):
		add(SeverityWarning, "database.dsn", "in-memory sqlite database: loaded rows are discarded at exit")
	}

	if _, err := transformer.ParseAmountPolicy(cfg.Load.AmountPolicy); err != nil {
		add(SeverityError, "load.amount_policy", "%v", err)
	}

	if cfg.Report.SampleLimit < 0 {
		add(SeverityError, "report.sample_limit", "must be >= 0 (0 prints every value)")
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(cfg.Log.Level)); err != nil {
		add(SeverityError, "log.level", "unknown level %q", cfg.Log.Level)
	}
	if f := strings.ToLower(cfg.Log.Format); f != "console" && f != "json" {
		add(SeverityError, "log.format", "unknown format %q (want console or json)", cfg.Log.Format)
	}

	switch cfg.Metrics.Backend {
	case "", "none":
	case "pushgateway":
		if strings.TrimSpace(cfg.Metrics.PushgatewayURL) == "" {
			add(SeverityError, "metrics.pushgateway_url", "required when metrics.backend is pushgateway")
		}
	case "datadog":
		if strings.TrimSpace(cfg.Metrics.DatadogAddr) == "" {
			add(SeverityError, "metrics.datadog_addr", "required when metrics.backend is datadog")
		}
	default:
		add(SeverityError, "metrics.backend", "unknown backend %q (want none, pushgateway or datadog)", cfg.Metrics.Backend)
	}

	slices.SortStableFunc(issues, func(a, b Issue) int { return strings.Compare(a.Path, b.Path) })
	return issues
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []Issue) bool {
	return slices.ContainsFunc(issues, func(i Issue) bool { return i.Severity == SeverityError })
}
