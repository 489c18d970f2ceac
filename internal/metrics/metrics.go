// Package metrics records run-level counters and step timings for finetl
// behind a pluggable Backend. The default backend discards everything, so
// instrumentation is always safe to call; prompush and datadog provide real
// backends.
package metrics

import (
	"sync"
	"time"
)

// Metric names shared by all backends.
const (
	StepTotal           = "finetl_step_total"
	StepDurationSeconds = "finetl_step_duration_seconds"
	RowsTotal           = "finetl_rows_total"
)

// Row kinds reported through RecordRows.
const (
	KindCleaned           = "cleaned"
	KindDuplicatesRemoved = "duplicates_removed"
	KindIssues            = "issues"
	KindInserted          = "inserted"
	KindIgnored           = "ignored"
)

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a duration-style value.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it.
	Flush() error
}

type nopBackend struct{}

func (nopBackend) IncCounter(string, float64, Labels)       {}
func (nopBackend) ObserveHistogram(string, float64, Labels) {}
func (nopBackend) Flush() error                             { return nil }

var (
	mu      sync.RWMutex
	backend Backend = nopBackend{}
)

// SetBackend installs b. Passing nil restores the no-op backend.
func SetBackend(b Backend) {
	mu.Lock()
	defer mu.Unlock()
	if b == nil {
		b = nopBackend{}
	}
	backend = b
}

func current() Backend {
	mu.RLock()
	defer mu.RUnlock()
	return backend
}

// Flush delegates to the current backend.
func Flush() error { return current().Flush() }

// RecordStep counts one execution of a step (clean, load_users, ...) and its
// duration, labelled with success or failure.
func RecordStep(job, step string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	lbls := Labels{"job": job, "step": step, "status": status}

	b := current()
	b.IncCounter(StepTotal, 1, lbls)
	b.ObserveHistogram(StepDurationSeconds, d.Seconds(), lbls)
}

// RecordRows adds n to the row counter for kind on table. Non-positive n is
// ignored.
func RecordRows(job, table, kind string, n int64) {
	if n <= 0 {
		return
	}
	current().IncCounter(RowsTotal, float64(n), Labels{"job": job, "table": table, "kind": kind})
}
