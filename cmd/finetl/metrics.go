package main

import (
	"fmt"

	"github.com/jvportella/dataset-financial-transactions/internal/metrics"
	"github.com/jvportella/dataset-financial-transactions/internal/metrics/datadog"
	"github.com/jvportella/dataset-financial-transactions/internal/metrics/prompush"
)

// newMetricsBackend builds the backend named by metrics.backend, or nil for
// none.
func (a *app) newMetricsBackend() (metrics.Backend, error) {
	m := a.cfg.Metrics
	switch m.Backend {
	case "", "none":
		return nil, nil
	case "pushgateway":
		b, err := prompush.NewBackend(a.cfg.Job, m.PushgatewayURL)
		if err != nil {
			return nil, err
		}
		return b, nil
	case "datadog":
		b, err := datadog.NewBackend(datadog.Config{
			Addr:       m.DatadogAddr,
			Namespace:  "finetl.",
			GlobalTags: []string{"job:" + a.cfg.Job},
		})
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown metrics backend %q", m.Backend)
	}
}

// withMetrics installs the configured backend around fn and flushes it once
// fn returns. A metrics failure is logged and never changes fn's result.
func (a *app) withMetrics(fn func() error) error {
	b, err := a.newMetricsBackend()
	if err != nil {
		a.log.Warn().Err(err).Msg("metrics disabled")
	}
	if b == nil {
		return fn()
	}

	metrics.SetBackend(b)
	defer func() {
		if err := metrics.Flush(); err != nil {
			a.log.Warn().Err(err).Msg("metrics flush")
		}
		metrics.SetBackend(nil)
	}()
	a.log.Debug().Str("backend", a.cfg.Metrics.Backend).Msg("metrics enabled")
	return fn()
}
