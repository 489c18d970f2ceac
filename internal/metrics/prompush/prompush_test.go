package prompush

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jvportella/dataset-financial-transactions/internal/metrics"
)

func TestNewBackend(t *testing.T) {
	_, err := NewBackend("finetl", "")
	assert.Error(t, err)

	b, err := NewBackend("", "http://pushgateway:9091")
	require.NoError(t, err)
	assert.Equal(t, "finetl", b.jobName)

	b, err = NewBackend("nightly", "http://pushgateway:9091")
	require.NoError(t, err)
	assert.Equal(t, "nightly", b.jobName)
}

func TestIncCounterAndObserve(t *testing.T) {
	b, err := NewBackend("finetl", "http://pushgateway:9091")
	require.NoError(t, err)

	b.IncCounter(metrics.StepTotal, 1, metrics.Labels{"step": "clean", "status": "success"})
	b.IncCounter(metrics.RowsTotal, 5, metrics.Labels{"table": "users", "kind": "inserted"})
	b.IncCounter(metrics.RowsTotal, 2, metrics.Labels{"table": "users", "kind": "inserted"})
	b.IncCounter("unknown_metric", 9, nil)
	b.ObserveHistogram(metrics.StepDurationSeconds, 0.25, metrics.Labels{"step": "clean", "status": "success"})
	b.ObserveHistogram("unknown_metric", 1, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(b.stepCounter.WithLabelValues("clean", "success")))
	assert.Equal(t, 7.0, testutil.ToFloat64(b.rowCounter.WithLabelValues("users", "inserted")))
	assert.Equal(t, 1, testutil.CollectAndCount(b.stepDuration))
}

func TestFlush(t *testing.T) {
	type pushed struct {
		method  string
		path    string
		bodyLen int
	}
	reqCh := make(chan pushed, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		reqCh <- pushed{method: r.Method, path: r.URL.Path, bodyLen: len(body)}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	b, err := NewBackend("finetl", server.URL)
	require.NoError(t, err)
	b.IncCounter(metrics.RowsTotal, 1, metrics.Labels{"table": "cards", "kind": "cleaned"})

	require.NoError(t, b.Flush())

	got := <-reqCh
	assert.Equal(t, http.MethodPut, got.method)
	assert.Equal(t, "/metrics/job/finetl", got.path)
	assert.Positive(t, got.bodyLen)
}

func TestFlushGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	b, err := NewBackend("finetl", server.URL)
	require.NoError(t, err)
	assert.ErrorContains(t, b.Flush(), "prompush: push to")
}
