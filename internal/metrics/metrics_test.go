package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveOperation(t *testing.T) {
	m := New()

	m.ObserveOperation("users", "ok", 5*time.Millisecond)
	m.ObserveOperation("users", "ok", time.Millisecond)
	m.ObserveOperation("users", "invalid", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues("users", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("users", "invalid")))
}

func TestObserveSeedRowAndHTTP(t *testing.T) {
	m := New()

	m.ObserveSeedRow("user", "inserted")
	m.ObserveSeedRow("user", "skipped")
	m.ObserveSeedRow("user", "skipped")
	m.ObserveHTTP("/graphql", http.StatusOK)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.seedRows.WithLabelValues("user", "inserted")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.seedRows.WithLabelValues("user", "skipped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("/graphql", "200")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveOperation("users", "ok", time.Second)
		m.ObserveHTTP("/", 200)
		m.ObserveSeedRow("post", "inserted")
	})
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveOperation("createPost", "ok", time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `social_graphql_operations_total{operation="createPost",status="ok"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
