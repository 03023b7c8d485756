package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersOnPrivateRegistry(t *testing.T) {
	// Two instances must not collide on the default registry.
	a := New("patient")
	b := New("patient")

	a.DocumentsStaged.Add(5)
	a.BatchCommits.WithLabelValues("success").Inc()

	assert.Equal(t, float64(5), testutil.ToFloat64(a.DocumentsStaged))
	assert.Equal(t, float64(0), testutil.ToFloat64(b.DocumentsStaged))
	assert.Equal(t, float64(1), testutil.ToFloat64(a.BatchCommits.WithLabelValues("success")))
}

func TestPushSendsRegistry(t *testing.T) {
	type request struct {
		path string
		body []byte
	}
	got := make(chan request, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		got <- request{path: r.URL.Path, body: raw}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := New("patient")
	m.DocumentsWritten.Add(5)

	require.NoError(t, m.Push(context.Background(), srv.URL, "patient_seed"))
	req := <-got
	assert.True(t, strings.HasPrefix(req.path, "/metrics/job/patient_seed"))
	assert.NotEmpty(t, req.body)
}

func TestPushReportsGatewayFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := New("patient").Push(context.Background(), srv.URL, "patient_seed")
	assert.Error(t, err)
}
