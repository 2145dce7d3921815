package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scanpass/internal/app/client/config"
	"scanpass/internal/domain/scan"
	"scanpass/internal/utils/logger"
)

func newTestHTTPClient(t *testing.T, h http.HandlerFunc) *httpClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	cfg := &config.Config{ServerAddress: strings.TrimPrefix(srv.URL, "http://")}
	c, err := NewHTTPClient(cfg, logger.Discard())
	require.NoError(t, err)
	return c
}

func TestHTTPClient_HealthCheck(t *testing.T) {
	c := newTestHTTPClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, healthPath, r.URL.Path)
		assert.Equal(t, "ScanPass-Client/1.0", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"scan":"ok"}`))
	})

	assert.NoError(t, c.HealthCheck(context.Background()))
}

func TestHTTPClient_HealthCheck_Errors(t *testing.T) {
	down := newTestHTTPClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	assert.ErrorContains(t, down.HealthCheck(context.Background()), "503")

	degraded := newTestHTTPClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"scan":"degraded","accounts":"connection refused"}`))
	})
	assert.ErrorContains(t, degraded.HealthCheck(context.Background()), "degraded")
}

func TestHTTPClient_Decode(t *testing.T) {
	c := newTestHTTPClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, scanPath, r.URL.Path)

		var req scanRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req.RequestID)
		assert.Equal(t, req.RequestID, r.Header.Get("X-Request-ID"))

		_ = json.NewEncoder(w).Encode(scan.Result{
			Name: "John Doe", Email: "john.doe@example.com", AccountID: "ACC-42", Timestamp: "2026-01-01T00:00:00.000Z",
		})
	})

	res, err := c.Decode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ACC-42", res.AccountID)
}

func TestHTTPClient_Decode_NotRecognized(t *testing.T) {
	c := newTestHTTPClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"title":"Unprocessable Entity","status":422,"detail":"QR Code not recognized"}`))
	})

	_, err := c.Decode(context.Background())
	assert.ErrorIs(t, err, scan.ErrRecognitionFailure)
}

func TestHTTPClient_Decode_ServerError(t *testing.T) {
	c := newTestHTTPClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"database is down"}`))
	})

	_, err := c.Decode(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is down")
	assert.NotErrorIs(t, err, scan.ErrRecognitionFailure)
}

func TestHTTPClient_Decode_Canceled(t *testing.T) {
	block := make(chan struct{})
	c := newTestHTTPClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-block
	})
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Decode(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProblemDetail(t *testing.T) {
	assert.Equal(t, "boom", problemDetail([]byte(`{"detail":"boom"}`)))
	assert.Equal(t, "Bad Request", problemDetail([]byte(`{"title":"Bad Request"}`)))
	assert.Equal(t, "plain", problemDetail([]byte(`plain`)))
}
