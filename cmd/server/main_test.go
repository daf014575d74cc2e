package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/quotewiz/internal/config"
	"github.com/mmynk/quotewiz/internal/formfile"
	"github.com/mmynk/quotewiz/internal/rpc"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.Default()
	cfg.QuoteLatency = 0
	cfg.AllowedOrigins = []string{"https://quotes.example.com"}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := httptest.NewServer(newHandler(cfg, logger, prometheus.NewRegistry()))
	t.Cleanup(server.Close)
	return server
}

func TestHealthz(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestQuoteRoundTripAndMetrics(t *testing.T) {
	server := newTestServer(t)

	data, err := formfile.Template()
	require.NoError(t, err)
	form, err := formfile.Decode(strings.NewReader(string(data)))
	require.NoError(t, err)

	client := rpc.NewQuoteServiceClient(http.DefaultClient, server.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := client.GetQuotes(ctx, connect.NewRequest(&form))
	require.NoError(t, err)
	assert.Len(t, resp.Msg.Quotes, 5)
	assert.NotEmpty(t, resp.Header().Get("X-Request-Id"))

	metrics, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer metrics.Body.Close()
	body, _ := io.ReadAll(metrics.Body)
	assert.Contains(t, string(body), "quotewiz_quotes_computed_total 1")
	assert.Contains(t, string(body), `quotewiz_rpc_requests_total{code="ok",procedure="/quotewiz.v1.QuoteService/GetQuotes"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	server := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, server.URL+rpc.QuoteServiceGetQuotesProcedure, nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://quotes.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	// Browsers send the requested header names in lowercase and rs/cors matches them as sent.
	req.Header.Set("Access-Control-Request-Headers", "content-type,x-request-id")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "https://quotes.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflightRejectsUnknownOrigin(t *testing.T) {
	server := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, server.URL+rpc.QuoteServiceGetQuotesProcedure, nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://elsewhere.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "content-type")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}
