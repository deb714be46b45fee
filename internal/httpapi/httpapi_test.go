package httpapi_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coldharbor-labs/suppression-screen/internal/config"
	"github.com/coldharbor-labs/suppression-screen/internal/httpapi"
	"github.com/coldharbor-labs/suppression-screen/internal/metadata"
	"github.com/coldharbor-labs/suppression-screen/internal/scanner"
	"github.com/coldharbor-labs/suppression-screen/pkg/timeutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time { return time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC) }

func newHandler(t *testing.T) *httpapi.Handler {
	t.Helper()
	// Loopback is allowed so scans can target httptest servers.
	cfg, err := config.WithDefault().WithAllowLoopback(true).Build()
	require.NoError(t, err)
	s := scanner.NewWithSleeper(cfg, metadata.NoopSink{}, fixedClock, timeutil.NoopSleeper{})
	return httpapi.NewHandler(s, metadata.NoopSink{})
}

func TestHandleScan_MissingURLReturnsInvalidURL(t *testing.T) {
	h := newHandler(t)
	mux := http.NewServeMux()
	h.Routes(mux)

	req := httptest.NewRequest(http.MethodGet, "/scan", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error_type":"INVALID_URL"`)
}

func TestHandleScan_QueryURLWinsOverBody(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><head><title>Home</title></head></html>"))
	}))
	defer target.Close()

	h := newHandler(t)
	mux := http.NewServeMux()
	h.Routes(mux)

	body := strings.NewReader(`{"url": "http://localhost/"}`)
	req := httptest.NewRequest(http.MethodPost, "/scan?url="+target.URL, body)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"schema_version":"1.0"`)
}

func TestHandleHealthz_ReportsBuildInfo(t *testing.T) {
	h := newHandler(t)
	mux := http.NewServeMux()
	h.Routes(mux)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"version"`)
}
