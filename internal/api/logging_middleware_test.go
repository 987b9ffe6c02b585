package api

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newBufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestNewRouterLogsRequestCompleted(t *testing.T) {
	var buf bytes.Buffer
	router, _ := setupTestRouterWithOptions(t, false, Options{Logger: newBufferLogger(&buf)})

	rr := doRequest(router, http.MethodGet, "/api/stocks/AAPL/history?timeframe=1W", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	logs := buf.String()
	for _, want := range []string{
		"http request completed",
		"method=GET",
		"path=/api/stocks/AAPL/history",
		"route=/api/stocks/{symbol}/history",
		"query=timeframe=1W",
		"status=200",
		"request_id=",
		"duration_ms=",
	} {
		if !strings.Contains(logs, want) {
			t.Fatalf("expected %q in logs, got %q", want, logs)
		}
	}
}

func TestNewRouterLogsWarnForBadRequest(t *testing.T) {
	var buf bytes.Buffer
	router, _ := setupTestRouterWithOptions(t, false, Options{Logger: newBufferLogger(&buf)})

	rr := doRequest(router, http.MethodDelete, "/api/portfolio/invalid", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	logs := buf.String()
	if !strings.Contains(logs, "level=WARN") {
		t.Fatalf("expected warn level log, got %q", logs)
	}
	if !strings.Contains(logs, "status=400") {
		t.Fatalf("expected status=400 in log, got %q", logs)
	}
	if !strings.Contains(logs, `error_message="INVALID_INPUT: invalid id"`) {
		t.Fatalf("expected error message in log, got %q", logs)
	}
}

func TestNewRouterRecoversPanicWithStructuredLog(t *testing.T) {
	var buf bytes.Buffer

	// A router without a core panics on the first data access.
	router := NewRouter(nil, Options{Logger: newBufferLogger(&buf)})
	rr := doRequest(router, http.MethodGet, "/api/portfolio", nil)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}

	result := parseJSON(rr)
	if result["message"] != "internal server error" {
		t.Fatalf("expected structured error response, got %v", result)
	}

	logs := buf.String()
	if !strings.Contains(logs, "panic recovered") {
		t.Fatalf("expected panic recovery log, got %q", logs)
	}
	if !strings.Contains(logs, "request_id=") {
		t.Fatalf("expected request id in panic log, got %q", logs)
	}
	if !strings.Contains(logs, "level=ERROR") || !strings.Contains(logs, "status=500") {
		t.Fatalf("expected error level request log, got %q", logs)
	}
}

func TestNewRouterUsesCoreLoggerByDefault(t *testing.T) {
	var coreBuf bytes.Buffer
	router, _ := setupRouterWithCoreLogger(t, newBufferLogger(&coreBuf))

	var defaultBuf bytes.Buffer
	oldDefault := slog.Default()
	slog.SetDefault(newBufferLogger(&defaultBuf))
	t.Cleanup(func() {
		slog.SetDefault(oldDefault)
	})

	rr := doRequest(router, http.MethodGet, "/api/health", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	if !strings.Contains(coreBuf.String(), "http request completed") {
		t.Fatalf("expected logs written through core logger, got %q", coreBuf.String())
	}
	if defaultBuf.Len() != 0 {
		t.Fatalf("expected no log written to slog default, got %q", defaultBuf.String())
	}
}

func TestNewRouterLoggingIncludesUserAgent(t *testing.T) {
	var buf bytes.Buffer
	router, _ := setupTestRouterWithOptions(t, false, Options{Logger: newBufferLogger(&buf)})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("User-Agent", "stockdash-test-agent")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(buf.String(), "user_agent=stockdash-test-agent") {
		t.Fatalf("expected user_agent field in request logs, got %q", buf.String())
	}
}

func TestLevelForStatus(t *testing.T) {
	tests := []struct {
		status int
		want   slog.Level
	}{
		{http.StatusOK, slog.LevelInfo},
		{http.StatusNoContent, slog.LevelInfo},
		{http.StatusNotFound, slog.LevelWarn},
		{http.StatusTooManyRequests, slog.LevelWarn},
		{http.StatusInternalServerError, slog.LevelError},
	}
	for _, tt := range tests {
		if got := levelForStatus(tt.status); got != tt.want {
			t.Errorf("levelForStatus(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
}
