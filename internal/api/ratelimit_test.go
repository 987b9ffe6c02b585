package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRateLimitReturnsTooManyRequests(t *testing.T) {
	router, _ := setupTestRouterWithOptions(t, false, Options{
		Logger:    discardLogger,
		RateLimit: 0.001,
		RateBurst: 2,
	})

	for i := 0; i < 2; i++ {
		rr := doRequest(router, "GET", "/api/health", nil)
		assertStatus(t, rr, http.StatusOK, "request within burst")
	}

	rr := doRequest(router, "GET", "/api/health", nil)
	assertStatus(t, rr, http.StatusTooManyRequests, "request over burst")
	if got := rr.Header().Get("Retry-After"); got == "" {
		t.Fatal("expected Retry-After header")
	}
	if result := parseJSON(rr); result["message"] != "too many requests" {
		t.Fatalf("unexpected body: %v", result)
	}
}

func TestRateLimitIsPerClient(t *testing.T) {
	router, _ := setupTestRouterWithOptions(t, false, Options{
		Logger:    discardLogger,
		RateLimit: 0.001,
		RateBurst: 1,
	})

	send := func(remote string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.RemoteAddr = remote
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr.Code
	}

	if code := send("10.0.0.1:5000"); code != http.StatusOK {
		t.Fatalf("expected 200 for first client, got %d", code)
	}
	if code := send("10.0.0.1:5001"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 for same host on another port, got %d", code)
	}
	if code := send("10.0.0.2:5000"); code != http.StatusOK {
		t.Fatalf("expected 200 for second client, got %d", code)
	}
}

func TestRateLimitDisabledByDefault(t *testing.T) {
	router, _ := setupTestRouter(t)
	for i := 0; i < 20; i++ {
		rr := doRequest(router, "GET", "/api/health", nil)
		assertStatus(t, rr, http.StatusOK, "unlimited request")
	}
}
