package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"

	"stockdash/pkg/stockdash"
)

func TestWriteErrorResponse(t *testing.T) {
	t.Run("structured error", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/stocks/ZZZZ", nil)
		writeErrorResponse(rr, req, stockdash.NewError(stockdash.ErrCodeNotFound, "stock not found"))

		if rr.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rr.Code)
		}
		var resp ErrorResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.ErrorCode != string(stockdash.ErrCodeNotFound) {
			t.Fatalf("expected error_code %q, got %q", stockdash.ErrCodeNotFound, resp.ErrorCode)
		}
		if resp.Message != "stock not found" {
			t.Fatalf("expected bare message, got %q", resp.Message)
		}
	})

	t.Run("wrapped structured error", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/portfolio/1", nil)
		err := fmt.Errorf("delete: %w", stockdash.NewError(stockdash.ErrCodeForbidden, "forbidden"))
		writeErrorResponse(rr, req, err)
		if rr.Code != http.StatusForbidden {
			t.Fatalf("expected status 403, got %d", rr.Code)
		}
	})

	t.Run("plain error is hidden", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
		writeErrorResponse(rr, req, errors.New("sqlite: disk I/O error"))
		if rr.Code != http.StatusInternalServerError {
			t.Fatalf("expected status 500, got %d", rr.Code)
		}
		var resp ErrorResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Message != "internal server error" || resp.ErrorCode != "INTERNAL_ERROR" {
			t.Fatalf("unexpected body: %+v", resp)
		}
	})

	t.Run("request id", func(t *testing.T) {
		var resp ErrorResponse
		h := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeErrorResponse(w, r, stockdash.NewError(stockdash.ErrCodeValidation, "shares must be positive"))
		}))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/portfolio", nil))
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.RequestID == "" {
			t.Fatal("expected request_id in error body")
		}
	})
}

func TestMapErrorCodeToHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		code stockdash.ErrorCode
		want int
	}{
		{name: "invalid", code: stockdash.ErrCodeInvalidInput, want: http.StatusBadRequest},
		{name: "validation", code: stockdash.ErrCodeValidation, want: http.StatusBadRequest},
		{name: "not found", code: stockdash.ErrCodeNotFound, want: http.StatusNotFound},
		{name: "forbidden", code: stockdash.ErrCodeForbidden, want: http.StatusForbidden},
		{name: "duplicate", code: stockdash.ErrCodeDuplicate, want: http.StatusConflict},
		{name: "database", code: stockdash.ErrCodeDatabase, want: http.StatusInternalServerError},
		{name: "internal", code: stockdash.ErrCodeInternal, want: http.StatusInternalServerError},
		{name: "default", code: stockdash.ErrorCode("UNKNOWN"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapErrorCodeToHTTPStatus(tt.code)
			if got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}
