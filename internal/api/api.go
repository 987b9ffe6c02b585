package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"stockdash/pkg/stockdash"
)

// Options configures the router.
type Options struct {
	// UserID is the account every request acts as.
	UserID int64
	// Logger defaults to the core's logger.
	Logger *slog.Logger
	// RateLimit is the sustained requests per second allowed per client.
	// Zero disables limiting.
	RateLimit float64
	RateBurst int
}

// NewRouter builds the HTTP API router.
func NewRouter(core *stockdash.Core, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = core.Logger()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLoggingMiddleware(logger))
	r.Use(recoveryLoggingMiddleware(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))
	if opts.RateLimit > 0 {
		limiter := newClientLimiter(rate.Limit(opts.RateLimit), opts.RateBurst)
		r.Use(limiter.middleware)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeErrorResponse(w, r, stockdash.NewError(stockdash.ErrCodeNotFound, "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	h := &handler{core: core, userID: opts.UserID}

	r.Get("/api/health", h.health)

	// Market data
	r.Get("/api/search", h.search)
	r.Get("/api/stocks/{symbol}", h.getStock)
	r.Get("/api/stocks/{symbol}/history", h.getStockHistory)
	r.Get("/api/market/overview", h.getMarketOverview)

	// Portfolio
	r.Get("/api/portfolio", h.getPortfolio)
	r.Get("/api/portfolio/summary", h.getPortfolioSummary)
	r.Get("/api/portfolio/{id}", h.getPortfolioItem)
	r.Post("/api/portfolio", h.addPortfolioItem)
	r.Put("/api/portfolio/{id}", h.updatePortfolioItem)
	r.Delete("/api/portfolio/{id}", h.deletePortfolioItem)

	// Watchlist
	r.Get("/api/watchlist", h.getWatchlist)
	r.Post("/api/watchlist", h.addWatchlistItem)
	r.Delete("/api/watchlist/{id}", h.deleteWatchlistItem)

	// Preferences
	r.Get("/api/preferences", h.getPreferences)
	r.Put("/api/preferences", h.updatePreferences)

	return r
}

type handler struct {
	core   *stockdash.Core
	userID int64
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
