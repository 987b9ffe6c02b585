package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"stockdash/pkg/stockdash"
)

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (h *handler) search(w http.ResponseWriter, r *http.Request) {
	results, err := h.core.Search(r.URL.Query().Get("q"))
	if err != nil {
		writeErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *handler) getStock(w http.ResponseWriter, r *http.Request) {
	quote, err := h.core.GetQuote(chi.URLParam(r, "symbol"))
	if err != nil {
		writeErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (h *handler) getStockHistory(w http.ResponseWriter, r *http.Request) {
	points, err := h.core.GetHistory(chi.URLParam(r, "symbol"), r.URL.Query().Get("timeframe"))
	if err != nil {
		writeErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (h *handler) getMarketOverview(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.core.GetMarketOverview())
}

func (h *handler) getPortfolio(w http.ResponseWriter, r *http.Request) {
	items, err := h.core.GetPortfolio(h.userID)
	if err != nil {
		writeErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *handler) getPortfolioSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.core.GetPortfolioSummary(h.userID)
	if err != nil {
		writeErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *handler) getPortfolioItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeErrorResponse(w, r, err)
		return
	}
	item, err := h.core.GetPortfolioItem(h.userID, id)
	if err != nil {
		writeErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *handler) addPortfolioItem(w http.ResponseWriter, r *http.Request) {
	var payload addPortfolioItemPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeErrorResponse(w, r, err)
		return
	}
	item, err := h.core.AddPortfolioItem(h.userID, stockdash.AddPortfolioItemRequest{
		Symbol:        payload.Symbol,
		CompanyName:   payload.CompanyName,
		Shares:        payload.Shares,
		PurchasePrice: payload.PurchasePrice,
		PurchaseDate:  payload.PurchaseDate,
	})
	if err != nil {
		writeErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *handler) updatePortfolioItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeErrorResponse(w, r, err)
		return
	}
	var payload updatePortfolioItemPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeErrorResponse(w, r, err)
		return
	}
	item, err := h.core.UpdatePortfolioItem(h.userID, id, stockdash.UpdatePortfolioItemRequest{
		Symbol:        payload.Symbol,
		CompanyName:   payload.CompanyName,
		Shares:        payload.Shares,
		PurchasePrice: payload.PurchasePrice,
		PurchaseDate:  payload.PurchaseDate,
	})
	if err != nil {
		writeErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *handler) deletePortfolioItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeErrorResponse(w, r, err)
		return
	}
	if err := h.core.DeletePortfolioItem(h.userID, id); err != nil {
		writeErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) getWatchlist(w http.ResponseWriter, r *http.Request) {
	items, err := h.core.GetWatchlist(h.userID)
	if err != nil {
		writeErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *handler) addWatchlistItem(w http.ResponseWriter, r *http.Request) {
	var payload addWatchlistItemPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeErrorResponse(w, r, err)
		return
	}
	item, err := h.core.AddWatchlistItem(h.userID, payload.Symbol)
	if err != nil {
		writeErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *handler) deleteWatchlistItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeErrorResponse(w, r, err)
		return
	}
	if err := h.core.DeleteWatchlistItem(h.userID, id); err != nil {
		writeErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) getPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.core.GetPreferences(h.userID)
	if err != nil {
		writeErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

func (h *handler) updatePreferences(w http.ResponseWriter, r *http.Request) {
	var payload preferencesPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeErrorResponse(w, r, err)
		return
	}
	prefs, err := h.core.UpdatePreferences(h.userID, stockdash.UpdatePreferencesRequest{
		DefaultTimeframe:   payload.DefaultTimeframe,
		Theme:              payload.Theme,
		FavoriteIndicators: payload.FavoriteIndicators,
	})
	if err != nil {
		writeErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return stockdash.WrapError(stockdash.ErrCodeInvalidInput, "invalid request body", err)
	}
	return nil
}

func parseIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, stockdash.NewError(stockdash.ErrCodeInvalidInput, "invalid id")
	}
	return id, nil
}
