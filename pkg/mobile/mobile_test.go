package mobile

import (
	"encoding/json"
	"testing"

	"stockdash/pkg/stockdash"
)

func setupMobileCore(t *testing.T, storeKind string) *Core {
	t.Helper()
	core, err := Open(storeKind)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = core.Close() })
	return core
}

func decodeList(t *testing.T, data string) []map[string]any {
	t.Helper()
	var out []map[string]any
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		t.Fatalf("unmarshal %q: %v", data, err)
	}
	return out
}

func decodeObject(t *testing.T, data string) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		t.Fatalf("unmarshal %q: %v", data, err)
	}
	return out
}

func TestMobileCoreJSONFlows(t *testing.T) {
	for _, kind := range []string{"", stockdash.StoreSQLite} {
		t.Run("store="+kind, func(t *testing.T) {
			core := setupMobileCore(t, kind)
			if core.UserID() != 1 {
				t.Fatalf("expected demo user id 1, got %d", core.UserID())
			}

			resp, err := core.GetPortfolioJSON()
			if err != nil {
				t.Fatalf("GetPortfolioJSON: %v", err)
			}
			if items := decodeList(t, resp); len(items) != 3 {
				t.Fatalf("expected seeded positions, got %d", len(items))
			}

			resp, err = core.AddPortfolioItemJSON(`{"symbol":"wmt","companyName":"Walmart Inc.","shares":2,"purchasePrice":120,"purchaseDate":"2024-02-01"}`)
			if err != nil {
				t.Fatalf("AddPortfolioItemJSON: %v", err)
			}
			added := decodeObject(t, resp)
			if added["symbol"] != "WMT" {
				t.Fatalf("unexpected added item: %v", added)
			}
			id := int64(added["id"].(float64))

			resp, err = core.UpdatePortfolioItemJSON(id, `{"shares":3}`)
			if err != nil {
				t.Fatalf("UpdatePortfolioItemJSON: %v", err)
			}
			if updated := decodeObject(t, resp); updated["shares"] != 3.0 {
				t.Fatalf("unexpected updated item: %v", updated)
			}

			if err := core.DeletePortfolioItem(id); err != nil {
				t.Fatalf("DeletePortfolioItem: %v", err)
			}

			resp, err = core.GetPortfolioSummaryJSON()
			if err != nil {
				t.Fatalf("GetPortfolioSummaryJSON: %v", err)
			}
			if summary := decodeObject(t, resp); summary["positions"] != 3.0 {
				t.Fatalf("unexpected summary: %v", summary)
			}

			resp, err = core.AddWatchlistItemJSON("nvda")
			if err != nil {
				t.Fatalf("AddWatchlistItemJSON: %v", err)
			}
			watch := decodeObject(t, resp)
			resp, err = core.GetWatchlistJSON()
			if err != nil {
				t.Fatalf("GetWatchlistJSON: %v", err)
			}
			if list := decodeList(t, resp); len(list) != 3 || list[2]["name"] != "NVIDIA Corporation" {
				t.Fatalf("unexpected watchlist: %v", list)
			}
			if err := core.DeleteWatchlistItem(int64(watch["id"].(float64))); err != nil {
				t.Fatalf("DeleteWatchlistItem: %v", err)
			}

			resp, err = core.UpdatePreferencesJSON(`{"theme":"system"}`)
			if err != nil {
				t.Fatalf("UpdatePreferencesJSON: %v", err)
			}
			if prefs := decodeObject(t, resp); prefs["theme"] != "system" || prefs["defaultTimeframe"] != "1W" {
				t.Fatalf("unexpected preferences: %v", prefs)
			}
			if _, err := core.GetPreferencesJSON(); err != nil {
				t.Fatalf("GetPreferencesJSON: %v", err)
			}
		})
	}
}

func TestMobileCoreMarketData(t *testing.T) {
	core := setupMobileCore(t, "")

	resp, err := core.GetQuoteJSON("googl")
	if err != nil {
		t.Fatalf("GetQuoteJSON: %v", err)
	}
	if quote := decodeObject(t, resp); quote["name"] != "Alphabet Inc." {
		t.Fatalf("unexpected quote: %v", quote)
	}

	resp, err = core.SearchJSON("inc")
	if err != nil {
		t.Fatalf("SearchJSON: %v", err)
	}
	if results := decodeList(t, resp); len(results) == 0 {
		t.Fatal("expected search results")
	}

	resp, err = core.GetHistoryJSON("TSLA", "6M")
	if err != nil {
		t.Fatalf("GetHistoryJSON: %v", err)
	}
	if points := decodeList(t, resp); len(points) != 181 {
		t.Fatalf("expected 181 points, got %d", len(points))
	}

	resp, err = core.GetMarketOverviewJSON()
	if err != nil {
		t.Fatalf("GetMarketOverviewJSON: %v", err)
	}
	if overview := decodeObject(t, resp); len(overview) != 4 {
		t.Fatalf("unexpected overview: %v", overview)
	}
}

func TestMobileCoreErrors(t *testing.T) {
	core := setupMobileCore(t, "")

	if _, err := core.AddPortfolioItemJSON("{"); !stockdash.IsErrorCode(err, stockdash.ErrCodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT for bad JSON, got %v", err)
	}
	if _, err := core.UpdatePreferencesJSON(`{"colour":"red"}`); !stockdash.IsErrorCode(err, stockdash.ErrCodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT for unknown field, got %v", err)
	}
	if _, err := core.AddWatchlistItemJSON("TSLA"); !stockdash.IsErrorCode(err, stockdash.ErrCodeDuplicate) {
		t.Fatalf("expected DUPLICATE, got %v", err)
	}
	if _, err := core.GetQuoteJSON("ZZZZ"); !stockdash.IsErrorCode(err, stockdash.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
	if err := core.DeletePortfolioItem(99); !stockdash.IsErrorCode(err, stockdash.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestOpenRejectsUnknownStore(t *testing.T) {
	if _, err := Open("redis"); err == nil {
		t.Fatal("expected error for unknown store kind")
	}
}

func TestMobileCoreCloseNil(t *testing.T) {
	var c *Core
	if err := c.Close(); err != nil {
		t.Fatalf("Close nil: %v", err)
	}
}
