package mobile

import (
	"bytes"
	"encoding/json"

	"stockdash/pkg/stockdash"
)

// Core wraps the dashboard core for gomobile bindings. Every method acts as
// the demo user created by Open.
type Core struct {
	core   *stockdash.Core
	userID int64
}

// Open initializes a seeded demo dashboard on the given store kind
// ("memory" or "sqlite"; empty means memory).
func Open(storeKind string) (*Core, error) {
	if storeKind == "" {
		storeKind = stockdash.StoreMemory
	}
	core, user, err := stockdash.OpenDemo(storeKind, stockdash.Options{})
	if err != nil {
		return nil, err
	}
	return &Core{core: core, userID: user.ID}, nil
}

// Close releases resources.
func (c *Core) Close() error {
	if c == nil || c.core == nil {
		return nil
	}
	return c.core.Close()
}

// UserID returns the id of the acting user.
func (c *Core) UserID() int64 {
	return c.userID
}

// GetQuoteJSON returns the quote for symbol as JSON.
func (c *Core) GetQuoteJSON(symbol string) (string, error) {
	quote, err := c.core.GetQuote(symbol)
	if err != nil {
		return "", err
	}
	return marshalJSON(quote)
}

// SearchJSON returns matching quotes as a JSON array.
func (c *Core) SearchJSON(query string) (string, error) {
	results, err := c.core.Search(query)
	if err != nil {
		return "", err
	}
	return marshalJSON(results)
}

// GetHistoryJSON returns a synthetic price series as a JSON array.
func (c *Core) GetHistoryJSON(symbol, timeframe string) (string, error) {
	points, err := c.core.GetHistory(symbol, timeframe)
	if err != nil {
		return "", err
	}
	return marshalJSON(points)
}

// GetMarketOverviewJSON returns the indices table as a JSON object.
func (c *Core) GetMarketOverviewJSON() (string, error) {
	return marshalJSON(c.core.GetMarketOverview())
}

// GetPortfolioJSON returns enriched positions as JSON.
func (c *Core) GetPortfolioJSON() (string, error) {
	items, err := c.core.GetPortfolio(c.userID)
	if err != nil {
		return "", err
	}
	return marshalJSON(items)
}

// GetPortfolioSummaryJSON returns portfolio totals as JSON.
func (c *Core) GetPortfolioSummaryJSON() (string, error) {
	summary, err := c.core.GetPortfolioSummary(c.userID)
	if err != nil {
		return "", err
	}
	return marshalJSON(summary)
}

// AddPortfolioItemJSON creates a position from JSON and returns it.
func (c *Core) AddPortfolioItemJSON(payloadJSON string) (string, error) {
	var req stockdash.AddPortfolioItemRequest
	if err := unmarshalJSON(payloadJSON, &req); err != nil {
		return "", err
	}
	item, err := c.core.AddPortfolioItem(c.userID, req)
	if err != nil {
		return "", err
	}
	return marshalJSON(item)
}

// UpdatePortfolioItemJSON applies a partial JSON update to a position.
func (c *Core) UpdatePortfolioItemJSON(id int64, payloadJSON string) (string, error) {
	var req stockdash.UpdatePortfolioItemRequest
	if err := unmarshalJSON(payloadJSON, &req); err != nil {
		return "", err
	}
	item, err := c.core.UpdatePortfolioItem(c.userID, id, req)
	if err != nil {
		return "", err
	}
	return marshalJSON(item)
}

// DeletePortfolioItem removes a position.
func (c *Core) DeletePortfolioItem(id int64) error {
	return c.core.DeletePortfolioItem(c.userID, id)
}

// GetWatchlistJSON returns the enriched watchlist as JSON.
func (c *Core) GetWatchlistJSON() (string, error) {
	items, err := c.core.GetWatchlist(c.userID)
	if err != nil {
		return "", err
	}
	return marshalJSON(items)
}

// AddWatchlistItemJSON follows symbol and returns the stored entry.
func (c *Core) AddWatchlistItemJSON(symbol string) (string, error) {
	item, err := c.core.AddWatchlistItem(c.userID, symbol)
	if err != nil {
		return "", err
	}
	return marshalJSON(item)
}

// DeleteWatchlistItem removes a watchlist entry.
func (c *Core) DeleteWatchlistItem(id int64) error {
	return c.core.DeleteWatchlistItem(c.userID, id)
}

// GetPreferencesJSON returns the stored preferences as JSON.
func (c *Core) GetPreferencesJSON() (string, error) {
	prefs, err := c.core.GetPreferences(c.userID)
	if err != nil {
		return "", err
	}
	return marshalJSON(prefs)
}

// UpdatePreferencesJSON merges a JSON patch into the preferences.
func (c *Core) UpdatePreferencesJSON(payloadJSON string) (string, error) {
	var req stockdash.UpdatePreferencesRequest
	if err := unmarshalJSON(payloadJSON, &req); err != nil {
		return "", err
	}
	prefs, err := c.core.UpdatePreferences(c.userID, req)
	if err != nil {
		return "", err
	}
	return marshalJSON(prefs)
}

func marshalJSON(value any) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func unmarshalJSON(payload string, dst any) error {
	decoder := json.NewDecoder(bytes.NewReader([]byte(payload)))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return stockdash.WrapError(stockdash.ErrCodeInvalidInput, "invalid payload", err)
	}
	return nil
}
