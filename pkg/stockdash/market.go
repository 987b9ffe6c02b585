package stockdash

import "strings"

// GetQuote returns the snapshot for symbol.
func (c *Core) GetQuote(symbol string) (Quote, error) {
	q, ok := c.quotes.Quote(symbol)
	if !ok {
		return Quote{}, notFound("stock")
	}
	return q, nil
}

// Search finds quotes whose symbol or name contains query.
func (c *Core) Search(query string) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, NewError(ErrCodeInvalidInput, "query parameter 'q' is required")
	}
	return c.quotes.Search(query), nil
}

// GetHistory returns a synthetic daily series for a known symbol.
func (c *Core) GetHistory(symbol, timeframe string) ([]HistoryPoint, error) {
	if _, ok := c.quotes.Quote(symbol); !ok {
		return nil, notFound("stock")
	}
	if timeframe == "" {
		timeframe = "1M"
	}
	return c.history.HistoryForTimeframe(symbol, timeframe), nil
}

// GetMarketOverview returns the fixed indices table.
func (c *Core) GetMarketOverview() map[string]MarketIndex {
	return c.quotes.MarketOverview()
}
