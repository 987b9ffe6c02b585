package stockdash

// GetWatchlist returns the user's watchlist joined with quote data.
func (c *Core) GetWatchlist(userID int64) ([]EnrichedWatchlistItem, error) {
	items, err := c.store.GetWatchlistItems(userID)
	if err != nil {
		return nil, storeError("failed to fetch watchlist", err)
	}
	return EnrichWatchlist(items, c.quotes), nil
}

// AddWatchlistItem follows symbol for userID. The symbol does not need to be
// known to the quote book; following it twice is a DUPLICATE error.
func (c *Core) AddWatchlistItem(userID int64, symbol string) (WatchlistItem, error) {
	symbol, err := validateWatchlistSymbol(symbol)
	if err != nil {
		return WatchlistItem{}, err
	}
	_, exists, err := c.store.GetWatchlistItemBySymbol(userID, symbol)
	if err != nil {
		return WatchlistItem{}, storeError("failed to check watchlist", err)
	}
	if exists {
		return WatchlistItem{}, NewError(ErrCodeDuplicate, "stock already in watchlist")
	}
	stored, err := c.store.AddWatchlistItem(WatchlistItem{
		UserID:    userID,
		Symbol:    symbol,
		DateAdded: c.now(),
	})
	if err != nil {
		return WatchlistItem{}, storeError("failed to add watchlist item", err)
	}
	c.logger.Info("watchlist item added", "id", stored.ID, "user_id", userID, "symbol", symbol)
	return stored, nil
}

// DeleteWatchlistItem removes a watchlist entry owned by userID.
func (c *Core) DeleteWatchlistItem(userID, id int64) error {
	item, ok, err := c.store.GetWatchlistItem(id)
	if err != nil {
		return storeError("failed to fetch watchlist item", err)
	}
	if !ok {
		return notFound("watchlist item")
	}
	if item.UserID != userID {
		c.logger.Warn("watchlist item ownership mismatch", "id", id, "user_id", userID)
		return forbidden()
	}
	deleted, err := c.store.DeleteWatchlistItem(id)
	if err != nil {
		return storeError("failed to delete watchlist item", err)
	}
	if !deleted {
		return notFound("watchlist item")
	}
	c.logger.Info("watchlist item deleted", "id", id, "user_id", userID)
	return nil
}
