package stockdash

// GetPortfolio returns the user's positions enriched with current quotes.
func (c *Core) GetPortfolio(userID int64) ([]EnrichedPortfolioItem, error) {
	items, err := c.store.GetPortfolioItems(userID)
	if err != nil {
		return nil, storeError("failed to fetch portfolio", err)
	}
	return EnrichPortfolio(items, c.quotes), nil
}

// GetPortfolioSummary totals the user's enriched positions.
func (c *Core) GetPortfolioSummary(userID int64) (PortfolioSummary, error) {
	items, err := c.GetPortfolio(userID)
	if err != nil {
		return PortfolioSummary{}, err
	}
	return SummarizePortfolio(items), nil
}

// GetPortfolioItem returns one enriched position owned by userID.
func (c *Core) GetPortfolioItem(userID, id int64) (EnrichedPortfolioItem, error) {
	item, err := c.ownedPortfolioItem(userID, id)
	if err != nil {
		return EnrichedPortfolioItem{}, err
	}
	return EnrichPortfolioItem(item, c.quotes), nil
}

// AddPortfolioItem validates req and stores a new position for userID.
func (c *Core) AddPortfolioItem(userID int64, req AddPortfolioItemRequest) (PortfolioItem, error) {
	item, err := validateAddPortfolioItem(req)
	if err != nil {
		return PortfolioItem{}, err
	}
	item.UserID = userID
	stored, err := c.store.AddPortfolioItem(item)
	if err != nil {
		return PortfolioItem{}, storeError("failed to add portfolio item", err)
	}
	c.logger.Info("portfolio item added", "id", stored.ID, "user_id", userID, "symbol", stored.Symbol)
	return stored, nil
}

// UpdatePortfolioItem merges the supplied fields into a position owned by
// userID. The patch is validated before the store is touched.
func (c *Core) UpdatePortfolioItem(userID, id int64, req UpdatePortfolioItemRequest) (PortfolioItem, error) {
	patch, err := validateUpdatePortfolioItem(req)
	if err != nil {
		return PortfolioItem{}, err
	}
	if _, err := c.ownedPortfolioItem(userID, id); err != nil {
		return PortfolioItem{}, err
	}
	updated, ok, err := c.store.UpdatePortfolioItem(id, patch)
	if err != nil {
		return PortfolioItem{}, storeError("failed to update portfolio item", err)
	}
	if !ok {
		return PortfolioItem{}, notFound("portfolio item")
	}
	c.logger.Info("portfolio item updated", "id", id, "user_id", userID)
	return updated, nil
}

// DeletePortfolioItem removes a position owned by userID.
func (c *Core) DeletePortfolioItem(userID, id int64) error {
	if _, err := c.ownedPortfolioItem(userID, id); err != nil {
		return err
	}
	deleted, err := c.store.DeletePortfolioItem(id)
	if err != nil {
		return storeError("failed to delete portfolio item", err)
	}
	if !deleted {
		return notFound("portfolio item")
	}
	c.logger.Info("portfolio item deleted", "id", id, "user_id", userID)
	return nil
}

func (c *Core) ownedPortfolioItem(userID, id int64) (PortfolioItem, error) {
	item, ok, err := c.store.GetPortfolioItem(id)
	if err != nil {
		return PortfolioItem{}, storeError("failed to fetch portfolio item", err)
	}
	if !ok {
		return PortfolioItem{}, notFound("portfolio item")
	}
	if item.UserID != userID {
		c.logger.Warn("portfolio item ownership mismatch", "id", id, "user_id", userID)
		return PortfolioItem{}, forbidden()
	}
	return item, nil
}
