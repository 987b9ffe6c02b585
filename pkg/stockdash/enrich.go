package stockdash

import "github.com/shopspring/decimal"

// EnrichPortfolioItem derives value and performance for one position. An
// unknown symbol is valued at its purchase price.
func EnrichPortfolioItem(item PortfolioItem, quotes *QuoteBook) EnrichedPortfolioItem {
	current := item.PurchasePrice
	if q, ok := quotes.Quote(item.Symbol); ok {
		current = q.Price
	}
	totalValue := current.Mul(item.Shares.Decimal)
	totalCost := item.PurchasePrice.Mul(item.Shares.Decimal)

	percent := decimal.Zero
	if !item.PurchasePrice.IsZero() {
		percent = current.Sub(item.PurchasePrice.Decimal).
			Div(item.PurchasePrice.Decimal).
			Mul(hundred).
			Round(2)
	}

	return EnrichedPortfolioItem{
		PortfolioItem: item,
		CurrentPrice:  current,
		TotalValue:    Amount{totalValue},
		TotalCost:     Amount{totalCost},
		Profit:        Amount{totalValue.Sub(totalCost)},
		PercentChange: Amount{percent},
	}
}

// EnrichPortfolio enriches items in order.
func EnrichPortfolio(items []PortfolioItem, quotes *QuoteBook) []EnrichedPortfolioItem {
	out := make([]EnrichedPortfolioItem, 0, len(items))
	for _, item := range items {
		out = append(out, EnrichPortfolioItem(item, quotes))
	}
	return out
}

// EnrichWatchlist attaches name, price and change; symbols missing from the
// quote book report "Unknown" with zero price and change.
func EnrichWatchlist(items []WatchlistItem, quotes *QuoteBook) []EnrichedWatchlistItem {
	out := make([]EnrichedWatchlistItem, 0, len(items))
	for _, item := range items {
		enriched := EnrichedWatchlistItem{
			WatchlistItem: item,
			Name:          "Unknown",
			Price:         NewAmountFromInt(0),
			Change:        NewAmountFromInt(0),
		}
		if q, ok := quotes.Quote(item.Symbol); ok {
			enriched.Name = q.Name
			enriched.Price = q.Price
			enriched.Change = q.Change
		}
		out = append(out, enriched)
	}
	return out
}

// SummarizePortfolio totals enriched positions.
func SummarizePortfolio(items []EnrichedPortfolioItem) PortfolioSummary {
	totalValue := decimal.Zero
	totalCost := decimal.Zero
	for _, item := range items {
		totalValue = totalValue.Add(item.TotalValue.Decimal)
		totalCost = totalCost.Add(item.TotalCost.Decimal)
	}
	profit := totalValue.Sub(totalCost)
	percent := decimal.Zero
	if !totalCost.IsZero() {
		percent = profit.Div(totalCost).Mul(hundred).Round(2)
	}
	return PortfolioSummary{
		Positions:     len(items),
		TotalValue:    Amount{totalValue},
		TotalCost:     Amount{totalCost},
		Profit:        Amount{profit},
		PercentChange: Amount{percent},
	}
}
