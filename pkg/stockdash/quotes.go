package stockdash

import (
	"maps"
	"slices"
	"strings"
)

// QuoteBook is a read-only table of simulated market snapshots.
type QuoteBook struct {
	quotes  map[string]Quote
	indices map[string]MarketIndex
}

func newQuote(symbol, name string, price, change float64, marketCap string, pe, dividend float64) Quote {
	return Quote{
		Symbol:        symbol,
		Name:          name,
		Price:         NewAmount(price),
		Change:        NewAmount(change),
		MarketCap:     marketCap,
		PERatio:       NewAmount(pe),
		DividendYield: NewAmount(dividend),
	}
}

func newIndex(value, change, changeAmount float64) MarketIndex {
	return MarketIndex{
		Value:        NewAmount(value),
		Change:       NewAmount(change),
		ChangeAmount: NewAmount(changeAmount),
	}
}

var defaultQuotes = []Quote{
	newQuote("AAPL", "Apple Inc.", 173.42, 2.74, "2.84T", 28.64, 0.51),
	newQuote("MSFT", "Microsoft Corporation", 328.79, 1.34, "2.45T", 31.22, 0.82),
	newQuote("GOOGL", "Alphabet Inc.", 2728.36, 1.57, "1.72T", 25.78, 0.0),
	newQuote("AMZN", "Amazon.com, Inc.", 3445.09, -0.87, "1.75T", 60.21, 0.0),
	newQuote("TSLA", "Tesla, Inc.", 864.27, 3.21, "868B", 186.43, 0.0),
	newQuote("META", "Meta Platforms, Inc.", 325.45, 0.95, "885B", 27.12, 0.0),
	newQuote("NFLX", "Netflix, Inc.", 518.73, 1.13, "230B", 45.67, 0.0),
	newQuote("NVDA", "NVIDIA Corporation", 716.99, 4.32, "1.77T", 75.39, 0.04),
	newQuote("JPM", "JPMorgan Chase & Co.", 142.61, -0.42, "415B", 11.32, 2.80),
	newQuote("BAC", "Bank of America Corporation", 38.28, -0.65, "300B", 10.85, 2.61),
	newQuote("WMT", "Walmart Inc.", 142.63, -0.42, "383B", 29.76, 1.54),
	newQuote("PG", "The Procter & Gamble Company", 159.37, 0.77, "376B", 28.35, 2.44),
}

var defaultIndices = map[string]MarketIndex{
	"S&P 500":        newIndex(4587.64, 1.23, 56.09),
	"NASDAQ":         newIndex(14346.02, 1.64, 232.56),
	"DOW JONES":      newIndex(35208.51, 0.78, 272.68),
	"10-YR TREASURY": newIndex(1.63, -0.05, -0.05),
}

// NewQuoteBook returns the built-in point-in-time market table.
func NewQuoteBook() *QuoteBook {
	return NewQuoteBookFrom(defaultQuotes, defaultIndices)
}

// NewQuoteBookFrom builds a book from explicit data. Symbols are normalized.
func NewQuoteBookFrom(quotes []Quote, indices map[string]MarketIndex) *QuoteBook {
	b := &QuoteBook{
		quotes:  make(map[string]Quote, len(quotes)),
		indices: maps.Clone(indices),
	}
	if b.indices == nil {
		b.indices = map[string]MarketIndex{}
	}
	for _, q := range quotes {
		q.Symbol = normalizeSymbol(q.Symbol)
		b.quotes[q.Symbol] = q
	}
	return b
}

// Quote looks up a symbol case-insensitively.
func (b *QuoteBook) Quote(symbol string) (Quote, bool) {
	q, ok := b.quotes[normalizeSymbol(symbol)]
	return q, ok
}

// MarketOverview returns a copy of the indices table.
func (b *QuoteBook) MarketOverview() map[string]MarketIndex {
	return maps.Clone(b.indices)
}

// Symbols returns every known symbol in ascending order.
func (b *QuoteBook) Symbols() []string {
	return slices.Sorted(maps.Keys(b.quotes))
}

// Search matches query as a case-insensitive substring of the symbol or the
// company name. Results are ordered by symbol.
func (b *QuoteBook) Search(query string) []SearchResult {
	needle := strings.ToLower(strings.TrimSpace(query))
	results := []SearchResult{}
	if needle == "" {
		return results
	}
	for _, symbol := range b.Symbols() {
		q := b.quotes[symbol]
		if strings.Contains(strings.ToLower(symbol), needle) || strings.Contains(strings.ToLower(q.Name), needle) {
			results = append(results, SearchResult{
				Symbol: q.Symbol,
				Name:   q.Name,
				Price:  q.Price,
				Change: q.Change,
			})
		}
	}
	return results
}
