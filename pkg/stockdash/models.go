package stockdash

import "time"

// Timeframes lists the supported history buckets.
var Timeframes = []string{"1D", "1W", "1M", "6M", "1Y"}

// Themes lists the accepted display themes.
var Themes = []string{"light", "dark", "system"}

// Preference defaults applied when a user's record is created lazily.
const (
	DefaultTimeframe = "1D"
	DefaultTheme     = "light"
)

// DefaultFavoriteIndicators are the chart indicators enabled for new users.
var DefaultFavoriteIndicators = []string{"SMA", "EMA"}

// User is an account owning portfolio, watchlist and preference records.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}

// PortfolioItem is a position held by a user.
type PortfolioItem struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userId"`
	Symbol        string    `json:"symbol"`
	CompanyName   string    `json:"companyName"`
	Shares        Amount    `json:"shares"`
	PurchasePrice Amount    `json:"purchasePrice"`
	PurchaseDate  time.Time `json:"purchaseDate"`
}

// PortfolioItemPatch carries the fields of a partial update. Nil fields are
// retained from the stored record.
type PortfolioItemPatch struct {
	Symbol        *string
	CompanyName   *string
	Shares        *Amount
	PurchasePrice *Amount
	PurchaseDate  *time.Time
}

func (p PortfolioItemPatch) apply(item PortfolioItem) PortfolioItem {
	if p.Symbol != nil {
		item.Symbol = *p.Symbol
	}
	if p.CompanyName != nil {
		item.CompanyName = *p.CompanyName
	}
	if p.Shares != nil {
		item.Shares = *p.Shares
	}
	if p.PurchasePrice != nil {
		item.PurchasePrice = *p.PurchasePrice
	}
	if p.PurchaseDate != nil {
		item.PurchaseDate = *p.PurchaseDate
	}
	return item
}

// WatchlistItem is a symbol a user follows without holding it.
type WatchlistItem struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Symbol    string    `json:"symbol"`
	DateAdded time.Time `json:"dateAdded"`
}

// UserPreferences holds display settings; at most one record per user.
type UserPreferences struct {
	ID                 int64    `json:"id"`
	UserID             int64    `json:"userId"`
	DefaultTimeframe   string   `json:"defaultTimeframe"`
	Theme              string   `json:"theme"`
	FavoriteIndicators []string `json:"favoriteIndicators"`
}

// PreferencesPatch carries a partial preferences update. A nil
// FavoriteIndicators leaves the list untouched; an empty non-nil slice
// clears it.
type PreferencesPatch struct {
	DefaultTimeframe   *string
	Theme              *string
	FavoriteIndicators []string
}

func (p PreferencesPatch) apply(prefs UserPreferences) UserPreferences {
	if p.DefaultTimeframe != nil {
		prefs.DefaultTimeframe = *p.DefaultTimeframe
	}
	if p.Theme != nil {
		prefs.Theme = *p.Theme
	}
	if p.FavoriteIndicators != nil {
		prefs.FavoriteIndicators = cloneStrings(p.FavoriteIndicators)
	}
	return prefs
}

// Quote is a point-in-time market snapshot for a symbol.
type Quote struct {
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	Price         Amount `json:"price"`
	Change        Amount `json:"change"`
	MarketCap     string `json:"marketCap"`
	PERatio       Amount `json:"peRatio"`
	DividendYield Amount `json:"dividendYield"`
}

// MarketIndex is one row of the market overview.
type MarketIndex struct {
	Value        Amount `json:"value"`
	Change       Amount `json:"change"`
	ChangeAmount Amount `json:"changeAmount"`
}

// SearchResult is the compact quote returned by symbol search.
type SearchResult struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Price  Amount `json:"price"`
	Change Amount `json:"change"`
}

// HistoryPoint is one daily price of a synthetic series.
type HistoryPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// EnrichedPortfolioItem is a position joined with its current quote.
type EnrichedPortfolioItem struct {
	PortfolioItem
	CurrentPrice  Amount `json:"currentPrice"`
	TotalValue    Amount `json:"totalValue"`
	TotalCost     Amount `json:"totalCost"`
	Profit        Amount `json:"profit"`
	PercentChange Amount `json:"percentChange"`
}

// EnrichedWatchlistItem is a watchlist entry joined with its quote.
type EnrichedWatchlistItem struct {
	WatchlistItem
	Name   string `json:"name"`
	Price  Amount `json:"price"`
	Change Amount `json:"change"`
}

// PortfolioSummary aggregates a user's enriched positions.
type PortfolioSummary struct {
	Positions     int    `json:"positions"`
	TotalValue    Amount `json:"totalValue"`
	TotalCost     Amount `json:"totalCost"`
	Profit        Amount `json:"profit"`
	PercentChange Amount `json:"percentChange"`
}

// AddPortfolioItemRequest defines inputs to add a position.
type AddPortfolioItemRequest struct {
	Symbol        string  `json:"symbol"`
	CompanyName   string  `json:"companyName"`
	Shares        float64 `json:"shares"`
	PurchasePrice float64 `json:"purchasePrice"`
	PurchaseDate  string  `json:"purchaseDate"`
}

// UpdatePortfolioItemRequest defines a partial position update as received
// from clients; nil fields are left unchanged.
type UpdatePortfolioItemRequest struct {
	Symbol        *string  `json:"symbol"`
	CompanyName   *string  `json:"companyName"`
	Shares        *float64 `json:"shares"`
	PurchasePrice *float64 `json:"purchasePrice"`
	PurchaseDate  *string  `json:"purchaseDate"`
}

// UpdatePreferencesRequest defines a partial preferences update.
type UpdatePreferencesRequest struct {
	DefaultTimeframe   *string  `json:"defaultTimeframe"`
	Theme              *string  `json:"theme"`
	FavoriteIndicators []string `json:"favoriteIndicators"`
}
