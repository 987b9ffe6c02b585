package api

type addPortfolioItemPayload struct {
	Symbol        string  `json:"symbol"`
	CompanyName   string  `json:"companyName"`
	Shares        float64 `json:"shares"`
	PurchasePrice float64 `json:"purchasePrice"`
	PurchaseDate  string  `json:"purchaseDate"`
}

// Absent fields are left unchanged.
type updatePortfolioItemPayload struct {
	Symbol        *string  `json:"symbol"`
	CompanyName   *string  `json:"companyName"`
	Shares        *float64 `json:"shares"`
	PurchasePrice *float64 `json:"purchasePrice"`
	PurchaseDate  *string  `json:"purchaseDate"`
}

type addWatchlistItemPayload struct {
	Symbol string `json:"symbol"`
}

type preferencesPayload struct {
	DefaultTimeframe   *string  `json:"defaultTimeframe"`
	Theme              *string  `json:"theme"`
	FavoriteIndicators []string `json:"favoriteIndicators"`
}

type statusResponse struct {
	Status string `json:"status"`
}
