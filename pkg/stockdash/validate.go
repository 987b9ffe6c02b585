package stockdash

import "strings"

func validateAddPortfolioItem(req AddPortfolioItemRequest) (PortfolioItem, error) {
	symbol := normalizeSymbol(req.Symbol)
	if symbol == "" {
		return PortfolioItem{}, validationError("symbol is required")
	}
	companyName := strings.TrimSpace(req.CompanyName)
	if companyName == "" {
		return PortfolioItem{}, validationError("companyName is required")
	}
	if req.Shares <= 0 {
		return PortfolioItem{}, validationError("shares must be positive")
	}
	if req.PurchasePrice <= 0 {
		return PortfolioItem{}, validationError("purchasePrice must be positive")
	}
	if strings.TrimSpace(req.PurchaseDate) == "" {
		return PortfolioItem{}, validationError("purchaseDate is required")
	}
	purchaseDate, err := parseDate(req.PurchaseDate)
	if err != nil {
		return PortfolioItem{}, validationError("invalid purchaseDate: %s", req.PurchaseDate)
	}
	return PortfolioItem{
		Symbol:        symbol,
		CompanyName:   companyName,
		Shares:        NewAmount(req.Shares),
		PurchasePrice: NewAmount(req.PurchasePrice),
		PurchaseDate:  purchaseDate,
	}, nil
}

func validateUpdatePortfolioItem(req UpdatePortfolioItemRequest) (PortfolioItemPatch, error) {
	var patch PortfolioItemPatch
	if req.Symbol != nil {
		symbol := normalizeSymbol(*req.Symbol)
		if symbol == "" {
			return patch, validationError("symbol cannot be empty")
		}
		patch.Symbol = &symbol
	}
	if req.CompanyName != nil {
		name := strings.TrimSpace(*req.CompanyName)
		if name == "" {
			return patch, validationError("companyName cannot be empty")
		}
		patch.CompanyName = &name
	}
	if req.Shares != nil {
		if *req.Shares <= 0 {
			return patch, validationError("shares must be positive")
		}
		patch.Shares = amountPtr(NewAmount(*req.Shares))
	}
	if req.PurchasePrice != nil {
		if *req.PurchasePrice <= 0 {
			return patch, validationError("purchasePrice must be positive")
		}
		patch.PurchasePrice = amountPtr(NewAmount(*req.PurchasePrice))
	}
	if req.PurchaseDate != nil {
		t, err := parseDate(*req.PurchaseDate)
		if err != nil {
			return patch, validationError("invalid purchaseDate: %s", *req.PurchaseDate)
		}
		patch.PurchaseDate = &t
	}
	return patch, nil
}

func validateWatchlistSymbol(symbol string) (string, error) {
	normalized := normalizeSymbol(symbol)
	if normalized == "" {
		return "", validationError("symbol is required")
	}
	return normalized, nil
}

func validatePreferences(req UpdatePreferencesRequest) (PreferencesPatch, error) {
	var patch PreferencesPatch
	if req.DefaultTimeframe != nil {
		tf := strings.ToUpper(strings.TrimSpace(*req.DefaultTimeframe))
		if !isValidTimeframe(tf) {
			return patch, validationError("invalid defaultTimeframe: %s", *req.DefaultTimeframe)
		}
		patch.DefaultTimeframe = &tf
	}
	if req.Theme != nil {
		theme := strings.ToLower(strings.TrimSpace(*req.Theme))
		if !isValidTheme(theme) {
			return patch, validationError("invalid theme: %s", *req.Theme)
		}
		patch.Theme = &theme
	}
	if req.FavoriteIndicators != nil {
		indicators := make([]string, 0, len(req.FavoriteIndicators))
		for _, v := range req.FavoriteIndicators {
			v = strings.TrimSpace(v)
			if v == "" {
				return patch, validationError("favoriteIndicators cannot contain empty values")
			}
			indicators = append(indicators, v)
		}
		patch.FavoriteIndicators = indicators
	}
	return patch, nil
}
