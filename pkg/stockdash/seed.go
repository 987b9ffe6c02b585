package stockdash

// Demo account credentials created by Bootstrap.
const (
	DemoUsername = "demo"
	DemoPassword = "demo"
)

// BootstrapOptions controls the startup seed.
type BootstrapOptions struct {
	// Samples adds the demo portfolio, watchlist and preferences when the
	// demo user is created.
	Samples bool
}

// Bootstrap ensures the demo user exists and returns it. It is meant to run
// once at process start; calling it again returns the existing user without
// re-seeding.
func (c *Core) Bootstrap(opts BootstrapOptions) (User, error) {
	existing, ok, err := c.store.GetUserByUsername(DemoUsername)
	if err != nil {
		return User{}, storeError("failed to look up demo user", err)
	}
	if ok {
		return existing, nil
	}
	user, err := c.store.CreateUser(User{Username: DemoUsername, Password: DemoPassword})
	if err != nil {
		return User{}, storeError("failed to create demo user", err)
	}
	if opts.Samples {
		if err := c.seedSamples(user.ID); err != nil {
			return User{}, err
		}
	}
	c.logger.Info("demo user ready", "user_id", user.ID, "samples", opts.Samples)
	return user, nil
}

func (c *Core) seedSamples(userID int64) error {
	positions := []AddPortfolioItemRequest{
		{Symbol: "AAPL", CompanyName: "Apple Inc.", Shares: 10, PurchasePrice: 150.50, PurchaseDate: "2023-01-15"},
		{Symbol: "MSFT", CompanyName: "Microsoft Corporation", Shares: 5, PurchasePrice: 280.75, PurchaseDate: "2023-02-10"},
		{Symbol: "GOOGL", CompanyName: "Alphabet Inc.", Shares: 3, PurchasePrice: 2150.20, PurchaseDate: "2023-03-05"},
	}
	for _, p := range positions {
		if _, err := c.AddPortfolioItem(userID, p); err != nil {
			return err
		}
	}
	for _, symbol := range []string{"TSLA", "AMZN"} {
		if _, err := c.AddWatchlistItem(userID, symbol); err != nil {
			return err
		}
	}
	_, err := c.UpdatePreferences(userID, UpdatePreferencesRequest{
		DefaultTimeframe:   stringPtr("1W"),
		Theme:              stringPtr("light"),
		FavoriteIndicators: []string{"SMA", "EMA", "MACD"},
	})
	return err
}

// OpenDemo opens a Core on a fresh store of the given kind and seeds the demo
// account with samples.
func OpenDemo(storeKind string, opts Options) (*Core, User, error) {
	store, err := OpenStore(storeKind)
	if err != nil {
		return nil, User{}, err
	}
	opts.Store = store
	core, err := OpenWithOptions(opts)
	if err != nil {
		_ = store.Close()
		return nil, User{}, err
	}
	user, err := core.Bootstrap(BootstrapOptions{Samples: true})
	if err != nil {
		_ = core.Close()
		return nil, User{}, err
	}
	return core, user, nil
}
