package stockdash

// Store is the keyed repository behind Core. Absence is reported through
// the boolean result, never through err; err is reserved for backend
// failures.
type Store interface {
	GetUser(id int64) (User, bool, error)
	GetUserByUsername(username string) (User, bool, error)
	CreateUser(user User) (User, error)

	GetPortfolioItems(userID int64) ([]PortfolioItem, error)
	GetPortfolioItem(id int64) (PortfolioItem, bool, error)
	AddPortfolioItem(item PortfolioItem) (PortfolioItem, error)
	UpdatePortfolioItem(id int64, patch PortfolioItemPatch) (PortfolioItem, bool, error)
	DeletePortfolioItem(id int64) (bool, error)

	GetWatchlistItems(userID int64) ([]WatchlistItem, error)
	GetWatchlistItem(id int64) (WatchlistItem, bool, error)
	GetWatchlistItemBySymbol(userID int64, symbol string) (WatchlistItem, bool, error)
	AddWatchlistItem(item WatchlistItem) (WatchlistItem, error)
	DeleteWatchlistItem(id int64) (bool, error)

	GetUserPreferences(userID int64) (UserPreferences, bool, error)
	CreateUserPreferences(prefs UserPreferences) (UserPreferences, error)
	UpdateUserPreferences(userID int64, patch PreferencesPatch) (UserPreferences, bool, error)

	Close() error
}

// Store kinds accepted by OpenStore.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// OpenStore returns the store implementation registered under kind.
func OpenStore(kind string) (Store, error) {
	switch kind {
	case "", StoreMemory:
		return NewMemStore(), nil
	case StoreSQLite:
		return OpenSQLStore()
	default:
		return nil, NewError(ErrCodeInvalidInput, "unknown store kind: "+kind)
	}
}
