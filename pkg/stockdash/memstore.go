package stockdash

import (
	"maps"
	"slices"
	"sync"
)

// MemStore keeps every record in process memory. Each kind has its own map
// and id counter; ids start at 1 and are never reused.
type MemStore struct {
	mu sync.RWMutex

	users       map[int64]User
	portfolio   map[int64]PortfolioItem
	watchlist   map[int64]WatchlistItem
	preferences map[int64]UserPreferences

	nextUserID        int64
	nextPortfolioID   int64
	nextWatchlistID   int64
	nextPreferencesID int64
}

var _ Store = (*MemStore)(nil)

// NewMemStore returns an empty store.
func NewMemStore() *MemStore {
	return &MemStore{
		users:             map[int64]User{},
		portfolio:         map[int64]PortfolioItem{},
		watchlist:         map[int64]WatchlistItem{},
		preferences:       map[int64]UserPreferences{},
		nextUserID:        1,
		nextPortfolioID:   1,
		nextWatchlistID:   1,
		nextPreferencesID: 1,
	}
}

// Close is a no-op; it exists to satisfy Store.
func (s *MemStore) Close() error {
	return nil
}

func (s *MemStore) GetUser(id int64) (User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok, nil
}

func (s *MemStore) GetUserByUsername(username string) (User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range sortedKeys(s.users) {
		if u := s.users[id]; u.Username == username {
			return u, true, nil
		}
	}
	return User{}, false, nil
}

func (s *MemStore) CreateUser(user User) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == user.Username {
			return User{}, NewError(ErrCodeDuplicate, "username already exists")
		}
	}
	user.ID = s.nextUserID
	s.nextUserID++
	s.users[user.ID] = user
	return user, nil
}

func (s *MemStore) GetPortfolioItems(userID int64) ([]PortfolioItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := []PortfolioItem{}
	for _, id := range sortedKeys(s.portfolio) {
		if item := s.portfolio[id]; item.UserID == userID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (s *MemStore) GetPortfolioItem(id int64) (PortfolioItem, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.portfolio[id]
	return item, ok, nil
}

func (s *MemStore) AddPortfolioItem(item PortfolioItem) (PortfolioItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item.ID = s.nextPortfolioID
	s.nextPortfolioID++
	s.portfolio[item.ID] = item
	return item, nil
}

func (s *MemStore) UpdatePortfolioItem(id int64, patch PortfolioItemPatch) (PortfolioItem, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.portfolio[id]
	if !ok {
		return PortfolioItem{}, false, nil
	}
	updated := patch.apply(existing)
	s.portfolio[id] = updated
	return updated, true, nil
}

func (s *MemStore) DeletePortfolioItem(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.portfolio[id]; !ok {
		return false, nil
	}
	delete(s.portfolio, id)
	return true, nil
}

func (s *MemStore) GetWatchlistItems(userID int64) ([]WatchlistItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := []WatchlistItem{}
	for _, id := range sortedKeys(s.watchlist) {
		if item := s.watchlist[id]; item.UserID == userID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (s *MemStore) GetWatchlistItem(id int64) (WatchlistItem, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.watchlist[id]
	return item, ok, nil
}

func (s *MemStore) GetWatchlistItemBySymbol(userID int64, symbol string) (WatchlistItem, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range sortedKeys(s.watchlist) {
		if item := s.watchlist[id]; item.UserID == userID && item.Symbol == symbol {
			return item, true, nil
		}
	}
	return WatchlistItem{}, false, nil
}

func (s *MemStore) AddWatchlistItem(item WatchlistItem) (WatchlistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item.ID = s.nextWatchlistID
	s.nextWatchlistID++
	s.watchlist[item.ID] = item
	return item, nil
}

func (s *MemStore) DeleteWatchlistItem(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.watchlist[id]; !ok {
		return false, nil
	}
	delete(s.watchlist, id)
	return true, nil
}

func (s *MemStore) GetUserPreferences(userID int64) (UserPreferences, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	prefs, ok := s.preferencesFor(userID)
	if !ok {
		return UserPreferences{}, false, nil
	}
	prefs.FavoriteIndicators = cloneStrings(prefs.FavoriteIndicators)
	return prefs, true, nil
}

func (s *MemStore) CreateUserPreferences(prefs UserPreferences) (UserPreferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.preferencesFor(prefs.UserID); ok {
		return UserPreferences{}, NewError(ErrCodeDuplicate, "preferences already exist for user")
	}
	prefs.ID = s.nextPreferencesID
	s.nextPreferencesID++
	prefs.FavoriteIndicators = cloneStrings(prefs.FavoriteIndicators)
	s.preferences[prefs.ID] = prefs
	out := prefs
	out.FavoriteIndicators = cloneStrings(prefs.FavoriteIndicators)
	return out, nil
}

func (s *MemStore) UpdateUserPreferences(userID int64, patch PreferencesPatch) (UserPreferences, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.preferencesFor(userID)
	if !ok {
		return UserPreferences{}, false, nil
	}
	updated := patch.apply(existing)
	s.preferences[existing.ID] = updated
	out := updated
	out.FavoriteIndicators = cloneStrings(updated.FavoriteIndicators)
	return out, true, nil
}

// preferencesFor scans by owner; callers hold s.mu.
func (s *MemStore) preferencesFor(userID int64) (UserPreferences, bool) {
	for _, id := range sortedKeys(s.preferences) {
		if prefs := s.preferences[id]; prefs.UserID == userID {
			return prefs, true
		}
	}
	return UserPreferences{}, false
}

func sortedKeys[V any](m map[int64]V) []int64 {
	return slices.Sorted(maps.Keys(m))
}
