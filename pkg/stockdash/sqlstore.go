package stockdash

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLStore implements Store on SQLite. The database lives in process memory;
// a single pinned connection keeps it alive until Close.
type SQLStore struct {
	db *sql.DB
}

var _ Store = (*SQLStore)(nil)

// OpenSQLStore opens a private in-memory SQLite database and creates the schema.
func OpenSQLStore() (*SQLStore, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Every new connection would see a fresh, empty database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// Close releases the database, discarding all data.
func (s *SQLStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func initSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS portfolio_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			symbol TEXT NOT NULL,
			company_name TEXT NOT NULL,
			shares REAL NOT NULL,
			purchase_price REAL NOT NULL,
			purchase_date TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_portfolio_items_user ON portfolio_items(user_id)`,
		`CREATE TABLE IF NOT EXISTS watchlist_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			symbol TEXT NOT NULL,
			date_added TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_watchlist_items_user_symbol ON watchlist_items(user_id, symbol)`,
		`CREATE TABLE IF NOT EXISTS user_preferences (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL UNIQUE,
			default_timeframe TEXT NOT NULL,
			theme TEXT NOT NULL,
			favorite_indicators TEXT NOT NULL DEFAULT '[]'
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// withTx runs fn in a transaction, rolling back on error or panic.
func (s *SQLStore) withTx(fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(context.Background(), nil)
	if err != nil {
		return WrapError(ErrCodeDatabase, "failed to begin transaction", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return WrapError(ErrCodeDatabase, "failed to commit transaction", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, value)
}

// Users

func (s *SQLStore) GetUser(id int64) (User, bool, error) {
	var u User
	err := s.db.QueryRow("SELECT id, username, password FROM users WHERE id = ?", id).Scan(&u.ID, &u.Username, &u.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, false, nil
	}
	if err != nil {
		return User{}, false, err
	}
	return u, true, nil
}

func (s *SQLStore) GetUserByUsername(username string) (User, bool, error) {
	var u User
	err := s.db.QueryRow("SELECT id, username, password FROM users WHERE username = ? ORDER BY id LIMIT 1", username).Scan(&u.ID, &u.Username, &u.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, false, nil
	}
	if err != nil {
		return User{}, false, err
	}
	return u, true, nil
}

func (s *SQLStore) CreateUser(user User) (User, error) {
	err := s.withTx(func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRow("SELECT 1 FROM users WHERE username = ?", user.Username).Scan(&exists)
		if err == nil {
			return NewError(ErrCodeDuplicate, "username already exists")
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		result, err := tx.Exec("INSERT INTO users (username, password) VALUES (?, ?)", user.Username, user.Password)
		if err != nil {
			return err
		}
		user.ID, err = result.LastInsertId()
		return err
	})
	if err != nil {
		return User{}, err
	}
	return user, nil
}

// Portfolio

const portfolioColumns = "id, user_id, symbol, company_name, shares, purchase_price, purchase_date"

func scanPortfolioItem(row rowScanner) (PortfolioItem, error) {
	var item PortfolioItem
	var purchaseDate string
	if err := row.Scan(&item.ID, &item.UserID, &item.Symbol, &item.CompanyName, &item.Shares, &item.PurchasePrice, &purchaseDate); err != nil {
		return PortfolioItem{}, err
	}
	t, err := parseTime(purchaseDate)
	if err != nil {
		return PortfolioItem{}, fmt.Errorf("parse purchase_date: %w", err)
	}
	item.PurchaseDate = t
	return item, nil
}

func (s *SQLStore) GetPortfolioItems(userID int64) ([]PortfolioItem, error) {
	rows, err := s.db.Query("SELECT "+portfolioColumns+" FROM portfolio_items WHERE user_id = ? ORDER BY id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []PortfolioItem{}
	for rows.Next() {
		item, err := scanPortfolioItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *SQLStore) GetPortfolioItem(id int64) (PortfolioItem, bool, error) {
	return getPortfolioItem(s.db, id)
}

type queryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

func getPortfolioItem(q queryRower, id int64) (PortfolioItem, bool, error) {
	item, err := scanPortfolioItem(q.QueryRow("SELECT "+portfolioColumns+" FROM portfolio_items WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return PortfolioItem{}, false, nil
	}
	if err != nil {
		return PortfolioItem{}, false, err
	}
	return item, true, nil
}

func (s *SQLStore) AddPortfolioItem(item PortfolioItem) (PortfolioItem, error) {
	result, err := s.db.Exec(
		"INSERT INTO portfolio_items (user_id, symbol, company_name, shares, purchase_price, purchase_date) VALUES (?, ?, ?, ?, ?, ?)",
		item.UserID, item.Symbol, item.CompanyName, item.Shares, item.PurchasePrice, formatTime(item.PurchaseDate),
	)
	if err != nil {
		return PortfolioItem{}, err
	}
	item.ID, err = result.LastInsertId()
	if err != nil {
		return PortfolioItem{}, err
	}
	return item, nil
}

func (s *SQLStore) UpdatePortfolioItem(id int64, patch PortfolioItemPatch) (PortfolioItem, bool, error) {
	var updated PortfolioItem
	var found bool
	err := s.withTx(func(tx *sql.Tx) error {
		existing, ok, err := getPortfolioItem(tx, id)
		if err != nil || !ok {
			return err
		}
		updated = patch.apply(existing)
		found = true
		_, err = tx.Exec(
			"UPDATE portfolio_items SET symbol = ?, company_name = ?, shares = ?, purchase_price = ?, purchase_date = ? WHERE id = ?",
			updated.Symbol, updated.CompanyName, updated.Shares, updated.PurchasePrice, formatTime(updated.PurchaseDate), id,
		)
		return err
	})
	if err != nil {
		return PortfolioItem{}, false, err
	}
	return updated, found, nil
}

func (s *SQLStore) DeletePortfolioItem(id int64) (bool, error) {
	return deleteByID(s.db, "portfolio_items", id)
}

func deleteByID(db *sql.DB, table string, id int64) (bool, error) {
	result, err := db.Exec("DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Watchlist

func scanWatchlistItem(row rowScanner) (WatchlistItem, error) {
	var item WatchlistItem
	var dateAdded string
	if err := row.Scan(&item.ID, &item.UserID, &item.Symbol, &dateAdded); err != nil {
		return WatchlistItem{}, err
	}
	t, err := parseTime(dateAdded)
	if err != nil {
		return WatchlistItem{}, fmt.Errorf("parse date_added: %w", err)
	}
	item.DateAdded = t
	return item, nil
}

func (s *SQLStore) GetWatchlistItems(userID int64) ([]WatchlistItem, error) {
	rows, err := s.db.Query("SELECT id, user_id, symbol, date_added FROM watchlist_items WHERE user_id = ? ORDER BY id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []WatchlistItem{}
	for rows.Next() {
		item, err := scanWatchlistItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *SQLStore) GetWatchlistItem(id int64) (WatchlistItem, bool, error) {
	item, err := scanWatchlistItem(s.db.QueryRow("SELECT id, user_id, symbol, date_added FROM watchlist_items WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return WatchlistItem{}, false, nil
	}
	if err != nil {
		return WatchlistItem{}, false, err
	}
	return item, true, nil
}

func (s *SQLStore) GetWatchlistItemBySymbol(userID int64, symbol string) (WatchlistItem, bool, error) {
	item, err := scanWatchlistItem(s.db.QueryRow(
		"SELECT id, user_id, symbol, date_added FROM watchlist_items WHERE user_id = ? AND symbol = ? ORDER BY id LIMIT 1",
		userID, symbol,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return WatchlistItem{}, false, nil
	}
	if err != nil {
		return WatchlistItem{}, false, err
	}
	return item, true, nil
}

func (s *SQLStore) AddWatchlistItem(item WatchlistItem) (WatchlistItem, error) {
	result, err := s.db.Exec(
		"INSERT INTO watchlist_items (user_id, symbol, date_added) VALUES (?, ?, ?)",
		item.UserID, item.Symbol, formatTime(item.DateAdded),
	)
	if err != nil {
		return WatchlistItem{}, err
	}
	item.ID, err = result.LastInsertId()
	if err != nil {
		return WatchlistItem{}, err
	}
	return item, nil
}

func (s *SQLStore) DeleteWatchlistItem(id int64) (bool, error) {
	return deleteByID(s.db, "watchlist_items", id)
}

// Preferences

func scanPreferences(row rowScanner) (UserPreferences, error) {
	var prefs UserPreferences
	var indicators string
	if err := row.Scan(&prefs.ID, &prefs.UserID, &prefs.DefaultTimeframe, &prefs.Theme, &indicators); err != nil {
		return UserPreferences{}, err
	}
	if err := json.Unmarshal([]byte(indicators), &prefs.FavoriteIndicators); err != nil {
		return UserPreferences{}, fmt.Errorf("decode favorite_indicators: %w", err)
	}
	if prefs.FavoriteIndicators == nil {
		prefs.FavoriteIndicators = []string{}
	}
	return prefs, nil
}

func encodeIndicators(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func getPreferences(q queryRower, userID int64) (UserPreferences, bool, error) {
	prefs, err := scanPreferences(q.QueryRow(
		"SELECT id, user_id, default_timeframe, theme, favorite_indicators FROM user_preferences WHERE user_id = ?",
		userID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return UserPreferences{}, false, nil
	}
	if err != nil {
		return UserPreferences{}, false, err
	}
	return prefs, true, nil
}

func (s *SQLStore) GetUserPreferences(userID int64) (UserPreferences, bool, error) {
	return getPreferences(s.db, userID)
}

func (s *SQLStore) CreateUserPreferences(prefs UserPreferences) (UserPreferences, error) {
	err := s.withTx(func(tx *sql.Tx) error {
		_, exists, err := getPreferences(tx, prefs.UserID)
		if err != nil {
			return err
		}
		if exists {
			return NewError(ErrCodeDuplicate, "preferences already exist for user")
		}
		indicators, err := encodeIndicators(prefs.FavoriteIndicators)
		if err != nil {
			return err
		}
		result, err := tx.Exec(
			"INSERT INTO user_preferences (user_id, default_timeframe, theme, favorite_indicators) VALUES (?, ?, ?, ?)",
			prefs.UserID, prefs.DefaultTimeframe, prefs.Theme, indicators,
		)
		if err != nil {
			return err
		}
		prefs.ID, err = result.LastInsertId()
		return err
	})
	if err != nil {
		return UserPreferences{}, err
	}
	prefs.FavoriteIndicators = cloneStrings(prefs.FavoriteIndicators)
	return prefs, nil
}

func (s *SQLStore) UpdateUserPreferences(userID int64, patch PreferencesPatch) (UserPreferences, bool, error) {
	var updated UserPreferences
	var found bool
	err := s.withTx(func(tx *sql.Tx) error {
		existing, ok, err := getPreferences(tx, userID)
		if err != nil || !ok {
			return err
		}
		updated = patch.apply(existing)
		found = true
		indicators, err := encodeIndicators(updated.FavoriteIndicators)
		if err != nil {
			return err
		}
		_, err = tx.Exec(
			"UPDATE user_preferences SET default_timeframe = ?, theme = ?, favorite_indicators = ? WHERE id = ?",
			updated.DefaultTimeframe, updated.Theme, indicators, existing.ID,
		)
		return err
	})
	if err != nil {
		return UserPreferences{}, false, err
	}
	return updated, found, nil
}
