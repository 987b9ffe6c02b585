package stockdash

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// setupTestCore opens a Core on an empty store of the given kind with a
// fixed clock and random source.
func setupTestCore(t *testing.T, storeKind string) *Core {
	t.Helper()
	store, err := OpenStore(storeKind)
	if err != nil {
		t.Fatalf("failed to open %s store: %v", storeKind, err)
	}
	core, err := OpenWithOptions(Options{
		Store:         store,
		HistorySource: rand.NewPCG(1, 2),
		Logger:        testLogger,
		Now:           fixedClock,
	})
	if err != nil {
		t.Fatalf("failed to open core: %v", err)
	}
	t.Cleanup(func() { core.Close() })
	return core
}

// testUser creates a user directly in the backing store.
func testUser(t *testing.T, core *Core, username string) User {
	t.Helper()
	user, err := core.store.CreateUser(User{Username: username, Password: "secret"})
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// testPosition adds a valid position for userID.
func testPosition(t *testing.T, core *Core, userID int64, symbol string, shares, price float64) PortfolioItem {
	t.Helper()
	item, err := core.AddPortfolioItem(userID, AddPortfolioItemRequest{
		Symbol:        symbol,
		CompanyName:   symbol + " Holdings",
		Shares:        shares,
		PurchasePrice: price,
		PurchaseDate:  "2023-01-15",
	})
	if err != nil {
		t.Fatalf("failed to add test position: %v", err)
	}
	return item
}

func floatPtr(v float64) *float64 {
	return &v
}

// assertNoError fails the test if err is not nil.
func assertNoError(t *testing.T, err error, msg string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", msg, err)
	}
}

// assertErrorCode fails the test unless err carries code.
func assertErrorCode(t *testing.T, err error, code ErrorCode, msg string) {
	t.Helper()
	if err == nil {
		t.Fatalf("%s: expected %s error but got nil", msg, code)
	}
	if !IsErrorCode(err, code) {
		t.Fatalf("%s: expected %s, got %v", msg, code, err)
	}
}
