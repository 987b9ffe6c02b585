package stockdash

import (
	"log/slog"
	"math/rand/v2"
	"time"
)

// Options controls Core initialization.
type Options struct {
	// Store defaults to a fresh MemStore.
	Store  Store
	Quotes *QuoteBook
	// HistorySource feeds the price walk; nil seeds from the clock.
	HistorySource rand.Source
	Logger        *slog.Logger
	Now           func() time.Time
}

// Core validates requests, enforces ownership and enriches records on top
// of a Store.
type Core struct {
	store   Store
	quotes  *QuoteBook
	history *HistoryGenerator
	logger  *slog.Logger
	now     func() time.Time
}

// Open initializes a Core on an empty in-memory store.
func Open() (*Core, error) {
	return OpenWithOptions(Options{})
}

// OpenWithOptions initializes a Core using the provided options.
func OpenWithOptions(opts Options) (*Core, error) {
	store := opts.Store
	if store == nil {
		store = NewMemStore()
	}
	quotes := opts.Quotes
	if quotes == nil {
		quotes = NewQuoteBook()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Core{
		store:   store,
		quotes:  quotes,
		history: NewHistoryGenerator(quotes, opts.HistorySource, now),
		logger:  logger,
		now:     now,
	}, nil
}

// Close releases store resources.
func (c *Core) Close() error {
	if c == nil || c.store == nil {
		return nil
	}
	return c.store.Close()
}

// Logger returns the logger Core was built with.
func (c *Core) Logger() *slog.Logger {
	return c.logger
}

// Quotes exposes the quote book backing enrichment.
func (c *Core) Quotes() *QuoteBook {
	return c.quotes
}
