package stockdash

import (
	"math/rand/v2"
	"sync"
	"time"
)

const (
	unknownBaseline = 100.0
	historyFloor    = 1.0
	// driftCenter sits below 0.5 so the walk trends slightly upward.
	driftCenter = 0.48
	driftScale  = 5.0
)

var timeframeDays = map[string]int{
	"1D": 1,
	"1W": 7,
	"1M": 30,
	"6M": 180,
	"1Y": 365,
}

// DaysForTimeframe maps a timeframe bucket to a day count; unknown buckets
// fall back to 30.
func DaysForTimeframe(timeframe string) int {
	if days, ok := timeframeDays[timeframe]; ok {
		return days
	}
	return 30
}

// HistoryGenerator produces illustrative daily price walks. Output is not
// reproducible unless a fixed source is supplied.
type HistoryGenerator struct {
	quotes *QuoteBook
	now    func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// NewHistoryGenerator builds a generator. A nil src seeds from the clock; a
// nil now uses time.Now.
func NewHistoryGenerator(quotes *QuoteBook, src rand.Source, now func() time.Time) *HistoryGenerator {
	if quotes == nil {
		quotes = NewQuoteBook()
	}
	if src == nil {
		seed := uint64(time.Now().UnixNano())
		src = rand.NewPCG(seed, seed>>1|1)
	}
	if now == nil {
		now = time.Now
	}
	return &HistoryGenerator{quotes: quotes, now: now, rng: rand.New(src)}
}

// History returns days+1 points, one per calendar day, ending today.
func (g *HistoryGenerator) History(symbol string, days int) []HistoryPoint {
	if days < 0 {
		days = 0
	}
	price := unknownBaseline
	if q, ok := g.quotes.Quote(symbol); ok {
		price = q.Price.Float() / 2
	}

	y, m, d := g.now().UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	g.mu.Lock()
	defer g.mu.Unlock()

	points := make([]HistoryPoint, 0, days+1)
	for i := days; i >= 0; i-- {
		change := (g.rng.Float64() - driftCenter) * driftScale
		price = max(price+change, historyFloor)
		points = append(points, HistoryPoint{
			Date:  today.AddDate(0, 0, -i).Format(dateLayout),
			Value: round2(price),
		})
	}
	return points
}

// HistoryForTimeframe is History with the day count taken from a bucket.
func (g *HistoryGenerator) HistoryForTimeframe(symbol, timeframe string) []HistoryPoint {
	return g.History(symbol, DaysForTimeframe(timeframe))
}
