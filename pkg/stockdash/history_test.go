package stockdash

import (
	"math/rand/v2"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)
}

func newTestGenerator(seed uint64) *HistoryGenerator {
	return NewHistoryGenerator(NewQuoteBook(), rand.NewPCG(seed, seed+1), fixedClock)
}

func TestHistoryLengthAndDates(t *testing.T) {
	g := newTestGenerator(1)
	for _, days := range []int{0, 1, 7, 30, 365} {
		points := g.History("AAPL", days)
		if len(points) != days+1 {
			t.Fatalf("days=%d: expected %d points, got %d", days, days+1, len(points))
		}
		if last := points[len(points)-1].Date; last != "2024-03-10" {
			t.Fatalf("days=%d: expected series to end today, got %s", days, last)
		}
		for i := 1; i < len(points); i++ {
			prev, err := time.Parse(dateLayout, points[i-1].Date)
			if err != nil {
				t.Fatalf("parse date: %v", err)
			}
			cur, err := time.Parse(dateLayout, points[i].Date)
			if err != nil {
				t.Fatalf("parse date: %v", err)
			}
			if !cur.Equal(prev.AddDate(0, 0, 1)) {
				t.Fatalf("dates not consecutive: %s -> %s", points[i-1].Date, points[i].Date)
			}
		}
	}
}

func TestHistoryValuesNeverBelowFloor(t *testing.T) {
	// A source that always yields 0 drives every step to -2.4.
	g := NewHistoryGenerator(NewQuoteBook(), zeroSource{}, fixedClock)
	points := g.History("BAC", 365)
	for _, p := range points {
		if p.Value < 1 {
			t.Fatalf("value below floor on %s: %v", p.Date, p.Value)
		}
	}
	if got := points[len(points)-1].Value; got != 1 {
		t.Fatalf("expected walk to settle on the floor, got %v", got)
	}
}

func TestHistoryBaselineFromQuote(t *testing.T) {
	g := NewHistoryGenerator(NewQuoteBook(), halfSource{}, fixedClock)

	// With r = 0.5 each step adds (0.5-0.48)*5 = 0.1.
	points := g.History("AAPL", 0)
	if got, want := points[0].Value, round2(173.42/2+0.1); got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}

	points = g.History("ZZZZ", 1)
	if got := points[1].Value; got != 100.2 {
		t.Fatalf("expected unknown symbol to start at 100, got %v", got)
	}
}

func TestHistoryReproducibleWithFixedSeed(t *testing.T) {
	a := newTestGenerator(42).History("MSFT", 30)
	b := newTestGenerator(42).History("MSFT", 30)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestHistoryNegativeDays(t *testing.T) {
	points := newTestGenerator(7).History("AAPL", -5)
	if len(points) != 1 {
		t.Fatalf("expected a single point, got %d", len(points))
	}
}

func TestDaysForTimeframe(t *testing.T) {
	cases := map[string]int{
		"1D": 1,
		"1W": 7,
		"1M": 30,
		"6M": 180,
		"1Y": 365,
		"5Y": 30,
		"":   30,
	}
	for tf, want := range cases {
		if got := DaysForTimeframe(tf); got != want {
			t.Errorf("DaysForTimeframe(%q) = %d, want %d", tf, got, want)
		}
	}
}

type zeroSource struct{}

func (zeroSource) Uint64() uint64 { return 0 }

// halfSource makes rand.Float64 return exactly 0.5.
type halfSource struct{}

func (halfSource) Uint64() uint64 { return 1 << 52 }
