package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/google/subcommands"

	"stockdash/pkg/stockdash"
)

// session is handed to every command through Commander.Execute.
type session struct {
	core   *stockdash.Core
	userID int64
	out    io.Writer
	errOut io.Writer
}

// register adds the dashboard subcommands to c.
func register(c *subcommands.Commander) {
	c.Register(&quoteCmd{}, "market")
	c.Register(&searchCmd{}, "market")
	c.Register(&historyCmd{}, "market")
	c.Register(&overviewCmd{}, "market")

	c.Register(&portfolioCmd{}, "demo account")
	c.Register(&watchlistCmd{}, "demo account")
}

func sessionFrom(args []interface{}) *session {
	return args[0].(*session)
}

func (s *session) fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(s.errOut, err)
	return subcommands.ExitFailure
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer, header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")
	return tw
}

func row(tw *tabwriter.Writer, cells ...string) {
	fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
}

func money(a stockdash.Amount) string {
	return a.StringFixed(2)
}

type quoteCmd struct {
	asJSON bool
}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "show the current snapshot for one or more symbols" }
func (*quoteCmd) Usage() string {
	return `dashctl quote [-json] <symbol>...

  Prints price, daily change, market cap, P/E and dividend yield from the
  built-in quote table. Symbols are case-insensitive.
`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.asJSON, "json", false, "Print JSON instead of a table.")
}

func (c *quoteCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	s := sessionFrom(args)
	if f.NArg() == 0 {
		fmt.Fprintln(s.errOut, "quote: at least one symbol is required")
		return subcommands.ExitUsageError
	}
	quotes := make([]stockdash.Quote, 0, f.NArg())
	for _, symbol := range f.Args() {
		q, err := s.core.GetQuote(symbol)
		if err != nil {
			return s.fail(fmt.Errorf("%s: %w", symbol, err))
		}
		quotes = append(quotes, q)
	}
	if c.asJSON {
		if err := writeJSON(s.out, quotes); err != nil {
			return s.fail(err)
		}
		return subcommands.ExitSuccess
	}
	tw := newTable(s.out, "SYMBOL", "PRICE", "CHANGE%", "MKT CAP", "P/E", "DIV%")
	for _, q := range quotes {
		row(tw, q.Symbol, money(q.Price), money(q.Change), q.MarketCap, money(q.PERatio), money(q.DividendYield))
	}
	if err := tw.Flush(); err != nil {
		return s.fail(err)
	}
	return subcommands.ExitSuccess
}

type searchCmd struct {
	asJSON bool
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "find symbols by ticker or company name" }
func (*searchCmd) Usage() string {
	return `dashctl search [-json] <query>

  Case-insensitive substring match against tickers and company names.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.asJSON, "json", false, "Print JSON instead of a table.")
}

func (c *searchCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	s := sessionFrom(args)
	results, err := s.core.Search(strings.Join(f.Args(), " "))
	if err != nil {
		return s.fail(err)
	}
	if c.asJSON {
		if err := writeJSON(s.out, results); err != nil {
			return s.fail(err)
		}
		return subcommands.ExitSuccess
	}
	if len(results) == 0 {
		fmt.Fprintln(s.out, "no matches")
		return subcommands.ExitSuccess
	}
	tw := newTable(s.out, "SYMBOL", "NAME", "PRICE", "CHANGE%")
	for _, r := range results {
		row(tw, r.Symbol, r.Name, money(r.Price), money(r.Change))
	}
	if err := tw.Flush(); err != nil {
		return s.fail(err)
	}
	return subcommands.ExitSuccess
}

type historyCmd struct {
	timeframe string
	asJSON    bool
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "print a synthetic daily price series" }
func (*historyCmd) Usage() string {
	return `dashctl [-seed N] history [-timeframe 1D|1W|1M|6M|1Y] [-json] <symbol>

  The series is illustrative only. Pass the global -seed flag to get the
  same series on every run.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.timeframe, "timeframe", "1M", "Timeframe bucket (1D, 1W, 1M, 6M, 1Y).")
	f.BoolVar(&c.asJSON, "json", false, "Print JSON instead of a table.")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	s := sessionFrom(args)
	if f.NArg() != 1 {
		fmt.Fprintln(s.errOut, "history: exactly one symbol is required")
		return subcommands.ExitUsageError
	}
	points, err := s.core.GetHistory(f.Arg(0), strings.ToUpper(c.timeframe))
	if err != nil {
		return s.fail(err)
	}
	if c.asJSON {
		if err := writeJSON(s.out, points); err != nil {
			return s.fail(err)
		}
		return subcommands.ExitSuccess
	}
	tw := newTable(s.out, "DATE", "VALUE")
	for _, p := range points {
		row(tw, p.Date, fmt.Sprintf("%.2f", p.Value))
	}
	if err := tw.Flush(); err != nil {
		return s.fail(err)
	}
	return subcommands.ExitSuccess
}

type overviewCmd struct {
	asJSON bool
}

func (*overviewCmd) Name() string     { return "overview" }
func (*overviewCmd) Synopsis() string { return "show the market indices" }
func (*overviewCmd) Usage() string {
	return `dashctl overview [-json]
`
}

func (c *overviewCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.asJSON, "json", false, "Print JSON instead of a table.")
}

func (c *overviewCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	s := sessionFrom(args)
	overview := s.core.GetMarketOverview()
	if c.asJSON {
		if err := writeJSON(s.out, overview); err != nil {
			return s.fail(err)
		}
		return subcommands.ExitSuccess
	}
	names := make([]string, 0, len(overview))
	for name := range overview {
		names = append(names, name)
	}
	slices.Sort(names)
	tw := newTable(s.out, "INDEX", "VALUE", "CHANGE%", "CHANGE")
	for _, name := range names {
		idx := overview[name]
		row(tw, name, money(idx.Value), money(idx.Change), money(idx.ChangeAmount))
	}
	if err := tw.Flush(); err != nil {
		return s.fail(err)
	}
	return subcommands.ExitSuccess
}

type portfolioCmd struct {
	summary bool
	asJSON  bool
}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "show the demo portfolio valued at current quotes" }
func (*portfolioCmd) Usage() string {
	return `dashctl portfolio [-summary] [-json]

  Lists the seeded demo positions with current price, value, cost and
  profit. -summary prints only the totals.
`
}

func (c *portfolioCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.summary, "summary", false, "Print totals only.")
	f.BoolVar(&c.asJSON, "json", false, "Print JSON instead of a table.")
}

func (c *portfolioCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	s := sessionFrom(args)
	if c.summary {
		summary, err := s.core.GetPortfolioSummary(s.userID)
		if err != nil {
			return s.fail(err)
		}
		if c.asJSON {
			if err := writeJSON(s.out, summary); err != nil {
				return s.fail(err)
			}
			return subcommands.ExitSuccess
		}
		fmt.Fprintf(s.out, "positions: %d\nvalue: %s\ncost: %s\nprofit: %s (%s%%)\n",
			summary.Positions, money(summary.TotalValue), money(summary.TotalCost),
			money(summary.Profit), money(summary.PercentChange))
		return subcommands.ExitSuccess
	}

	items, err := s.core.GetPortfolio(s.userID)
	if err != nil {
		return s.fail(err)
	}
	if c.asJSON {
		if err := writeJSON(s.out, items); err != nil {
			return s.fail(err)
		}
		return subcommands.ExitSuccess
	}
	tw := newTable(s.out, "ID", "SYMBOL", "SHARES", "PRICE", "VALUE", "COST", "PROFIT", "CHANGE%")
	for _, it := range items {
		row(tw, fmt.Sprint(it.ID), it.Symbol, it.Shares.String(), money(it.CurrentPrice),
			money(it.TotalValue), money(it.TotalCost), money(it.Profit), money(it.PercentChange))
	}
	if err := tw.Flush(); err != nil {
		return s.fail(err)
	}
	return subcommands.ExitSuccess
}

type watchlistCmd struct {
	asJSON bool
}

func (*watchlistCmd) Name() string     { return "watchlist" }
func (*watchlistCmd) Synopsis() string { return "show the demo watchlist" }
func (*watchlistCmd) Usage() string {
	return `dashctl watchlist [-json]
`
}

func (c *watchlistCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.asJSON, "json", false, "Print JSON instead of a table.")
}

func (c *watchlistCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	s := sessionFrom(args)
	items, err := s.core.GetWatchlist(s.userID)
	if err != nil {
		return s.fail(err)
	}
	if c.asJSON {
		if err := writeJSON(s.out, items); err != nil {
			return s.fail(err)
		}
		return subcommands.ExitSuccess
	}
	tw := newTable(s.out, "ID", "SYMBOL", "NAME", "PRICE", "CHANGE%")
	for _, it := range items {
		row(tw, fmt.Sprint(it.ID), it.Symbol, it.Name, money(it.Price), money(it.Change))
	}
	if err := tw.Flush(); err != nil {
		return s.fail(err)
	}
	return subcommands.ExitSuccess
}
