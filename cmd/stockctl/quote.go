package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"stockdash/internal/aggregator"
	"stockdash/pkg/format"
	"stockdash/pkg/news"

	"golang.org/x/sync/errgroup"
)

type quoteClient interface {
	Profile(ctx context.Context, symbol string) (*news.Profile, error)
	Quote(ctx context.Context, symbol string) (*news.Quote, error)
}

type quoteLine struct {
	profile *news.Profile
	quote   *news.Quote
}

// printQuotes looks up profile and quote for every symbol in parallel. A
// failed lookup leaves its columns as N/A instead of dropping the row.
func printQuotes(ctx context.Context, out io.Writer, client quoteClient, symbols []string) {
	symbols = aggregator.NormalizeSymbols(symbols)
	if len(symbols) == 0 {
		fmt.Fprintln(out, "No symbols given.")
		return
	}

	lines := make([]quoteLine, len(symbols))

	var g errgroup.Group
	for i, symbol := range symbols {
		g.Go(func() error {
			profile, err := client.Profile(ctx, symbol)
			if err != nil {
				slog.Warn("error fetching profile", "symbol", symbol, "error", err)
			}
			lines[i].profile = profile
			return nil
		})
		g.Go(func() error {
			quote, err := client.Quote(ctx, symbol)
			if err != nil {
				slog.Warn("error fetching quote", "symbol", symbol, "error", err)
			}
			lines[i].quote = quote
			return nil
		})
	}
	g.Wait()

	rows := [][]string{{"SYMBOL", "NAME", "PRICE", "CHANGE", "MARKET CAP"}}
	for i, symbol := range symbols {
		name, marketCap := "", format.MarketCap(0)
		if p := lines[i].profile; p != nil {
			name, marketCap = p.Name, format.MarketCap(p.MarketCap)
		}

		price, change := "N/A", ""
		if q := lines[i].quote; q != nil && q.Price > 0 {
			price, change = format.Price(q.Price), format.ChangePercent(q.ChangePercent)
		}

		rows = append(rows, []string{symbol, name, price, change, marketCap})
	}

	writeTable(out, rows)
}
