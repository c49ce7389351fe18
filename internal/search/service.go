// Package search looks up stocks for the search box and drives its debounced
// input pipeline.
package search

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"stockdash/internal/model"
	"stockdash/pkg/news"

	"golang.org/x/sync/errgroup"
)

const (
	MaxResults      = 15
	MaxPopular      = 10
	DefaultExchange = "US"
	DefaultType     = "Stock"
)

// PopularSymbols are shown when the search box is empty.
var PopularSymbols = []string{
	"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA", "META", "NVDA", "NFLX", "ORCL", "CRM",
	"ADBE", "INTC", "AMD", "PYPL", "UBER",
}

type Service struct {
	client  news.StockClient
	popular []string
}

func NewService(client news.StockClient) *Service {
	return &Service{client: client, popular: PopularSymbols}
}

// Search never fails: provider errors are logged and yield an empty list.
func (s *Service) Search(ctx context.Context, query string) []model.SearchResult {
	query = strings.TrimSpace(query)

	var (
		results []model.SearchResult
		err     error
	)
	if query == "" {
		results, err = s.popularStocks(ctx)
	} else {
		results, err = s.lookup(ctx, query)
	}

	if err != nil {
		slog.Error("error searching stocks", "query", query, "error", err)
		return []model.SearchResult{}
	}

	if len(results) > MaxResults {
		results = results[:MaxResults]
	}
	return results
}

func (s *Service) lookup(ctx context.Context, query string) ([]model.SearchResult, error) {
	matches, err := s.client.SymbolSearch(ctx, query)
	if err != nil {
		return nil, err
	}

	results := make([]model.SearchResult, 0, len(matches))
	for _, m := range matches {
		symbol := strings.ToUpper(strings.TrimSpace(m.Symbol))
		if symbol == "" {
			continue
		}

		results = append(results, model.SearchResult{
			Symbol:   symbol,
			Name:     withDefault(m.Description, symbol),
			Exchange: withDefault(m.DisplaySymbol, DefaultExchange),
			Type:     withDefault(m.Type, DefaultType),
		})
	}

	return results, nil
}

func (s *Service) popularStocks(ctx context.Context) ([]model.SearchResult, error) {
	symbols := s.popular
	if len(symbols) > MaxPopular {
		symbols = symbols[:MaxPopular]
	}

	var (
		mu       sync.Mutex
		profiles = make(map[string]*news.Profile, len(symbols))
		g        errgroup.Group
	)

	for _, symbol := range symbols {
		g.Go(func() error {
			profile, err := s.client.Profile(ctx, symbol)
			if err != nil {
				slog.Warn("error fetching profile", "symbol", symbol, "error", err)
				return nil
			}

			mu.Lock()
			profiles[symbol] = profile
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	results := make([]model.SearchResult, 0, len(symbols))
	for _, symbol := range symbols {
		profile := profiles[symbol]
		if profile == nil || strings.TrimSpace(profile.Name) == "" {
			continue
		}

		results = append(results, model.SearchResult{
			Symbol:   strings.ToUpper(symbol),
			Name:     profile.Name,
			Exchange: withDefault(profile.Exchange, DefaultExchange),
			Type:     DefaultType,
		})
	}

	return results, nil
}

func withDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
