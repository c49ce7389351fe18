// Package aggregator merges provider news for a watchlist into a short,
// diversified list.
package aggregator

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"stockdash/internal/model"
	"stockdash/pkg/news"

	"golang.org/x/sync/errgroup"
)

const (
	MaxArticles  = 6
	LookbackDays = 5
)

type Aggregator struct {
	client news.NewsClient
	now    func() time.Time
}

func New(client news.NewsClient) *Aggregator {
	return &Aggregator{client: client, now: time.Now}
}

// GetNews returns at most MaxArticles articles for symbols, picking one article
// per symbol per round. With no symbols, or when none of them has usable news,
// it falls back to general market news.
//
// Failures of single symbols are logged and treated as empty. The returned
// slice is never nil; err is set only when the general news fallback failed.
func (a *Aggregator) GetNews(ctx context.Context, symbols []string) ([]model.Article, error) {
	symbols = NormalizeSymbols(symbols)

	if len(symbols) > 0 {
		bySymbol := a.fetchCompanyNews(ctx, symbols)
		articles := roundRobin(symbols, bySymbol, MaxArticles)
		if len(articles) > 0 {
			slices.SortStableFunc(articles, func(x, y model.Article) int {
				return cmp.Compare(y.Datetime, x.Datetime)
			})
			return articles, nil
		}
		slog.Info("no company news for symbols, falling back to general news", "symbols", symbols)
	}

	return a.generalNews(ctx)
}

// fetchCompanyNews requests every symbol in parallel and keeps the valid
// articles of each one in provider order.
func (a *Aggregator) fetchCompanyNews(ctx context.Context, symbols []string) map[string][]news.Article {
	from, to := DateRange(a.now(), LookbackDays)

	var (
		mu       sync.Mutex
		bySymbol = make(map[string][]news.Article, len(symbols))
		g        errgroup.Group
	)

	for _, symbol := range symbols {
		g.Go(func() error {
			articles, err := a.client.CompanyNews(ctx, symbol, from, to)
			if err != nil {
				slog.Warn("error fetching company news", "symbol", symbol, "error", err)
				return nil
			}

			valid := make([]news.Article, 0, len(articles))
			for _, article := range articles {
				if Valid(article) {
					valid = append(valid, article)
				}
			}

			mu.Lock()
			bySymbol[symbol] = valid
			mu.Unlock()
			return nil
		})
	}

	g.Wait()
	return bySymbol
}

// roundRobin takes one article per symbol per round, in symbol order, until
// limit articles are collected, limit rounds have passed, or a round adds
// nothing. A symbol listed twice draws twice per round from the same list.
func roundRobin(symbols []string, bySymbol map[string][]news.Article, limit int) []model.Article {
	cursors := make(map[string]int, len(bySymbol))
	articles := make([]model.Article, 0, limit)

	for round := 0; round < limit && len(articles) < limit; round++ {
		added := 0
		for _, symbol := range symbols {
			if len(articles) >= limit {
				break
			}

			list := bySymbol[symbol]
			next := cursors[symbol]
			if next >= len(list) {
				continue
			}

			cursors[symbol] = next + 1
			articles = append(articles, Format(list[next], true, symbol, 0))
			added++
		}

		if added == 0 {
			break
		}
	}

	return articles
}

type dedupeKey struct {
	id       int64
	url      string
	headline string
}

func (a *Aggregator) generalNews(ctx context.Context) ([]model.Article, error) {
	raw, err := a.client.MarketNews(ctx, generalCategory)
	if err != nil {
		return []model.Article{}, fmt.Errorf("fetching general news: %w", err)
	}

	seen := make(map[dedupeKey]struct{}, len(raw))
	articles := make([]model.Article, 0, MaxArticles)

	for _, article := range raw {
		if len(articles) == MaxArticles {
			break
		}

		if !Valid(article) {
			continue
		}

		key := dedupeKey{id: article.ID, url: article.URL, headline: article.Headline}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		articles = append(articles, Format(article, false, "", len(articles)))
	}

	return articles, nil
}
