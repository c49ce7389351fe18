package news

import (
	"context"
	"fmt"
	"net/http"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

type FinnHubClient struct {
	client *finnhub.DefaultApiService
	apiKey string
}

func NewFinnHubClient(apiKey string) *FinnHubClient {
	return newFinnHubClient(apiKey, nil)
}

func newFinnHubClient(apiKey string, httpClient *http.Client) *FinnHubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &FinnHubClient{client: client, apiKey: apiKey}
}

func (c *FinnHubClient) CompanyNews(ctx context.Context, symbol, from, to string) ([]Article, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	res, _, err := c.client.CompanyNews(ctx).Symbol(symbol).From(from).To(to).Execute()
	if err != nil {
		return nil, fmt.Errorf("finnhub company news %s: %w", symbol, err)
	}

	articles := make([]Article, 0, len(res))
	for _, n := range res {
		articles = append(articles, Article{
			ID:       n.GetId(),
			Headline: n.GetHeadline(),
			Summary:  n.GetSummary(),
			URL:      n.GetUrl(),
			Datetime: n.GetDatetime(),
			Source:   n.GetSource(),
			Image:    n.GetImage(),
			Category: n.GetCategory(),
			Related:  n.GetRelated(),
		})
	}

	return articles, nil
}

func (c *FinnHubClient) MarketNews(ctx context.Context, category string) ([]Article, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	res, _, err := c.client.MarketNews(ctx).Category(category).Execute()
	if err != nil {
		return nil, fmt.Errorf("finnhub market news: %w", err)
	}

	articles := make([]Article, 0, len(res))
	for _, n := range res {
		articles = append(articles, Article{
			ID:       n.GetId(),
			Headline: n.GetHeadline(),
			Summary:  n.GetSummary(),
			URL:      n.GetUrl(),
			Datetime: n.GetDatetime(),
			Source:   n.GetSource(),
			Image:    n.GetImage(),
			Category: n.GetCategory(),
			Related:  n.GetRelated(),
		})
	}

	return articles, nil
}

func (c *FinnHubClient) SymbolSearch(ctx context.Context, query string) ([]Match, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	res, _, err := c.client.SymbolSearch(ctx).Q(query).Execute()
	if err != nil {
		return nil, fmt.Errorf("finnhub symbol search: %w", err)
	}

	var matches []Match
	for _, r := range res.GetResult() {
		matches = append(matches, Match{
			Symbol:        r.GetSymbol(),
			Description:   r.GetDescription(),
			DisplaySymbol: r.GetDisplaySymbol(),
			Type:          r.GetType(),
		})
	}

	return matches, nil
}

func (c *FinnHubClient) Profile(ctx context.Context, symbol string) (*Profile, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	res, _, err := c.client.CompanyProfile2(ctx).Symbol(symbol).Execute()
	if err != nil {
		return nil, fmt.Errorf("finnhub profile %s: %w", symbol, err)
	}

	return &Profile{
		Ticker:    res.GetTicker(),
		Name:      res.GetName(),
		Exchange:  res.GetExchange(),
		MarketCap: float64(res.GetMarketCapitalization()) * 1e6,
	}, nil
}

func (c *FinnHubClient) Quote(ctx context.Context, symbol string) (*Quote, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	res, _, err := c.client.Quote(ctx).Symbol(symbol).Execute()
	if err != nil {
		return nil, fmt.Errorf("finnhub quote %s: %w", symbol, err)
	}

	return &Quote{
		Symbol:        symbol,
		Price:         float64(res.GetC()),
		Change:        float64(res.GetD()),
		ChangePercent: float64(res.GetDp()),
		PrevClose:     float64(res.GetPc()),
	}, nil
}
