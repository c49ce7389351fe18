package news

import (
	"context"
	"errors"
)

var ErrMissingAPIKey = errors.New("finnhub api key is not configured")

// Article is a news item as the provider returns it. Zero values stand in for
// fields the provider left out.
type Article struct {
	ID       int64  `json:"id"`
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	URL      string `json:"url"`
	Datetime int64  `json:"datetime"`
	Source   string `json:"source"`
	Image    string `json:"image"`
	Category string `json:"category"`
	Related  string `json:"related"`
}

type Match struct {
	Symbol        string
	Description   string
	DisplaySymbol string
	Type          string
}

type Profile struct {
	Ticker   string
	Name     string
	Exchange string
	// MarketCap is in USD; the provider reports millions.
	MarketCap float64
}

type Quote struct {
	Symbol        string
	Price         float64
	Change        float64
	ChangePercent float64
	PrevClose     float64
}

type NewsClient interface {
	CompanyNews(ctx context.Context, symbol, from, to string) ([]Article, error)
	MarketNews(ctx context.Context, category string) ([]Article, error)
}

type StockClient interface {
	SymbolSearch(ctx context.Context, query string) ([]Match, error)
	Profile(ctx context.Context, symbol string) (*Profile, error)
}
