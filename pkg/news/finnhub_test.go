package news

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
)

func newTestFinnHub(t *testing.T, handler http.HandlerFunc) *FinnHubClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	httpClient := &http.Client{
		Transport: &rewriteTransport{base: srv.URL, inner: http.DefaultTransport},
	}
	return newFinnHubClient("test-key", httpClient)
}

func TestCompanyNews(t *testing.T) {
	var gotQuery, gotToken string

	client := newTestFinnHub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, true, strings.HasSuffix(r.URL.Path, "/company-news"))
		gotQuery = r.URL.RawQuery
		gotToken = r.Header.Get("X-Finnhub-Token")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{
				"id":       int64(7),
				"headline": "Apple beats estimates",
				"summary":  "Revenue up 8%.",
				"url":      "https://example.com/apple",
				"datetime": int64(1760000000),
				"source":   "Reuters",
				"category": "company",
				"related":  "AAPL",
			},
		})
	})

	articles, err := client.CompanyNews(context.Background(), "AAPL", "2026-10-14", "2026-10-19")

	assert.Equal(t, nil, err)
	assert.Equal(t, "test-key", gotToken)
	assert.Equal(t, true, strings.Contains(gotQuery, "symbol=AAPL"))
	assert.Equal(t, true, strings.Contains(gotQuery, "from=2026-10-14"))
	assert.Equal(t, 1, len(articles))

	a := articles[0]
	assert.Equal(t, int64(7), a.ID)
	assert.Equal(t, "Apple beats estimates", a.Headline)
	assert.Equal(t, "Revenue up 8%.", a.Summary)
	assert.Equal(t, int64(1760000000), a.Datetime)
	assert.Equal(t, "", a.Image)
}

func TestCompanyNews_ServerError(t *testing.T) {
	client := newTestFinnHub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	articles, err := client.CompanyNews(context.Background(), "AAPL", "2026-10-14", "2026-10-19")

	assert.NotEqual(t, nil, err)
	assert.Equal(t, 0, len(articles))
}

func TestMarketNews_MalformedBody(t *testing.T) {
	client := newTestFinnHub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error":"not an array"}`))
	})

	_, err := client.MarketNews(context.Background(), "general")

	assert.NotEqual(t, nil, err)
}

func TestSymbolSearch(t *testing.T) {
	client := newTestFinnHub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "apple", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"count": 2,
			"result": []map[string]interface{}{
				{"symbol": "AAPL", "description": "APPLE INC", "displaySymbol": "AAPL", "type": "Common Stock"},
				{"symbol": "APLE", "description": "APPLE HOSPITALITY REIT INC", "displaySymbol": "APLE", "type": "REIT"},
			},
		})
	})

	matches, err := client.SymbolSearch(context.Background(), "apple")

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(matches))
	assert.Equal(t, "APPLE INC", matches[0].Description)
	assert.Equal(t, "REIT", matches[1].Type)
}

func TestProfile(t *testing.T) {
	client := newTestFinnHub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "MSFT", r.URL.Query().Get("symbol"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"ticker":   "MSFT",
			"name":     "Microsoft Corp",
			"exchange": "NASDAQ NMS - GLOBAL MARKET",

			"marketCapitalization": 3100000,
		})
	})

	profile, err := client.Profile(context.Background(), "MSFT")

	assert.Equal(t, nil, err)
	assert.Equal(t, "Microsoft Corp", profile.Name)
	assert.Equal(t, "NASDAQ NMS - GLOBAL MARKET", profile.Exchange)
	assert.Equal(t, 3.1e12, profile.MarketCap)
}

func TestQuote(t *testing.T) {
	client := newTestFinnHub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, true, strings.HasSuffix(r.URL.Path, "/quote"))
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"c":  227.5,
			"d":  -2.25,
			"dp": -0.98,
			"pc": 229.75,
		})
	})

	quote, err := client.Quote(context.Background(), "AAPL")

	assert.Equal(t, nil, err)
	assert.Equal(t, "AAPL", quote.Symbol)
	assert.Equal(t, 227.5, quote.Price)
	assert.Equal(t, -2.25, quote.Change)
	assert.Equal(t, 229.75, quote.PrevClose)
}

func TestQuote_MissingAPIKey(t *testing.T) {
	_, err := NewFinnHubClient("").Quote(context.Background(), "AAPL")

	assert.Equal(t, true, errors.Is(err, ErrMissingAPIKey))
}

func TestMissingAPIKey(t *testing.T) {
	client := NewFinnHubClient("")

	_, err := client.MarketNews(context.Background(), "general")
	assert.Equal(t, true, errors.Is(err, ErrMissingAPIKey))

	_, err = client.SymbolSearch(context.Background(), "apple")
	assert.Equal(t, true, errors.Is(err, ErrMissingAPIKey))
}

// rewriteTransport redirects all requests to a fixed base URL (test server).
type rewriteTransport struct {
	base  string
	inner http.RoundTripper
}

func (rt *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req2 := req.Clone(req.Context())
	parsed, _ := http.NewRequest("GET", rt.base, nil)
	req2.URL.Host = parsed.URL.Host
	req2.URL.Scheme = parsed.URL.Scheme
	return rt.inner.RoundTrip(req2)
}
