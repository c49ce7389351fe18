package main

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"stockdash/internal/model"

	"github.com/go-playground/assert/v2"
)

type recordingSearcher struct {
	mu      sync.Mutex
	queries []string
}

func (r *recordingSearcher) Search(ctx context.Context, query string) []model.SearchResult {
	r.mu.Lock()
	r.queries = append(r.queries, query)
	r.mu.Unlock()

	if query == "" {
		return []model.SearchResult{{Symbol: "AAPL", Name: "Apple Inc", Exchange: "NASDAQ", Type: "Stock"}}
	}
	return []model.SearchResult{{Symbol: strings.ToUpper(query), Name: "Result " + query, Exchange: "US", Type: "Stock"}}
}

func TestWriteTable_AlignsByDisplayWidth(t *testing.T) {
	var buf bytes.Buffer
	writeTable(&buf, [][]string{
		{"SYMBOL", "NAME"},
		{"7203", "トヨタ自動車"},
		{"AAPL", "Apple"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, 4, len(lines))
	assert.Equal(t, "SYMBOL  NAME", lines[0])
	assert.Equal(t, "------  ------------", lines[1])
	assert.Equal(t, "7203    トヨタ自動車", lines[2])
	assert.Equal(t, "AAPL    Apple", lines[3])
}

func TestWriteTable_TruncatesLongCells(t *testing.T) {
	var buf bytes.Buffer
	writeTable(&buf, [][]string{{"HEADLINE"}, {strings.Repeat("x", 100)}})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, maxCellWidth, len(lines[2]))
	assert.Equal(t, true, strings.HasSuffix(lines[2], "..."))
}

func TestRunSearch_DebouncesInput(t *testing.T) {
	searcher := &recordingSearcher{}
	var out bytes.Buffer

	err := runSearch(context.Background(), strings.NewReader("a\naa\naap\n"), &out, searcher, 30*time.Millisecond)

	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"", "aap"}, searcher.queries)
	assert.Equal(t, true, strings.Contains(out.String(), "Popular stocks:"))
	assert.Equal(t, true, strings.Contains(out.String(), `Results for "aap":`))
	assert.Equal(t, true, strings.Contains(out.String(), "Result aap"))
}

func TestPrintArticles(t *testing.T) {
	now := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)
	articles := []model.Article{
		{Headline: "Apple beats", Summary: "Strong quarter...", Source: "Reuters", URL: "https://x/1", Datetime: now.Add(-2 * time.Hour).Unix(), Related: "AAPL"},
	}

	var out bytes.Buffer
	printArticles(&out, articles, now)

	assert.Equal(t, true, strings.Contains(out.String(), "Reuters"))
	assert.Equal(t, true, strings.Contains(out.String(), "1. Apple beats"))
	assert.Equal(t, true, strings.Contains(out.String(), "https://x/1"))
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	root := newRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}

	assert.Equal(t, true, strings.Contains(strings.Join(names, ","), "news"))
	assert.Equal(t, true, strings.Contains(strings.Join(names, ","), "search"))
	assert.Equal(t, true, strings.Contains(strings.Join(names, ","), "digest"))
}

func TestSearchCmd_RejectsArgs(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"search", "extra"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	assert.NotEqual(t, nil, root.Execute())
}
