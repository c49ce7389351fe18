package aggregator

import (
	"strconv"
	"strings"
	"time"

	"stockdash/internal/model"
	"stockdash/pkg/news"

	"github.com/google/uuid"
)

const (
	companySummaryLen = 200
	generalSummaryLen = 150

	companyCategory = "company"
	generalCategory = "general"
)

var (
	defaultArticleID = uuid.NewString
	newArticleID     = defaultArticleID
)

// Valid reports whether an article carries everything needed to render it.
func Valid(a news.Article) bool {
	return a.Headline != "" && a.Summary != "" && a.URL != "" && a.Datetime != 0
}

// Format builds the output view of a provider article. Company news gets a
// fresh id because the same story is often returned for several symbols.
func Format(a news.Article, companyNews bool, symbol string, index int) model.Article {
	out := model.Article{
		Headline: strings.TrimSpace(a.Headline),
		URL:      a.URL,
		Datetime: a.Datetime,
		Image:    a.Image,
		Source:   a.Source,
	}

	if companyNews {
		out.ID = newArticleID()
		out.Summary = truncate(strings.TrimSpace(a.Summary), companySummaryLen)
		out.Category = companyCategory
		out.Related = symbol
		if out.Source == "" {
			out.Source = "Company News"
		}
		return out
	}

	out.ID = strconv.FormatInt(a.ID+int64(index), 10)
	out.Summary = truncate(strings.TrimSpace(a.Summary), generalSummaryLen)
	out.Category = a.Category
	if out.Category == "" {
		out.Category = generalCategory
	}
	out.Related = a.Related
	if out.Source == "" {
		out.Source = "Market News"
	}
	return out
}

// truncate cuts s to max characters and always appends an ellipsis.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) > max {
		r = r[:max]
	}
	return string(r) + "..."
}

// DateRange returns the YYYY-MM-DD bounds of the window ending on the day of now.
func DateRange(now time.Time, days int) (from, to string) {
	now = now.UTC()
	return now.AddDate(0, 0, -days).Format(time.DateOnly), now.Format(time.DateOnly)
}

// NormalizeSymbols trims and uppercases symbols, dropping blanks. Duplicates are kept.
func NormalizeSymbols(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
