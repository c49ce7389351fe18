// Package main provides the stockctl command line client.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"stockdash/db"
	"stockdash/internal/aggregator"
	"stockdash/internal/jobs"
	"stockdash/internal/model"
	"stockdash/internal/search"
	"stockdash/pkg/format"
	"stockdash/pkg/news"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "stockctl",
		Short:        "Query market news and stock search from the terminal",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newNewsCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newQuoteCmd())
	rootCmd.AddCommand(newDigestCmd())

	return rootCmd
}

func newNewsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "news [symbols...]",
		Short: "Show up to six recent articles for the given symbols",
		Long:  "Show up to six recent articles for the given symbols, interleaved across symbols. Without symbols, general market news is shown.",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := news.NewFinnHubClient(os.Getenv("FINNHUB_API_KEY"))

			articles, err := aggregator.New(client).GetNews(cmd.Context(), args)
			if err != nil {
				return fmt.Errorf("fetching news: %w", err)
			}

			if len(articles) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No news found.")
				return nil
			}

			printArticles(cmd.OutOrStdout(), articles, time.Now())
			return nil
		},
	}
}

func newSearchCmd() *cobra.Command {
	var delay time.Duration

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search stocks interactively",
		Long:  "Each input line replaces the search box contents. Results are printed once typing settles; an empty line shows popular stocks.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scope := newSearchScope(news.NewFinnHubClient(os.Getenv("FINNHUB_API_KEY")))
			return runSearch(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), scope, delay)
		},
	}

	cmd.Flags().DurationVar(&delay, "delay", search.DefaultDebounceDelay, "quiet period before a search is sent")

	return cmd
}

// newSearchScope memoizes lookups for one CLI session, so repeating a query
// does not hit the provider again.
func newSearchScope(client news.StockClient) *search.Scope {
	return search.NewService(client).NewScope()
}

func newQuoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quote <symbols...>",
		Short: "Show price, daily change and market cap for the given symbols",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printQuotes(cmd.Context(), cmd.OutOrStdout(), news.NewFinnHubClient(os.Getenv("FINNHUB_API_KEY")), args)
			return nil
		},
	}
}

func newDigestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "digest",
		Short: "Queue the daily news digest for the worker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := db.ConnectRedis(); err != nil {
				return fmt.Errorf("connecting to Redis: %w", err)
			}
			defer db.CloseRedis()

			queue := jobs.NewQueue(db.Redis, db.EventQueueKey, db.DeadLetterKey)
			if err := queue.Publish(cmd.Context(), model.Event{Name: model.DailyNewsEvent}); err != nil {
				return fmt.Errorf("queueing digest: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Daily digest queued.")
			return nil
		},
	}
}

const settleMargin = 50 * time.Millisecond

func runSearch(ctx context.Context, in io.Reader, out io.Writer, searcher search.Searcher, delay time.Duration) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	var (
		mu          sync.Mutex
		wasLoading  bool
		lastPrinted string
	)
	show := func(st search.State) {
		mu.Lock()
		defer mu.Unlock()
		blank := strings.TrimSpace(st.Query) == ""
		if (wasLoading && !st.Loading) || (blank && lastPrinted != "") {
			printResults(out, st.Query, st.Results)
			lastPrinted = strings.TrimSpace(st.Query)
		}
		wasLoading = st.Loading
	}

	popular := searcher.Search(ctx, "")
	printResults(out, "", popular)

	session := search.NewSession(ctx, searcher, popular, search.WithDelay(delay), search.WithOnChange(show))
	defer session.Stop()
	session.Open()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		session.Type(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	return waitSettled(ctx, session, delay)
}

func waitSettled(ctx context.Context, session *search.Session, delay time.Duration) error {
	timer := time.NewTimer(delay + settleMargin)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil
	case <-timer.C:
	}

	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()

	for session.State().Loading {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
	return nil
}

func printResults(out io.Writer, query string, results []model.SearchResult) {
	if strings.TrimSpace(query) == "" {
		fmt.Fprintln(out, "Popular stocks:")
	} else {
		fmt.Fprintf(out, "Results for %q:\n", query)
	}

	if len(results) == 0 {
		fmt.Fprintln(out, "  No stocks found.")
		return
	}

	rows := [][]string{{"SYMBOL", "NAME", "EXCHANGE", "TYPE"}}
	for _, r := range results {
		rows = append(rows, []string{r.Symbol, r.Name, r.Exchange, r.Type})
	}
	writeTable(out, rows)
}

func printArticles(out io.Writer, articles []model.Article, now time.Time) {
	rows := [][]string{{"WHEN", "SOURCE", "SYMBOL", "HEADLINE"}}
	for _, a := range articles {
		rows = append(rows, []string{format.TimeAgo(a.Datetime, now), a.Source, a.Related, a.Headline})
	}
	writeTable(out, rows)

	fmt.Fprintln(out)
	for i, a := range articles {
		fmt.Fprintf(out, "%d. %s\n   %s\n   %s\n", i+1, a.Headline, a.Summary, a.URL)
	}
}
