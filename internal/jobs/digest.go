package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"stockdash/internal/model"
	"stockdash/pkg/format"
	"stockdash/pkg/llm"
	"stockdash/pkg/mailer"
)

type UserLister interface {
	GetUsersForNewsEmail() ([]model.User, error)
}

type WatchlistLookup interface {
	GetSymbolsByUserIDs(ids []string) (map[string][]string, error)
}

type NewsAggregator interface {
	GetNews(ctx context.Context, symbols []string) ([]model.Article, error)
}

type NewsWriter interface {
	NewsSummary(ctx context.Context, articles []llm.SummaryInput) (string, error)
}

type DigestReport struct {
	Users   int
	Sent    int
	Skipped int
	Failed  int
}

// Digest sends every user a summary of today's news for their watchlist.
type Digest struct {
	users      UserLister
	watchlists WatchlistLookup
	news       NewsAggregator
	writer     NewsWriter
	sender     mailer.Sender
	now        func() time.Time
}

func NewDigest(users UserLister, watchlists WatchlistLookup, news NewsAggregator, writer NewsWriter, sender mailer.Sender) *Digest {
	return &Digest{
		users:      users,
		watchlists: watchlists,
		news:       news,
		writer:     writer,
		sender:     sender,
		now:        time.Now,
	}
}

// Handle runs the digest for app/news.daily.
func (d *Digest) Handle(ctx context.Context, event model.Event) error {
	report, err := d.Run(ctx)
	if err != nil {
		return err
	}
	if report.Failed > 0 {
		slog.Warn("digest finished with failures", "users", report.Users, "sent", report.Sent, "failed", report.Failed)
	}
	return nil
}

// Run mails every user. A failure for one user is counted and logged; only
// failing to list users or watchlists aborts the run.
func (d *Digest) Run(ctx context.Context) (DigestReport, error) {
	var report DigestReport

	users, err := d.users.GetUsersForNewsEmail()
	if err != nil {
		return report, fmt.Errorf("listing users: %w", err)
	}
	report.Users = len(users)

	if len(users) == 0 {
		slog.Info("no users for news digest")
		return report, nil
	}

	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}

	symbolMap, err := d.watchlists.GetSymbolsByUserIDs(ids)
	if err != nil {
		return report, fmt.Errorf("loading watchlists: %w", err)
	}

	date := format.LongDate(d.now())

	for _, user := range users {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}

		sent, err := d.sendTo(ctx, user, symbolMap[user.ID], date)
		switch {
		case err != nil:
			slog.Error("error sending news digest", "user_id", user.ID, "error", err)
			report.Failed++
		case !sent:
			report.Skipped++
		default:
			report.Sent++
		}
	}

	slog.Info("news digest complete", "users", report.Users, "sent", report.Sent, "skipped", report.Skipped, "failed", report.Failed)
	return report, nil
}

func (d *Digest) sendTo(ctx context.Context, user model.User, symbols []string, date string) (bool, error) {
	articles, err := d.news.GetNews(ctx, symbols)
	if err != nil {
		slog.Warn("error fetching news for digest", "user_id", user.ID, "error", err)
	}

	if len(articles) == 0 {
		slog.Info("no news for user, digest skipped", "user_id", user.ID)
		return false, nil
	}

	inputs := make([]llm.SummaryInput, len(articles))
	for i, a := range articles {
		inputs[i] = llm.SummaryInput{
			Headline:    a.Headline,
			Detail:      a.Summary,
			Publisher:   a.Source,
			PublishedAt: time.Unix(a.Datetime, 0).UTC(),
		}
		if a.Related != "" {
			inputs[i].Symbols = strings.Split(a.Related, ",")
		}
	}

	summary, err := d.writer.NewsSummary(ctx, inputs)
	if err != nil {
		slog.Warn("error summarizing news, using headlines", "user_id", user.ID, "error", err)
		summary = fallbackSummary(articles, d.now())
	}

	digestArticles := make([]mailer.DigestArticle, len(articles))
	for i, a := range articles {
		digestArticles[i] = mailer.DigestArticle{
			Headline: a.Headline,
			URL:      a.URL,
			Source:   a.Source,
			Related:  a.Related,
		}
	}

	msg, err := mailer.RenderDigest(mailer.DigestData{
		Email:    user.Email,
		Name:     user.Name,
		Date:     date,
		Summary:  summary,
		Articles: digestArticles,
	})
	if err != nil {
		return false, err
	}

	if err := d.sender.Send(ctx, msg); err != nil {
		return false, err
	}
	return true, nil
}

func fallbackSummary(articles []model.Article, now time.Time) string {
	paragraphs := make([]string, 0, len(articles))
	for _, a := range articles {
		paragraphs = append(paragraphs, fmt.Sprintf("%s (%s, %s). %s", a.Headline, a.Source, format.TimeAgo(a.Datetime, now), a.Summary))
	}
	return strings.Join(paragraphs, "\n\n")
}
