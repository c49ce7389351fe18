package jobs

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"stockdash/internal/model"
	"stockdash/pkg/llm"
	"stockdash/pkg/mailer"

	"github.com/go-playground/assert/v2"
)

type fakeUsers struct {
	users []model.User
	err   error
}

func (f *fakeUsers) GetUserByID(id string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) GetUsersForNewsEmail() ([]model.User, error) {
	return f.users, f.err
}

type fakeWatchlists struct {
	symbols map[string][]string
	err     error
}

func (f *fakeWatchlists) GetSymbolsByUserIDs(ids []string) (map[string][]string, error) {
	return f.symbols, f.err
}

type fakeNews struct {
	bySymbols map[string][]model.Article
}

func (f *fakeNews) GetNews(ctx context.Context, symbols []string) ([]model.Article, error) {
	return f.bySymbols[strings.Join(symbols, ",")], nil
}

type fakeWriter struct {
	intro   string
	summary string
	err     error
	inputs  []llm.SummaryInput
}

func (f *fakeWriter) WelcomeIntro(ctx context.Context, profile llm.UserProfile) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.intro + " " + profile.Name, nil
}

func (f *fakeWriter) NewsSummary(ctx context.Context, articles []llm.SummaryInput) (string, error) {
	f.inputs = articles
	return f.summary, f.err
}

type fakeSender struct {
	mu     sync.Mutex
	sent   []mailer.Message
	failTo string
}

func (f *fakeSender) Send(ctx context.Context, msg mailer.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if msg.To == f.failTo {
		return errors.New("smtp down")
	}
	f.sent = append(f.sent, msg)
	return nil
}

var testUser = model.User{ID: "u1", Email: "ada@example.com", Name: "Ada", Country: "UK", InvestmentGoals: "Growth"}

func TestWelcomeEmail_Sends(t *testing.T) {
	sender := &fakeSender{}
	job := NewWelcomeEmail(&fakeUsers{users: []model.User{testUser}}, &fakeWriter{intro: "Hello"}, sender, "https://dash.example.com")

	err := job.Handle(context.Background(), model.Event{Name: model.UserCreatedEvent, Data: map[string]string{"user_id": "u1"}})

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(sender.sent))
	assert.Equal(t, "ada@example.com", sender.sent[0].To)
	assert.Equal(t, mailer.WelcomeSubject, sender.sent[0].Subject)
	assert.Equal(t, true, strings.Contains(sender.sent[0].Text, "Hello Ada"))
	assert.Equal(t, true, strings.Contains(sender.sent[0].HTML, "https://dash.example.com"))
}

func TestWelcomeEmail_FallbackIntro(t *testing.T) {
	sender := &fakeSender{}
	job := NewWelcomeEmail(&fakeUsers{users: []model.User{testUser}}, &fakeWriter{err: errors.New("llm down")}, sender, "")

	err := job.Handle(context.Background(), model.Event{Data: map[string]string{"user_id": "u1"}})

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(sender.sent))
	assert.Equal(t, true, strings.Contains(sender.sent[0].Text, fallbackIntro))
}

func TestWelcomeEmail_UnknownUser(t *testing.T) {
	sender := &fakeSender{}
	job := NewWelcomeEmail(&fakeUsers{}, &fakeWriter{}, sender, "")

	err := job.Handle(context.Background(), model.Event{Data: map[string]string{"user_id": "missing"}})

	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(sender.sent))
}

func TestWelcomeEmail_LookupError(t *testing.T) {
	job := NewWelcomeEmail(&fakeUsers{err: errors.New("db down")}, &fakeWriter{}, &fakeSender{}, "")

	err := job.Handle(context.Background(), model.Event{Data: map[string]string{"user_id": "u1"}})

	assert.NotEqual(t, nil, err)
}

func newTestDigest(users []model.User, sender *fakeSender, writer *fakeWriter) *Digest {
	d := NewDigest(
		&fakeUsers{users: users},
		&fakeWatchlists{symbols: map[string][]string{"u1": {"AAPL"}, "u2": {"TSLA"}}},
		&fakeNews{bySymbols: map[string][]model.Article{
			"AAPL": {{ID: "a1", Headline: "Apple beats", Summary: "Strong quarter...", Source: "Reuters", URL: "https://x/1", Datetime: 1700000000, Related: "AAPL"}},
			"TSLA": {{ID: "t1", Headline: "Tesla slips", Summary: "Deliveries miss...", Source: "Bloomberg", URL: "https://x/2", Datetime: 1700000000, Related: "TSLA"}},
		}},
		writer,
		sender,
	)
	d.now = func() time.Time { return time.Date(2026, time.October, 19, 8, 0, 0, 0, time.UTC) }
	return d
}

func TestDigest_Run(t *testing.T) {
	sender := &fakeSender{}
	writer := &fakeWriter{summary: "Apple had a good day.\n\nMore tomorrow."}
	users := []model.User{
		testUser,
		{ID: "u2", Email: "bob@example.com", Name: "Bob"},
		{ID: "u3", Email: "eve@example.com", Name: "Eve"},
	}

	report, err := newTestDigest(users, sender, writer).Run(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, DigestReport{Users: 3, Sent: 2, Skipped: 1}, report)
	assert.Equal(t, 2, len(sender.sent))
	assert.Equal(t, "Market News Summary Today - Monday, October 19, 2026", sender.sent[0].Subject)
	assert.Equal(t, true, strings.Contains(sender.sent[0].HTML, "Apple had a good day."))
	assert.Equal(t, []string{"TSLA"}, writer.inputs[0].Symbols)
}

func TestDigest_OneFailureDoesNotStopRun(t *testing.T) {
	sender := &fakeSender{failTo: "ada@example.com"}
	users := []model.User{testUser, {ID: "u2", Email: "bob@example.com", Name: "Bob"}}

	report, err := newTestDigest(users, sender, &fakeWriter{summary: "ok"}).Run(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Sent)
	assert.Equal(t, "bob@example.com", sender.sent[0].To)
}

func TestDigest_FallbackSummary(t *testing.T) {
	sender := &fakeSender{}

	_, err := newTestDigest([]model.User{testUser}, sender, &fakeWriter{err: errors.New("llm down")}).Run(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(sender.sent))
	assert.Equal(t, true, strings.Contains(sender.sent[0].Text, "Apple beats (Reuters"))
}

func TestDigest_ListUsersError(t *testing.T) {
	d := NewDigest(&fakeUsers{err: errors.New("db down")}, &fakeWatchlists{}, &fakeNews{}, &fakeWriter{}, &fakeSender{})

	_, err := d.Run(context.Background())

	assert.NotEqual(t, nil, err)
}
