package model

import "time"

const (
	UserCreatedEvent = "app/user.created"
	DailyNewsEvent   = "app/news.daily"
)

type User struct {
	ID                string
	Email             string
	Name              string
	Country           string
	InvestmentGoals   string
	RiskTolerance     string
	PreferredIndustry string
	CreatedAt         time.Time
}

type WatchlistItem struct {
	ID      int64
	UserID  string
	Symbol  string
	Company string
	AddedAt time.Time
}

// Event is a named job payload placed on the event queue.
type Event struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Data     map[string]string `json:"data"`
	Attempts int               `json:"attempts"`
}
