package model

// Article is the formatted, output-only view handed to the UI and the e-mail renderer.
type Article struct {
	ID       string `json:"id"`
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	Source   string `json:"source"`
	URL      string `json:"url"`
	Datetime int64  `json:"datetime"`
	Image    string `json:"image"`
	Category string `json:"category"`
	Related  string `json:"related"`
}

type SearchResult struct {
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	Exchange      string `json:"exchange"`
	Type          string `json:"type"`
	IsInWatchlist bool   `json:"isInWatchlist"`
}
