package handler

import "stockdash/internal/model"

type NewsResponse struct {
	Symbols  []string        `json:"symbols"`
	Articles []model.Article `json:"articles"`
}

type SearchResponse struct {
	Query   string               `json:"query"`
	Results []model.SearchResult `json:"results"`
}

type WatchlistItemResponse struct {
	Symbol  string `json:"symbol"`
	Company string `json:"company"`
	AddedAt string `json:"addedAt"`
}

type WatchlistResponse struct {
	Items []WatchlistItemResponse `json:"items"`
	Total int                     `json:"total"`
}

type AddWatchlistRequest struct {
	Symbol  string `json:"symbol" binding:"required"`
	Company string `json:"company"`
}

type SignUpRequest struct {
	Email             string `json:"email" binding:"required,email"`
	Name              string `json:"fullName" binding:"required"`
	Country           string `json:"country"`
	InvestmentGoals   string `json:"investmentGoals"`
	RiskTolerance     string `json:"riskTolerance"`
	PreferredIndustry string `json:"preferredIndustry"`
}

type SignUpResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"fullName"`
}
