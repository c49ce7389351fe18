package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"stockdash/internal/model"

	"github.com/gin-gonic/gin"
)

type NewsAggregator interface {
	GetNews(ctx context.Context, symbols []string) ([]model.Article, error)
}

type SymbolStore interface {
	GetSymbolsByUserID(userID string) ([]string, error)
}

type NewsHandler struct {
	news      NewsAggregator
	watchlist SymbolStore
}

func NewNewsHandler(news NewsAggregator, watchlist SymbolStore) *NewsHandler {
	return &NewsHandler{news: news, watchlist: watchlist}
}

func (h *NewsHandler) GetNews(c *gin.Context) {
	var symbols []string
	if raw := c.Query("symbols"); raw != "" {
		symbols = strings.Split(raw, ",")
	}

	h.respond(c, symbols)
}

func (h *NewsHandler) GetWatchlistNews(c *gin.Context) {
	userID := currentUserID(c)

	symbols, err := h.watchlist.GetSymbolsByUserID(userID)
	if err != nil {
		slog.Error("error fetching watchlist symbols", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	h.respond(c, symbols)
}

func (h *NewsHandler) respond(c *gin.Context, symbols []string) {
	articles, err := h.news.GetNews(c.Request.Context(), symbols)
	if err != nil {
		slog.Error("error fetching news", "error", err, "symbols", symbols)
	}

	if articles == nil {
		articles = []model.Article{}
	}

	if symbols == nil {
		symbols = []string{}
	}

	c.JSON(http.StatusOK, NewsResponse{Symbols: symbols, Articles: articles})
}
