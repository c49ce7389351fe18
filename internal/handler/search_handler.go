package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"stockdash/internal/model"

	"github.com/gin-gonic/gin"
)

type StockSearcher interface {
	Search(ctx context.Context, query string) []model.SearchResult
}

type SearchHandler struct {
	newScope  func() StockSearcher
	watchlist SymbolStore
}

// NewSearchHandler takes a constructor so every request gets its own memo
// scope.
func NewSearchHandler(newScope func() StockSearcher, watchlist SymbolStore) *SearchHandler {
	return &SearchHandler{newScope: newScope, watchlist: watchlist}
}

func (h *SearchHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))

	results := h.newScope().Search(c.Request.Context(), query)
	if results == nil {
		results = []model.SearchResult{}
	}

	if userID := currentUserID(c); userID != "" {
		h.markWatchlist(userID, results)
	}

	c.JSON(http.StatusOK, SearchResponse{Query: query, Results: results})
}

func (h *SearchHandler) markWatchlist(userID string, results []model.SearchResult) {
	symbols, err := h.watchlist.GetSymbolsByUserID(userID)
	if err != nil {
		slog.Warn("error fetching watchlist for search", "error", err, "user_id", userID)
		return
	}

	inWatchlist := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		inWatchlist[strings.ToUpper(s)] = true
	}

	for i := range results {
		results[i].IsInWatchlist = inWatchlist[results[i].Symbol]
	}
}
