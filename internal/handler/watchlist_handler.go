package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"stockdash/internal/model"

	"github.com/gin-gonic/gin"
)

type WatchlistStore interface {
	AddToWatchlist(item *model.WatchlistItem) (bool, error)
	RemoveFromWatchlist(userID, symbol string) (bool, error)
	GetWatchlist(userID string) ([]model.WatchlistItem, error)
}

type WatchlistHandler struct {
	repository WatchlistStore
}

func NewWatchlistHandler(repository WatchlistStore) *WatchlistHandler {
	return &WatchlistHandler{repository: repository}
}

func toWatchlistItemResponse(w model.WatchlistItem) WatchlistItemResponse {
	return WatchlistItemResponse{
		Symbol:  w.Symbol,
		Company: w.Company,
		AddedAt: w.AddedAt.Format(time.RFC3339),
	}
}

func (h *WatchlistHandler) GetWatchlist(c *gin.Context) {
	userID := currentUserID(c)

	items, err := h.repository.GetWatchlist(userID)
	if err != nil {
		slog.Error("error fetching watchlist", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := WatchlistResponse{Items: []WatchlistItemResponse{}, Total: len(items)}
	for _, w := range items {
		res.Items = append(res.Items, toWatchlistItemResponse(w))
	}

	c.JSON(http.StatusOK, res)
}

func (h *WatchlistHandler) AddToWatchlist(c *gin.Context) {
	var req AddWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Symbol is required"})
		return
	}

	company := strings.TrimSpace(req.Company)
	if company == "" {
		company = symbol
	}

	item := &model.WatchlistItem{
		UserID:  currentUserID(c),
		Symbol:  symbol,
		Company: company,
	}

	added, err := h.repository.AddToWatchlist(item)
	if err != nil {
		slog.Error("error adding to watchlist", "error", err, "user_id", item.UserID, "symbol", symbol)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if !added {
		c.JSON(http.StatusConflict, gin.H{"error": "Symbol already in watchlist"})
		return
	}

	c.JSON(http.StatusCreated, toWatchlistItemResponse(*item))
}

func (h *WatchlistHandler) RemoveFromWatchlist(c *gin.Context) {
	userID := currentUserID(c)
	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))

	removed, err := h.repository.RemoveFromWatchlist(userID, symbol)
	if err != nil {
		slog.Error("error removing from watchlist", "error", err, "user_id", userID, "symbol", symbol)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Symbol not in watchlist"})
		return
	}

	c.Status(http.StatusNoContent)
}
