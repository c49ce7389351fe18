package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping() error
}

type HealthHandler struct {
	database Pinger
}

func NewHealthHandler(database Pinger) *HealthHandler {
	return &HealthHandler{database: database}
}

func (h *HealthHandler) GetHealth(c *gin.Context) {
	if err := h.database.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}
