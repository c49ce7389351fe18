package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"stockdash/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserStore interface {
	CreateUser(user *model.User) (bool, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event model.Event) error
}

type AuthHandler struct {
	repository UserStore
	events     EventPublisher
}

func NewAuthHandler(repository UserStore, events EventPublisher) *AuthHandler {
	return &AuthHandler{repository: repository, events: events}
}

// SignUp stores the profile and queues the welcome e-mail. A failure to queue
// does not undo the sign-up.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user := &model.User{
		ID:                uuid.NewString(),
		Email:             strings.ToLower(strings.TrimSpace(req.Email)),
		Name:              strings.TrimSpace(req.Name),
		Country:           req.Country,
		InvestmentGoals:   req.InvestmentGoals,
		RiskTolerance:     req.RiskTolerance,
		PreferredIndustry: req.PreferredIndustry,
	}

	created, err := h.repository.CreateUser(user)
	if err != nil {
		slog.Error("error creating user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if !created {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	event := model.Event{
		Name: model.UserCreatedEvent,
		Data: map[string]string{"user_id": user.ID},
	}
	if err := h.events.Publish(c.Request.Context(), event); err != nil {
		slog.Error("error publishing user created event", "error", err, "user_id", user.ID)
	}

	c.JSON(http.StatusCreated, SignUpResponse{ID: user.ID, Email: user.Email, Name: user.Name})
}
