package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const userIDKey = "user_id"

// SessionValidator resolves a session token to a user id. An unknown token
// yields "" and no error.
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (string, error)
}

// RedisSessionValidator reads sessions the auth provider stores under
// prefix+token.
type RedisSessionValidator struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisSessionValidator(rdb *redis.Client, prefix string) *RedisSessionValidator {
	return &RedisSessionValidator{rdb: rdb, prefix: prefix}
}

func (v *RedisSessionValidator) ValidateSession(ctx context.Context, token string) (string, error) {
	id, err := v.rdb.Get(ctx, v.prefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

// SessionAuth rejects requests without a valid bearer token.
func SessionAuth(validator SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := resolveSession(c, validator)
		if err != nil {
			slog.Error("error validating session", "error", err)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Session store unavailable"})
			return
		}

		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set(userIDKey, id)
		c.Next()
	}
}

// OptionalSessionAuth sets the user id when a valid token is present and lets
// every request through.
func OptionalSessionAuth(validator SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := resolveSession(c, validator)
		if err != nil {
			slog.Warn("error validating session, continuing anonymously", "error", err)
		}

		if id != "" {
			c.Set(userIDKey, id)
		}
		c.Next()
	}
}

func resolveSession(c *gin.Context, validator SessionValidator) (string, error) {
	token := bearerToken(c)
	if token == "" {
		return "", nil
	}
	return validator.ValidateSession(c.Request.Context(), token)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

func currentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
