package routes

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"go-basic-tasks/backend/internal/handlers"
	"go-basic-tasks/backend/internal/services"
)

const requestIDHeader = "X-Request-ID"

// BasicAuthMiddleware は HTTP Basic 認証の資格情報をリクエストごとに検証し、
// 解決したアカウントをコンテキストに設定するミドルウェアです。キャッシュはしません。
func BasicAuthMiddleware(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			c.Header("WWW-Authenticate", `Basic realm="tasks"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		account, err := authService.Authenticate(c.Request.Context(), username, password)
		if err != nil {
			if errors.Is(err, services.ErrAuthentication) {
				c.Header("WWW-Authenticate", `Basic realm="tasks"`)
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
				return
			}
			log.Error().Err(err).Str("request_id", c.GetString(handlers.RequestIDContextKey)).Msg("Failed to authenticate")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to authenticate"})
			return
		}

		c.Set(handlers.AccountContextKey, account)
		c.Next()
	}
}

// RequestIDMiddleware は X-Request-ID を引き継ぐか新しく採番し、レスポンスにも設定します。
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(handlers.RequestIDContextKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// RequestLogger は gin.Logger の代わりに zerolog でアクセスログを出力します。
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		evt := log.Info()
		if status >= http.StatusInternalServerError {
			evt = log.Error()
		}
		evt.Str("request_id", c.GetString(handlers.RequestIDContextKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
