package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"go-basic-tasks/backend/internal/models"
	"go-basic-tasks/backend/internal/services"
)

// AccountContextKey は認証ミドルウェアが解決したアカウントを gin.Context に保存するキーです。
const AccountContextKey = "account"

// RequestIDContextKey はリクエスト ID を gin.Context に保存するキーです。
const RequestIDContextKey = "request_id"

// currentAccount は認証済みアカウントを取り出します。
// 見つからない場合はレスポンスを書き込み false を返します。
func currentAccount(c *gin.Context) (*models.Account, bool) {
	val, exists := c.Get(AccountContextKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found in context"})
		return nil, false
	}
	account, ok := val.(*models.Account)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid account type in context"})
		return nil, false
	}
	return account, true
}

// respondError はサービス層のエラーを HTTP ステータスに変換します。
// 想定外のエラーは内容を返さずにログだけに残します。
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrAuthentication):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
	default:
		log.Error().Err(err).
			Str("request_id", c.GetString(RequestIDContextKey)).
			Str("path", c.FullPath()).
			Msg(fallback)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
