package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-basic-tasks/backend/internal/models"
	"go-basic-tasks/backend/internal/services"
)

// AccountHandler はアカウント関連のハンドラーを管理します。
type AccountHandler struct {
	accountService *services.AccountService
}

// NewAccountHandler は新しい AccountHandler を作成します。
func NewAccountHandler(accountService *services.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// RegisterHandler はアカウント登録を処理します。
func (h *AccountHandler) RegisterHandler(c *gin.Context) {
	var req models.AccountRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	username, password := req.Credentials()
	account, err := h.accountService.Register(c.Request.Context(), username, password)
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    gin.H{"id": account.ID, "username": account.Username},
	})
}

// DeleteAccountHandler は認証済みアカウントとそのタスクをすべて削除します。
func (h *AccountHandler) DeleteAccountHandler(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}

	if err := h.accountService.DeleteAccount(c.Request.Context(), account.ID); err != nil {
		respondError(c, err, "Failed to delete user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User and all tasks deleted successfully"})
}
