package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"go-basic-tasks/backend/internal/models"
	"go-basic-tasks/backend/internal/repositories"
)

// AuthService はユーザー名とパスワードからアカウントを解決します。
type AuthService struct {
	db          *sqlx.DB
	accountRepo *repositories.AccountRepository
}

// NewAuthService は新しい AuthService を作成します。
func NewAuthService(db *sqlx.DB, accountRepo *repositories.AccountRepository) *AuthService {
	return &AuthService{db: db, accountRepo: accountRepo}
}

// Authenticate はアカウントを毎回検索し、パスワードが保存値と完全一致する場合のみ返します。
// パスワードはハッシュ化されず平文で比較されます (既知のセキュリティ上の欠点)。
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.Account, error) {
	account, err := s.accountRepo.FindByUsername(ctx, s.db, username)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAuthentication
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if password != account.Password {
		return nil, ErrAuthentication
	}
	return account, nil
}
