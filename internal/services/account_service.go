package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"go-basic-tasks/backend/internal/database"
	"go-basic-tasks/backend/internal/models"
	"go-basic-tasks/backend/internal/repositories"
)

// AccountService はアカウントの登録と削除を扱います。
type AccountService struct {
	db          *sqlx.DB
	accountRepo *repositories.AccountRepository
	taskRepo    *repositories.TaskRepository
}

// NewAccountService は新しい AccountService を作成します。
func NewAccountService(db *sqlx.DB, accountRepo *repositories.AccountRepository, taskRepo *repositories.TaskRepository) *AccountService {
	return &AccountService{db: db, accountRepo: accountRepo, taskRepo: taskRepo}
}

// Register はアカウントを作成します。ユーザー名が既に存在する場合は ErrConflict を返します。
func (s *AccountService) Register(ctx context.Context, username, password string) (*models.Account, error) {
	var created *models.Account
	err := database.WithTx(ctx, s.db, nil, func(ctx context.Context, tx database.DBTX) error {
		a, err := s.accountRepo.Create(ctx, tx, username, password)
		if err != nil {
			return err
		}
		created = a
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateUsername) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to register account: %w", err)
	}
	return created, nil
}

// DeleteAccount はアカウントのタスクをすべて削除してからアカウントを削除します。
// 両方の削除は 1 つのトランザクションで行われ、途中で失敗した場合はどちらも残ります。
// アカウントが存在しない場合は何もせず成功を返します。
func (s *AccountService) DeleteAccount(ctx context.Context, accountID int64) error {
	var tasksDeleted, accountsDeleted int64
	err := database.WithTx(ctx, s.db, nil, func(ctx context.Context, tx database.DBTX) error {
		var err error
		if tasksDeleted, err = s.taskRepo.DeleteByOwner(ctx, tx, accountID); err != nil {
			return err
		}
		accountsDeleted, err = s.accountRepo.Delete(ctx, tx, accountID)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if accountsDeleted == 0 {
		log.Warn().Int64("account_id", accountID).Msg("account already deleted")
	}
	log.Info().Int64("account_id", accountID).Int64("tasks_deleted", tasksDeleted).Msg("account deleted")
	return nil
}
