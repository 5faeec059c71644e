// Package repositories はデータベース操作を行うリポジトリを提供します。
// リポジトリは状態を持たず、各メソッドは呼び出し側が用意した接続 (DBTX) を受け取ります。
package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"go-basic-tasks/backend/internal/database"
	"go-basic-tasks/backend/internal/models"
)

// MySQL の重複エントリーエラーコード
const mysqlErrDuplicateEntry = 1062

var (
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrAccountNotFound   = errors.New("account not found")
)

var accountColumns = []string{"id", "username", "password", "created_at"}

// AccountRepository は accounts テーブルを扱います。
type AccountRepository struct{}

// NewAccountRepository は新しい AccountRepository を作成します。
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{}
}

// Create は新しいアカウントを挿入し、採番された ID を設定して返します。
func (r *AccountRepository) Create(ctx context.Context, q database.DBTX, username, password string) (*models.Account, error) {
	query, args, err := sq.Insert("accounts").
		Columns("username", "password").
		Values(username, password).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("could not build insert: %w", err)
	}

	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry {
			return nil, ErrDuplicateUsername
		}
		log.Error().Err(err).Msg("Failed to insert account")
		return nil, fmt.Errorf("could not insert account: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("could not get last insert ID: %w", err)
	}

	return &models.Account{ID: id, Username: username, Password: password}, nil
}

// FindByUsername はユーザー名が完全一致するアカウントを返します。
// 見つからない場合は ErrAccountNotFound を返します。
func (r *AccountRepository) FindByUsername(ctx context.Context, q database.DBTX, username string) (*models.Account, error) {
	query, args, err := sq.Select(accountColumns...).
		From("accounts").
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("could not build select: %w", err)
	}

	var a models.Account
	if err := q.GetContext(ctx, &a, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		log.Error().Err(err).Msg("Failed to query account by username")
		return nil, fmt.Errorf("could not query account: %w", err)
	}
	return &a, nil
}

// Delete はアカウントを削除し、削除した行数を返します。
// 所有タスクが残っている場合は外部キー制約で失敗するため、先にタスクを削除してください。
func (r *AccountRepository) Delete(ctx context.Context, q database.DBTX, id int64) (int64, error) {
	query, args, err := sq.Delete("accounts").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("could not build delete: %w", err)
	}

	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error().Err(err).Int64("account_id", id).Msg("Failed to delete account")
		return 0, fmt.Errorf("could not delete account: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("could not get rows affected: %w", err)
	}
	return n, nil
}
