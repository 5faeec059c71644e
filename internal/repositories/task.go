package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/rs/zerolog/log"

	"go-basic-tasks/backend/internal/database"
	"go-basic-tasks/backend/internal/models"
)

// ErrTaskNotFound は所有者に一致するタスクが見つからない場合のエラーです。
var ErrTaskNotFound = errors.New("task not found")

var taskColumns = []string{"id", "title", "description", "done", "owner_id", "created_at"}

// TaskRepository は tasks テーブルを扱います。
// すべての検索・更新・削除は owner_id を同じ WHERE 句に含めます。
type TaskRepository struct{}

// NewTaskRepository は新しい TaskRepository を作成します。
func NewTaskRepository() *TaskRepository {
	return &TaskRepository{}
}

func ownedBy(ownerID, taskID int64) sq.Eq {
	return sq.Eq{"id": taskID, "owner_id": ownerID}
}

// Create は新しいタスクを挿入し、採番された ID を返します。created_at はデータベースが設定します。
func (r *TaskRepository) Create(ctx context.Context, q database.DBTX, ownerID int64, in models.TaskInput) (int64, error) {
	query, args, err := sq.Insert("tasks").
		Columns("title", "description", "done", "owner_id").
		Values(in.Title, in.Description, in.Done, ownerID).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("could not build insert: %w", err)
	}

	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error().Err(err).Int64("owner_id", ownerID).Msg("Failed to insert task")
		return 0, fmt.Errorf("could not insert task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("could not get last insert ID: %w", err)
	}
	return id, nil
}

// FindByOwner は所有者のタスクを作成日時の新しい順に返します。
// 同時刻のタスクは ID の降順に並びます。
func (r *TaskRepository) FindByOwner(ctx context.Context, q database.DBTX, ownerID int64) ([]*models.Task, error) {
	query, args, err := sq.Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("could not build select: %w", err)
	}

	tasks := []*models.Task{}
	if err := q.SelectContext(ctx, &tasks, query, args...); err != nil {
		log.Error().Err(err).Int64("owner_id", ownerID).Msg("Failed to query tasks")
		return nil, fmt.Errorf("could not query tasks: %w", err)
	}
	return tasks, nil
}

// FindByIDAndOwner は ID と所有者の両方が一致するタスクを返します。
// 存在しない場合も他人のタスクの場合も ErrTaskNotFound です。
func (r *TaskRepository) FindByIDAndOwner(ctx context.Context, q database.DBTX, ownerID, taskID int64) (*models.Task, error) {
	query, args, err := sq.Select(taskColumns...).
		From("tasks").
		Where(ownedBy(ownerID, taskID)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("could not build select: %w", err)
	}

	var t models.Task
	if err := q.GetContext(ctx, &t, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		log.Error().Err(err).Int64("task_id", taskID).Msg("Failed to query task by ID")
		return nil, fmt.Errorf("could not query task: %w", err)
	}
	return &t, nil
}

// Update は title, description, done を上書きし、一致した行数を返します。
// id と owner_id は変更しません。
func (r *TaskRepository) Update(ctx context.Context, q database.DBTX, ownerID, taskID int64, in models.TaskInput) (int64, error) {
	query, args, err := sq.Update("tasks").
		Set("title", in.Title).
		Set("description", in.Description).
		Set("done", in.Done).
		Where(ownedBy(ownerID, taskID)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("could not build update: %w", err)
	}

	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error().Err(err).Int64("task_id", taskID).Msg("Failed to update task")
		return 0, fmt.Errorf("could not update task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("could not get rows affected: %w", err)
	}
	return rowsAffected, nil
}

// Delete は ID と所有者が一致するタスクを削除し、削除した行数を返します。
func (r *TaskRepository) Delete(ctx context.Context, q database.DBTX, ownerID, taskID int64) (int64, error) {
	query, args, err := sq.Delete("tasks").Where(ownedBy(ownerID, taskID)).ToSql()
	if err != nil {
		return 0, fmt.Errorf("could not build delete: %w", err)
	}
	return r.exec(ctx, q, query, args, "Failed to delete task")
}

// DeleteByOwner は所有者のタスクをすべて削除し、削除した行数を返します。
func (r *TaskRepository) DeleteByOwner(ctx context.Context, q database.DBTX, ownerID int64) (int64, error) {
	query, args, err := sq.Delete("tasks").Where(sq.Eq{"owner_id": ownerID}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("could not build delete: %w", err)
	}
	return r.exec(ctx, q, query, args, "Failed to delete tasks by owner")
}

func (r *TaskRepository) exec(ctx context.Context, q database.DBTX, query string, args []interface{}, failMsg string) (int64, error) {
	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error().Err(err).Msg(failMsg)
		return 0, fmt.Errorf("could not delete task: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("could not get rows affected: %w", err)
	}
	return n, nil
}
