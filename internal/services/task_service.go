package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"go-basic-tasks/backend/internal/database"
	"go-basic-tasks/backend/internal/models"
	"go-basic-tasks/backend/internal/repositories"
)

// TaskService はタスク関連のビジネスロジックを扱います。
// すべての操作は認証済みアカウントの ID を ownerID として受け取り、
// 他人のタスクは存在しないタスクと同じく ErrNotFound になります。
type TaskService struct {
	db       *sqlx.DB
	taskRepo *repositories.TaskRepository
}

// NewTaskService は新しい TaskService を作成します。
func NewTaskService(db *sqlx.DB, taskRepo *repositories.TaskRepository) *TaskService {
	return &TaskService{db: db, taskRepo: taskRepo}
}

// CreateTask はタスクを作成し、データベースが設定した created_at を含めて返します。
func (s *TaskService) CreateTask(ctx context.Context, ownerID int64, in models.TaskInput) (*models.Task, error) {
	var created *models.Task
	err := database.WithTx(ctx, s.db, nil, func(ctx context.Context, tx database.DBTX) error {
		id, err := s.taskRepo.Create(ctx, tx, ownerID, in)
		if err != nil {
			return err
		}
		created, err = s.taskRepo.FindByIDAndOwner(ctx, tx, ownerID, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return created, nil
}

// ListTasks は所有者のタスクを新しい順に返します。タスクがなければ空のスライスです。
func (s *TaskService) ListTasks(ctx context.Context, ownerID int64) ([]*models.Task, error) {
	return s.taskRepo.FindByOwner(ctx, s.db, ownerID)
}

// GetTask は所有者のタスクを 1 件返します。
func (s *TaskService) GetTask(ctx context.Context, ownerID, taskID int64) (*models.Task, error) {
	task, err := s.taskRepo.FindByIDAndOwner(ctx, s.db, ownerID, taskID)
	if err != nil {
		if errors.Is(err, repositories.ErrTaskNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return task, nil
}

// UpdateTask は title, description, done を上書きして更新後のタスクを返します。
// 一致する行がない場合 (存在しない、または他人のタスク) は ErrNotFound を返します。
func (s *TaskService) UpdateTask(ctx context.Context, ownerID, taskID int64, in models.TaskInput) (*models.Task, error) {
	var updated *models.Task
	err := database.WithTx(ctx, s.db, nil, func(ctx context.Context, tx database.DBTX) error {
		n, err := s.taskRepo.Update(ctx, tx, ownerID, taskID, in)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		updated, err = s.taskRepo.FindByIDAndOwner(ctx, tx, ownerID, taskID)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, repositories.ErrTaskNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return updated, nil
}

// DeleteTask はタスクを削除します。一致する行がなくてもエラーにはしません。
func (s *TaskService) DeleteTask(ctx context.Context, ownerID, taskID int64) error {
	return database.WithTx(ctx, s.db, nil, func(ctx context.Context, tx database.DBTX) error {
		_, err := s.taskRepo.Delete(ctx, tx, ownerID, taskID)
		return err
	})
}

// DeleteAllTasks は所有者のタスクをすべて削除し、削除件数を返します。
func (s *TaskService) DeleteAllTasks(ctx context.Context, ownerID int64) (int64, error) {
	var n int64
	err := database.WithTx(ctx, s.db, nil, func(ctx context.Context, tx database.DBTX) error {
		var err error
		n, err = s.taskRepo.DeleteByOwner(ctx, tx, ownerID)
		return err
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
