package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-basic-tasks/backend/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return sqlx.NewDb(db, "mysql"), mock
}

var taskRowColumns = []string{"id", "title", "description", "done", "owner_id", "created_at"}

func TestAccountRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO accounts (username,password) VALUES (?,?)")).
		WithArgs("alice", "pw1").
		WillReturnResult(sqlmock.NewResult(7, 1))

	a, err := repo.Create(context.Background(), db, "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), a.ID)
	assert.Equal(t, "alice", a.Username)
	assert.Equal(t, "pw1", a.Password)
}

func TestAccountRepository_Create_Duplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository()

	mock.ExpectExec("INSERT INTO accounts").
		WithArgs("alice", "pw1").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'alice' for key 'username'"})

	_, err := repo.Create(context.Background(), db, "alice", "pw1")
	require.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestAccountRepository_Create_DBError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository()

	mock.ExpectExec("INSERT INTO accounts").WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), db, "alice", "pw1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateUsername)
	assert.Contains(t, err.Error(), "db down")
}

func TestAccountRepository_FindByUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, password, created_at FROM accounts WHERE username = ?")).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "created_at"}).
			AddRow(1, "alice", "pw1", now))

	a, err := repo.FindByUsername(context.Background(), db, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, "pw1", a.Password)
}

func TestAccountRepository_FindByUsername_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository()

	mock.ExpectQuery("SELECT (.+) FROM accounts").
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "created_at"}))

	_, err := repo.FindByUsername(context.Background(), db, "nobody")
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestAccountRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM accounts WHERE id = ?")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.Delete(context.Background(), db, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestTaskRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository()
	desc := "2 liters"

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tasks (title,description,done,owner_id) VALUES (?,?,?,?)")).
		WithArgs("buy milk", "2 liters", false, int64(1)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	id, err := repo.Create(context.Background(), db, 1, models.TaskInput{Title: "buy milk", Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestTaskRepository_Create_NullDescription(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository()

	mock.ExpectExec("INSERT INTO tasks").
		WithArgs("buy milk", nil, true, int64(1)).
		WillReturnResult(sqlmock.NewResult(5, 1))

	id, err := repo.Create(context.Background(), db, 1, models.TaskInput{Title: "buy milk", Done: true})
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)
}

func TestTaskRepository_FindByOwner(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository()
	newer := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, description, done, owner_id, created_at FROM tasks WHERE owner_id = ? ORDER BY created_at DESC, id DESC")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(taskRowColumns).
			AddRow(2, "second", nil, true, 1, newer).
			AddRow(1, "first", "desc", false, 1, older))

	tasks, err := repo.FindByOwner(context.Background(), db, 1)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, int64(2), tasks[0].ID)
	assert.Nil(t, tasks[0].Description)
	assert.True(t, tasks[0].Done)
	require.NotNil(t, tasks[1].Description)
	assert.Equal(t, "desc", *tasks[1].Description)
}

func TestTaskRepository_FindByOwner_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository()

	mock.ExpectQuery("SELECT (.+) FROM tasks WHERE owner_id").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(taskRowColumns))

	tasks, err := repo.FindByOwner(context.Background(), db, 9)
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestTaskRepository_FindByIDAndOwner(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, description, done, owner_id, created_at FROM tasks WHERE id = ? AND owner_id = ?")).
		WithArgs(int64(4), int64(1)).
		WillReturnRows(sqlmock.NewRows(taskRowColumns).AddRow(4, "t", nil, false, 1, time.Now()))

	task, err := repo.FindByIDAndOwner(context.Background(), db, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), task.ID)
	assert.Equal(t, int64(1), task.OwnerID)
}

func TestTaskRepository_FindByIDAndOwner_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository()

	mock.ExpectQuery("SELECT (.+) FROM tasks WHERE id").
		WithArgs(int64(4), int64(2)).
		WillReturnRows(sqlmock.NewRows(taskRowColumns))

	_, err := repo.FindByIDAndOwner(context.Background(), db, 2, 4)
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE tasks SET title = ?, description = ?, done = ? WHERE id = ? AND owner_id = ?")).
		WithArgs("new", nil, true, int64(4), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.Update(context.Background(), db, 1, 4, models.TaskInput{Title: "new", Done: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestTaskRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tasks WHERE id = ? AND owner_id = ?")).
		WithArgs(int64(4), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.Delete(context.Background(), db, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestTaskRepository_DeleteByOwner(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tasks WHERE owner_id = ?")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteByOwner(context.Background(), db, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestTaskRepository_DeleteByOwner_DBError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository()

	mock.ExpectExec("DELETE FROM tasks").WillReturnError(errors.New("lost connection"))

	_, err := repo.DeleteByOwner(context.Background(), db, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lost connection")
}
