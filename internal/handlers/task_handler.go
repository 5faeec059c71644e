package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-basic-tasks/backend/internal/models"
	"go-basic-tasks/backend/internal/services"
)

// TaskHandler はタスク関連のハンドラーを管理します。
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler は新しい TaskHandler を作成します。
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func parseTaskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return 0, false
	}
	return id, true
}

// CreateTaskHandler は新しいタスクを作成します。
func (h *TaskHandler) CreateTaskHandler(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}

	var req models.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), account.ID, req.ToInput())
	if err != nil {
		respondError(c, err, "Failed to save task to database")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Task created successfully", "task": task})
}

// GetTasksHandler は認証済みアカウントのタスク一覧を新しい順に返します。
func (h *TaskHandler) GetTasksHandler(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), account.ID)
	if err != nil {
		respondError(c, err, "Failed to fetch tasks")
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// GetTaskByIDHandler は指定 ID のタスクを返します。
func (h *TaskHandler) GetTaskByIDHandler(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}
	id, ok := parseTaskID(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), account.ID, id)
	if err != nil {
		respondError(c, err, "Failed to fetch task")
		return
	}
	c.JSON(http.StatusOK, task)
}

// UpdateTaskHandler はタスクを更新します。
func (h *TaskHandler) UpdateTaskHandler(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}
	id, ok := parseTaskID(c)
	if !ok {
		return
	}

	var req models.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), account.ID, id, req.ToInput())
	if err != nil {
		respondError(c, err, "Failed to update task")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task updated successfully", "task": task})
}

// DeleteTaskHandler はタスクを削除します。存在しない ID でも成功を返します。
func (h *TaskHandler) DeleteTaskHandler(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}
	id, ok := parseTaskID(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), account.ID, id); err != nil {
		respondError(c, err, "Failed to delete task")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// DeleteAllTasksHandler は認証済みアカウントのタスクをすべて削除します。
func (h *TaskHandler) DeleteAllTasksHandler(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}

	n, err := h.taskService.DeleteAllTasks(c.Request.Context(), account.ID)
	if err != nil {
		respondError(c, err, "Failed to delete tasks")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All tasks deleted successfully", "deleted": n})
}
