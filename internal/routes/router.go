// Package routes は routing を行います。
package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"go-basic-tasks/backend/internal/config"
	"go-basic-tasks/backend/internal/handlers"
	"go-basic-tasks/backend/internal/repositories"
	"go-basic-tasks/backend/internal/services"
)

// SetupRouter は Gin ルーターをセットアップし、すべてのエンドポイントを登録します。
func SetupRouter(db *sqlx.DB, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestIDMiddleware(), RequestLogger())

	// CORS 対策
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader}
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	// リポジトリ
	accountRepo := repositories.NewAccountRepository()
	taskRepo := repositories.NewTaskRepository()

	// サービス
	authService := services.NewAuthService(db, accountRepo)
	accountService := services.NewAccountService(db, accountRepo, taskRepo)
	taskService := services.NewTaskService(db, taskRepo)

	// ハンドラー
	accountHandler := handlers.NewAccountHandler(accountService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// ルーティング
	r.GET("/", RootHandler)
	r.GET("/dbcheck", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database connection failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Database connection is healthy"})
	})
	r.POST("/users", accountHandler.RegisterHandler)

	authorized := r.Group("/")
	authorized.Use(BasicAuthMiddleware(authService))
	{
		authorized.DELETE("/users", accountHandler.DeleteAccountHandler)
		authorized.POST("/tasks", taskHandler.CreateTaskHandler)
		authorized.GET("/tasks", taskHandler.GetTasksHandler)
		authorized.DELETE("/tasks", taskHandler.DeleteAllTasksHandler)
		authorized.GET("/tasks/:id", taskHandler.GetTaskByIDHandler)
		authorized.PUT("/tasks/:id", taskHandler.UpdateTaskHandler)
		authorized.DELETE("/tasks/:id", taskHandler.DeleteTaskHandler)
	}

	return r
}

// RootHandler はサービスの稼働メッセージを返します。
func RootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "This is a task list API"})
}
