package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"go-basic-tasks/backend/internal/config"
	"go-basic-tasks/backend/internal/database"
	"go-basic-tasks/backend/internal/routes"
)

var (
	AccountColumns = []string{"id", "username", "password", "created_at"}
	TaskColumns    = []string{"id", "title", "description", "done", "owner_id", "created_at"}
)

// NewMockDB は sqlmock をラップした *sqlx.DB を返します。
// テスト終了時にすべての期待が満たされたかを検証します。
func NewMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		raw.Close()
	})
	return sqlx.NewDb(raw, "mysql"), mock
}

// SetupTestRouter はテスト用の Gin ルーターをセットアップします。
func SetupTestRouter(t *testing.T, db *sqlx.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return routes.SetupRouter(db, cfg)
}

// ExpectAuthenticate は認証ミドルウェアが発行するアカウント検索を期待に追加します。
func ExpectAuthenticate(mock sqlmock.Sqlmock, id int64, username, password string) {
	mock.ExpectQuery("SELECT (.+) FROM accounts WHERE username").
		WithArgs(username).
		WillReturnRows(sqlmock.NewRows(AccountColumns).AddRow(id, username, password, time.Now()))
}

// ExpectUnknownAccount は存在しないユーザー名の検索を期待に追加します。
func ExpectUnknownAccount(mock sqlmock.Sqlmock, username string) {
	mock.ExpectQuery("SELECT (.+) FROM accounts WHERE username").
		WithArgs(username).
		WillReturnRows(sqlmock.NewRows(AccountColumns))
}

// Do は Basic 認証付き (username が空なら認証なし) のリクエストをルーターに送ります。
func Do(t *testing.T, r http.Handler, method, path string, body interface{}, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if username != "" {
		req.SetBasicAuth(username, password)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// DecodeJSON はレスポンスボディを v にデコードします。
func DecodeJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), "body: %s", w.Body.String())
}

// SetupTestDB は .env の TEST_DB_* から実 MySQL に接続し、マイグレーションを適用してテーブルを空にします。
// 接続情報が設定されていない場合はテストをスキップします。
func SetupTestDB(t *testing.T) (*sqlx.DB, *gin.Engine) {
	t.Helper()
	_ = godotenv.Load("../../.env")

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DBUser = os.Getenv("TEST_DB_USER")
	cfg.DBPassword = os.Getenv("TEST_DB_PASS")
	cfg.DBHost = os.Getenv("TEST_DB_HOST")
	cfg.DBName = os.Getenv("TEST_DB_NAME")
	if port := os.Getenv("TEST_DB_PORT"); port != "" {
		cfg.DBPort = port
	}
	if cfg.DBUser == "" || cfg.DBHost == "" || cfg.DBName == "" {
		t.Skip("TEST_DB_USER, TEST_DB_HOST and TEST_DB_NAME must be set for MySQL integration tests")
	}

	ctx := context.Background()
	db, err := database.Open(ctx, cfg)
	require.NoError(t, err, "Failed to connect to test database")
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.MigrateUp(ctx, db))

	// 外部キー制約があるため tasks -> accounts の順で削除
	_, err = db.ExecContext(ctx, "DELETE FROM tasks")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "DELETE FROM accounts")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "ALTER TABLE tasks AUTO_INCREMENT = 1")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "ALTER TABLE accounts AUTO_INCREMENT = 1")
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	return db, routes.SetupRouter(db, cfg)
}
