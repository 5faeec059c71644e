package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-basic-tasks/backend/internal/models"
	"go-basic-tasks/backend/internal/services"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/tasks", nil)
	return c, w
}

func TestRespondError_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"authentication", services.ErrAuthentication, http.StatusUnauthorized},
		{"not found", fmt.Errorf("get task: %w", services.ErrNotFound), http.StatusNotFound},
		{"conflict", services.ErrConflict, http.StatusConflict},
		{"store failure", errors.New("dial tcp: connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext()
			respondError(c, tt.err, "Failed to fetch tasks")
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRespondError_HidesInternalError(t *testing.T) {
	c, w := newTestContext()
	c.Set(RequestIDContextKey, "req-1")

	respondError(c, errors.New("dial tcp 10.0.0.5:3306: connection refused"), "Failed to fetch tasks")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch tasks"}`, w.Body.String())
}

func TestCurrentAccount(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		c, w := newTestContext()
		_, ok := currentAccount(c)
		assert.False(t, ok)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong type", func(t *testing.T) {
		c, w := newTestContext()
		c.Set(AccountContextKey, "alice")
		_, ok := currentAccount(c)
		assert.False(t, ok)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("present", func(t *testing.T) {
		c, _ := newTestContext()
		c.Set(AccountContextKey, &models.Account{ID: 1, Username: "alice"})
		a, ok := currentAccount(c)
		require.True(t, ok)
		assert.Equal(t, int64(1), a.ID)
	})
}
