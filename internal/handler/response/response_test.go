package response_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"filmorate/internal/handler/response"
	repo "filmorate/internal/repository/interfaces"
	"filmorate/internal/usecase/validation"
	"filmorate/pkg/logger"
)

func TestFromError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"not found", repo.NotFound(repo.EntityFilm, 7), http.StatusNotFound, `{"error":"film with id 7 not found"}`},
		{"wrapped not found", fmt.Errorf("load: %w", repo.NotFound(repo.EntityUser, 1)), http.StatusNotFound, `{"error":"load: user with id 1 not found"}`},
		{"validation", validation.New("login", validation.MsgLoginInvalid), http.StatusBadRequest, `{"error":"login invalid"}`},
		{"internal", errors.New("db is down"), http.StatusInternalServerError, `{"error":"internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			response.FromError(c, logger.Nop(), tt.err)

			require.Equal(t, tt.status, w.Code)
			require.JSONEq(t, tt.body, w.Body.String())
			require.True(t, c.IsAborted())
		})
	}
}
