package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"appointme.backend/internal/interfaces/http/middleware"
	"appointme.backend/internal/interfaces/http/response"
	"appointme.backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
	response.RegisterValidators()
}

// authedRouter injects userID the way AuthMiddleware would. uuid.Nil leaves the request anonymous.
func authedRouter(userID uuid.UUID) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != uuid.Nil {
			c.Set(middleware.UserIDKey, userID)
			c.Set(middleware.UserRoleKey, jwt.RoleUser)
			c.Set(middleware.ClaimsKey, &jwt.Claims{UserID: userID, Role: jwt.RoleUser, TokenType: jwt.TokenTypeAccess})
		}
		c.Next()
	})
	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, status int) map[string]interface{} {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	body := decode(t, w)
	require.Equal(t, status < http.StatusBadRequest, body["success"])
	return body
}
