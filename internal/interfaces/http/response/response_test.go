package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "appointme.backend/internal/domain/errors"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestSuccess(t *testing.T) {
	c, w := newTestContext()

	Success(c, http.StatusOK, "done", gin.H{"ok": true, "success": "ignored"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"done","ok":true}`, w.Body.String())
}

func TestError_AppError(t *testing.T) {
	c, w := newTestContext()

	Error(c, domainerrors.NotFound("missing"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), domainerrors.CodeNotFound)
	assert.Contains(t, w.Body.String(), "missing")
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestError_Sentinels(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domainerrors.ErrSelfBooking, http.StatusForbidden, domainerrors.CodeSelfBooking},
		{fmt.Errorf("create: %w", domainerrors.ErrDuplicateBooking), http.StatusConflict, domainerrors.CodeDuplicate},
		{domainerrors.ErrApplicationPending, http.StatusConflict, domainerrors.CodeAlreadyPending},
		{domainerrors.ErrInvalidCredentials, http.StatusUnauthorized, domainerrors.CodeUnauthorized},
		{domainerrors.ErrNotServiceOwner, http.StatusForbidden, domainerrors.CodeForbidden},
	}
	for _, tc := range cases {
		c, w := newTestContext()
		Error(c, tc.err)
		assert.Equal(t, tc.status, w.Code, tc.err.Error())
		assert.Contains(t, w.Body.String(), tc.code)
	}
}

func TestError_GenericErrorHidesDetails(t *testing.T) {
	c, w := newTestContext()

	Error(c, errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), domainerrors.CodeInternalError)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestError_ValidationFields(t *testing.T) {
	c, w := newTestContext()

	Error(c, domainerrors.Validation("bad", map[string]string{"email": "is required"}))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"errors":{"email":"is required"}`)
}

func TestErrorWithError(t *testing.T) {
	c, w := newTestContext()

	ErrorWithError(c, http.StatusBadRequest, "ERR_X", "bad")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"ERR_X"`)
}

type bindTarget struct {
	Name     string `json:"name" binding:"required,notblank"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func bind(t *testing.T, body string) error {
	t.Helper()
	RegisterValidators()
	c, _ := newTestContext()
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	var target bindTarget
	return c.ShouldBindJSON(&target)
}

func TestBindError_FieldMessages(t *testing.T) {
	err := bind(t, `{"name":"   ","email":"nope","password":"short"}`)
	require.Error(t, err)

	appErr := BindError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Status)
	assert.Equal(t, "must not be blank", appErr.Fields["name"])
	assert.Equal(t, "must be a valid email address", appErr.Fields["email"])
	assert.Equal(t, "must be at least 8 characters", appErr.Fields["password"])
}

func TestBindError_Malformed(t *testing.T) {
	appErr := BindError(bind(t, `{"name":`))
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Status)

	appErr = BindError(bind(t, `{"name":1}`))
	assert.Contains(t, appErr.Fields, "name")
}
