package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"appointme.backend/internal/domain/entities"
	domainerrors "appointme.backend/internal/domain/errors"
	"appointme.backend/internal/interfaces/http/middleware"
	"appointme.backend/internal/interfaces/http/response"
	"appointme.backend/pkg/utils"
)

// bindJSON binds the request body, writing a 422 on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, response.BindError(err))
		return false
	}
	return true
}

// currentUserID returns the authenticated caller, writing a 401 when absent.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetUserID(c)
	if !ok || id == uuid.Nil {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return uuid.Nil, false
	}
	return id, true
}

// pathID parses the :id path parameter. Malformed ids cannot name a row, so they are reported as not found.
func pathID(c *gin.Context, what string) (uuid.UUID, bool) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, domainerrors.NotFound(what+" not found"))
		return uuid.Nil, false
	}
	return id, true
}

// pagination reads ?page and ?limit, clamped to sane bounds.
func pagination(c *gin.Context) utils.PaginationParams {
	var p utils.PaginationParams
	_ = c.ShouldBindQuery(&p)
	return utils.NormalizePagination(p.Page, p.Limit)
}

func authPayload(resp *entities.AuthResponse) gin.H {
	return gin.H{
		"access_token":  resp.AccessToken,
		"refresh_token": resp.RefreshToken,
		"token_type":    resp.TokenType,
		"expires_in":    resp.ExpiresIn,
		"user":          resp.User,
	}
}

// logoutInput optionally names the refresh token to revoke with the access token.
type logoutInput struct {
	RefreshToken string `json:"refresh_token"`
}
