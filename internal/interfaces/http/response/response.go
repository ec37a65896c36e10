package response

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainerrors "appointme.backend/internal/domain/errors"
	"appointme.backend/pkg/logger"
)

// Success sends {success: true, message, ...payload}
func Success(c *gin.Context, status int, message string, payload gin.H) {
	body := gin.H{}
	for k, v := range payload {
		body[k] = v
	}
	body["success"] = true
	body["message"] = message
	c.JSON(status, body)
}

// Error sends an error response. Unknown errors are logged and reported as a generic 500.
func Error(c *gin.Context, err error) {
	appErr := domainerrors.FromSentinel(err)
	if appErr == nil {
		appErr = domainerrors.InternalError(err)
	}

	if appErr.Status >= 500 {
		logger.Error(c.Request.Context(), "Unhandled error",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(appErr.Status, gin.H{
			"success": false,
			"code":    domainerrors.CodeInternalError,
			"message": "internal server error",
		})
		return
	}

	body := gin.H{
		"success": false,
		"code":    appErr.Code,
		"message": appErr.Message,
	}
	if len(appErr.Fields) > 0 {
		body["errors"] = appErr.Fields
	}
	c.JSON(appErr.Status, body)
}

// ErrorWithError sends an error response with a specific status, code and message
func ErrorWithError(c *gin.Context, status int, code string, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"code":    code,
		"message": message,
	})
}

// AbortWithError writes the error response and stops the handler chain.
func AbortWithError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
