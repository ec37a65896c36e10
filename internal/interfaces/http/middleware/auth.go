package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domainerrors "appointme.backend/internal/domain/errors"
	"appointme.backend/internal/interfaces/http/response"
	"appointme.backend/pkg/jwt"
	"appointme.backend/pkg/logger"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// UserIDKey is the context key for user ID
	UserIDKey = "userId"
	// UserEmailKey is the context key for user email
	UserEmailKey = "userEmail"
	// UserRoleKey is the context key for user role
	UserRoleKey = "userRole"
	// ClaimsKey is the context key for the validated access token claims
	ClaimsKey = "claims"
)

// RevocationChecker reports whether a token id was revoked by logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthMiddleware validates the bearer access token. revoked may be nil.
func AuthMiddleware(jwtService *jwt.JWTService, revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			logger.Debug(ctx, "Authorization header missing", zap.String("path", c.Request.URL.Path))
			response.AbortWithError(c, domainerrors.Unauthorized("Authorization header is required"))
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			response.AbortWithError(c, domainerrors.Unauthorized("Invalid authorization format. Use: Bearer <token>"))
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerPrefix))
		claims, err := jwtService.ValidateTokenOfType(tokenString, jwt.TokenTypeAccess)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				response.AbortWithError(c, domainerrors.Unauthorized("Token has expired"))
				return
			}
			response.AbortWithError(c, domainerrors.Unauthorized("Invalid token"))
			return
		}

		if revoked != nil {
			isRevoked, err := revoked.IsRevoked(ctx, claims.ID)
			if err != nil {
				logger.Error(ctx, "Token revocation lookup failed", zap.Error(err))
				response.AbortWithError(c, err)
				return
			}
			if isRevoked {
				response.AbortWithError(c, domainerrors.Unauthorized("Token has been revoked"))
				return
			}
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserRoleKey, claims.Role)
		c.Set(ClaimsKey, claims)
		c.Request = c.Request.WithContext(logger.ContextWithUserID(ctx, claims.UserID.String()))

		c.Next()
	}
}

// GetUserID gets the user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}

// GetUserRole gets the user role from context
func GetUserRole(c *gin.Context) (string, bool) {
	role, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	s, ok := role.(string)
	return s, ok
}

// GetClaims returns the access token claims set by AuthMiddleware.
func GetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok
}

// RequireRole creates a middleware that requires a specific role
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := GetUserRole(c)
		if !exists {
			response.AbortWithError(c, domainerrors.Unauthorized("User role not found"))
			return
		}

		for _, role := range roles {
			if userRole == role {
				c.Next()
				return
			}
		}

		response.AbortWithError(c, domainerrors.Forbidden("Insufficient permissions"))
	}
}

// RequireAdmin creates a middleware that requires admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(jwt.RoleAdmin)
}

// RequireUser rejects admin tokens on marketplace routes.
func RequireUser() gin.HandlerFunc {
	return RequireRole(jwt.RoleUser)
}
