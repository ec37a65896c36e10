package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"appointme.backend/internal/domain/entities"
	domainerrors "appointme.backend/internal/domain/errors"
	"appointme.backend/internal/interfaces/http/middleware"
	"appointme.backend/internal/interfaces/http/response"
	"appointme.backend/pkg/jwt"
)

// AdminAuthService is the back-office account flow.
type AdminAuthService interface {
	Signup(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error)
	Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*entities.AuthResponse, error)
	Logout(ctx context.Context, access *jwt.Claims, refreshToken string) error
	Me(ctx context.Context, adminID uuid.UUID) (*entities.Admin, error)
}

// AdminAuthHandler handles admin authentication
type AdminAuthHandler struct {
	adminAuthService AdminAuthService
}

// NewAdminAuthHandler creates a new admin auth handler
func NewAdminAuthHandler(adminAuthService AdminAuthService) *AdminAuthHandler {
	return &AdminAuthHandler{adminAuthService: adminAuthService}
}

// Signup creates an admin account
// POST /api/v1/admin/signup
func (h *AdminAuthHandler) Signup(c *gin.Context) {
	var input entities.RegisterInput
	if !bindJSON(c, &input) {
		return
	}

	resp, err := h.adminAuthService.Signup(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Admin account created", authPayload(resp))
}

// Login handles admin login
// POST /api/v1/admin/login
func (h *AdminAuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if !bindJSON(c, &input) {
		return
	}

	resp, err := h.adminAuthService.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Login successful", authPayload(resp))
}

// Refresh exchanges an admin refresh token
// POST /api/v1/admin/refresh
func (h *AdminAuthHandler) Refresh(c *gin.Context) {
	var input entities.RefreshInput
	if !bindJSON(c, &input) {
		return
	}

	resp, err := h.adminAuthService.Refresh(c.Request.Context(), input.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Token refreshed", authPayload(resp))
}

// Logout revokes the admin's tokens
// POST /api/v1/admin/logout
func (h *AdminAuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Admin not authenticated"))
		return
	}

	var input logoutInput
	_ = c.ShouldBindJSON(&input)

	if err := h.adminAuthService.Logout(c.Request.Context(), claims, input.RefreshToken); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Logged out successfully", nil)
}

// Me returns the authenticated admin
// GET /api/v1/admin/me
func (h *AdminAuthHandler) Me(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	admin, err := h.adminAuthService.Me(c.Request.Context(), adminID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Admin retrieved", gin.H{"admin": admin})
}
