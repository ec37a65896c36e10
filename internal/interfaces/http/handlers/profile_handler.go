package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"appointme.backend/internal/domain/entities"
	"appointme.backend/internal/interfaces/http/response"
)

// ProfileService manages the caller's profile and account settings.
type ProfileService interface {
	Get(ctx context.Context, userID uuid.UUID) (*entities.Profile, error)
	Update(ctx context.Context, userID uuid.UUID, input *entities.UpdateProfileInput) (*entities.Profile, error)
	UploadPicture(ctx context.Context, userID uuid.UUID, input *entities.UploadPictureInput) (*entities.ProfilePicture, error)
	GetPicture(ctx context.Context, userID uuid.UUID) (*entities.ProfilePicture, error)
	UpdateEmail(ctx context.Context, userID uuid.UUID, input *entities.UpdateEmailInput) (*entities.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput) error
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

// ProfileHandler handles profile and settings endpoints
type ProfileHandler struct {
	profileService ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetProfile returns the caller's profile
// GET /api/v1/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.Get(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Profile retrieved", gin.H{"profile": profile})
}

// UpdateProfile writes only the supplied fields
// PUT /api/v1/profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input entities.UpdateProfileInput
	if !bindJSON(c, &input) {
		return
	}

	profile, err := h.profileService.Update(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated successfully", gin.H{"profile": profile})
}

// UploadPicture stores the caller's picture URL
// POST /api/v1/profile/picture
func (h *ProfileHandler) UploadPicture(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input entities.UploadPictureInput
	if !bindJSON(c, &input) {
		return
	}

	picture, err := h.profileService.UploadPicture(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Profile picture updated", gin.H{"picture": picture})
}

// GetPicture returns the caller's picture
// GET /api/v1/profile/picture
func (h *ProfileHandler) GetPicture(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	picture, err := h.profileService.GetPicture(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Profile picture retrieved", gin.H{"picture": picture})
}

// UpdateEmail changes the account email
// PUT /api/v1/settings/email
func (h *ProfileHandler) UpdateEmail(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input entities.UpdateEmailInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := h.profileService.UpdateEmail(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Email updated successfully", gin.H{"user": user})
}

// ChangePassword changes the account password
// PUT /api/v1/settings/password
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input entities.ChangePasswordInput
	if !bindJSON(c, &input) {
		return
	}

	if err := h.profileService.ChangePassword(c.Request.Context(), userID, &input); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Password changed successfully", nil)
}

// DeleteAccount soft-deletes the caller
// DELETE /api/v1/settings/account
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.profileService.DeleteAccount(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Account deleted successfully", nil)
}
