package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"appointme.backend/internal/domain/entities"
	"appointme.backend/internal/interfaces/http/response"
)

// ApplicationReviewer runs the provider application workflow.
type ApplicationReviewer interface {
	Submit(ctx context.Context, userID uuid.UUID, input *entities.SubmitApplicationInput) (*entities.ProviderApplication, error)
	Approve(ctx context.Context, applicationID uuid.UUID) (*entities.ProviderApplication, error)
	Reject(ctx context.Context, applicationID uuid.UUID) (*entities.ProviderApplication, error)
	ListPending(ctx context.Context) ([]*entities.PendingApplicationView, error)
}

// ProviderApplicationHandler handles provider application endpoints
type ProviderApplicationHandler struct {
	reviewer ApplicationReviewer
}

// NewProviderApplicationHandler creates a new provider application handler
func NewProviderApplicationHandler(reviewer ApplicationReviewer) *ProviderApplicationHandler {
	return &ProviderApplicationHandler{reviewer: reviewer}
}

// Submit files an application for the caller
// POST /api/v1/provider-applications
func (h *ProviderApplicationHandler) Submit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input entities.SubmitApplicationInput
	if !bindJSON(c, &input) {
		return
	}

	application, err := h.reviewer.Submit(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Application submitted successfully.", gin.H{"application": application})
}

// ListPending lists applications awaiting review, oldest first
// GET /api/v1/provider-applications
func (h *ProviderApplicationHandler) ListPending(c *gin.Context) {
	applications, err := h.reviewer.ListPending(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Pending applications retrieved", gin.H{"applications": applications})
}

// Approve approves an application
// POST /api/v1/provider-applications/:id/approve
func (h *ProviderApplicationHandler) Approve(c *gin.Context) {
	h.resolve(c, h.reviewer.Approve, "Application approved successfully and user notified.")
}

// Reject rejects an application
// POST /api/v1/provider-applications/:id/reject
func (h *ProviderApplicationHandler) Reject(c *gin.Context) {
	h.resolve(c, h.reviewer.Reject, "Application rejected successfully and user notified.")
}

func (h *ProviderApplicationHandler) resolve(c *gin.Context, apply func(context.Context, uuid.UUID) (*entities.ProviderApplication, error), message string) {
	id, ok := pathID(c, "Application")
	if !ok {
		return
	}

	application, err := apply(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, message, gin.H{"application": application})
}
