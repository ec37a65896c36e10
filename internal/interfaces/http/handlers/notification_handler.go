package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"appointme.backend/internal/interfaces/http/response"
	"appointme.backend/internal/usecases"
	"appointme.backend/pkg/utils"
)

// NotificationInbox reads and acknowledges notifications.
type NotificationInbox interface {
	List(ctx context.Context, userID uuid.UUID, pagination utils.PaginationParams) (*usecases.NotificationPage, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}

// NotificationHandler handles notification endpoints
type NotificationHandler struct {
	inbox NotificationInbox
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(inbox NotificationInbox) *NotificationHandler {
	return &NotificationHandler{inbox: inbox}
}

// ListNotifications returns the caller's notifications, newest first
// GET /api/v1/notifications
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	page, err := h.inbox.List(c.Request.Context(), userID, pagination(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Notifications retrieved", gin.H{
		"notifications": page.Notifications,
		"unread_count":  page.UnreadCount,
		"pagination":    page.Pagination,
	})
}

// MarkRead marks one notification read
// POST /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Notification")
	if !ok {
		return
	}

	if err := h.inbox.MarkRead(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Notification marked as read", nil)
}

// MarkAllRead marks every notification read
// POST /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	updated, err := h.inbox.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "All notifications marked as read", gin.H{"updated_count": updated})
}
