package entities

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType tags the event that produced a notification.
type NotificationType string

const (
	NotificationNewBooking          NotificationType = "new_booking"
	NotificationBookingConfirmed    NotificationType = "booking_confirmed"
	NotificationBookingCancelled    NotificationType = "booking_cancelled"
	NotificationBookingCompleted    NotificationType = "booking_completed"
	NotificationApplicationApproved NotificationType = "application_approved"
	NotificationApplicationRejected NotificationType = "application_rejected"
)

// Notification is an append-only message to one user.
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}
