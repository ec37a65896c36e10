package usecases

import "time"

// Metric action labels for booking transitions.
const (
	actionCreate           = "create"
	actionConfirm          = "confirm"
	actionCancel           = "cancel"
	actionComplete         = "complete"
	actionMarkAllAvailable = "mark_all_available"
)

// Notification templates. Service names are quoted.
const (
	msgNewBooking          = "New booking received for %q from %s. Please confirm or cancel the booking."
	msgBookingConfirmed    = "Your booking for %q has been confirmed by the provider."
	msgCancelledByProvider = "Your booking for %q has been cancelled by the provider."
	msgCancelledByCustomer = "The booking for %q has been cancelled by the customer."
	msgBookingCompleted    = "Your booking for %q has been completed."

	msgApplicationApproved = "Congratulations! Your provider application has been approved. You can now create and manage services."
	msgApplicationRejected = "We regret to inform you that your provider application has been rejected. Please review our requirements and feel free to reapply."
)

// DefaultChatbotTimeout bounds the external generation call when no timeout is configured.
const DefaultChatbotTimeout = 30 * time.Second
