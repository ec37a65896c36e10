package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"appointme.backend/internal/domain/entities"
	"appointme.backend/internal/interfaces/http/response"
)

// BookingService drives the booking lifecycle.
type BookingService interface {
	Create(ctx context.Context, customerID uuid.UUID, input *entities.CreateBookingInput) (*entities.Booking, error)
	Confirm(ctx context.Context, providerID, bookingID uuid.UUID) error
	Cancel(ctx context.Context, actorID, bookingID uuid.UUID) error
	Complete(ctx context.Context, providerID, bookingID uuid.UUID) error
	MarkAllAvailable(ctx context.Context, providerID uuid.UUID) (int64, error)
	ListForProvider(ctx context.Context, providerID uuid.UUID) ([]*entities.ProviderBookingView, error)
	ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]*entities.CustomerBookingView, error)
}

// BookingHandler handles booking endpoints
type BookingHandler struct {
	bookingService BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// CreateBooking books a service for the caller
// POST /api/v1/bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	customerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input entities.CreateBookingInput
	if !bindJSON(c, &input) {
		return
	}

	booking, err := h.bookingService.Create(c.Request.Context(), customerID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Booking created successfully", gin.H{"booking": booking})
}

// ListProviderBookings lists bookings made against the caller's services
// GET /api/v1/bookings
func (h *BookingHandler) ListProviderBookings(c *gin.Context) {
	providerID, ok := currentUserID(c)
	if !ok {
		return
	}

	bookings, err := h.bookingService.ListForProvider(c.Request.Context(), providerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Bookings retrieved", gin.H{"bookings": bookings})
}

// ListMyBookings lists the caller's own bookings
// GET /api/v1/bookings/mine
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	customerID, ok := currentUserID(c)
	if !ok {
		return
	}

	bookings, err := h.bookingService.ListForCustomer(c.Request.Context(), customerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Bookings retrieved", gin.H{"bookings": bookings})
}

// ConfirmBooking confirms a pending booking
// POST /api/v1/bookings/:id/confirm
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	h.transition(c, h.bookingService.Confirm, "Booking confirmed and all services marked unavailable")
}

// CancelBooking cancels a booking as its provider or its customer
// POST /api/v1/bookings/:id/cancel
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	h.transition(c, h.bookingService.Cancel, "Booking cancelled successfully and user notified")
}

// CompleteBooking marks a confirmed booking completed
// POST /api/v1/bookings/:id/complete
func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	h.transition(c, h.bookingService.Complete, "Booking marked as completed")
}

// MarkAvailable is kept for older clients. Availability is catalog-wide, so it never changes anything.
// POST /api/v1/bookings/:id/available
func (h *BookingHandler) MarkAvailable(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	if _, ok := pathID(c, "Booking"); !ok {
		return
	}
	response.Success(c, http.StatusOK, `Use "Mark All Available" to make services available`, nil)
}

// MarkAllAvailable clears the booked flag on the caller's whole catalog
// POST /api/v1/bookings/mark-all-available
func (h *BookingHandler) MarkAllAvailable(c *gin.Context) {
	providerID, ok := currentUserID(c)
	if !ok {
		return
	}

	updated, err := h.bookingService.MarkAllAvailable(c.Request.Context(), providerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "All services marked as available", gin.H{"updated_count": updated})
}

func (h *BookingHandler) transition(c *gin.Context, apply func(ctx context.Context, actorID, bookingID uuid.UUID) error, message string) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}
	bookingID, ok := pathID(c, "Booking")
	if !ok {
		return
	}

	if err := apply(c.Request.Context(), actorID, bookingID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, message, gin.H{"booking_id": bookingID})
}
