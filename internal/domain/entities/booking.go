package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// BookingStatus is the lifecycle state. Cancellation is not a status: cancelled bookings are removed.
type BookingStatus int

const (
	BookingStatusPending   BookingStatus = 0
	BookingStatusConfirmed BookingStatus = 1
	BookingStatusCompleted BookingStatus = 2
)

// Label returns the human-readable status.
func (s BookingStatus) Label() string {
	switch s {
	case BookingStatusCompleted:
		return "completed"
	case BookingStatusConfirmed:
		return "confirmed"
	default:
		return "pending"
	}
}

// IsActive reports whether the booking still holds the provider (pending or confirmed).
func (s BookingStatus) IsActive() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

// CanTransitionTo encodes pending -> confirmed -> completed. Re-confirming is allowed.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch next {
	case BookingStatusConfirmed:
		return s == BookingStatusPending || s == BookingStatusConfirmed
	case BookingStatusCompleted:
		return s == BookingStatusConfirmed
	default:
		return false
	}
}

// PaymentStatus is tracked but never settled by this service.
type PaymentStatus int

const (
	PaymentStatusUnpaid PaymentStatus = 0
	PaymentStatusPaid   PaymentStatus = 1
)

// Label returns the human-readable payment status.
func (p PaymentStatus) Label() string {
	if p == PaymentStatusPaid {
		return "paid"
	}
	return "unpaid"
}

// Booking represents a customer's reservation of a service
type Booking struct {
	ID            uuid.UUID     `json:"id"`
	ServiceID     uuid.UUID     `json:"service_id"`
	CustomerID    uuid.UUID     `json:"customer_id"`
	BookingTime   string        `json:"booking_time"`
	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// BookingContext is a booking joined with the service it reserves.
type BookingContext struct {
	Booking
	ServiceName string
	ProviderID  uuid.UUID
}

// ProviderBookingView is one row of a provider's booking list.
type ProviderBookingView struct {
	ID            uuid.UUID `json:"id"`
	ServiceID     uuid.UUID `json:"service_id"`
	ServiceName   string    `json:"service_name"`
	CustomerID    uuid.UUID `json:"customer_id"`
	BookedBy      string    `json:"booked_by"`
	BookingTime   string    `json:"booking_time"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	Price         float64   `json:"price"`
	IsBooked      bool      `json:"is_booked"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CustomerBookingView is one row of a customer's booking list.
type CustomerBookingView struct {
	ID             uuid.UUID   `json:"id"`
	ServiceID      uuid.UUID   `json:"service_id"`
	ServiceName    string      `json:"service_name"`
	ProviderName   string      `json:"provider_name"`
	BookingTime    string      `json:"booking_time"`
	Status         string      `json:"status"`
	PaymentStatus  string      `json:"payment_status"`
	Price          float64     `json:"price"`
	ProfilePicture null.String `json:"profile_picture"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// CreateBookingInput represents input for booking a service. The customer comes from the token.
type CreateBookingInput struct {
	ServiceID   string `json:"service_id" binding:"required,uuid"`
	BookingTime string `json:"booking_time" binding:"required,notblank,max=64"`
}
