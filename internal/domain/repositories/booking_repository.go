package repositories

import (
	"context"

	"github.com/google/uuid"
	"appointme.backend/internal/domain/entities"
)

// BookingRepository defines booking data operations
type BookingRepository interface {
	Create(ctx context.Context, booking *entities.Booking) error
	// GetByID returns the booking with its service name and provider id.
	GetByID(ctx context.Context, id uuid.UUID) (*entities.BookingContext, error)
	HasActive(ctx context.Context, customerID, serviceID uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.BookingStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByProvider(ctx context.Context, providerID uuid.UUID) (int64, error)
	ListForProvider(ctx context.Context, providerID uuid.UUID) ([]*entities.ProviderBookingView, error)
	ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]*entities.CustomerBookingView, error)
}
