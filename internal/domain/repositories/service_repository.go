package repositories

import (
	"context"

	"github.com/google/uuid"
	"appointme.backend/internal/domain/entities"
	"appointme.backend/pkg/utils"
)

// ServiceRepository defines service catalog operations
type ServiceRepository interface {
	Create(ctx context.Context, service *entities.Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Service, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*entities.ServiceDetail, error)
	List(ctx context.Context, pagination utils.PaginationParams) ([]*entities.ServiceDetail, int64, error)
	ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*entities.ServiceDetail, error)
	// LockByProvider locks every service row of the provider when ctx carries a lock, returning their ids.
	LockByProvider(ctx context.Context, providerID uuid.UUID) ([]uuid.UUID, error)
}

// AvailabilityRepository maintains the provider-wide is_booked projection
type AvailabilityRepository interface {
	// EnsureForProvider inserts missing rows for the provider's catalog, copying the catalog's current flag.
	EnsureForProvider(ctx context.Context, providerID uuid.UUID) (int64, error)
	// SetForProvider writes is_booked for every service of the provider.
	SetForProvider(ctx context.Context, providerID uuid.UUID, isBooked bool) (int64, error)
	GetByServiceID(ctx context.Context, serviceID uuid.UUID) (*entities.ServiceAvailability, error)
	// EnsureAll inserts missing rows for every service, copying each provider's current flag.
	EnsureAll(ctx context.Context) (int64, error)
	// ClearIdleProviders resets is_booked for providers with no remaining bookings.
	ClearIdleProviders(ctx context.Context) (int64, error)
}
