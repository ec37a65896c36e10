package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// DefaultProfilePicture is shown when a provider has not uploaded a picture.
const DefaultProfilePicture = "default.jpeg"

// Service is an offering owned by exactly one provider.
type Service struct {
	ID          uuid.UUID   `json:"id"`
	ProviderID  uuid.UUID   `json:"provider_id"`
	Name        string      `json:"name"`
	Description null.String `json:"description"`
	Price       float64     `json:"price"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// ServiceDetail is a service joined with its provider and availability.
type ServiceDetail struct {
	Service
	ProviderName   string `json:"provider_name"`
	ProfilePicture string `json:"profile_picture"`
	IsBooked       bool   `json:"is_booked"`
}

// ServiceAvailability is the cached per-service booking flag. The flag is
// always written for a provider's whole catalog at once.
type ServiceAvailability struct {
	ServiceID uuid.UUID `json:"service_id"`
	IsBooked  bool      `json:"is_booked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateServiceInput represents input for publishing a service
type CreateServiceInput struct {
	Name        string  `json:"name" binding:"required,notblank,max=255"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Price       float64 `json:"price" binding:"required,gt=0"`
}
