package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type Service struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey"`
	ProviderID  uuid.UUID   `gorm:"type:uuid;index;not null"`
	Name        string      `gorm:"type:varchar(255);not null"`
	Description null.String `gorm:"type:text"`
	Price       float64     `gorm:"type:numeric(10,2);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Service) TableName() string { return "services" }

// ServiceAvailability has exactly one row per service.
type ServiceAvailability struct {
	ServiceID uuid.UUID `gorm:"type:uuid;primaryKey"`
	IsBooked  bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ServiceAvailability) TableName() string { return "service_availabilities" }
