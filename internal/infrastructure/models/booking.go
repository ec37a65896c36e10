package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking rows are soft-deleted on cancellation; every read filters deleted_at.
type Booking struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ServiceID     uuid.UUID `gorm:"type:uuid;index;not null"`
	CustomerID    uuid.UUID `gorm:"type:uuid;index;not null"`
	BookingTime   string    `gorm:"type:varchar(64);not null"`
	Status        int       `gorm:"not null;default:0"`
	PaymentStatus int       `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (Booking) TableName() string { return "bookings" }
