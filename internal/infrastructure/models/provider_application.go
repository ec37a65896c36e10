package models

import (
	"time"

	"github.com/google/uuid"
)

type ProviderApplication struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	RealName    string    `gorm:"type:varchar(255);not null"`
	DocumentURL string    `gorm:"type:varchar(2048);not null"`
	Status      string    `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ProviderApplication) TableName() string { return "provider_applications" }
