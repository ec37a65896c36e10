package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

type User struct {
	ID                uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name              string      `gorm:"type:varchar(255);not null"`
	Email             string      `gorm:"type:varchar(255);not null"`
	PasswordHash      string      `gorm:"type:varchar(255);not null"`
	Phone             null.String `gorm:"type:varchar(20)"`
	Location          null.String `gorm:"type:varchar(255)"`
	Bio               null.String `gorm:"type:text"`
	IsVerified        bool        `gorm:"not null;default:false"`
	ApplicationStatus string      `gorm:"type:varchar(20);not null;default:'none'"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string { return "users" }

type AdminAccount struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (AdminAccount) TableName() string { return "admin_accounts" }

type ProfilePicture struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Path      string    `gorm:"type:varchar(2048);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ProfilePicture) TableName() string { return "profile_pictures" }
