package repositories

import (
	"context"

	"github.com/google/uuid"
	"appointme.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*entities.Profile, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, update entities.ProfileUpdate) error
	UpdateEmail(ctx context.Context, id uuid.UUID, email string) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	SetApplicationStatus(ctx context.Context, id uuid.UUID, status entities.ApplicationStatus) error
	MarkVerified(ctx context.Context, id uuid.UUID) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// AdminRepository defines admin account operations
type AdminRepository interface {
	Create(ctx context.Context, admin *entities.Admin) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Admin, error)
	GetByEmail(ctx context.Context, email string) (*entities.Admin, error)
}

// ProfilePictureRepository stores one picture per user
type ProfilePictureRepository interface {
	Upsert(ctx context.Context, userID uuid.UUID, path string) (*entities.ProfilePicture, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.ProfilePicture, error)
}
