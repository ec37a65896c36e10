package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"appointme.backend/internal/domain/entities"
	domainerrors "appointme.backend/internal/domain/errors"
	"appointme.backend/internal/infrastructure/models"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	status := user.ApplicationStatus
	if status == "" {
		status = entities.ApplicationStatusNone
	}
	m := &models.User{
		ID:                user.ID,
		Name:              user.Name,
		Email:             user.Email,
		PasswordHash:      user.PasswordHash,
		Phone:             user.Phone,
		Location:          user.Location,
		Bio:               user.Bio,
		IsVerified:        user.IsVerified,
		ApplicationStatus: string(status),
		CreatedAt:         user.CreatedAt,
		UpdatedAt:         user.UpdatedAt,
	}

	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	user.ApplicationStatus = status
	user.CreatedAt = m.CreatedAt
	user.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a user by ID. Under a locked context the row is read FOR UPDATE.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := lockFor(ctx, GetDB(ctx, r.db)).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toUserEntity(&m), nil
}

// GetByEmail gets a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toUserEntity(&m), nil
}

type profileRow struct {
	models.User
	PicturePath null.String `gorm:"column:picture_path"`
}

// GetProfile returns the user joined with their profile picture, if any.
func (r *UserRepository) GetProfile(ctx context.Context, id uuid.UUID) (*entities.Profile, error) {
	var row profileRow
	err := GetDB(ctx, r.db).
		Table("users").
		Select("users.*, pp.path AS picture_path").
		Joins("LEFT JOIN profile_pictures pp ON pp.user_id = users.id").
		Where("users.id = ? AND users.deleted_at IS NULL", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.Profile{User: *toUserEntity(&row.User), ProfilePicture: row.PicturePath}, nil
}

// UpdateProfile writes only the fields present in update.
func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, update entities.ProfileUpdate) error {
	updates := map[string]interface{}{}
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Phone != nil {
		updates["phone"] = nullableString(*update.Phone)
	}
	if update.Location != nil {
		updates["location"] = nullableString(*update.Location)
	}
	if update.Bio != nil {
		updates["bio"] = nullableString(*update.Bio)
	}
	if len(updates) == 0 {
		_, err := r.GetByID(ctx, id)
		return err
	}
	return r.updateColumns(ctx, id, updates)
}

// UpdateEmail changes the login email; ErrAlreadyExists when another account owns it.
func (r *UserRepository) UpdateEmail(ctx context.Context, id uuid.UUID, email string) error {
	err := r.updateColumns(ctx, id, map[string]interface{}{"email": email})
	if err != nil && (errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err)) {
		return domainerrors.ErrAlreadyExists
	}
	return err
}

// UpdatePassword stores a new password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"password_hash": passwordHash})
}

// SetApplicationStatus updates the cached application status
func (r *UserRepository) SetApplicationStatus(ctx context.Context, id uuid.UUID, status entities.ApplicationStatus) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"application_status": string(status)})
}

// MarkVerified flips the provider flag and records the approval.
func (r *UserRepository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"is_verified":        true,
		"application_status": string(entities.ApplicationStatusApproved),
	})
}

// SoftDelete soft deletes a user
func (r *UserRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) updateColumns(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC()
	result := GetDB(ctx, r.db).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func toUserEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:                m.ID,
		Name:              m.Name,
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		Phone:             m.Phone,
		Location:          m.Location,
		Bio:               m.Bio,
		IsVerified:        m.IsVerified,
		ApplicationStatus: entities.ApplicationStatus(m.ApplicationStatus),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// nullableString stores empty strings as NULL.
func nullableString(s string) null.String {
	return null.NewString(s, s != "")
}
