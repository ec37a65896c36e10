package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"appointme.backend/internal/domain/entities"
	domainerrors "appointme.backend/internal/domain/errors"
	"appointme.backend/internal/infrastructure/models"
)

// AdminRepository implements admin account operations
type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) Create(ctx context.Context, admin *entities.Admin) error {
	m := &models.AdminAccount{
		ID:           admin.ID,
		Name:         admin.Name,
		Email:        admin.Email,
		PasswordHash: admin.PasswordHash,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	admin.CreatedAt = m.CreatedAt
	admin.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *AdminRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Admin, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*entities.Admin, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *AdminRepository) first(ctx context.Context, query string, arg interface{}) (*entities.Admin, error) {
	var m models.AdminAccount
	if err := GetDB(ctx, r.db).Where(query, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.Admin{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}
