package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"appointme.backend/internal/domain/entities"
	domainerrors "appointme.backend/internal/domain/errors"
	"appointme.backend/internal/infrastructure/models"
	"appointme.backend/pkg/utils"
)

// ProfilePictureRepository keeps one picture row per user
type ProfilePictureRepository struct {
	db *gorm.DB
}

func NewProfilePictureRepository(db *gorm.DB) *ProfilePictureRepository {
	return &ProfilePictureRepository{db: db}
}

// Upsert inserts the user's picture or replaces its path.
func (r *ProfilePictureRepository) Upsert(ctx context.Context, userID uuid.UUID, path string) (*entities.ProfilePicture, error) {
	now := time.Now().UTC()
	m := &models.ProfilePicture{
		ID:        utils.NewID(),
		UserID:    userID,
		Path:      path,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"path", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return nil, err
	}
	return r.GetByUserID(ctx, userID)
}

func (r *ProfilePictureRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.ProfilePicture, error) {
	var m models.ProfilePicture
	if err := GetDB(ctx, r.db).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.ProfilePicture{
		ID:        m.ID,
		UserID:    m.UserID,
		Path:      m.Path,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}
