package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"appointme.backend/internal/domain/entities"
	domainerrors "appointme.backend/internal/domain/errors"
	"appointme.backend/internal/infrastructure/models"
	"appointme.backend/pkg/utils"
)

// NotificationRepository implements notification data operations
type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create appends a notification
func (r *NotificationRepository) Create(ctx context.Context, notification *entities.Notification) error {
	if notification.ID == uuid.Nil {
		notification.ID = utils.NewID()
	}
	m := &models.Notification{
		ID:      notification.ID,
		UserID:  notification.UserID,
		Type:    string(notification.Type),
		Message: notification.Message,
		IsRead:  notification.IsRead,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	notification.CreatedAt = m.CreatedAt
	return nil
}

// ListByUser returns a page of the user's notifications, newest first
func (r *NotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, pagination utils.PaginationParams) ([]*entities.Notification, int64, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.Model(&models.Notification{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Notification
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(pagination.Limit).Offset(pagination.Offset()).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	out := make([]*entities.Notification, 0, len(ms))
	for i := range ms {
		m := ms[i]
		out = append(out, &entities.Notification{
			ID:        m.ID,
			UserID:    m.UserID,
			Type:      entities.NotificationType(m.Type),
			Message:   m.Message,
			IsRead:    m.IsRead,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, total, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead marks one of the user's notifications read; other users' ids are NotFound.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	result := GetDB(ctx, r.db).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{"is_read": true, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := GetDB(ctx, r.db).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "updated_at": time.Now().UTC()})
	return result.RowsAffected, result.Error
}
