package repositories

import (
	"context"

	"github.com/google/uuid"
	"appointme.backend/internal/domain/entities"
	"appointme.backend/pkg/utils"
)

// NotificationRepository defines notification data operations
type NotificationRepository interface {
	Create(ctx context.Context, notification *entities.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, pagination utils.PaginationParams) ([]*entities.Notification, int64, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}
