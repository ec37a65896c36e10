package usecases

import (
	"context"

	"github.com/google/uuid"

	"appointme.backend/internal/domain/entities"
	"appointme.backend/internal/domain/repositories"
	"appointme.backend/pkg/utils"
)

// notify appends one notification for userID. Callers pass the transaction context.
func notify(ctx context.Context, repo repositories.NotificationRepository, userID uuid.UUID, notificationType entities.NotificationType, message string) error {
	return repo.Create(ctx, &entities.Notification{
		ID:      utils.NewID(),
		UserID:  userID,
		Type:    notificationType,
		Message: message,
	})
}
