package usecases

import (
	"context"

	"github.com/google/uuid"

	"appointme.backend/internal/domain/entities"
	"appointme.backend/internal/domain/repositories"
	"appointme.backend/pkg/utils"
)

// NotificationPage is one page of a user's notifications.
type NotificationPage struct {
	Notifications []*entities.Notification `json:"notifications"`
	UnreadCount   int64                    `json:"unread_count"`
	Pagination    utils.PaginationMeta     `json:"pagination"`
}

// NotificationUsecase reads and acknowledges notifications
type NotificationUsecase struct {
	notificationRepo repositories.NotificationRepository
}

// NewNotificationUsecase creates a new notification usecase
func NewNotificationUsecase(notificationRepo repositories.NotificationRepository) *NotificationUsecase {
	return &NotificationUsecase{notificationRepo: notificationRepo}
}

// List returns a page of notifications, newest first, with the unread count.
func (u *NotificationUsecase) List(ctx context.Context, userID uuid.UUID, pagination utils.PaginationParams) (*NotificationPage, error) {
	pagination = utils.NormalizePagination(pagination.Page, pagination.Limit)

	notifications, total, err := u.notificationRepo.ListByUser(ctx, userID, pagination)
	if err != nil {
		return nil, err
	}
	unread, err := u.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &NotificationPage{
		Notifications: notifications,
		UnreadCount:   unread,
		Pagination:    pagination.Meta(total),
	}, nil
}

// MarkRead marks one of the user's notifications read.
func (u *NotificationUsecase) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	return u.notificationRepo.MarkRead(ctx, notificationID, userID)
}

// MarkAllRead marks every unread notification of the user read.
func (u *NotificationUsecase) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return u.notificationRepo.MarkAllRead(ctx, userID)
}
