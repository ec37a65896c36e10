package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"appointme.backend/internal/domain/entities"
	domainerrors "appointme.backend/internal/domain/errors"
	"appointme.backend/internal/usecases"
	"appointme.backend/pkg/utils"
)

func TestNotificationUsecase_List(t *testing.T) {
	repo := new(MockNotificationRepository)
	uc := usecases.NewNotificationUsecase(repo)
	userID := uuid.New()

	normalized := utils.PaginationParams{Page: 1, Limit: utils.MaxPageLimit}
	repo.On("ListByUser", mock.Anything, userID, normalized).
		Return([]*entities.Notification{{Message: "hello"}}, int64(101), nil)
	repo.On("CountUnread", mock.Anything, userID).Return(int64(3), nil)

	page, err := uc.List(context.Background(), userID, utils.PaginationParams{Page: 0, Limit: 500})
	require.NoError(t, err)
	assert.Len(t, page.Notifications, 1)
	assert.Equal(t, int64(3), page.UnreadCount)
	assert.Equal(t, 2, page.Pagination.TotalPages)
}

func TestNotificationUsecase_MarkRead(t *testing.T) {
	repo := new(MockNotificationRepository)
	uc := usecases.NewNotificationUsecase(repo)
	userID, id := uuid.New(), uuid.New()

	repo.On("MarkRead", mock.Anything, id, userID).Return(domainerrors.ErrNotFound)
	repo.On("MarkAllRead", mock.Anything, userID).Return(int64(4), nil)

	assert.ErrorIs(t, uc.MarkRead(context.Background(), userID, id), domainerrors.ErrNotFound)

	n, err := uc.MarkAllRead(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}
