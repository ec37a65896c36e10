package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appointme.backend/internal/domain/entities"
	domainerrors "appointme.backend/internal/domain/errors"
	"appointme.backend/pkg/utils"
)

func TestServiceRepository_DetailDefaultsAndAvailability(t *testing.T) {
	db := newTestDB(t)
	repo := NewServiceRepository(db)
	ctx := context.Background()
	provider := seedUser(t, db, "provider")
	svc := seedService(t, db, provider.ID, "Plumbing", 80)

	got, err := repo.GetByID(ctx, svc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Plumbing", got.Name)
	assert.InDelta(t, 80.0, got.Price, 0.001)

	detail, err := repo.GetDetail(ctx, svc.ID)
	require.NoError(t, err)
	assert.Equal(t, "provider", detail.ProviderName)
	assert.Equal(t, entities.DefaultProfilePicture, detail.ProfilePicture)
	assert.False(t, detail.IsBooked)

	_, err = NewAvailabilityRepository(db).EnsureForProvider(ctx, provider.ID)
	require.NoError(t, err)
	_, err = NewAvailabilityRepository(db).SetForProvider(ctx, provider.ID, true)
	require.NoError(t, err)
	_, err = NewProfilePictureRepository(db).Upsert(ctx, provider.ID, "p.png")
	require.NoError(t, err)

	detail, err = repo.GetDetail(ctx, svc.ID)
	require.NoError(t, err)
	assert.True(t, detail.IsBooked)
	assert.Equal(t, "p.png", detail.ProfilePicture)

	_, err = repo.GetDetail(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestServiceRepository_ListAndLock(t *testing.T) {
	db := newTestDB(t)
	repo := NewServiceRepository(db)
	ctx := context.Background()
	p1 := seedUser(t, db, "p1")
	p2 := seedUser(t, db, "p2")
	a := seedService(t, db, p1.ID, "A", 10)
	b := seedService(t, db, p1.ID, "B", 20)
	seedService(t, db, p2.ID, "C", 30)

	items, total, err := repo.List(ctx, utils.NormalizePagination(1, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, items, 2)

	mine, err := repo.ListByProvider(ctx, p1.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	uow := &UnitOfWorkImpl{db: db}
	err = uow.Do(ctx, func(txCtx context.Context) error {
		ids, err := repo.LockByProvider(uow.WithLock(txCtx), p1.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []uuid.UUID{a.ID, b.ID}, ids)
		return nil
	})
	require.NoError(t, err)

	ids, err := repo.LockByProvider(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestServiceRepository_ListHidesDeletedProviders(t *testing.T) {
	db := newTestDB(t)
	repo := NewServiceRepository(db)
	ctx := context.Background()
	p := seedUser(t, db, "gone")
	seedService(t, db, p.ID, "Ghost", 5)
	require.NoError(t, NewUserRepository(db).SoftDelete(ctx, p.ID))

	items, total, err := repo.List(ctx, utils.NormalizePagination(1, 10))
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)
}
