package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"appointme.backend/internal/domain/entities"
	"appointme.backend/internal/infrastructure/datasources/testdb"
	"appointme.backend/pkg/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testdb.New(t)
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func seedUser(t *testing.T, db *gorm.DB, name string) *entities.User {
	t.Helper()
	u := &entities.User{
		ID:           utils.NewID(),
		Name:         name,
		Email:        name + "-" + uuid.NewString()[:8] + "@appointme.test",
		PasswordHash: "hash",
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}

func seedService(t *testing.T, db *gorm.DB, providerID uuid.UUID, name string, price float64) *entities.Service {
	t.Helper()
	s := &entities.Service{ID: utils.NewID(), ProviderID: providerID, Name: name, Price: price}
	require.NoError(t, NewServiceRepository(db).Create(context.Background(), s))
	return s
}

func seedBooking(t *testing.T, db *gorm.DB, serviceID, customerID uuid.UUID, status entities.BookingStatus) *entities.Booking {
	t.Helper()
	b := &entities.Booking{
		ID:          utils.NewID(),
		ServiceID:   serviceID,
		CustomerID:  customerID,
		BookingTime: "2026-11-01 10:00",
		Status:      status,
	}
	require.NoError(t, NewBookingRepository(db).Create(context.Background(), b))
	return b
}
