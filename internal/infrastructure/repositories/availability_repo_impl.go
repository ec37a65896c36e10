package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"appointme.backend/internal/domain/entities"
	domainerrors "appointme.backend/internal/domain/errors"
	"appointme.backend/internal/infrastructure/models"
)

// Missing rows inherit the provider's current flag so the catalog stays all-or-nothing.
// ON CONFLICT covers a concurrent materializer.
const (
	ensureProviderAvailabilitySQL = `
		INSERT INTO service_availabilities (service_id, is_booked, created_at, updated_at)
		SELECT s.id,
		       EXISTS (
		         SELECT 1 FROM service_availabilities sib
		         INNER JOIN services owned ON owned.id = sib.service_id
		         WHERE owned.provider_id = s.provider_id AND sib.is_booked = ?
		       ),
		       CURRENT_TIMESTAMP, CURRENT_TIMESTAMP
		FROM services s
		WHERE s.provider_id = ?
		  AND NOT EXISTS (SELECT 1 FROM service_availabilities sa WHERE sa.service_id = s.id)
		ON CONFLICT (service_id) DO NOTHING`

	ensureAllAvailabilitySQL = `
		INSERT INTO service_availabilities (service_id, is_booked, created_at, updated_at)
		SELECT s.id,
		       EXISTS (
		         SELECT 1 FROM service_availabilities sib
		         INNER JOIN services owned ON owned.id = sib.service_id
		         WHERE owned.provider_id = s.provider_id AND sib.is_booked = ?
		       ),
		       CURRENT_TIMESTAMP, CURRENT_TIMESTAMP
		FROM services s
		WHERE NOT EXISTS (SELECT 1 FROM service_availabilities sa WHERE sa.service_id = s.id)
		ON CONFLICT (service_id) DO NOTHING`

	setProviderAvailabilitySQL = `
		UPDATE service_availabilities
		SET is_booked = ?, updated_at = ?
		WHERE service_id IN (SELECT id FROM services WHERE provider_id = ?)`

	clearIdleProvidersSQL = `
		UPDATE service_availabilities
		SET is_booked = ?, updated_at = ?
		WHERE is_booked = ?
		  AND service_id IN (
		    SELECT s.id FROM services s
		    WHERE NOT EXISTS (
		      SELECT 1 FROM bookings b
		      INNER JOIN services owned ON owned.id = b.service_id
		      WHERE owned.provider_id = s.provider_id AND b.deleted_at IS NULL
		    )
		  )`
)

// AvailabilityRepository maintains service_availabilities
type AvailabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// EnsureForProvider materializes missing rows for the provider's catalog.
// New rows copy the flag of the provider's existing rows.
func (r *AvailabilityRepository) EnsureForProvider(ctx context.Context, providerID uuid.UUID) (int64, error) {
	result := GetDB(ctx, r.db).Exec(ensureProviderAvailabilitySQL, true, providerID)
	return result.RowsAffected, result.Error
}

// SetForProvider writes is_booked across the provider's whole catalog.
func (r *AvailabilityRepository) SetForProvider(ctx context.Context, providerID uuid.UUID, isBooked bool) (int64, error) {
	result := GetDB(ctx, r.db).Exec(setProviderAvailabilitySQL, isBooked, time.Now().UTC(), providerID)
	return result.RowsAffected, result.Error
}

func (r *AvailabilityRepository) GetByServiceID(ctx context.Context, serviceID uuid.UUID) (*entities.ServiceAvailability, error) {
	var m models.ServiceAvailability
	if err := GetDB(ctx, r.db).Where("service_id = ?", serviceID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.ServiceAvailability{
		ServiceID: m.ServiceID,
		IsBooked:  m.IsBooked,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

// EnsureAll materializes missing rows for every service.
func (r *AvailabilityRepository) EnsureAll(ctx context.Context) (int64, error) {
	result := GetDB(ctx, r.db).Exec(ensureAllAvailabilitySQL, true)
	return result.RowsAffected, result.Error
}

// ClearIdleProviders resets the flag for providers without any remaining booking. It never sets the flag.
func (r *AvailabilityRepository) ClearIdleProviders(ctx context.Context) (int64, error) {
	result := GetDB(ctx, r.db).Exec(clearIdleProvidersSQL, false, time.Now().UTC(), true)
	return result.RowsAffected, result.Error
}
