package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"appointme.backend/internal/domain/entities"
	domainerrors "appointme.backend/internal/domain/errors"
	"appointme.backend/internal/infrastructure/models"
)

const (
	bookingContextSQL = `
		SELECT b.id, b.service_id, b.customer_id, b.booking_time, b.status, b.payment_status,
		       b.created_at, b.updated_at, s.name AS service_name, s.provider_id AS provider_id
		FROM bookings b
		INNER JOIN services s ON s.id = b.service_id
		WHERE b.id = ? AND b.deleted_at IS NULL`

	countProviderBookingsSQL = `
		SELECT COUNT(*)
		FROM bookings b
		INNER JOIN services s ON s.id = b.service_id
		WHERE s.provider_id = ? AND b.deleted_at IS NULL`

	providerBookingsSQL = `
		SELECT b.id, b.service_id, s.name AS service_name, b.customer_id, u.name AS booked_by,
		       b.booking_time, b.status, b.payment_status, s.price,
		       COALESCE(sa.is_booked, FALSE) AS is_booked, b.created_at, b.updated_at
		FROM bookings b
		INNER JOIN services s ON s.id = b.service_id
		INNER JOIN users u ON u.id = b.customer_id
		LEFT JOIN service_availabilities sa ON sa.service_id = s.id
		WHERE s.provider_id = ? AND b.deleted_at IS NULL
		ORDER BY b.created_at DESC, b.id DESC`

	customerBookingsSQL = `
		SELECT b.id, b.service_id, s.name AS service_name, u.name AS provider_name,
		       b.booking_time, b.status, b.payment_status, s.price, pp.path AS profile_picture,
		       b.created_at, b.updated_at
		FROM bookings b
		INNER JOIN services s ON s.id = b.service_id
		INNER JOIN users u ON u.id = s.provider_id
		LEFT JOIN profile_pictures pp ON pp.user_id = s.provider_id
		WHERE b.customer_id = ? AND b.deleted_at IS NULL
		ORDER BY b.created_at DESC, b.id DESC`
)

type bookingContextRow struct {
	ID            uuid.UUID
	ServiceID     uuid.UUID
	CustomerID    uuid.UUID
	BookingTime   string
	Status        int
	PaymentStatus int
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ServiceName   string
	ProviderID    uuid.UUID
}

type providerBookingRow struct {
	ID            uuid.UUID
	ServiceID     uuid.UUID
	ServiceName   string
	CustomerID    uuid.UUID
	BookedBy      string
	BookingTime   string
	Status        int
	PaymentStatus int
	Price         float64
	IsBooked      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type customerBookingRow struct {
	ID             uuid.UUID
	ServiceID      uuid.UUID
	ServiceName    string
	ProviderName   string
	BookingTime    string
	Status         int
	PaymentStatus  int
	Price          float64
	ProfilePicture null.String
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// BookingRepository implements booking data operations
type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create inserts the booking at the status and payment status it carries.
func (r *BookingRepository) Create(ctx context.Context, booking *entities.Booking) error {
	m := &models.Booking{
		ID:            booking.ID,
		ServiceID:     booking.ServiceID,
		CustomerID:    booking.CustomerID,
		BookingTime:   booking.BookingTime,
		Status:        int(booking.Status),
		PaymentStatus: int(booking.PaymentStatus),
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateBooking
		}
		return err
	}
	booking.CreatedAt = m.CreatedAt
	booking.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID returns a live booking with its service name and provider.
func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.BookingContext, error) {
	var rows []bookingContextRow
	if err := GetDB(ctx, r.db).Raw(bookingContextSQL, id).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domainerrors.ErrNotFound
	}
	row := rows[0]
	return &entities.BookingContext{
		Booking: entities.Booking{
			ID:            row.ID,
			ServiceID:     row.ServiceID,
			CustomerID:    row.CustomerID,
			BookingTime:   row.BookingTime,
			Status:        entities.BookingStatus(row.Status),
			PaymentStatus: entities.PaymentStatus(row.PaymentStatus),
			CreatedAt:     row.CreatedAt,
			UpdatedAt:     row.UpdatedAt,
		},
		ServiceName: row.ServiceName,
		ProviderID:  row.ProviderID,
	}, nil
}

// HasActive reports whether the customer holds a pending or confirmed booking for the service.
func (r *BookingRepository) HasActive(ctx context.Context, customerID, serviceID uuid.UUID) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&models.Booking{}).
		Where("customer_id = ? AND service_id = ? AND status IN ?", customerID, serviceID,
			[]int{int(entities.BookingStatusPending), int(entities.BookingStatusConfirmed)}).
		Count(&count).Error
	return count > 0, err
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.BookingStatus) error {
	result := GetDB(ctx, r.db).Model(&models.Booking{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": int(status), "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete soft-deletes the booking; it disappears from every read.
func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).Delete(&models.Booking{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// CountByProvider counts remaining bookings of any status across the provider's services.
func (r *BookingRepository) CountByProvider(ctx context.Context, providerID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Raw(countProviderBookingsSQL, providerID).Scan(&count).Error
	return count, err
}

func (r *BookingRepository) ListForProvider(ctx context.Context, providerID uuid.UUID) ([]*entities.ProviderBookingView, error) {
	var rows []providerBookingRow
	if err := GetDB(ctx, r.db).Raw(providerBookingsSQL, providerID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.ProviderBookingView, 0, len(rows))
	for _, row := range rows {
		out = append(out, &entities.ProviderBookingView{
			ID:            row.ID,
			ServiceID:     row.ServiceID,
			ServiceName:   row.ServiceName,
			CustomerID:    row.CustomerID,
			BookedBy:      row.BookedBy,
			BookingTime:   row.BookingTime,
			Status:        entities.BookingStatus(row.Status).Label(),
			PaymentStatus: entities.PaymentStatus(row.PaymentStatus).Label(),
			Price:         row.Price,
			IsBooked:      row.IsBooked,
			CreatedAt:     row.CreatedAt,
			UpdatedAt:     row.UpdatedAt,
		})
	}
	return out, nil
}

func (r *BookingRepository) ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]*entities.CustomerBookingView, error) {
	var rows []customerBookingRow
	if err := GetDB(ctx, r.db).Raw(customerBookingsSQL, customerID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.CustomerBookingView, 0, len(rows))
	for _, row := range rows {
		out = append(out, &entities.CustomerBookingView{
			ID:             row.ID,
			ServiceID:      row.ServiceID,
			ServiceName:    row.ServiceName,
			ProviderName:   row.ProviderName,
			BookingTime:    row.BookingTime,
			Status:         entities.BookingStatus(row.Status).Label(),
			PaymentStatus:  entities.PaymentStatus(row.PaymentStatus).Label(),
			Price:          row.Price,
			ProfilePicture: row.ProfilePicture,
			CreatedAt:      row.CreatedAt,
			UpdatedAt:      row.UpdatedAt,
		})
	}
	return out, nil
}
