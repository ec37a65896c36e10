package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"appointme.backend/internal/domain/entities"
	domainerrors "appointme.backend/internal/domain/errors"
	"appointme.backend/internal/domain/repositories"
	"appointme.backend/pkg/logger"
	"appointme.backend/pkg/metrics"
	"appointme.backend/pkg/utils"
)

// BookingUsecase drives the booking state machine and keeps the provider-wide
// availability flag and notifications in step with it. Every transition runs in
// one transaction with the provider's service rows locked.
type BookingUsecase struct {
	bookingRepo      repositories.BookingRepository
	serviceRepo      repositories.ServiceRepository
	availabilityRepo repositories.AvailabilityRepository
	userRepo         repositories.UserRepository
	notificationRepo repositories.NotificationRepository
	uow              repositories.UnitOfWork
	metrics          *metrics.Metrics
}

// NewBookingUsecase creates a new booking usecase
func NewBookingUsecase(
	bookingRepo repositories.BookingRepository,
	serviceRepo repositories.ServiceRepository,
	availabilityRepo repositories.AvailabilityRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
	uow repositories.UnitOfWork,
	m *metrics.Metrics,
) *BookingUsecase {
	return &BookingUsecase{
		bookingRepo:      bookingRepo,
		serviceRepo:      serviceRepo,
		availabilityRepo: availabilityRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		uow:              uow,
		metrics:          m,
	}
}

// Create books a service for customerID.
func (u *BookingUsecase) Create(ctx context.Context, customerID uuid.UUID, input *entities.CreateBookingInput) (*entities.Booking, error) {
	serviceID, ok := utils.ParseID(input.ServiceID)
	if !ok {
		return nil, domainerrors.Validation("invalid booking request", map[string]string{"service_id": "must be a valid id"})
	}
	bookingTime := strings.TrimSpace(input.BookingTime)
	if bookingTime == "" {
		return nil, domainerrors.Validation("invalid booking request", map[string]string{"booking_time": "is required"})
	}

	var booking *entities.Booking
	var providerID uuid.UUID
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		service, err := u.serviceRepo.GetByID(txCtx, serviceID)
		if err != nil {
			return err
		}
		providerID = service.ProviderID

		if _, err := u.serviceRepo.LockByProvider(u.uow.WithLock(txCtx), providerID); err != nil {
			return err
		}

		if providerID == customerID {
			return domainerrors.ErrSelfBooking
		}

		customer, err := u.userRepo.GetByID(txCtx, customerID)
		if err != nil {
			return err
		}

		active, err := u.bookingRepo.HasActive(txCtx, customerID, serviceID)
		if err != nil {
			return err
		}
		if active {
			return domainerrors.ErrDuplicateBooking
		}

		if _, err := u.availabilityRepo.EnsureForProvider(txCtx, providerID); err != nil {
			return err
		}

		booking = &entities.Booking{
			ID:            utils.NewID(),
			ServiceID:     serviceID,
			CustomerID:    customerID,
			BookingTime:   bookingTime,
			Status:        entities.BookingStatusPending,
			PaymentStatus: entities.PaymentStatusUnpaid,
		}
		if err := u.bookingRepo.Create(txCtx, booking); err != nil {
			return err
		}

		if _, err := u.availabilityRepo.SetForProvider(txCtx, providerID, true); err != nil {
			return err
		}

		return notify(txCtx, u.notificationRepo, providerID, entities.NotificationNewBooking,
			fmt.Sprintf(msgNewBooking, service.Name, customer.Name))
	})
	u.metrics.ObserveBooking(actionCreate, err)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("provider_id", providerID.String()),
		zap.String("customer_id", customerID.String()),
	)
	return booking, nil
}

// Confirm moves a pending booking to confirmed. Only the provider may confirm.
func (u *BookingUsecase) Confirm(ctx context.Context, providerID, bookingID uuid.UUID) error {
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		booking, err := u.lockBooking(txCtx, bookingID)
		if err != nil {
			return err
		}
		if booking.ProviderID != providerID {
			return domainerrors.ErrNotServiceOwner
		}
		if !booking.Status.CanTransitionTo(entities.BookingStatusConfirmed) {
			return domainerrors.ErrInvalidTransition
		}

		if err := u.bookingRepo.UpdateStatus(txCtx, bookingID, entities.BookingStatusConfirmed); err != nil {
			return err
		}

		rows, err := u.availabilityRepo.SetForProvider(txCtx, booking.ProviderID, true)
		if err != nil {
			return err
		}
		logger.Info(txCtx, "Booking confirmed",
			zap.String("booking_id", bookingID.String()),
			zap.String("provider_id", booking.ProviderID.String()),
			zap.Int64("availability_rows", rows),
		)

		return notify(txCtx, u.notificationRepo, booking.CustomerID, entities.NotificationBookingConfirmed,
			fmt.Sprintf(msgBookingConfirmed, booking.ServiceName))
	})
	u.metrics.ObserveBooking(actionConfirm, err)
	return err
}

// Cancel removes a pending or confirmed booking. The provider or the customer
// may cancel; the other party is notified. When the provider has no bookings
// left their catalog is marked available again.
func (u *BookingUsecase) Cancel(ctx context.Context, actorID, bookingID uuid.UUID) error {
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		booking, err := u.lockBooking(txCtx, bookingID)
		if err != nil {
			return err
		}

		byProvider := actorID == booking.ProviderID
		if !byProvider && actorID != booking.CustomerID {
			return domainerrors.ErrForbidden
		}
		if !booking.Status.IsActive() {
			return domainerrors.ErrInvalidTransition
		}

		if err := u.bookingRepo.Delete(txCtx, bookingID); err != nil {
			return err
		}

		remaining, err := u.bookingRepo.CountByProvider(txCtx, booking.ProviderID)
		if err != nil {
			return err
		}
		var rows int64
		if remaining == 0 {
			if rows, err = u.availabilityRepo.SetForProvider(txCtx, booking.ProviderID, false); err != nil {
				return err
			}
		}
		logger.Info(txCtx, "Booking cancelled",
			zap.String("booking_id", bookingID.String()),
			zap.String("provider_id", booking.ProviderID.String()),
			zap.Bool("by_provider", byProvider),
			zap.Int64("remaining_bookings", remaining),
			zap.Int64("availability_rows", rows),
		)

		if byProvider {
			return notify(txCtx, u.notificationRepo, booking.CustomerID, entities.NotificationBookingCancelled,
				fmt.Sprintf(msgCancelledByProvider, booking.ServiceName))
		}
		return notify(txCtx, u.notificationRepo, booking.ProviderID, entities.NotificationBookingCancelled,
			fmt.Sprintf(msgCancelledByCustomer, booking.ServiceName))
	})
	u.metrics.ObserveBooking(actionCancel, err)
	return err
}

// Complete moves a confirmed booking to completed. Availability is untouched.
func (u *BookingUsecase) Complete(ctx context.Context, providerID, bookingID uuid.UUID) error {
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		booking, err := u.lockBooking(txCtx, bookingID)
		if err != nil {
			return err
		}
		if booking.ProviderID != providerID {
			return domainerrors.ErrNotServiceOwner
		}
		if !booking.Status.CanTransitionTo(entities.BookingStatusCompleted) {
			return domainerrors.ErrInvalidTransition
		}

		if err := u.bookingRepo.UpdateStatus(txCtx, bookingID, entities.BookingStatusCompleted); err != nil {
			return err
		}
		logger.Info(txCtx, "Booking completed",
			zap.String("booking_id", bookingID.String()),
			zap.String("provider_id", booking.ProviderID.String()),
		)

		return notify(txCtx, u.notificationRepo, booking.CustomerID, entities.NotificationBookingCompleted,
			fmt.Sprintf(msgBookingCompleted, booking.ServiceName))
	})
	u.metrics.ObserveBooking(actionComplete, err)
	return err
}

// MarkAllAvailable clears is_booked on the provider's whole catalog, even while
// bookings are still open.
func (u *BookingUsecase) MarkAllAvailable(ctx context.Context, providerID uuid.UUID) (int64, error) {
	var rows int64
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if _, err := u.serviceRepo.LockByProvider(u.uow.WithLock(txCtx), providerID); err != nil {
			return err
		}
		if _, err := u.availabilityRepo.EnsureForProvider(txCtx, providerID); err != nil {
			return err
		}
		var err error
		rows, err = u.availabilityRepo.SetForProvider(txCtx, providerID, false)
		return err
	})
	u.metrics.ObserveBooking(actionMarkAllAvailable, err)
	if err != nil {
		return 0, err
	}

	logger.Info(ctx, "Provider marked all services available",
		zap.String("provider_id", providerID.String()),
		zap.Int64("availability_rows", rows),
	)
	return rows, nil
}

// ListForProvider returns the bookings on the provider's services. Missing
// availability rows are materialized first so every row carries a flag.
func (u *BookingUsecase) ListForProvider(ctx context.Context, providerID uuid.UUID) ([]*entities.ProviderBookingView, error) {
	if _, err := u.availabilityRepo.EnsureForProvider(ctx, providerID); err != nil {
		return nil, err
	}
	return u.bookingRepo.ListForProvider(ctx, providerID)
}

// ListForCustomer returns the customer's bookings.
func (u *BookingUsecase) ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]*entities.CustomerBookingView, error) {
	return u.bookingRepo.ListForCustomer(ctx, customerID)
}

// lockBooking locks the catalog of the booking's provider and re-reads the
// booking under that lock, so concurrent transitions see each other's writes.
func (u *BookingUsecase) lockBooking(txCtx context.Context, bookingID uuid.UUID) (*entities.BookingContext, error) {
	booking, err := u.bookingRepo.GetByID(txCtx, bookingID)
	if err != nil {
		return nil, err
	}
	if _, err := u.serviceRepo.LockByProvider(u.uow.WithLock(txCtx), booking.ProviderID); err != nil {
		return nil, err
	}
	return u.bookingRepo.GetByID(txCtx, bookingID)
}
