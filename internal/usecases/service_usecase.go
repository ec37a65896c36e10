package usecases

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"appointme.backend/internal/domain/entities"
	domainerrors "appointme.backend/internal/domain/errors"
	"appointme.backend/internal/domain/repositories"
	"appointme.backend/pkg/logger"
	"appointme.backend/pkg/utils"
)

// ServiceUsecase handles the service catalog
type ServiceUsecase struct {
	serviceRepo      repositories.ServiceRepository
	availabilityRepo repositories.AvailabilityRepository
	userRepo         repositories.UserRepository
	uow              repositories.UnitOfWork
}

// NewServiceUsecase creates a new service usecase
func NewServiceUsecase(
	serviceRepo repositories.ServiceRepository,
	availabilityRepo repositories.AvailabilityRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
) *ServiceUsecase {
	return &ServiceUsecase{
		serviceRepo:      serviceRepo,
		availabilityRepo: availabilityRepo,
		userRepo:         userRepo,
		uow:              uow,
	}
}

// List returns a page of the catalog with availability flags.
func (u *ServiceUsecase) List(ctx context.Context, pagination utils.PaginationParams) ([]*entities.ServiceDetail, int64, error) {
	return u.serviceRepo.List(ctx, pagination)
}

// Get returns one service with its provider picture and availability.
func (u *ServiceUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.ServiceDetail, error) {
	return u.serviceRepo.GetDetail(ctx, id)
}

// ListMine returns the provider's own services.
func (u *ServiceUsecase) ListMine(ctx context.Context, providerID uuid.UUID) ([]*entities.ServiceDetail, error) {
	return u.serviceRepo.ListByProvider(ctx, providerID)
}

// Create publishes a service. Only verified providers may publish.
func (u *ServiceUsecase) Create(ctx context.Context, providerID uuid.UUID, input *entities.CreateServiceInput) (*entities.ServiceDetail, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerrors.Validation("invalid service", map[string]string{"name": "must not be blank"})
	}
	if input.Price <= 0 {
		return nil, domainerrors.Validation("invalid service", map[string]string{"price": "must be greater than 0"})
	}

	service := &entities.Service{
		ID:         utils.NewID(),
		ProviderID: providerID,
		Name:       name,
		Price:      input.Price,
	}
	if input.Description != nil {
		service.Description = null.StringFrom(strings.TrimSpace(*input.Description))
	}

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		provider, err := u.userRepo.GetByID(txCtx, providerID)
		if err != nil {
			return err
		}
		if !provider.IsVerified {
			return domainerrors.ErrProviderNotVerified
		}

		if _, err := u.serviceRepo.LockByProvider(u.uow.WithLock(txCtx), providerID); err != nil {
			return err
		}
		if err := u.serviceRepo.Create(txCtx, service); err != nil {
			return err
		}
		_, err = u.availabilityRepo.EnsureForProvider(txCtx, providerID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Service created",
		zap.String("service_id", service.ID.String()),
		zap.String("provider_id", providerID.String()),
	)
	return u.serviceRepo.GetDetail(ctx, service.ID)
}
