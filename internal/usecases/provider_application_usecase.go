package usecases

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"appointme.backend/internal/domain/entities"
	domainerrors "appointme.backend/internal/domain/errors"
	"appointme.backend/internal/domain/repositories"
	"appointme.backend/pkg/logger"
	"appointme.backend/pkg/utils"
)

// ProviderApplicationUsecase handles the none -> pending -> approved|rejected workflow
type ProviderApplicationUsecase struct {
	applicationRepo  repositories.ProviderApplicationRepository
	userRepo         repositories.UserRepository
	notificationRepo repositories.NotificationRepository
	uow              repositories.UnitOfWork
}

// NewProviderApplicationUsecase creates a new provider application usecase
func NewProviderApplicationUsecase(
	applicationRepo repositories.ProviderApplicationRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
	uow repositories.UnitOfWork,
) *ProviderApplicationUsecase {
	return &ProviderApplicationUsecase{
		applicationRepo:  applicationRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		uow:              uow,
	}
}

// Submit files a new application. Rejected users may resubmit.
func (u *ProviderApplicationUsecase) Submit(ctx context.Context, userID uuid.UUID, input *entities.SubmitApplicationInput) (*entities.ProviderApplication, error) {
	var application *entities.ProviderApplication
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		user, err := u.userRepo.GetByID(u.uow.WithLock(txCtx), userID)
		if err != nil {
			return err
		}
		if user.IsVerified {
			return domainerrors.ErrAlreadyVerified
		}
		if user.ApplicationStatus == entities.ApplicationStatusPending {
			return domainerrors.ErrApplicationPending
		}

		application = &entities.ProviderApplication{
			ID:          utils.NewID(),
			UserID:      userID,
			RealName:    strings.TrimSpace(input.RealName),
			DocumentURL: strings.TrimSpace(input.DocumentURL),
			Status:      entities.ApplicationStatusPending,
		}
		if err := u.applicationRepo.Create(txCtx, application); err != nil {
			return err
		}
		return u.userRepo.SetApplicationStatus(txCtx, userID, entities.ApplicationStatusPending)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Provider application submitted",
		zap.String("application_id", application.ID.String()),
		zap.String("user_id", userID.String()),
	)
	return application, nil
}

// Approve verifies the applicant and sends exactly one approval notification.
func (u *ProviderApplicationUsecase) Approve(ctx context.Context, applicationID uuid.UUID) (*entities.ProviderApplication, error) {
	return u.resolve(ctx, applicationID, entities.ApplicationStatusApproved)
}

// Reject closes the application. The user's verified flag is left as is.
func (u *ProviderApplicationUsecase) Reject(ctx context.Context, applicationID uuid.UUID) (*entities.ProviderApplication, error) {
	return u.resolve(ctx, applicationID, entities.ApplicationStatusRejected)
}

// ListPending returns pending applications, oldest first.
func (u *ProviderApplicationUsecase) ListPending(ctx context.Context) ([]*entities.PendingApplicationView, error) {
	return u.applicationRepo.ListPending(ctx)
}

func (u *ProviderApplicationUsecase) resolve(ctx context.Context, applicationID uuid.UUID, status entities.ApplicationStatus) (*entities.ProviderApplication, error) {
	var application *entities.ProviderApplication
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := u.uow.WithLock(txCtx)

		var err error
		application, err = u.applicationRepo.GetByID(lockCtx, applicationID)
		if err != nil {
			return err
		}
		if application.Status != entities.ApplicationStatusPending {
			return domainerrors.ErrApplicationResolved
		}
		if _, err := u.userRepo.GetByID(lockCtx, application.UserID); err != nil {
			return err
		}

		if err := u.applicationRepo.UpdateStatus(txCtx, applicationID, status); err != nil {
			return err
		}
		application.Status = status

		if status == entities.ApplicationStatusApproved {
			if err := u.userRepo.MarkVerified(txCtx, application.UserID); err != nil {
				return err
			}
			return notify(txCtx, u.notificationRepo, application.UserID, entities.NotificationApplicationApproved, msgApplicationApproved)
		}

		if err := u.userRepo.SetApplicationStatus(txCtx, application.UserID, status); err != nil {
			return err
		}
		return notify(txCtx, u.notificationRepo, application.UserID, entities.NotificationApplicationRejected, msgApplicationRejected)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Provider application reviewed",
		zap.String("application_id", applicationID.String()),
		zap.String("user_id", application.UserID.String()),
		zap.String("status", string(status)),
	)
	return application, nil
}
