package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"appointme.backend/internal/domain/entities"
	domainerrors "appointme.backend/internal/domain/errors"
	"appointme.backend/internal/domain/repositories"
	"appointme.backend/pkg/crypto"
	"appointme.backend/pkg/logger"
)

// ProfileUsecase handles profile and account settings keyed by the authenticated user
type ProfileUsecase struct {
	userRepo    repositories.UserRepository
	pictureRepo repositories.ProfilePictureRepository
}

// NewProfileUsecase creates a new profile usecase
func NewProfileUsecase(userRepo repositories.UserRepository, pictureRepo repositories.ProfilePictureRepository) *ProfileUsecase {
	return &ProfileUsecase{
		userRepo:    userRepo,
		pictureRepo: pictureRepo,
	}
}

// Get returns the user joined with their profile picture.
func (u *ProfileUsecase) Get(ctx context.Context, userID uuid.UUID) (*entities.Profile, error) {
	return u.userRepo.GetProfile(ctx, userID)
}

// Update writes only the fields present in input.
func (u *ProfileUsecase) Update(ctx context.Context, userID uuid.UUID, input *entities.UpdateProfileInput) (*entities.Profile, error) {
	update := input.ToUpdate()
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, domainerrors.Validation("invalid profile", map[string]string{"name": "must not be blank"})
		}
		update.Name = &name
	}

	if err := u.userRepo.UpdateProfile(ctx, userID, update); err != nil {
		return nil, err
	}
	return u.userRepo.GetProfile(ctx, userID)
}

// UploadPicture stores the picture URL, replacing any previous one.
func (u *ProfileUsecase) UploadPicture(ctx context.Context, userID uuid.UUID, input *entities.UploadPictureInput) (*entities.ProfilePicture, error) {
	if _, err := u.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return u.pictureRepo.Upsert(ctx, userID, strings.TrimSpace(input.Path))
}

// GetPicture returns the user's picture, NotFound if none was uploaded.
func (u *ProfileUsecase) GetPicture(ctx context.Context, userID uuid.UUID) (*entities.ProfilePicture, error) {
	return u.pictureRepo.GetByUserID(ctx, userID)
}

// UpdateEmail changes the login email. Conflict when another account owns it.
func (u *ProfileUsecase) UpdateEmail(ctx context.Context, userID uuid.UUID, input *entities.UpdateEmailInput) (*entities.User, error) {
	if err := u.userRepo.UpdateEmail(ctx, userID, normalizeEmail(input.Email)); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("email already in use")
		}
		return nil, err
	}
	return u.userRepo.GetByID(ctx, userID)
}

// ChangePassword replaces the password after checking the current one.
func (u *ProfileUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput) error {
	fields := map[string]string{}
	if len(input.NewPassword) < crypto.MinPasswordLength {
		fields["new_password"] = "must be at least 8 characters"
	}
	if input.NewPassword != input.NewPasswordConfirmation {
		fields["new_password_confirmation"] = "does not match"
	}
	if len(fields) > 0 {
		return domainerrors.Validation("invalid password change", fields)
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !crypto.CheckPassword(input.CurrentPassword, user.PasswordHash) {
		return domainerrors.Validation("invalid password change", map[string]string{"current_password": "is incorrect"})
	}

	passwordHash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	if err := u.userRepo.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return err
	}

	logger.Info(ctx, "Password changed", zap.String("user_id", userID.String()))
	return nil
}

// DeleteAccount soft deletes the user.
func (u *ProfileUsecase) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if err := u.userRepo.SoftDelete(ctx, userID); err != nil {
		return err
	}
	logger.Info(ctx, "Account deleted", zap.String("user_id", userID.String()))
	return nil
}
